package dtos

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flex types absorb the loose encodings seen in real-world export files:
// numbers arriving as strings, booleans as "true"/1, and empty strings that
// mean "not provided" rather than an explicit blank. Each carries a Valid
// flag so absent and zero stay distinguishable.

type FlexFloat struct {
	Float64 float64
	Valid   bool
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var inner string
		if err := json.Unmarshal(b, &inner); err != nil {
			return err
		}
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return nil
		}
		v, err := strconv.ParseFloat(inner, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as number: %w", inner, err)
		}
		f.Float64 = v
		f.Valid = true
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.Float64 = v
	f.Valid = true
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Float64)
}

// IsZero reports absence, so omitzero drops unset fields while an explicit
// zero value still serializes.
func (f FlexFloat) IsZero() bool { return !f.Valid }

func (f *FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func Float(v float64) FlexFloat {
	return FlexFloat{Float64: v, Valid: true}
}

func FloatPtr(v *float64) FlexFloat {
	if v == nil {
		return FlexFloat{}
	}
	return Float(*v)
}

type FlexInt struct {
	Int   int
	Valid bool
}

func (i *FlexInt) UnmarshalJSON(b []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	if !f.Valid {
		return nil
	}
	i.Int = int(f.Float64)
	i.Valid = true
	return nil
}

func (i FlexInt) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Int)
}

func (i FlexInt) IsZero() bool { return !i.Valid }

func (i *FlexInt) Ptr() *int {
	if !i.Valid {
		return nil
	}
	v := i.Int
	return &v
}

func Int(v int) FlexInt {
	return FlexInt{Int: v, Valid: true}
}

func IntPtr(v *int) FlexInt {
	if v == nil {
		return FlexInt{}
	}
	return Int(*v)
}

type FlexBool struct {
	Bool  bool
	Valid bool
}

func (fb *FlexBool) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	switch strings.Trim(strings.ToLower(s), `"`) {
	case "true", "1", "yes":
		fb.Bool = true
		fb.Valid = true
	case "false", "0", "no":
		fb.Bool = false
		fb.Valid = true
	case "":
		// empty string means not provided
	default:
		return fmt.Errorf("cannot parse %s as boolean", s)
	}
	return nil
}

func (fb FlexBool) MarshalJSON() ([]byte, error) {
	if !fb.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(fb.Bool)
}

func (fb FlexBool) IsZero() bool { return !fb.Valid }

func Bool(v bool) FlexBool {
	return FlexBool{Bool: v, Valid: true}
}
