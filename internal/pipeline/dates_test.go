package pipeline

import "testing"

func TestParseDate(t *testing.T) {
	if d := parseDate("2024-03-15"); d == nil || formatDate(d) != "2024-03-15" {
		t.Errorf("Calendar date failed: %v", d)
	}
	if d := parseDate("2024-03-15T10:30:00Z"); d == nil || formatDate(d) != "2024-03-15" {
		t.Errorf("RFC3339 timestamp failed: %v", d)
	}
	if d := parseDate("2024-03-15 10:30:00"); d == nil || formatDate(d) != "2024-03-15" {
		t.Errorf("Space-separated timestamp failed: %v", d)
	}
	if d := parseDate(""); d != nil {
		t.Errorf("Empty string should be nil, got %v", d)
	}
	if d := parseDate("  "); d != nil {
		t.Errorf("Whitespace should be nil, got %v", d)
	}
	if d := parseDate("15/03/2024"); d != nil {
		t.Errorf("Unknown layout should be nil, got %v", d)
	}
}

func TestFormatDate_Nil(t *testing.T) {
	if s := formatDate(nil); s != "" {
		t.Errorf("Expected empty string for nil, got %q", s)
	}
}
