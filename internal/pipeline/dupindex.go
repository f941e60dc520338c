package pipeline

import (
	"context"
	"fmt"
	"strings"

	gormModels "openfleet/fleetkeeper/internal/models/gorm"

	"gorm.io/gorm"
)

// DuplicateIndex is the pre-loaded registration index for one pipeline run.
// Built once with a single bulk query, then consulted per candidate; records
// accepted earlier in the same run are added so within-batch duplicates are
// caught too.
type DuplicateIndex struct {
	keys map[string]string // normalized registration -> vehicle ID
}

// NormalizeRegistration trims and case-normalizes the identity key. An empty
// result means no duplicate check is possible and the record is always new.
func NormalizeRegistration(reg string) string {
	return strings.ToUpper(strings.TrimSpace(reg))
}

// LoadDuplicateIndex bulk-loads registrations for the scope: one owner, or
// the whole system when the caller holds admin privilege.
func LoadDuplicateIndex(ctx context.Context, db *gorm.DB, ownerID string, allOwners bool) (*DuplicateIndex, error) {
	type row struct {
		ID                 string
		RegistrationNumber string
	}

	q := db.WithContext(ctx).
		Model(&gormModels.Vehicle{}).
		Select("id", "registration_number").
		Where("registration_number IS NOT NULL AND registration_number != ''")
	if !allOwners {
		q = q.Where("owner_id = ?", ownerID)
	}

	var rows []row
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load duplicate index: %w", err)
	}

	idx := &DuplicateIndex{keys: make(map[string]string, len(rows))}
	for _, r := range rows {
		idx.keys[NormalizeRegistration(r.RegistrationNumber)] = r.ID
	}
	return idx, nil
}

func (d *DuplicateIndex) IsDuplicate(normalizedKey string) bool {
	if normalizedKey == "" {
		return false
	}
	_, exists := d.keys[normalizedKey]
	return exists
}

func (d *DuplicateIndex) Add(normalizedKey, vehicleID string) {
	if normalizedKey != "" {
		d.keys[normalizedKey] = vehicleID
	}
}

func (d *DuplicateIndex) Len() int {
	return len(d.keys)
}
