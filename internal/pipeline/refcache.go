package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gormModels "openfleet/fleetkeeper/internal/models/gorm"

	"gorm.io/gorm"
)

// ReferenceResolver performs find-or-create for shared lookup entities.
// Lookups are case-insensitive; creation-on-demand is the contract, so an
// unknown name is never an error. The cache is scoped to one pipeline run
// and discarded with the resolver, never shared across runs.
type ReferenceResolver struct {
	tx *gorm.DB

	types      map[string]*gormModels.VehicleType
	makes      map[string]*gormModels.VehicleMake
	models     map[string]*gormModels.VehicleModel
	consumable map[string]*gormModels.ConsumableType
	categories map[string]*gormModels.PartCategory
}

// NewReferenceResolver binds a resolver to the run's transaction so that
// entities created mid-run are visible to later records but commit only
// with the outer transaction.
func NewReferenceResolver(tx *gorm.DB) *ReferenceResolver {
	return &ReferenceResolver{
		tx:         tx,
		types:      make(map[string]*gormModels.VehicleType),
		makes:      make(map[string]*gormModels.VehicleMake),
		models:     make(map[string]*gormModels.VehicleModel),
		consumable: make(map[string]*gormModels.ConsumableType),
		categories: make(map[string]*gormModels.PartCategory),
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *ReferenceResolver) ResolveVehicleType(ctx context.Context, name string) (*gormModels.VehicleType, error) {
	key := normalizeName(name)
	if key == "" {
		return nil, fmt.Errorf("vehicle type name is empty")
	}
	if cached, ok := r.types[key]; ok {
		return cached, nil
	}

	var vt gormModels.VehicleType
	err := r.tx.WithContext(ctx).Where("LOWER(name) = ?", key).First(&vt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		vt = gormModels.VehicleType{Name: strings.TrimSpace(name)}
		if err := r.tx.WithContext(ctx).Create(&vt).Error; err != nil {
			return nil, fmt.Errorf("failed to create vehicle type %q: %w", name, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up vehicle type %q: %w", name, err)
	}

	r.types[key] = &vt
	return &vt, nil
}

func (r *ReferenceResolver) ResolveMake(ctx context.Context, vehicleTypeID, name string) (*gormModels.VehicleMake, error) {
	key := vehicleTypeID + "|" + normalizeName(name)
	if normalizeName(name) == "" {
		return nil, fmt.Errorf("make name is empty")
	}
	if cached, ok := r.makes[key]; ok {
		return cached, nil
	}

	var mk gormModels.VehicleMake
	err := r.tx.WithContext(ctx).
		Where("vehicle_type_id = ? AND LOWER(name) = ?", vehicleTypeID, normalizeName(name)).
		First(&mk).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		mk = gormModels.VehicleMake{VehicleTypeID: vehicleTypeID, Name: strings.TrimSpace(name)}
		if err := r.tx.WithContext(ctx).Create(&mk).Error; err != nil {
			return nil, fmt.Errorf("failed to create make %q: %w", name, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up make %q: %w", name, err)
	}

	r.makes[key] = &mk
	return &mk, nil
}

// ResolveModel scopes the model to its make and widens the stored year range
// when the record's year falls outside it.
func (r *ReferenceResolver) ResolveModel(ctx context.Context, makeID, name string, year *int) (*gormModels.VehicleModel, error) {
	key := makeID + "|" + normalizeName(name)
	if normalizeName(name) == "" {
		return nil, fmt.Errorf("model name is empty")
	}
	if cached, ok := r.models[key]; ok {
		return cached, nil
	}

	var mdl gormModels.VehicleModel
	err := r.tx.WithContext(ctx).
		Where("make_id = ? AND LOWER(name) = ?", makeID, normalizeName(name)).
		First(&mdl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		mdl = gormModels.VehicleModel{MakeID: makeID, Name: strings.TrimSpace(name), YearFrom: year, YearTo: year}
		if err := r.tx.WithContext(ctx).Create(&mdl).Error; err != nil {
			return nil, fmt.Errorf("failed to create model %q: %w", name, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up model %q: %w", name, err)
	} else if year != nil {
		widened := false
		if mdl.YearFrom == nil || *year < *mdl.YearFrom {
			mdl.YearFrom = year
			widened = true
		}
		if mdl.YearTo == nil || *year > *mdl.YearTo {
			mdl.YearTo = year
			widened = true
		}
		if widened {
			if err := r.tx.WithContext(ctx).Model(&mdl).
				Updates(map[string]interface{}{"year_from": mdl.YearFrom, "year_to": mdl.YearTo}).Error; err != nil {
				return nil, fmt.Errorf("failed to widen model years for %q: %w", name, err)
			}
		}
	}

	r.models[key] = &mdl
	return &mdl, nil
}

func (r *ReferenceResolver) ResolveConsumableType(ctx context.Context, name string) (*gormModels.ConsumableType, error) {
	key := normalizeName(name)
	if key == "" {
		return nil, fmt.Errorf("consumable type name is empty")
	}
	if cached, ok := r.consumable[key]; ok {
		return cached, nil
	}

	var ct gormModels.ConsumableType
	err := r.tx.WithContext(ctx).Where("LOWER(name) = ?", key).First(&ct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ct = gormModels.ConsumableType{Name: strings.TrimSpace(name)}
		if err := r.tx.WithContext(ctx).Create(&ct).Error; err != nil {
			return nil, fmt.Errorf("failed to create consumable type %q: %w", name, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up consumable type %q: %w", name, err)
	}

	r.consumable[key] = &ct
	return &ct, nil
}

func (r *ReferenceResolver) ResolvePartCategory(ctx context.Context, name string) (*gormModels.PartCategory, error) {
	key := normalizeName(name)
	if key == "" {
		return nil, fmt.Errorf("part category name is empty")
	}
	if cached, ok := r.categories[key]; ok {
		return cached, nil
	}

	var pc gormModels.PartCategory
	err := r.tx.WithContext(ctx).Where("LOWER(name) = ?", key).First(&pc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pc = gormModels.PartCategory{Name: strings.TrimSpace(name)}
		if err := r.tx.WithContext(ctx).Create(&pc).Error; err != nil {
			return nil, fmt.Errorf("failed to create part category %q: %w", name, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up part category %q: %w", name, err)
	}

	r.categories[key] = &pc
	return &pc, nil
}
