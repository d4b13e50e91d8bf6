package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/access"
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

func dbError(err error) error {
	return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
}

// notFoundOr maps gorm.ErrRecordNotFound to notFound and wraps anything else.
func notFoundOr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return dbError(err)
}

// facilityInScope loads a facility and checks the principal may manage it.
func facilityInScope(ctx context.Context, repo repositories.FacilityRepository, p *access.Principal, id uuid.UUID) (*db_models.Facility, error) {
	facility, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if facility == nil {
		return nil, utils.ErrFacilityNotFound
	}
	if err := p.RequireCarrier(facility.CarrierID); err != nil {
		return nil, err
	}
	return facility, nil
}

// categoryOfUnit loads a category and requires the given unit type.
func categoryOfUnit(ctx context.Context, repo repositories.CategoryRepository, id uuid.UUID, unit db_models.UnitType) (*db_models.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}
	if unit != "" && category.UnitType != unit {
		return nil, utils.NewFieldError("categoryId", fmt.Sprintf("category %q is counted in %s, not %s", category.Name, category.UnitType, unit))
	}
	return category, nil
}

// ageRange applies defaults and checks minAge <= maxAge.
func ageRange(minAge, maxAge *int, defMin, defMax int) (int, int, error) {
	lo, hi := defMin, defMax
	if minAge != nil {
		lo = *minAge
	}
	if maxAge != nil {
		hi = *maxAge
	}
	if lo < 0 || lo > db_models.MaxMinAge {
		return 0, 0, utils.NewFieldError("minAge", fmt.Sprintf("minAge must be between 0 and %d", db_models.MaxMinAge))
	}
	if hi < 0 || hi > db_models.MaxMaxAge {
		return 0, 0, utils.NewFieldError("maxAge", fmt.Sprintf("maxAge must be between 0 and %d", db_models.MaxMaxAge))
	}
	if lo > hi {
		return 0, 0, utils.NewFieldError("minAge", "minAge must not be greater than maxAge")
	}
	return lo, hi, nil
}

func genderOrDefault(g string, def db_models.GenderSuitability) (db_models.GenderSuitability, error) {
	if g == "" {
		return def, nil
	}
	gs := db_models.GenderSuitability(g)
	if !gs.Valid() {
		return "", utils.NewFieldError("genderSuitability", "genderSuitability must be one of: male female all")
	}
	return gs, nil
}

func checkPage(page, limit int) error {
	if page < 1 {
		return utils.ErrInvalidPage
	}
	if limit < 1 || limit > 100 {
		return utils.ErrInvalidPageSize
	}
	return nil
}
