package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/models/db_models"
)

type AvailabilityRepository interface {
	Create(ctx context.Context, availability *db_models.Availability) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Availability, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]db_models.Availability, error)
	Update(ctx context.Context, availability *db_models.Availability) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SyncFromPlaces recomputes place counts of availabilities for
	// places-type categories and returns the number of rows written. Pairs
	// without any live place are set to zero.
	SyncFromPlaces(ctx context.Context) (int64, error)
}

type availabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) Create(ctx context.Context, availability *db_models.Availability) error {
	return r.db.WithContext(ctx).Omit("Facility", "Category").Create(availability).Error
}

func (r *availabilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Availability, error) {
	var availability db_models.Availability
	err := r.db.WithContext(ctx).
		Preload("Facility").
		Preload("Category").
		First(&availability, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &availability, nil
}

func (r *availabilityRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]db_models.Availability, error) {
	var rows []db_models.Availability
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("facility_id = ?", facilityID).
		Order("last_updated DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *availabilityRepository) Update(ctx context.Context, availability *db_models.Availability) error {
	return r.db.WithContext(ctx).Omit("Facility", "Category").Save(availability).Error
}

// Delete is a hard delete so the (facility, category) pair can be reused.
func (r *availabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&db_models.Availability{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

const syncFromPlacesSQL = `
INSERT INTO availabilities
	(id, created_at, updated_at, facility_id, category_id, available_places, total_places,
	 gender_suitability, min_age, max_age, last_updated)
SELECT gen_random_uuid(),
	EXTRACT(EPOCH FROM now())::bigint,
	EXTRACT(EPOCH FROM now())::bigint,
	p.facility_id,
	p.category_id,
	SUM(CASE WHEN p.is_occupied THEN 0 ELSE 1 END),
	COUNT(*),
	'all',
	MIN(p.min_age),
	MAX(p.max_age),
	now()
FROM places p
JOIN categories c ON c.id = p.category_id AND c.unit_type = 'places'
JOIN facilities f ON f.id = p.facility_id AND f.deleted_at IS NULL
WHERE p.deleted_at IS NULL
GROUP BY p.facility_id, p.category_id
ON CONFLICT (facility_id, category_id) DO UPDATE SET
	available_places = EXCLUDED.available_places,
	total_places = EXCLUDED.total_places,
	updated_at = EXCLUDED.updated_at,
	last_updated = EXCLUDED.last_updated
WHERE availabilities.available_places IS DISTINCT FROM EXCLUDED.available_places
   OR availabilities.total_places IS DISTINCT FROM EXCLUDED.total_places`

// Availabilities of places categories whose pair has no live place left.
const zeroOrphanedAvailabilitiesSQL = `
UPDATE availabilities a SET
	available_places = 0,
	total_places = 0,
	updated_at = EXTRACT(EPOCH FROM now())::bigint,
	last_updated = now()
FROM categories c
WHERE c.id = a.category_id
  AND c.unit_type = 'places'
  AND a.deleted_at IS NULL
  AND (a.available_places <> 0 OR a.total_places <> 0)
  AND NOT EXISTS (
	SELECT 1 FROM places p
	WHERE p.facility_id = a.facility_id
	  AND p.category_id = a.category_id
	  AND p.deleted_at IS NULL)`

func (r *availabilityRepository) SyncFromPlaces(ctx context.Context) (int64, error) {
	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(syncFromPlacesSQL)
		if res.Error != nil {
			return res.Error
		}
		written = res.RowsAffected

		res = tx.Exec(zeroOrphanedAvailabilitiesSQL)
		if res.Error != nil {
			return res.Error
		}
		written += res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
