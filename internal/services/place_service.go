package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/access"
	"freiplatz/internal/config"
	"freiplatz/internal/logging"
	"freiplatz/internal/metrics"
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/request_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

const fallbackDefaultCapacity = 20

type PlaceServiceInterface interface {
	ListByFacility(ctx context.Context, p *access.Principal, facilityID uuid.UUID) ([]response_models.PlaceResponse, error)
	Create(ctx context.Context, p *access.Principal, req request_models.CreatePlaceRequest) (*response_models.PlaceResponse, error)
	BulkCreate(ctx context.Context, p *access.Principal, facilityID uuid.UUID, req request_models.BulkCreatePlacesRequest) ([]response_models.PlaceResponse, error)
	Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdatePlaceRequest) (*response_models.PlaceResponse, error)
	SetOccupancy(ctx context.Context, p *access.Principal, id uuid.UUID, occupied bool) (*response_models.PlaceResponse, error)
	Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error
	Statistics(ctx context.Context, p *access.Principal, facilityID uuid.UUID) (*response_models.PlaceStatistics, error)
}

type PlaceService struct {
	placeRepo       repositories.PlaceRepository
	facilityRepo    repositories.FacilityRepository
	categoryRepo    repositories.CategoryRepository
	audit           AuditServiceInterface
	defaultCapacity int
}

func NewPlaceService(
	placeRepo repositories.PlaceRepository,
	facilityRepo repositories.FacilityRepository,
	categoryRepo repositories.CategoryRepository,
	audit AuditServiceInterface,
	capacity config.CapacityConfig,
) PlaceServiceInterface {
	def := capacity.DefaultMax
	if def <= 0 {
		def = fallbackDefaultCapacity
	}
	return &PlaceService{
		placeRepo:       placeRepo,
		facilityRepo:    facilityRepo,
		categoryRepo:    categoryRepo,
		audit:           audit,
		defaultCapacity: def,
	}
}

func (s *PlaceService) ListByFacility(ctx context.Context, p *access.Principal, facilityID uuid.UUID) ([]response_models.PlaceResponse, error) {
	if err := p.Require(access.ResPlace, access.ActRead); err != nil {
		return nil, err
	}
	if _, err := facilityInScope(ctx, s.facilityRepo, p, facilityID); err != nil {
		return nil, err
	}

	places, err := s.placeRepo.ListByFacility(ctx, facilityID)
	if err != nil {
		return nil, dbError(err)
	}
	out := make([]response_models.PlaceResponse, 0, len(places))
	for i := range places {
		out = append(out, toPlaceResponse(&places[i]))
	}
	return out, nil
}

// Create adds a single place. It goes through the same capacity gate as
// BulkCreate; an empty name gets the next "Platz n".
func (s *PlaceService) Create(ctx context.Context, p *access.Principal, req request_models.CreatePlaceRequest) (*response_models.PlaceResponse, error) {
	places, err := s.allocate(ctx, p, req.FacilityID, req.CategoryID, req.GenderSuitability, req.MinAge, req.MaxAge, 1, func(pl *db_models.Place) {
		pl.IsOccupied = req.IsOccupied
		if name := strings.TrimSpace(req.Name); name != "" {
			pl.Name = name
		}
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntry{
		UserID:   p.UserRef(),
		Action:   ActionCreate,
		Entity:   EntityPlace,
		EntityID: &places[0].ID,
		Details:  map[string]interface{}{"facilityId": req.FacilityID, "name": places[0].Name},
	})
	resp := toPlaceResponse(&places[0])
	return &resp, nil
}

func (s *PlaceService) BulkCreate(ctx context.Context, p *access.Principal, facilityID uuid.UUID, req request_models.BulkCreatePlacesRequest) ([]response_models.PlaceResponse, error) {
	count := 1
	if req.Count != nil {
		count = *req.Count
	}
	if count < 1 || count > 100 {
		return nil, utils.NewFieldError("count", "count must be between 1 and 100")
	}

	places, err := s.allocate(ctx, p, facilityID, req.CategoryID, req.GenderSuitability, req.MinAge, req.MaxAge, count, nil)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:   p.UserRef(),
		Action:   ActionBulkCreate,
		Entity:   EntityPlace,
		EntityID: &facilityID,
		Details: map[string]interface{}{
			"categoryId": req.CategoryID,
			"requested":  count,
			"created":    len(places),
		},
	})

	out := make([]response_models.PlaceResponse, 0, len(places))
	for i := range places {
		out = append(out, toPlaceResponse(&places[i]))
	}
	return out, nil
}

func (s *PlaceService) allocate(
	ctx context.Context,
	p *access.Principal,
	facilityID, categoryID uuid.UUID,
	gender string,
	minAge, maxAge *int,
	count int,
	customize func(*db_models.Place),
) ([]db_models.Place, error) {
	if err := p.Require(access.ResPlace, access.ActWrite); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, utils.NewFieldError("categoryId", "categoryId is required")
	}
	if _, err := facilityInScope(ctx, s.facilityRepo, p, facilityID); err != nil {
		return nil, err
	}
	category, err := categoryOfUnit(ctx, s.categoryRepo, categoryID, db_models.UnitPlaces)
	if err != nil {
		return nil, err
	}
	gs, err := genderOrDefault(gender, db_models.GenderAll)
	if err != nil {
		return nil, err
	}
	lo, hi, err := ageRange(minAge, maxAge, 0, db_models.MaxMaxAge)
	if err != nil {
		return nil, err
	}

	template := db_models.Place{
		FacilityID:        facilityID,
		CategoryID:        categoryID,
		GenderSuitability: gs,
		MinAge:            lo,
		MaxAge:            hi,
	}
	plan := func(maxCapacity, current int) ([]db_models.Place, error) {
		places, err := planAllocation(template, count, maxCapacity, current)
		if err != nil {
			return nil, err
		}
		if customize != nil {
			for i := range places {
				customize(&places[i])
			}
		}
		return places, nil
	}

	result, err := s.placeRepo.CreateWithinCapacity(ctx, facilityID, s.defaultCapacity, plan)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrCapacityExceeded):
			metrics.CapacityRejections.Inc()
			return nil, err
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, utils.ErrFacilityNotFound
		default:
			return nil, dbError(err)
		}
	}

	if result.DefaultApplied {
		logging.Ctx(ctx).Warn().
			Str("facility_id", facilityID.String()).
			Int("max_capacity", result.MaxCapacity).
			Msg("facility had no maximum capacity; default applied and persisted")
	}
	metrics.PlacesAllocated.Add(float64(len(result.Places)))
	logging.Ctx(ctx).Info().
		Str("facility_id", facilityID.String()).
		Int("created", len(result.Places)).
		Int("existing", result.CurrentCount).
		Int("max_capacity", result.MaxCapacity).
		Msg("places allocated")

	for i := range result.Places {
		result.Places[i].Category = *category
	}
	return result.Places, nil
}

func (s *PlaceService) loadInScope(ctx context.Context, p *access.Principal, id uuid.UUID) (*db_models.Place, error) {
	place, err := s.placeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if place == nil {
		return nil, utils.ErrPlaceNotFound
	}
	if _, err := facilityInScope(ctx, s.facilityRepo, p, place.FacilityID); err != nil {
		return nil, err
	}
	return place, nil
}

func (s *PlaceService) Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdatePlaceRequest) (*response_models.PlaceResponse, error) {
	if err := p.Require(access.ResPlace, access.ActWrite); err != nil {
		return nil, err
	}
	place, err := s.loadInScope(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != place.CategoryID {
		category, err := categoryOfUnit(ctx, s.categoryRepo, *req.CategoryID, db_models.UnitPlaces)
		if err != nil {
			return nil, err
		}
		place.CategoryID = category.ID
		place.Category = *category
	}
	if req.Name != nil {
		place.Name = strings.TrimSpace(*req.Name)
	}
	if req.IsOccupied != nil {
		place.IsOccupied = *req.IsOccupied
	}
	if req.GenderSuitability != nil {
		gs, err := genderOrDefault(*req.GenderSuitability, place.GenderSuitability)
		if err != nil {
			return nil, err
		}
		place.GenderSuitability = gs
	}
	lo, hi, err := ageRange(req.MinAge, req.MaxAge, place.MinAge, place.MaxAge)
	if err != nil {
		return nil, err
	}
	place.MinAge, place.MaxAge = lo, hi

	if err := s.placeRepo.Update(ctx, place); err != nil {
		return nil, dbError(err)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionUpdate, Entity: EntityPlace, EntityID: &place.ID, Details: req})

	resp := toPlaceResponse(place)
	return &resp, nil
}

func (s *PlaceService) SetOccupancy(ctx context.Context, p *access.Principal, id uuid.UUID, occupied bool) (*response_models.PlaceResponse, error) {
	if err := p.Require(access.ResPlace, access.ActWrite); err != nil {
		return nil, err
	}
	place, err := s.loadInScope(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if err := s.placeRepo.SetOccupied(ctx, id, occupied); err != nil {
		return nil, notFoundOr(err, utils.ErrPlaceNotFound)
	}
	s.audit.Record(ctx, AuditEntry{
		UserID:   p.UserRef(),
		Action:   ActionUpdate,
		Entity:   EntityPlace,
		EntityID: &place.ID,
		Details:  map[string]bool{"isOccupied": occupied},
	})

	updated, err := s.placeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if updated == nil {
		return nil, utils.ErrPlaceNotFound
	}
	resp := toPlaceResponse(updated)
	return &resp, nil
}

func (s *PlaceService) Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error {
	if err := p.Require(access.ResPlace, access.ActWrite); err != nil {
		return err
	}
	place, err := s.loadInScope(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.placeRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, utils.ErrPlaceNotFound)
	}
	s.audit.Record(ctx, AuditEntry{
		UserID:   p.UserRef(),
		Action:   ActionDelete,
		Entity:   EntityPlace,
		EntityID: &place.ID,
		Details:  map[string]string{"name": place.Name, "facilityId": place.FacilityID.String()},
	})
	return nil
}

func (s *PlaceService) Statistics(ctx context.Context, p *access.Principal, facilityID uuid.UUID) (*response_models.PlaceStatistics, error) {
	if err := p.Require(access.ResStatistics, access.ActRead); err != nil {
		return nil, err
	}
	if err := statisticsScope(ctx, s.facilityRepo, p, facilityID); err != nil {
		return nil, err
	}

	rows, err := s.placeRepo.StatisticsRows(ctx, facilityID)
	if err != nil {
		return nil, dbError(err)
	}
	stats := aggregatePlaceStatistics(rows)
	return &stats, nil
}

// statisticsScope lets leadership read any facility; carrier accounts are
// limited to their own carriers.
func statisticsScope(ctx context.Context, repo repositories.FacilityRepository, p *access.Principal, facilityID uuid.UUID) error {
	facility, err := repo.FindByID(ctx, facilityID)
	if err != nil {
		return dbError(err)
	}
	if facility == nil {
		return utils.ErrFacilityNotFound
	}
	if p.Role == db_models.RoleCarrier {
		return p.RequireCarrier(facility.CarrierID)
	}
	return nil
}
