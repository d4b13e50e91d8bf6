package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/access"
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/request_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

type AvailabilityServiceInterface interface {
	ListByFacility(ctx context.Context, p *access.Principal, facilityID uuid.UUID) ([]response_models.AvailabilityResponse, error)
	Create(ctx context.Context, p *access.Principal, req request_models.CreateAvailabilityRequest) (*response_models.AvailabilityResponse, error)
	Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdateAvailabilityRequest) (*response_models.AvailabilityResponse, error)
	Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error
}

type AvailabilityService struct {
	availabilityRepo repositories.AvailabilityRepository
	facilityRepo     repositories.FacilityRepository
	categoryRepo     repositories.CategoryRepository
	audit            AuditServiceInterface
}

func NewAvailabilityService(
	availabilityRepo repositories.AvailabilityRepository,
	facilityRepo repositories.FacilityRepository,
	categoryRepo repositories.CategoryRepository,
	audit AuditServiceInterface,
) AvailabilityServiceInterface {
	return &AvailabilityService{
		availabilityRepo: availabilityRepo,
		facilityRepo:     facilityRepo,
		categoryRepo:     categoryRepo,
		audit:            audit,
	}
}

func checkPlaceCounts(available, total int) error {
	if available < 0 || total < 0 {
		return utils.NewFieldError("availablePlaces", "place counts must not be negative")
	}
	if available > total {
		return utils.NewFieldError("availablePlaces", "availablePlaces must not exceed totalPlaces")
	}
	return nil
}

func (s *AvailabilityService) ListByFacility(ctx context.Context, p *access.Principal, facilityID uuid.UUID) ([]response_models.AvailabilityResponse, error) {
	if err := p.Require(access.ResAvailability, access.ActRead); err != nil {
		return nil, err
	}
	if _, err := facilityInScope(ctx, s.facilityRepo, p, facilityID); err != nil {
		return nil, err
	}

	rows, err := s.availabilityRepo.ListByFacility(ctx, facilityID)
	if err != nil {
		return nil, dbError(err)
	}
	out := make([]response_models.AvailabilityResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toAvailabilityResponse(&rows[i]))
	}
	return out, nil
}

func (s *AvailabilityService) Create(ctx context.Context, p *access.Principal, req request_models.CreateAvailabilityRequest) (*response_models.AvailabilityResponse, error) {
	if err := p.Require(access.ResAvailability, access.ActWrite); err != nil {
		return nil, err
	}
	if _, err := facilityInScope(ctx, s.facilityRepo, p, req.FacilityID); err != nil {
		return nil, err
	}
	category, err := categoryOfUnit(ctx, s.categoryRepo, req.CategoryID, "")
	if err != nil {
		return nil, err
	}
	if err := checkPlaceCounts(req.AvailablePlaces, req.TotalPlaces); err != nil {
		return nil, err
	}
	gs, err := genderOrDefault(req.GenderSuitability, db_models.GenderAll)
	if err != nil {
		return nil, err
	}
	lo, hi, err := ageRange(req.MinAge, req.MaxAge, 0, db_models.MaxMaxAge)
	if err != nil {
		return nil, err
	}

	availability := &db_models.Availability{
		FacilityID:        req.FacilityID,
		CategoryID:        category.ID,
		AvailablePlaces:   req.AvailablePlaces,
		TotalPlaces:       req.TotalPlaces,
		GenderSuitability: gs,
		MinAge:            lo,
		MaxAge:            hi,
	}
	if err := s.availabilityRepo.Create(ctx, availability); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrAvailabilityExists
		}
		return nil, dbError(err)
	}
	availability.Category = *category

	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionCreate, Entity: EntityAvailability, EntityID: &availability.ID, Details: req})
	resp := toAvailabilityResponse(availability)
	return &resp, nil
}

func (s *AvailabilityService) loadInScope(ctx context.Context, p *access.Principal, id uuid.UUID) (*db_models.Availability, error) {
	availability, err := s.availabilityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if availability == nil {
		return nil, utils.ErrAvailabilityNotFound
	}
	if err := p.RequireCarrier(availability.Facility.CarrierID); err != nil {
		return nil, err
	}
	return availability, nil
}

func (s *AvailabilityService) Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdateAvailabilityRequest) (*response_models.AvailabilityResponse, error) {
	if err := p.Require(access.ResAvailability, access.ActWrite); err != nil {
		return nil, err
	}
	availability, err := s.loadInScope(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.AvailablePlaces != nil {
		availability.AvailablePlaces = *req.AvailablePlaces
	}
	if req.TotalPlaces != nil {
		availability.TotalPlaces = *req.TotalPlaces
	}
	if err := checkPlaceCounts(availability.AvailablePlaces, availability.TotalPlaces); err != nil {
		return nil, err
	}
	if req.GenderSuitability != nil {
		gs, err := genderOrDefault(*req.GenderSuitability, availability.GenderSuitability)
		if err != nil {
			return nil, err
		}
		availability.GenderSuitability = gs
	}
	lo, hi, err := ageRange(req.MinAge, req.MaxAge, availability.MinAge, availability.MaxAge)
	if err != nil {
		return nil, err
	}
	availability.MinAge, availability.MaxAge = lo, hi

	if err := s.availabilityRepo.Update(ctx, availability); err != nil {
		return nil, dbError(err)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionUpdate, Entity: EntityAvailability, EntityID: &availability.ID, Details: req})

	resp := toAvailabilityResponse(availability)
	return &resp, nil
}

func (s *AvailabilityService) Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error {
	if err := p.Require(access.ResAvailability, access.ActWrite); err != nil {
		return err
	}
	availability, err := s.loadInScope(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, utils.ErrAvailabilityNotFound)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionDelete, Entity: EntityAvailability, EntityID: &availability.ID})
	return nil
}
