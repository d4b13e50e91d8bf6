package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"freiplatz/internal/access"
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/request_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

type FacilityServiceInterface interface {
	List(ctx context.Context, p *access.Principal, filter repositories.FacilityFilter, page, limit int) (*response_models.Paged[response_models.FacilityResponse], error)
	Get(ctx context.Context, p *access.Principal, id uuid.UUID) (*response_models.FacilityResponse, error)
	Create(ctx context.Context, p *access.Principal, req request_models.CreateFacilityRequest) (*response_models.FacilityResponse, error)
	Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdateFacilityRequest) (*response_models.FacilityResponse, error)
	Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error
}

type FacilityService struct {
	facilityRepo repositories.FacilityRepository
	carrierRepo  repositories.CarrierRepository
	audit        AuditServiceInterface
}

func NewFacilityService(
	facilityRepo repositories.FacilityRepository,
	carrierRepo repositories.CarrierRepository,
	audit AuditServiceInterface,
) FacilityServiceInterface {
	return &FacilityService{
		facilityRepo: facilityRepo,
		carrierRepo:  carrierRepo,
		audit:        audit,
	}
}

func (s *FacilityService) List(ctx context.Context, p *access.Principal, filter repositories.FacilityFilter, page, limit int) (*response_models.Paged[response_models.FacilityResponse], error) {
	if err := p.Require(access.ResFacility, access.ActRead); err != nil {
		return nil, err
	}
	if err := checkPage(page, limit); err != nil {
		return nil, err
	}

	switch p.Role {
	case db_models.RoleAdmin:
	case db_models.RoleCarrier:
		ids, _ := p.CarrierScope()
		filter.CarrierIDs = ids
	default:
		filter.ActiveOnly = true
	}

	rows, total, err := s.facilityRepo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, dbError(err)
	}
	items := make([]response_models.FacilityResponse, 0, len(rows))
	for i := range rows {
		items = append(items, toFacilityResponse(&rows[i]))
	}
	return &response_models.Paged[response_models.FacilityResponse]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.TotalPages(total, limit),
	}, nil
}

// Get returns the facility with its availabilities. Carrier accounts see
// their own facilities; search roles only see active ones.
func (s *FacilityService) Get(ctx context.Context, p *access.Principal, id uuid.UUID) (*response_models.FacilityResponse, error) {
	if err := p.Require(access.ResFacility, access.ActRead); err != nil {
		return nil, err
	}

	facility, err := s.facilityRepo.FindWithAvailabilities(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if facility == nil {
		return nil, utils.ErrFacilityNotFound
	}

	switch p.Role {
	case db_models.RoleAdmin:
	case db_models.RoleCarrier:
		if err := p.RequireCarrier(facility.CarrierID); err != nil {
			return nil, err
		}
	default:
		if !facility.IsActive {
			return nil, utils.ErrFacilityNotFound
		}
	}

	resp := toFacilityResponse(facility)
	return &resp, nil
}

func (s *FacilityService) Create(ctx context.Context, p *access.Principal, req request_models.CreateFacilityRequest) (*response_models.FacilityResponse, error) {
	if err := p.Require(access.ResFacility, access.ActWrite); err != nil {
		return nil, err
	}
	if err := p.RequireCarrier(req.CarrierID); err != nil {
		return nil, err
	}
	carrier, err := s.carrierRepo.FindByID(ctx, req.CarrierID)
	if err != nil {
		return nil, dbError(err)
	}
	if carrier == nil {
		return nil, utils.ErrCarrierNotFound
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, utils.NewFieldError("latitude", "latitude and longitude must be given together")
	}
	if req.MaxCapacity < 1 {
		return nil, utils.NewFieldError("maxCapacity", "maxCapacity must be at least 1")
	}

	facility := &db_models.Facility{
		CarrierID:   req.CarrierID,
		Name:        strings.TrimSpace(req.Name),
		Street:      req.Street,
		City:        strings.TrimSpace(req.City),
		PostalCode:  strings.TrimSpace(req.PostalCode),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		Email:       req.Email,
		Description: req.Description,
		MaxCapacity: req.MaxCapacity,
		IsActive:    true,
		Features:    pq.StringArray(req.Features),
	}
	if req.IsActive != nil {
		facility.IsActive = *req.IsActive
	}

	if err := s.facilityRepo.Create(ctx, facility); err != nil {
		return nil, dbError(err)
	}
	facility.Carrier = *carrier

	s.audit.Record(ctx, AuditEntry{
		UserID:   p.UserRef(),
		Action:   ActionCreate,
		Entity:   EntityFacility,
		EntityID: &facility.ID,
		Details:  map[string]string{"name": facility.Name, "carrierId": facility.CarrierID.String()},
	})
	resp := toFacilityResponse(facility)
	return &resp, nil
}

func (s *FacilityService) Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdateFacilityRequest) (*response_models.FacilityResponse, error) {
	if err := p.Require(access.ResFacility, access.ActWrite); err != nil {
		return nil, err
	}
	facility, err := facilityInScope(ctx, s.facilityRepo, p, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		facility.Name = strings.TrimSpace(*req.Name)
	}
	if req.Street != nil {
		facility.Street = *req.Street
	}
	if req.City != nil {
		facility.City = strings.TrimSpace(*req.City)
	}
	if req.PostalCode != nil {
		facility.PostalCode = strings.TrimSpace(*req.PostalCode)
	}
	if req.Latitude != nil {
		facility.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		facility.Longitude = req.Longitude
	}
	if (facility.Latitude == nil) != (facility.Longitude == nil) {
		return nil, utils.NewFieldError("latitude", "latitude and longitude must be given together")
	}
	if req.Phone != nil {
		facility.Phone = *req.Phone
	}
	if req.Email != nil {
		facility.Email = *req.Email
	}
	if req.Description != nil {
		facility.Description = *req.Description
	}
	if req.MaxCapacity != nil {
		if *req.MaxCapacity < 1 {
			return nil, utils.NewFieldError("maxCapacity", "maxCapacity must be at least 1")
		}
		facility.MaxCapacity = *req.MaxCapacity
	}
	if req.IsActive != nil {
		facility.IsActive = *req.IsActive
	}
	if req.Features != nil {
		facility.Features = pq.StringArray(req.Features)
	}

	if err := s.facilityRepo.Update(ctx, facility); err != nil {
		return nil, dbError(err)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionUpdate, Entity: EntityFacility, EntityID: &facility.ID, Details: req})

	resp := toFacilityResponse(facility)
	return &resp, nil
}

func (s *FacilityService) Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error {
	if err := p.Require(access.ResFacility, access.ActWrite); err != nil {
		return err
	}
	facility, err := facilityInScope(ctx, s.facilityRepo, p, id)
	if err != nil {
		return err
	}
	if err := s.facilityRepo.DeleteCascade(ctx, id); err != nil {
		return notFoundOr(err, utils.ErrFacilityNotFound)
	}
	s.audit.Record(ctx, AuditEntry{
		UserID:   p.UserRef(),
		Action:   ActionDelete,
		Entity:   EntityFacility,
		EntityID: &facility.ID,
		Details:  map[string]string{"name": facility.Name},
	})
	return nil
}
