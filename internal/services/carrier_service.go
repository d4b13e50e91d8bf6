package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"freiplatz/internal/access"
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/request_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

type CarrierServiceInterface interface {
	List(ctx context.Context, p *access.Principal, page, limit int) (*response_models.Paged[response_models.CarrierResponse], error)
	Get(ctx context.Context, p *access.Principal, id uuid.UUID) (*response_models.CarrierResponse, error)
	Create(ctx context.Context, p *access.Principal, req request_models.CreateCarrierRequest) (*response_models.CarrierResponse, error)
	Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdateCarrierRequest) (*response_models.CarrierResponse, error)
	Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error
}

type CarrierService struct {
	carrierRepo repositories.CarrierRepository
	audit       AuditServiceInterface
}

func NewCarrierService(carrierRepo repositories.CarrierRepository, audit AuditServiceInterface) CarrierServiceInterface {
	return &CarrierService{carrierRepo: carrierRepo, audit: audit}
}

func (s *CarrierService) List(ctx context.Context, p *access.Principal, page, limit int) (*response_models.Paged[response_models.CarrierResponse], error) {
	if err := p.Require(access.ResCarrier, access.ActRead); err != nil {
		return nil, err
	}
	if err := checkPage(page, limit); err != nil {
		return nil, err
	}
	rows, total, err := s.carrierRepo.List(ctx, page, limit)
	if err != nil {
		return nil, dbError(err)
	}
	items := make([]response_models.CarrierResponse, 0, len(rows))
	for i := range rows {
		items = append(items, toCarrierResponse(&rows[i]))
	}
	return &response_models.Paged[response_models.CarrierResponse]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.TotalPages(total, limit),
	}, nil
}

func (s *CarrierService) Get(ctx context.Context, p *access.Principal, id uuid.UUID) (*response_models.CarrierResponse, error) {
	if err := p.Require(access.ResCarrier, access.ActRead); err != nil {
		return nil, err
	}
	carrier, err := s.carrierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if carrier == nil {
		return nil, utils.ErrCarrierNotFound
	}
	resp := toCarrierResponse(carrier)
	return &resp, nil
}

func (s *CarrierService) Create(ctx context.Context, p *access.Principal, req request_models.CreateCarrierRequest) (*response_models.CarrierResponse, error) {
	if err := p.Require(access.ResCarrier, access.ActWrite); err != nil {
		return nil, err
	}
	carrier := &db_models.Carrier{
		Name:       strings.TrimSpace(req.Name),
		Email:      req.Email,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		IsActive:   true,
	}
	if req.IsActive != nil {
		carrier.IsActive = *req.IsActive
	}
	if err := s.carrierRepo.Create(ctx, carrier); err != nil {
		return nil, dbError(err)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionCreate, Entity: EntityCarrier, EntityID: &carrier.ID, Details: req})
	resp := toCarrierResponse(carrier)
	return &resp, nil
}

func (s *CarrierService) Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdateCarrierRequest) (*response_models.CarrierResponse, error) {
	if err := p.Require(access.ResCarrier, access.ActWrite); err != nil {
		return nil, err
	}
	carrier, err := s.carrierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if carrier == nil {
		return nil, utils.ErrCarrierNotFound
	}

	if req.Name != nil {
		carrier.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		carrier.Email = *req.Email
	}
	if req.Phone != nil {
		carrier.Phone = *req.Phone
	}
	if req.Street != nil {
		carrier.Street = *req.Street
	}
	if req.City != nil {
		carrier.City = *req.City
	}
	if req.PostalCode != nil {
		carrier.PostalCode = *req.PostalCode
	}
	if req.IsActive != nil {
		carrier.IsActive = *req.IsActive
	}

	if err := s.carrierRepo.Update(ctx, carrier); err != nil {
		return nil, dbError(err)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionUpdate, Entity: EntityCarrier, EntityID: &carrier.ID, Details: req})
	resp := toCarrierResponse(carrier)
	return &resp, nil
}

// Delete refuses carriers that still own facilities.
func (s *CarrierService) Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error {
	if err := p.Require(access.ResCarrier, access.ActWrite); err != nil {
		return err
	}
	n, err := s.carrierRepo.CountFacilities(ctx, id)
	if err != nil {
		return dbError(err)
	}
	if n > 0 {
		return fmt.Errorf("%w: carrier still owns %d facilities", utils.ErrConflict, n)
	}
	if err := s.carrierRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, utils.ErrCarrierNotFound)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionDelete, Entity: EntityCarrier, EntityID: &id})
	return nil
}
