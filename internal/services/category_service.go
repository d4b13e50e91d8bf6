package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/access"
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/request_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

type CategoryServiceInterface interface {
	List(ctx context.Context, p *access.Principal) ([]response_models.CategoryResponse, error)
	Get(ctx context.Context, p *access.Principal, id uuid.UUID) (*response_models.CategoryResponse, error)
	Create(ctx context.Context, p *access.Principal, req request_models.CreateCategoryRequest) (*response_models.CategoryResponse, error)
	Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdateCategoryRequest) (*response_models.CategoryResponse, error)
	Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	audit        AuditServiceInterface
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, audit AuditServiceInterface) CategoryServiceInterface {
	return &CategoryService{categoryRepo: categoryRepo, audit: audit}
}

// List returns active categories; admins also see inactive ones.
func (s *CategoryService) List(ctx context.Context, p *access.Principal) ([]response_models.CategoryResponse, error) {
	if err := p.Require(access.ResCategory, access.ActRead); err != nil {
		return nil, err
	}
	rows, err := s.categoryRepo.List(ctx, !p.IsAdmin())
	if err != nil {
		return nil, dbError(err)
	}
	out := make([]response_models.CategoryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toCategoryResponse(&rows[i]))
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, p *access.Principal, id uuid.UUID) (*response_models.CategoryResponse, error) {
	if err := p.Require(access.ResCategory, access.ActRead); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if category == nil || (!category.IsActive && !p.IsAdmin()) {
		return nil, utils.ErrCategoryNotFound
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) checkParent(ctx context.Context, self uuid.UUID, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if *parentID == self {
		return utils.NewFieldError("parentId", "a category cannot be its own parent")
	}
	parent, err := s.categoryRepo.FindByID(ctx, *parentID)
	if err != nil {
		return dbError(err)
	}
	if parent == nil {
		return fmt.Errorf("%w: parent %s", utils.ErrCategoryNotFound, parentID)
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, p *access.Principal, req request_models.CreateCategoryRequest) (*response_models.CategoryResponse, error) {
	if err := p.Require(access.ResCategory, access.ActWrite); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, uuid.Nil, req.ParentID); err != nil {
		return nil, err
	}

	category := &db_models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		UnitType:    db_models.UnitType(req.UnitType),
		ParentID:    req.ParentID,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category name %q already exists", utils.ErrConflict, category.Name)
		}
		return nil, dbError(err)
	}

	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionCreate, Entity: EntityCategory, EntityID: &category.ID, Details: req})
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdateCategoryRequest) (*response_models.CategoryResponse, error) {
	if err := p.Require(access.ResCategory, access.ActWrite); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}
	if err := s.checkParent(ctx, id, req.ParentID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.UnitType != nil && db_models.UnitType(*req.UnitType) != category.UnitType {
		inUse, err := s.categoryRepo.IsInUse(ctx, id)
		if err != nil {
			return nil, dbError(err)
		}
		if inUse {
			return nil, fmt.Errorf("%w: unit type of a category in use cannot change", utils.ErrConflict)
		}
		category.UnitType = db_models.UnitType(*req.UnitType)
	}
	if req.ParentID != nil {
		category.ParentID = req.ParentID
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category name %q already exists", utils.ErrConflict, category.Name)
		}
		return nil, dbError(err)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionUpdate, Entity: EntityCategory, EntityID: &category.ID, Details: req})

	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error {
	if err := p.Require(access.ResCategory, access.ActWrite); err != nil {
		return err
	}
	inUse, err := s.categoryRepo.IsInUse(ctx, id)
	if err != nil {
		return dbError(err)
	}
	if inUse {
		return fmt.Errorf("%w: category is still referenced", utils.ErrConflict)
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, utils.ErrCategoryNotFound)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionDelete, Entity: EntityCategory, EntityID: &id})
	return nil
}
