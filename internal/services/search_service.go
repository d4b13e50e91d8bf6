package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"freiplatz/internal/access"
	"freiplatz/internal/logging"
	"freiplatz/internal/metrics"
	"freiplatz/internal/models/request_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

type SearchServiceInterface interface {
	Search(ctx context.Context, p *access.Principal, req request_models.SearchRequest) (*response_models.SearchPage, error)
	SearchByCategory(ctx context.Context, p *access.Principal, categoryID uuid.UUID, req request_models.SearchRequest) (*response_models.SearchPage, error)
}

type SearchService struct {
	searchRepo   repositories.SearchRepository
	facilityRepo repositories.FacilityRepository
	categoryRepo repositories.CategoryRepository
	audit        AuditServiceInterface
}

func NewSearchService(
	searchRepo repositories.SearchRepository,
	facilityRepo repositories.FacilityRepository,
	categoryRepo repositories.CategoryRepository,
	audit AuditServiceInterface,
) SearchServiceInterface {
	return &SearchService{
		searchRepo:   searchRepo,
		facilityRepo: facilityRepo,
		categoryRepo: categoryRepo,
		audit:        audit,
	}
}

func (s *SearchService) SearchByCategory(ctx context.Context, p *access.Principal, categoryID uuid.UUID, req request_models.SearchRequest) (*response_models.SearchPage, error) {
	if err := p.Require(access.ResSearch, access.ActRead); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, dbError(err)
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}

	req.CategoryIDs = []uuid.UUID{categoryID}
	return s.Search(ctx, p, req)
}

func (s *SearchService) Search(ctx context.Context, p *access.Principal, req request_models.SearchRequest) (*response_models.SearchPage, error) {
	if err := p.Require(access.ResSearch, access.ActRead); err != nil {
		return nil, err
	}

	req = req.WithDefaults()
	if err := validateSearch(req); err != nil {
		return nil, err
	}

	start := time.Now()
	criteria := repositories.SearchCriteria{
		CategoryIDs: req.CategoryIDs,
		MinAge:      req.MinAge,
		MaxAge:      req.MaxAge,
		City:        req.City,
		PostalCode:  req.PostalCode,
	}
	if req.GenderSuitability != nil {
		criteria.GenderSuitability = *req.GenderSuitability
	}

	candidates, err := s.searchRepo.FindCandidates(ctx, criteria)
	if err != nil {
		return nil, dbError(err)
	}

	ranked := rankCandidates(candidates, req)
	total := int64(len(ranked))
	window := pageOf(ranked, req.Page, req.Limit)

	ids := make([]uuid.UUID, 0, len(window))
	for _, rc := range window {
		ids = append(ids, rc.FacilityID)
	}
	facilities, err := s.facilityRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, dbError(err)
	}
	byID := make(map[uuid.UUID]int, len(facilities))
	for i := range facilities {
		byID[facilities[i].ID] = i
	}

	results := make([]response_models.SearchResult, 0, len(window))
	for _, rc := range window {
		i, ok := byID[rc.FacilityID]
		if !ok {
			continue
		}
		results = append(results, response_models.SearchResult{
			FacilityResponse: toFacilityResponse(&facilities[i]),
			Distance:         rc.Distance,
			AvailablePlaces:  rc.AvailablePlaces,
			LastUpdated:      rc.LastUpdated,
			WithDistance:     req.HasCoordinates(),
		})
	}

	metrics.SearchRequests.WithLabelValues(req.SortBy).Inc()
	metrics.SearchResults.Observe(float64(total))
	logging.Ctx(ctx).Debug().
		Int64("total", total).
		Str("sort_by", req.SortBy).
		Dur("took", time.Since(start)).
		Msg("availability search")

	s.audit.Record(ctx, AuditEntry{
		UserID: p.UserRef(),
		Action: ActionSearch,
		Entity: EntityFacility,
		Details: map[string]interface{}{
			"filters":     req,
			"resultCount": total,
		},
	})

	return &response_models.SearchPage{
		Data: results,
		Meta: response_models.SearchMeta{
			Total:      total,
			Page:       req.Page,
			Limit:      req.Limit,
			TotalPages: utils.TotalPages(total, req.Limit),
			Filters:    req,
		},
	}, nil
}

func validateSearch(req request_models.SearchRequest) error {
	if req.MinAge != nil && req.MaxAge != nil && *req.MinAge > *req.MaxAge {
		return utils.NewFieldError("minAge", "minAge must not be greater than maxAge")
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return utils.NewFieldError("latitude", "latitude and longitude must be given together")
	}
	if req.SortBy == request_models.SortByDistance && !req.HasCoordinates() {
		return utils.NewFieldError("sortBy", "sorting by distance requires latitude and longitude")
	}
	if req.Radius != nil && !req.HasCoordinates() {
		return utils.NewFieldError("radius", "radius requires latitude and longitude")
	}
	return nil
}
