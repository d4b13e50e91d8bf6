package services

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"freiplatz/internal/logging"
	"freiplatz/internal/metrics"
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

const (
	ActionSearch     = "SEARCH"
	ActionCreate     = "CREATE"
	ActionBulkCreate = "BULK_CREATE"
	ActionUpdate     = "UPDATE"
	ActionDelete     = "DELETE"
	ActionLogin      = "LOGIN"
	ActionRegister   = "REGISTER"
)

const (
	EntityFacility     = "facility"
	EntityAvailability = "availability"
	EntityPlace        = "place"
	EntityHour         = "hour"
	EntityCategory     = "category"
	EntityCarrier      = "carrier"
	EntityAccount      = "account"
)

type requestMetaKey struct{}

// RequestMeta is the client information stamped on audit records.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

func requestMetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}

type AuditEntry struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Details  interface{}
}

type AuditServiceInterface interface {
	// Record persists the entry. Failures are logged and never returned.
	Record(ctx context.Context, entry AuditEntry)
	List(ctx context.Context, filter repositories.AuditFilter, page, limit int) (*response_models.Paged[response_models.AuditLogResponse], error)
}

type AuditService struct {
	repo repositories.AuditRepository
}

func NewAuditService(repo repositories.AuditRepository) AuditServiceInterface {
	return &AuditService{repo: repo}
}

func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	details := datatypes.JSON("{}")
	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("action", entry.Action).Msg("audit details not serializable")
		} else {
			details = raw
		}
	}

	meta := requestMetaFrom(ctx)
	row := &db_models.AuditLog{
		UserID:    entry.UserID,
		Action:    entry.Action,
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		Details:   details,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	if err := s.repo.Insert(ctx, row); err != nil {
		metrics.AuditWriteFailures.Inc()
		logging.Ctx(ctx).Warn().Err(err).
			Str("action", entry.Action).
			Str("entity", entry.Entity).
			Msg("audit write failed")
	}
}

func (s *AuditService) List(ctx context.Context, filter repositories.AuditFilter, page, limit int) (*response_models.Paged[response_models.AuditLogResponse], error) {
	if err := checkPage(page, limit); err != nil {
		return nil, err
	}

	rows, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, dbError(err)
	}

	items := make([]response_models.AuditLogResponse, 0, len(rows))
	for i := range rows {
		items = append(items, toAuditLogResponse(&rows[i]))
	}
	return &response_models.Paged[response_models.AuditLogResponse]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.TotalPages(total, limit),
	}, nil
}
