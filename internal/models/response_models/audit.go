package response_models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLogResponse struct {
	ID        string         `json:"id"`
	UserID    *string        `json:"userId"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  *string        `json:"entityId"`
	Details   datatypes.JSON `json:"details"`
	IPAddress string         `json:"ipAddress"`
	UserAgent string         `json:"userAgent"`
	CreatedAt time.Time      `json:"createdAt"`
}

type Paged[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}
