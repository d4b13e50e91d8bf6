package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog is the append-only system log.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index"`
	Action    string         `gorm:"size:64;index;not null"`
	Entity    string         `gorm:"size:64;index;not null"`
	EntityID  *uuid.UUID     `gorm:"type:uuid;index"`
	Details   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	IPAddress string         `gorm:"size:64"`
	UserAgent string
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
