package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Hour struct {
	BaseModel
	FacilityID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	CategoryID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Name              string            `gorm:"not null"`
	TotalHours        int               `gorm:"not null;default:0"`
	AvailableHours    int               `gorm:"not null;default:0;check:available_hours <= total_hours"`
	GenderSuitability GenderSuitability `gorm:"type:varchar(10);not null;default:all"`
	MinAge            int               `gorm:"not null;default:0"`
	MaxAge            int               `gorm:"not null;default:27"`
	LastUpdated       time.Time         `gorm:"not null"`

	Category Category `gorm:"foreignKey:CategoryID"`
}

func (h *Hour) BeforeSave(tx *gorm.DB) error {
	h.LastUpdated = time.Now().UTC()
	return nil
}
