package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Place struct {
	BaseModel
	FacilityID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	CategoryID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Name              string            `gorm:"not null"`
	IsOccupied        bool              `gorm:"not null;default:false"`
	GenderSuitability GenderSuitability `gorm:"type:varchar(10);not null;default:all"`
	MinAge            int               `gorm:"not null;default:0"`
	MaxAge            int               `gorm:"not null;default:27"`
	LastUpdated       time.Time         `gorm:"not null"`

	Category Category `gorm:"foreignKey:CategoryID"`
}

func (p *Place) BeforeSave(tx *gorm.DB) error {
	p.LastUpdated = time.Now().UTC()
	return nil
}
