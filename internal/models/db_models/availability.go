package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability summarises free capacity for one (facility, category) pair.
type Availability struct {
	BaseModel
	FacilityID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_availability_facility_category"`
	CategoryID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_availability_facility_category;index"`
	AvailablePlaces   int               `gorm:"not null;default:0"`
	TotalPlaces       int               `gorm:"not null;default:0"`
	GenderSuitability GenderSuitability `gorm:"type:varchar(10);not null;default:all"`
	MinAge            int               `gorm:"not null;default:0;check:min_age >= 0 AND min_age <= 25"`
	MaxAge            int               `gorm:"not null;default:27;check:max_age >= 0 AND max_age <= 27"`
	LastUpdated       time.Time         `gorm:"not null;index"`

	Facility Facility `gorm:"foreignKey:FacilityID"`
	Category Category `gorm:"foreignKey:CategoryID"`
}

func (a *Availability) BeforeSave(tx *gorm.DB) error {
	a.LastUpdated = time.Now().UTC()
	return nil
}
