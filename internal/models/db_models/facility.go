package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Facility struct {
	BaseModel
	CarrierID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Street      string
	City        string `gorm:"index"`
	PostalCode  string `gorm:"size:10;index"`
	Latitude    *float64
	Longitude   *float64
	Phone       string
	Email       string
	Description string
	MaxCapacity int            `gorm:"not null;default:0"`
	IsActive    bool           `gorm:"not null;default:true"`
	Features    pq.StringArray `gorm:"type:text[]"`

	Carrier        Carrier        `gorm:"foreignKey:CarrierID"`
	Availabilities []Availability `gorm:"foreignKey:FacilityID"`
}

func (f *Facility) HasCoordinates() bool {
	return f.Latitude != nil && f.Longitude != nil
}
