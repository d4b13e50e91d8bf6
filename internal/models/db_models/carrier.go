package db_models

import "github.com/google/uuid"

// Carrier is the organization owning facilities.
type Carrier struct {
	BaseModel
	Name       string `gorm:"not null"`
	Email      string
	Phone      string
	Street     string
	City       string
	PostalCode string `gorm:"size:10"`
	IsActive   bool   `gorm:"not null;default:true"`

	Facilities []Facility `gorm:"foreignKey:CarrierID"`
}

// CarrierAccount associates an account with a carrier it may manage.
type CarrierAccount struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt int64     `gorm:"autoCreateTime"`
}
