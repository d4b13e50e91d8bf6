package db_models

import "github.com/google/uuid"

// Category classifies capacity. UnitType decides whether capacity is counted
// as places or hours.
type Category struct {
	BaseModel
	Name        string     `gorm:"unique;not null"`
	Description string
	UnitType    UnitType   `gorm:"type:varchar(10);not null;default:places"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	IsActive    bool       `gorm:"not null;default:true"`

	Parent *Category `gorm:"foreignKey:ParentID"`
}
