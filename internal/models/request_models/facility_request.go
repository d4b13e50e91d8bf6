package request_models

import "github.com/google/uuid"

type CreateFacilityRequest struct {
	CarrierID   uuid.UUID `json:"carrierId" binding:"required"`
	Name        string    `json:"name" binding:"required,min=2,max=200"`
	Street      string    `json:"street" binding:"omitempty,max=200"`
	City        string    `json:"city" binding:"required,max=100"`
	PostalCode  string    `json:"postalCode" binding:"required,max=10"`
	Latitude    *float64  `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64  `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Phone       string    `json:"phone" binding:"omitempty,max=50"`
	Email       string    `json:"email" binding:"omitempty,email"`
	Description string    `json:"description"`
	MaxCapacity int       `json:"maxCapacity" binding:"required,min=1"`
	IsActive    *bool     `json:"isActive"`
	Features    []string  `json:"features"`
}

type UpdateFacilityRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=200"`
	Street      *string  `json:"street" binding:"omitempty,max=200"`
	City        *string  `json:"city" binding:"omitempty,max=100"`
	PostalCode  *string  `json:"postalCode" binding:"omitempty,max=10"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Phone       *string  `json:"phone" binding:"omitempty,max=50"`
	Email       *string  `json:"email" binding:"omitempty,email"`
	Description *string  `json:"description"`
	MaxCapacity *int     `json:"maxCapacity" binding:"omitempty,min=1"`
	IsActive    *bool    `json:"isActive"`
	Features    []string `json:"features"`
}
