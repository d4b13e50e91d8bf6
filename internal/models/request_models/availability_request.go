package request_models

import "github.com/google/uuid"

type CreateAvailabilityRequest struct {
	FacilityID        uuid.UUID `json:"facilityId" binding:"required"`
	CategoryID        uuid.UUID `json:"categoryId" binding:"required"`
	AvailablePlaces   int       `json:"availablePlaces" binding:"min=0"`
	TotalPlaces       int       `json:"totalPlaces" binding:"min=0"`
	GenderSuitability string    `json:"genderSuitability" binding:"omitempty,oneof=male female all"`
	MinAge            *int      `json:"minAge" binding:"omitempty,min=0,max=25"`
	MaxAge            *int      `json:"maxAge" binding:"omitempty,min=0,max=27"`
}

type UpdateAvailabilityRequest struct {
	AvailablePlaces   *int    `json:"availablePlaces" binding:"omitempty,min=0"`
	TotalPlaces       *int    `json:"totalPlaces" binding:"omitempty,min=0"`
	GenderSuitability *string `json:"genderSuitability" binding:"omitempty,oneof=male female all"`
	MinAge            *int    `json:"minAge" binding:"omitempty,min=0,max=25"`
	MaxAge            *int    `json:"maxAge" binding:"omitempty,min=0,max=27"`
}
