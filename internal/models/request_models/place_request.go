package request_models

import "github.com/google/uuid"

type BulkCreatePlacesRequest struct {
	CategoryID        uuid.UUID `json:"categoryId" binding:"required"`
	GenderSuitability string    `json:"genderSuitability" binding:"omitempty,oneof=male female all"`
	MinAge            *int      `json:"minAge" binding:"omitempty,min=0,max=25"`
	MaxAge            *int      `json:"maxAge" binding:"omitempty,min=0,max=27"`
	Count             *int      `json:"count" binding:"omitempty,min=1,max=100"`
}

type CreatePlaceRequest struct {
	FacilityID        uuid.UUID `json:"facilityId" binding:"required"`
	CategoryID        uuid.UUID `json:"categoryId" binding:"required"`
	Name              string    `json:"name" binding:"omitempty,max=100"`
	IsOccupied        bool      `json:"isOccupied"`
	GenderSuitability string    `json:"genderSuitability" binding:"omitempty,oneof=male female all"`
	MinAge            *int      `json:"minAge" binding:"omitempty,min=0,max=25"`
	MaxAge            *int      `json:"maxAge" binding:"omitempty,min=0,max=27"`
}

type UpdatePlaceRequest struct {
	CategoryID        *uuid.UUID `json:"categoryId"`
	Name              *string    `json:"name" binding:"omitempty,min=1,max=100"`
	IsOccupied        *bool      `json:"isOccupied"`
	GenderSuitability *string    `json:"genderSuitability" binding:"omitempty,oneof=male female all"`
	MinAge            *int       `json:"minAge" binding:"omitempty,min=0,max=25"`
	MaxAge            *int       `json:"maxAge" binding:"omitempty,min=0,max=27"`
}

type SetOccupancyRequest struct {
	IsOccupied *bool `json:"isOccupied" binding:"required"`
}
