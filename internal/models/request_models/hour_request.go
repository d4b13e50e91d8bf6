package request_models

import "github.com/google/uuid"

type CreateHourRequest struct {
	FacilityID        uuid.UUID `json:"facilityId" binding:"required"`
	CategoryID        uuid.UUID `json:"categoryId" binding:"required"`
	Name              string    `json:"name" binding:"required,max=100"`
	TotalHours        int       `json:"totalHours" binding:"min=0"`
	AvailableHours    *int      `json:"availableHours" binding:"omitempty,min=0"`
	GenderSuitability string    `json:"genderSuitability" binding:"omitempty,oneof=male female all"`
	MinAge            *int      `json:"minAge" binding:"omitempty,min=0,max=25"`
	MaxAge            *int      `json:"maxAge" binding:"omitempty,min=0,max=27"`
}

type UpdateHourRequest struct {
	CategoryID        *uuid.UUID `json:"categoryId"`
	Name              *string    `json:"name" binding:"omitempty,min=1,max=100"`
	TotalHours        *int       `json:"totalHours" binding:"omitempty,min=0"`
	AvailableHours    *int       `json:"availableHours" binding:"omitempty,min=0"`
	GenderSuitability *string    `json:"genderSuitability" binding:"omitempty,oneof=male female all"`
	MinAge            *int       `json:"minAge" binding:"omitempty,min=0,max=25"`
	MaxAge            *int       `json:"maxAge" binding:"omitempty,min=0,max=27"`
}

type UpdateAvailableHoursRequest struct {
	AvailableHours *int `json:"availableHours" binding:"required,min=0"`
}
