package request_models

import "github.com/google/uuid"

type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=2,max=100"`
	Description string     `json:"description"`
	UnitType    string     `json:"unitType" binding:"required,oneof=places hours"`
	ParentID    *uuid.UUID `json:"parentId"`
	IsActive    *bool      `json:"isActive"`
}

type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string    `json:"description"`
	UnitType    *string    `json:"unitType" binding:"omitempty,oneof=places hours"`
	ParentID    *uuid.UUID `json:"parentId"`
	IsActive    *bool      `json:"isActive"`
}
