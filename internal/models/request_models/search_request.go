package request_models

import "github.com/google/uuid"

const (
	SortByDistance        = "distance"
	SortByAvailablePlaces = "availablePlaces"
	SortByLastUpdated     = "lastUpdated"

	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
)

type SearchRequest struct {
	CategoryIDs       []uuid.UUID `json:"categoryIds"`
	GenderSuitability *string     `json:"genderSuitability" binding:"omitempty,oneof=male female all"`
	MinAge            *int        `json:"minAge" binding:"omitempty,min=0,max=27"`
	MaxAge            *int        `json:"maxAge" binding:"omitempty,min=0,max=27"`
	City              string      `json:"city" binding:"omitempty,max=100"`
	PostalCode        string      `json:"postalCode" binding:"omitempty,max=10"`
	Radius            *float64    `json:"radius" binding:"omitempty,gt=0,max=1000"`
	Latitude          *float64    `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude         *float64    `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Page              int         `json:"page" binding:"omitempty,min=1"`
	Limit             int         `json:"limit" binding:"omitempty,min=1,max=100"`
	SortBy            string      `json:"sortBy" binding:"omitempty,oneof=distance availablePlaces lastUpdated"`
	SortOrder         string      `json:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// WithDefaults fills page, limit and sort settings left empty by the caller.
func (r SearchRequest) WithDefaults() SearchRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = DefaultSearchLimit
	}
	if r.Limit > MaxSearchLimit {
		r.Limit = MaxSearchLimit
	}
	if r.SortBy == "" {
		r.SortBy = SortByLastUpdated
	}
	if r.SortOrder == "" {
		r.SortOrder = SortDesc
	}
	return r
}

func (r SearchRequest) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
