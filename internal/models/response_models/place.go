package response_models

import "time"

type PlaceResponse struct {
	ID                string    `json:"id"`
	FacilityID        string    `json:"facilityId"`
	CategoryID        string    `json:"categoryId"`
	CategoryName      string    `json:"categoryName,omitempty"`
	Name              string    `json:"name"`
	IsOccupied        bool      `json:"isOccupied"`
	GenderSuitability string    `json:"genderSuitability"`
	MinAge            int       `json:"minAge"`
	MaxAge            int       `json:"maxAge"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

type HourResponse struct {
	ID                string    `json:"id"`
	FacilityID        string    `json:"facilityId"`
	CategoryID        string    `json:"categoryId"`
	CategoryName      string    `json:"categoryName,omitempty"`
	Name              string    `json:"name"`
	TotalHours        int       `json:"totalHours"`
	AvailableHours    int       `json:"availableHours"`
	GenderSuitability string    `json:"genderSuitability"`
	MinAge            int       `json:"minAge"`
	MaxAge            int       `json:"maxAge"`
	LastUpdated       time.Time `json:"lastUpdated"`
}
