package response_models

import "time"

type AvailabilityResponse struct {
	ID                string    `json:"id"`
	FacilityID        string    `json:"facilityId"`
	CategoryID        string    `json:"categoryId"`
	CategoryName      string    `json:"categoryName,omitempty"`
	AvailablePlaces   int       `json:"availablePlaces"`
	TotalPlaces       int       `json:"totalPlaces"`
	GenderSuitability string    `json:"genderSuitability"`
	MinAge            int       `json:"minAge"`
	MaxAge            int       `json:"maxAge"`
	LastUpdated       time.Time `json:"lastUpdated"`
}
