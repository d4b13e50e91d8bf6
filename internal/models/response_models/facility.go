package response_models

import (
	"time"

	"github.com/goccy/go-json"
)

type FacilityResponse struct {
	ID          string   `json:"id"`
	CarrierID   string   `json:"carrierId"`
	CarrierName string   `json:"carrierName,omitempty"`
	Name        string   `json:"name"`
	Street      string   `json:"street,omitempty"`
	City        string   `json:"city"`
	PostalCode  string   `json:"postalCode"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Phone       string   `json:"phone,omitempty"`
	Email       string   `json:"email,omitempty"`
	Description string   `json:"description,omitempty"`
	MaxCapacity int      `json:"maxCapacity"`
	IsActive    bool     `json:"isActive"`
	Features    []string `json:"features"`

	Availabilities []AvailabilityResponse `json:"availabilities,omitempty"`
}

// SearchResult is a facility matched by the availability search.
type SearchResult struct {
	FacilityResponse
	// Distance in km; nil when the facility has no coordinates.
	Distance        *float64  `json:"distance,omitempty"`
	AvailablePlaces int       `json:"availablePlaces"`
	LastUpdated     time.Time `json:"lastUpdated"`

	// WithDistance is set when the query carried coordinates. The distance
	// key is then always written, as null for unlocated facilities.
	WithDistance bool `json:"-"`
}

func (r SearchResult) MarshalJSON() ([]byte, error) {
	type plain SearchResult
	if !r.WithDistance {
		return json.Marshal(plain(r))
	}
	return json.Marshal(struct {
		plain
		Distance *float64 `json:"distance"`
	}{plain: plain(r), Distance: r.Distance})
}

type SearchMeta struct {
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
	Filters    interface{} `json:"filters"`
}

type SearchPage struct {
	Data []SearchResult `json:"data"`
	Meta SearchMeta     `json:"meta"`
}
