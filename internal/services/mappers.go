package services

import (
	"github.com/google/uuid"

	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/response_models"
)

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toFacilityResponse(f *db_models.Facility) response_models.FacilityResponse {
	features := []string(f.Features)
	if features == nil {
		features = []string{}
	}
	resp := response_models.FacilityResponse{
		ID:          f.ID.String(),
		CarrierID:   f.CarrierID.String(),
		CarrierName: f.Carrier.Name,
		Name:        f.Name,
		Street:      f.Street,
		City:        f.City,
		PostalCode:  f.PostalCode,
		Latitude:    f.Latitude,
		Longitude:   f.Longitude,
		Phone:       f.Phone,
		Email:       f.Email,
		Description: f.Description,
		MaxCapacity: f.MaxCapacity,
		IsActive:    f.IsActive,
		Features:    features,
	}
	for i := range f.Availabilities {
		resp.Availabilities = append(resp.Availabilities, toAvailabilityResponse(&f.Availabilities[i]))
	}
	return resp
}

func toAvailabilityResponse(a *db_models.Availability) response_models.AvailabilityResponse {
	return response_models.AvailabilityResponse{
		ID:                a.ID.String(),
		FacilityID:        a.FacilityID.String(),
		CategoryID:        a.CategoryID.String(),
		CategoryName:      a.Category.Name,
		AvailablePlaces:   a.AvailablePlaces,
		TotalPlaces:       a.TotalPlaces,
		GenderSuitability: string(a.GenderSuitability),
		MinAge:            a.MinAge,
		MaxAge:            a.MaxAge,
		LastUpdated:       a.LastUpdated,
	}
}

func toPlaceResponse(p *db_models.Place) response_models.PlaceResponse {
	return response_models.PlaceResponse{
		ID:                p.ID.String(),
		FacilityID:        p.FacilityID.String(),
		CategoryID:        p.CategoryID.String(),
		CategoryName:      p.Category.Name,
		Name:              p.Name,
		IsOccupied:        p.IsOccupied,
		GenderSuitability: string(p.GenderSuitability),
		MinAge:            p.MinAge,
		MaxAge:            p.MaxAge,
		LastUpdated:       p.LastUpdated,
	}
}

func toHourResponse(h *db_models.Hour) response_models.HourResponse {
	return response_models.HourResponse{
		ID:                h.ID.String(),
		FacilityID:        h.FacilityID.String(),
		CategoryID:        h.CategoryID.String(),
		CategoryName:      h.Category.Name,
		Name:              h.Name,
		TotalHours:        h.TotalHours,
		AvailableHours:    h.AvailableHours,
		GenderSuitability: string(h.GenderSuitability),
		MinAge:            h.MinAge,
		MaxAge:            h.MaxAge,
		LastUpdated:       h.LastUpdated,
	}
}

func toCategoryResponse(c *db_models.Category) response_models.CategoryResponse {
	return response_models.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		UnitType:    string(c.UnitType),
		ParentID:    uuidPtrString(c.ParentID),
		IsActive:    c.IsActive,
	}
}

func toCarrierResponse(c *db_models.Carrier) response_models.CarrierResponse {
	return response_models.CarrierResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Street:     c.Street,
		City:       c.City,
		PostalCode: c.PostalCode,
		IsActive:   c.IsActive,
	}
}

func toAccountResponse(a *db_models.Account, carrierIDs []uuid.UUID) response_models.AccountResponse {
	resp := response_models.AccountResponse{
		ID:       a.ID.String(),
		Name:     a.Name,
		Email:    a.Email,
		Role:     string(a.Role),
		IsActive: a.IsActive,
	}
	for _, id := range carrierIDs {
		resp.CarrierIDs = append(resp.CarrierIDs, id.String())
	}
	return resp
}

func toAuditLogResponse(l *db_models.AuditLog) response_models.AuditLogResponse {
	return response_models.AuditLogResponse{
		ID:        l.ID.String(),
		UserID:    uuidPtrString(l.UserID),
		Action:    l.Action,
		Entity:    l.Entity,
		EntityID:  uuidPtrString(l.EntityID),
		Details:   l.Details,
		IPAddress: l.IPAddress,
		UserAgent: l.UserAgent,
		CreatedAt: l.CreatedAt,
	}
}
