package db_models

type GenderSuitability string

const (
	GenderMale   GenderSuitability = "male"
	GenderFemale GenderSuitability = "female"
	GenderAll    GenderSuitability = "all"
)

func (g GenderSuitability) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderAll:
		return true
	default:
		return false
	}
}

type UnitType string

const (
	UnitPlaces UnitType = "places"
	UnitHours  UnitType = "hours"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCarrier    Role = "carrier"
	RoleManager    Role = "manager"
	RoleLeadership Role = "leadership"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCarrier, RoleManager, RoleLeadership:
		return true
	default:
		return false
	}
}

// Age bounds accepted on availabilities, places and hours.
const (
	MaxMinAge = 25
	MaxMaxAge = 27
)
