package access

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Resources and actions used in role policies.
const (
	ResFacility     = "facility"
	ResAvailability = "availability"
	ResPlace        = "place"
	ResHour         = "hour"
	ResStatistics   = "statistics"
	ResCategory     = "category"
	ResCarrier      = "carrier"
	ResAccount      = "account"
	ResSearch       = "search"
	ResDashboard    = "dashboard"
	ResSystemLog    = "system_log"

	ActRead  = "read"
	ActWrite = "write"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

var defaultPolicies = [][]string{
	{"admin", "*", "*"},

	{"carrier", ResFacility, "*"},
	{"carrier", ResAvailability, "*"},
	{"carrier", ResPlace, "*"},
	{"carrier", ResHour, "*"},
	{"carrier", ResStatistics, ActRead},
	{"carrier", ResCategory, ActRead},

	{"manager", ResSearch, ActRead},
	{"manager", ResFacility, ActRead},
	{"manager", ResCategory, ActRead},

	{"leadership", ResSearch, ActRead},
	{"leadership", ResFacility, ActRead},
	{"leadership", ResCategory, ActRead},
	{"leadership", ResStatistics, ActRead},
	{"leadership", ResDashboard, ActRead},
}

// Enforcer answers role capability questions.
type Enforcer struct {
	e *casbin.Enforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	if _, err := e.AddPolicies(defaultPolicies); err != nil {
		return nil, fmt.Errorf("load policies: %w", err)
	}
	return &Enforcer{e: e}, nil
}

func (en *Enforcer) Allowed(role, resource, action string) bool {
	ok, err := en.e.Enforce(role, resource, action)
	return err == nil && ok
}
