package roles

import (
	"clinic-ledger-service/internal/pkg/constvars"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// rbacModel matches a role (or a role it inherits) against a method and a
// path pattern relative to the API base path, e.g. /packages/:id.
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
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && r.act == p.act
`

var receptionistPolicies = [][]string{
	{constvars.RoleReceptionist, "/patients", http.MethodGet},
	{constvars.RoleReceptionist, "/patients", http.MethodPost},
	{constvars.RoleReceptionist, "/patients/:id", http.MethodGet},
	{constvars.RoleReceptionist, "/patients/:id", http.MethodPut},
	{constvars.RoleReceptionist, "/patients/:id/packages", http.MethodGet},
	{constvars.RoleReceptionist, "/patients/:id/sessions", http.MethodGet},
	{constvars.RoleReceptionist, "/patients/:id/payments", http.MethodGet},
	{constvars.RoleReceptionist, "/doctors", http.MethodGet},
	{constvars.RoleReceptionist, "/doctors/:id", http.MethodGet},
	{constvars.RoleReceptionist, "/packages", http.MethodPost},
	{constvars.RoleReceptionist, "/packages/:id", http.MethodGet},
	{constvars.RoleReceptionist, "/packages/:id", http.MethodPut},
	{constvars.RoleReceptionist, "/packages/:id/close", http.MethodPost},
	{constvars.RoleReceptionist, "/sessions", http.MethodPost},
	{constvars.RoleReceptionist, "/sessions/:id", http.MethodGet},
	{constvars.RoleReceptionist, "/payments", http.MethodPost},
	{constvars.RoleReceptionist, "/payments/:id", http.MethodGet},
}

var ownerPolicies = [][]string{
	{constvars.RoleOwner, "/doctors", http.MethodPost},
	{constvars.RoleOwner, "/doctors/:id", http.MethodPut},
	{constvars.RoleOwner, "/packages/:id", http.MethodDelete},
	{constvars.RoleOwner, "/payments/:id", http.MethodPut},
	{constvars.RoleOwner, "/reports/*", http.MethodGet},
	{constvars.RoleOwner, "/reports/revenue/export", http.MethodPost},
}

// NewEnforcer builds the role policy. Owners inherit every receptionist
// permission.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := enforcer.AddPolicies(receptionistPolicies); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddPolicies(ownerPolicies); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddGroupingPolicy(constvars.RoleOwner, constvars.RoleReceptionist); err != nil {
		return nil, err
	}
	return enforcer, nil
}
