package roles

import (
	"net/http"
	"testing"

	"clinic-ledger-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRBACPolicy(t *testing.T) {
	enforcer, err := NewEnforcer()
	require.NoError(t, err)

	tests := []struct {
		role   string
		method string
		path   string
		want   bool
	}{
		{constvars.RoleReceptionist, http.MethodPost, "/payments", true},
		{constvars.RoleReceptionist, http.MethodGet, "/patients/8f1c/payments", true},
		{constvars.RoleReceptionist, http.MethodPost, "/packages/8f1c/close", true},
		{constvars.RoleReceptionist, http.MethodPut, "/packages/8f1c", true},
		{constvars.RoleReceptionist, http.MethodDelete, "/packages/8f1c", false},
		{constvars.RoleReceptionist, http.MethodPut, "/payments/8f1c", false},
		{constvars.RoleReceptionist, http.MethodGet, "/reports/dashboard", false},
		{constvars.RoleReceptionist, http.MethodPost, "/doctors", false},
		{constvars.RoleOwner, http.MethodPost, "/payments", true},
		{constvars.RoleOwner, http.MethodDelete, "/packages/8f1c", true},
		{constvars.RoleOwner, http.MethodGet, "/reports/revenue-series", true},
		{constvars.RoleOwner, http.MethodPost, "/reports/revenue/export", true},
		{constvars.RoleOwner, http.MethodDelete, "/payments/8f1c", false},
		{"guest", http.MethodGet, "/patients", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method+" "+tt.path, func(t *testing.T) {
			allowed, err := enforcer.Enforce(tt.role, tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}
