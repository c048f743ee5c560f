package rbac_test

import (
	"testing"

	"go-reqdesk/internal/account"
	"go-reqdesk/internal/domain"
	"go-reqdesk/internal/rbac"
	"go-reqdesk/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name    string
		role    string
		res     string
		act     string
		allowed bool
	}{
		{"admin creates request", account.RoleAdmin, "request", "create", true},
		{"admin updates request", account.RoleAdmin, "request", "update", true},
		{"admin deletes request", account.RoleAdmin, "request", "delete", true},
		{"admin manages employees", account.RoleAdmin, "employee", "delete", true},
		{"staff creates request", account.RoleStaff, "request", "create", true},
		{"staff reads request", account.RoleStaff, "request", "read", true},
		{"staff cannot update request", account.RoleStaff, "request", "update", false},
		{"staff cannot delete request", account.RoleStaff, "request", "delete", false},
		{"staff cannot touch employees", account.RoleStaff, "employee", "read", false},
		{"unknown role denied", "GUEST", "request", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     tc.role,
				Resource: tc.res,
				Action:   tc.act,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
