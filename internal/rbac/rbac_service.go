package rbac

import (
	"sync"

	"go-reqdesk/internal/account"
	"go-reqdesk/internal/domain"

	"github.com/casbin/casbin/v2"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// policyMatrix is the whole authorization model: two roles, one matrix.
// Ownership refinement (a STAFF caller reading only their own requests)
// stays in the resource services; a static policy cannot see record owners.
var policyMatrix = [][3]string{
	{account.RoleAdmin, "request", "create"},
	{account.RoleAdmin, "request", "read"},
	{account.RoleAdmin, "request", "update"},
	{account.RoleAdmin, "request", "delete"},
	{account.RoleAdmin, "employee", "create"},
	{account.RoleAdmin, "employee", "read"},
	{account.RoleAdmin, "employee", "update"},
	{account.RoleAdmin, "employee", "delete"},
	{account.RoleStaff, "request", "create"},
	{account.RoleStaff, "request", "read"},
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	for _, p := range policyMatrix {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
