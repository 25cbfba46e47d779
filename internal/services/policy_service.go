package services

import (
	"github.com/casbin/casbin/v2"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin. Policies
// live in memory and are seeded at startup; there is no persistence adapter.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: NewCasbinEnforcerWrapper(enforcer),
	}
}

// NewPolicyServiceWithEnforcer creates a new policy service with a CasbinEnforcer interface (for testing)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: enforcer,
	}
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	_, err := p.enforcer.AddPolicy(role, resource, action)
	return err
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	_, err := p.enforcer.RemovePolicy(role, resource, action)
	return err
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}

// SeedPolicies installs the default role grants at startup.
func (p *PolicyServiceImpl) SeedPolicies() error {
	defaults := [][3]string{
		{"admin", "/api/*", "(GET)|(POST)|(PATCH)|(DELETE)"},
		{"admin", "/admin/*", "(GET)|(POST)|(DELETE)"},
		// keyMatch("/api/posts", "/api/posts/*") is false, so the collection
		// endpoint needs its own rule.
		{"editor", "/api/posts", "(POST)"},
		{"editor", "/api/posts/*", "(GET)|(POST)|(PATCH)"},
		{"editor", "/api/post/*", "(GET)|(POST)|(PATCH)|(DELETE)"},
		{"editor", "/api/media", "(POST)"},
		{"viewer", "/api/posts/*", "(GET)"},
		{"viewer", "/api/post/*", "(GET)"},
	}
	for _, d := range defaults {
		if err := p.AddPolicy(d[0], d[1], d[2]); err != nil {
			return err
		}
	}
	return nil
}
