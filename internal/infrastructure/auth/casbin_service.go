package auth

import (
	"github.com/casbin/casbin/v2"
)

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer from the model file alone; policies are
// held in memory and seeded at startup.
func NewCasbinService(modelPath string) (*CasbinService, error) {
	e, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, err
	}
	return &CasbinService{e}, nil
}
