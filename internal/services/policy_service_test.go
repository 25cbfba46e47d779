package services

import (
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const policyTestModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

func seededPolicyService(t *testing.T) *PolicyServiceImpl {
	t.Helper()

	m, err := model.NewModelFromString(policyTestModel)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("enforcer: %v", err)
	}

	svc := NewPolicyService(enforcer).(*PolicyServiceImpl)
	if err := svc.SeedPolicies(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func TestPolicyServiceImpl_SeededGrants(t *testing.T) {
	svc := seededPolicyService(t)

	tests := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{"admin", "/api/posts", "POST", true},
		{"admin", "/api/post/abc", "DELETE", true},
		{"admin", "/admin/policies", "POST", true},
		{"editor", "/api/posts", "POST", true},
		{"editor", "/api/posts/post", "GET", true},
		{"editor", "/api/post/abc", "PATCH", true},
		{"editor", "/api/media", "POST", true},
		{"editor", "/admin/policies", "POST", false},
		{"viewer", "/api/posts/post", "GET", true},
		{"viewer", "/api/posts", "POST", false},
		{"viewer", "/api/post/abc", "DELETE", false},
	}
	for _, tt := range tests {
		got, err := svc.CheckPermission(tt.role, tt.resource, tt.action)
		if err != nil {
			t.Fatalf("CheckPermission(%s, %s, %s): %v", tt.role, tt.resource, tt.action, err)
		}
		if got != tt.want {
			t.Errorf("CheckPermission(%s, %s, %s) = %v, want %v", tt.role, tt.resource, tt.action, got, tt.want)
		}
	}
}
