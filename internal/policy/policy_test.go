package policy

import (
	"errors"
	"testing"

	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

func TestPolicyAllows(t *testing.T) {
	reviewer, err := Default().Get(RequireReviewer)
	if err != nil {
		t.Fatalf("get policy: %v", err)
	}

	tests := []struct {
		name  string
		roles []string
		want  bool
	}{
		{"no roles", nil, false},
		{"other role", []string{models.RoleAdmin}, false},
		{"reviewer", []string{models.RoleReviewer}, true},
		{"reviewer and admin", []string{models.RoleAdmin, models.RoleReviewer}, true},
		{"case sensitive", []string{"reviewer"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reviewer.Allows(tt.roles); got != tt.want {
				t.Fatalf("Allows(%v) = %v, want %v", tt.roles, got, tt.want)
			}
		})
	}
}

func TestPolicyWithoutRolesAllowsAnyone(t *testing.T) {
	p := Policy{Name: "Authenticated"}
	if !p.Allows(nil) {
		t.Fatal("expected empty policy to allow")
	}
}

func TestRegistryUnknownPolicy(t *testing.T) {
	_, err := Default().Get("RequireAuditor")
	if !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("expected %v, got %v", ErrUnknownPolicy, err)
	}
}
