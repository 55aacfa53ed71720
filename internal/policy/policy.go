// Package policy holds named authorization policies. A policy is satisfied
// when the caller holds every role it lists.
package policy

import (
	"errors"
	"fmt"

	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

const (
	RequireReviewer = "RequireReviewer"
	RequireAdmin    = "RequireAdmin"
)

var ErrUnknownPolicy = errors.New("unknown policy")

type Policy struct {
	Name  string
	Roles []string
}

// Allows reports whether roles contains every role required by p.
func (p Policy) Allows(roles []string) bool {
	held := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		held[r] = struct{}{}
	}
	for _, r := range p.Roles {
		if _, ok := held[r]; !ok {
			return false
		}
	}
	return true
}

type Registry struct {
	policies map[string]Policy
}

func NewRegistry(policies ...Policy) *Registry {
	r := &Registry{policies: make(map[string]Policy, len(policies))}
	for _, p := range policies {
		r.policies[p.Name] = p
	}
	return r
}

// Default returns the registry used by the HTTP server.
func Default() *Registry {
	return NewRegistry(
		Policy{Name: RequireReviewer, Roles: []string{models.RoleReviewer}},
		Policy{Name: RequireAdmin, Roles: []string{models.RoleAdmin}},
	)
}

func (r *Registry) Get(name string) (Policy, error) {
	p, ok := r.policies[name]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %s", ErrUnknownPolicy, name)
	}
	return p, nil
}
