// Package auth supplies the current user identity.
//
// Deployments are single-tenant: the user is fixed by configuration and
// every storage row is scoped to it. The Provider interface keeps the
// services ignorant of where the identity comes from.
package auth

import (
	"context"

	"financas/internal/core"
)

// User is the authenticated owner of all data in this deployment.
type User struct {
	ID    string
	Email string
}

// Provider yields the current user, or core.ErrNotAuthenticated when no
// user is configured. Read paths treat that as "no data"; write paths
// refuse.
type Provider interface {
	CurrentUser(ctx context.Context) (User, error)
}

type staticProvider struct {
	user User
}

// NewStatic returns a Provider pinned to one configured user. An empty
// id means the deployment has no user yet; every call fails.
func NewStatic(id, email string) Provider {
	return &staticProvider{user: User{ID: id, Email: email}}
}

func (p *staticProvider) CurrentUser(ctx context.Context) (User, error) {
	if p.user.ID == "" {
		return User{}, core.ErrNotAuthenticated
	}
	return p.user, nil
}
