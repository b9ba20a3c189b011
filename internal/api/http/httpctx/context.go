// Package httpctx carries the authenticated user through request contexts.
package httpctx

import (
	"context"

	"github.com/dkovalev/pixelfeed/internal/model"
)

type ctxKey int

const userKey ctxKey = iota

// Manager implements model.ContextManager over plain context values.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUser returns a context carrying the authenticated user.
func (m *Manager) SetUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves the authenticated user from the context. The boolean is
// false when no user was set, i.e. the request never passed authentication.
func (m *Manager) GetUser(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
