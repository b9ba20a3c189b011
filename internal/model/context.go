package model

import "context"

// ContextManager stores and retrieves the authenticated user on request
// contexts.
type ContextManager interface {
	SetUser(ctx context.Context, user User) context.Context
	GetUser(ctx context.Context) (User, bool)
}
