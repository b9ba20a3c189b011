package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users and the follow graph.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, id uuid.UUID, patch ProfilePatch) (User, error)
	Search(ctx context.Context, query string, limit int) ([]User, error)
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
}

// User represents a stored user with authentication material. PasswordHash
// never leaves the service layer.
type User struct {
	ID            uuid.UUID
	Email         string
	Username      string
	FullName      string
	PasswordHash  string
	ProfilePicKey string
	Bio           string
	Followers     IDSet
	Following     IDSet
	CreatedAt     time.Time
}

// ProfilePatch describes a partial profile update. A nil field leaves the
// corresponding column unchanged.
type ProfilePatch struct {
	Username      *string
	FullName      *string
	ProfilePicKey *string
	Bio           *string
}
