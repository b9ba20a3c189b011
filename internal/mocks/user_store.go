package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dkovalev/pixelfeed/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) (model.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Search(ctx context.Context, query string, limit int) ([]model.User, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *UserStore) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *UserStore) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}
