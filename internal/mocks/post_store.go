package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dkovalev/pixelfeed/internal/model"
)

// PostStore is a mock of model.PostStore.
type PostStore struct {
	mock.Mock
}

func (m *PostStore) Create(ctx context.Context, post model.Post) (model.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *PostStore) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *PostStore) GetByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]model.Post, error) {
	args := m.Called(ctx, authorID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *PostStore) Feed(ctx context.Context, authorIDs []uuid.UUID, offset, limit int) ([]model.Post, error) {
	args := m.Called(ctx, authorIDs, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PostStore) Like(ctx context.Context, postID, userID uuid.UUID) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *PostStore) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *PostStore) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	args := m.Called(ctx, authorID)
	return args.Int(0), args.Error(1)
}
