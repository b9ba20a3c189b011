package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dkovalev/pixelfeed/internal/model"
)

// CommentStore is a mock of model.CommentStore.
type CommentStore struct {
	mock.Mock
}

func (m *CommentStore) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *CommentStore) GetByID(ctx context.Context, id uuid.UUID) (model.Comment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *CommentStore) GetByPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]model.Comment, error) {
	args := m.Called(ctx, postID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *CommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CommentStore) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *CommentStore) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}
