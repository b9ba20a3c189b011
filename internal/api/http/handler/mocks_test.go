package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dkovalev/pixelfeed/internal/model"
	"github.com/dkovalev/pixelfeed/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, params service.RegisterParams) (service.Session, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(service.Session), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (service.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(service.Session), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Profile(ctx context.Context, viewer model.User, userID uuid.UUID) (service.Profile, error) {
	args := m.Called(ctx, viewer, userID)
	return args.Get(0).(service.Profile), args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, actor model.User, params service.UpdateProfileParams) (service.Profile, error) {
	args := m.Called(ctx, actor, params)
	return args.Get(0).(service.Profile), args.Error(1)
}

func (m *mockUserService) Search(ctx context.Context, viewer model.User, query string, limit int) ([]service.SearchResult, error) {
	args := m.Called(ctx, viewer, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SearchResult), args.Error(1)
}

func (m *mockUserService) Follow(ctx context.Context, actor model.User, targetID uuid.UUID) error {
	args := m.Called(ctx, actor, targetID)
	return args.Error(0)
}

func (m *mockUserService) Unfollow(ctx context.Context, actor model.User, targetID uuid.UUID) error {
	args := m.Called(ctx, actor, targetID)
	return args.Error(0)
}

type mockPostService struct {
	mock.Mock
}

func (m *mockPostService) Create(ctx context.Context, actor model.User, params service.CreatePostParams) (service.PostView, error) {
	args := m.Called(ctx, actor, params)
	return args.Get(0).(service.PostView), args.Error(1)
}

func (m *mockPostService) Get(ctx context.Context, viewer model.User, postID uuid.UUID) (service.PostView, error) {
	args := m.Called(ctx, viewer, postID)
	return args.Get(0).(service.PostView), args.Error(1)
}

func (m *mockPostService) Feed(ctx context.Context, viewer model.User, offset, limit int) ([]service.PostView, error) {
	args := m.Called(ctx, viewer, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PostView), args.Error(1)
}

func (m *mockPostService) ByUser(ctx context.Context, viewer model.User, userID uuid.UUID, offset, limit int) ([]service.PostView, error) {
	args := m.Called(ctx, viewer, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PostView), args.Error(1)
}

func (m *mockPostService) Delete(ctx context.Context, actor model.User, postID uuid.UUID) error {
	args := m.Called(ctx, actor, postID)
	return args.Error(0)
}

func (m *mockPostService) Like(ctx context.Context, actor model.User, postID uuid.UUID) error {
	args := m.Called(ctx, actor, postID)
	return args.Error(0)
}

func (m *mockPostService) Unlike(ctx context.Context, actor model.User, postID uuid.UUID) error {
	args := m.Called(ctx, actor, postID)
	return args.Error(0)
}

type mockCommentService struct {
	mock.Mock
}

func (m *mockCommentService) Create(ctx context.Context, actor model.User, postID uuid.UUID, text string) (service.CommentView, error) {
	args := m.Called(ctx, actor, postID, text)
	return args.Get(0).(service.CommentView), args.Error(1)
}

func (m *mockCommentService) ByPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]service.CommentView, error) {
	args := m.Called(ctx, postID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CommentView), args.Error(1)
}

func (m *mockCommentService) Delete(ctx context.Context, actor model.User, commentID uuid.UUID) error {
	args := m.Called(ctx, actor, commentID)
	return args.Error(0)
}
