package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dkovalev/pixelfeed/internal/mocks"
	"github.com/dkovalev/pixelfeed/internal/model"
	"github.com/dkovalev/pixelfeed/internal/testutil"
)

func TestComment_Create(t *testing.T) {
	ctx := context.Background()
	commentStore := &mocks.CommentStore{}
	postStore := &mocks.PostStore{}
	userStore := &mocks.UserStore{}

	actor := model.User{ID: uuid.New(), Username: "alice"}
	postID := uuid.New()

	postStore.On("GetByID", mock.Anything, postID).Return(model.Post{ID: postID}, nil)
	commentStore.On("Create", mock.Anything, mock.MatchedBy(func(c model.Comment) bool {
		return c.PostID == postID && c.AuthorID == actor.ID && c.Text == "nice shot"
	})).Return(model.Comment{ID: uuid.New(), PostID: postID, AuthorID: actor.ID, Text: "nice shot"}, nil)

	s := NewComment(commentStore, postStore, userStore, testutil.MakeNoopLogger())

	view, err := s.Create(ctx, actor, postID, "nice shot")
	require.NoError(t, err)
	assert.Equal(t, "alice", view.AuthorUsername)
	assert.Equal(t, "nice shot", view.Comment.Text)
	commentStore.AssertExpectations(t)
}

func TestComment_Create_UnknownPost(t *testing.T) {
	ctx := context.Background()
	commentStore := &mocks.CommentStore{}
	postStore := &mocks.PostStore{}

	postID := uuid.New()
	postStore.On("GetByID", mock.Anything, postID).Return(model.Post{}, model.ErrNotFound)

	s := NewComment(commentStore, postStore, &mocks.UserStore{}, testutil.MakeNoopLogger())

	_, err := s.Create(ctx, model.User{ID: uuid.New()}, postID, "hello")
	require.ErrorIs(t, err, model.ErrNotFound)
	commentStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestComment_ByPost(t *testing.T) {
	ctx := context.Background()
	commentStore := &mocks.CommentStore{}
	userStore := &mocks.UserStore{}

	postID := uuid.New()
	alive := model.Comment{ID: uuid.New(), PostID: postID, AuthorID: uuid.New(), Text: "first"}
	orphan := model.Comment{ID: uuid.New(), PostID: postID, AuthorID: uuid.New(), Text: "second"}

	commentStore.On("GetByPost", mock.Anything, postID, 0, 50).Return([]model.Comment{alive, orphan}, nil)
	userStore.On("GetByID", mock.Anything, alive.AuthorID).Return(model.User{ID: alive.AuthorID, Username: "bob"}, nil)
	userStore.On("GetByID", mock.Anything, orphan.AuthorID).Return(model.User{}, model.ErrNotFound)

	s := NewComment(commentStore, &mocks.PostStore{}, userStore, testutil.MakeNoopLogger())

	views, err := s.ByPost(ctx, postID, 0, 50)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "bob", views[0].AuthorUsername)
	assert.Equal(t, "Unknown", views[1].AuthorUsername)
}

func TestComment_Delete_Success(t *testing.T) {
	ctx := context.Background()
	commentStore := &mocks.CommentStore{}

	actor := model.User{ID: uuid.New()}
	comment := model.Comment{ID: uuid.New(), AuthorID: actor.ID}

	commentStore.On("GetByID", mock.Anything, comment.ID).Return(comment, nil)
	commentStore.On("Delete", mock.Anything, comment.ID).Return(nil)

	s := NewComment(commentStore, &mocks.PostStore{}, &mocks.UserStore{}, testutil.MakeNoopLogger())

	require.NoError(t, s.Delete(ctx, actor, comment.ID))
	commentStore.AssertExpectations(t)
}

func TestComment_Delete_Forbidden(t *testing.T) {
	ctx := context.Background()
	commentStore := &mocks.CommentStore{}

	comment := model.Comment{ID: uuid.New(), AuthorID: uuid.New()}

	commentStore.On("GetByID", mock.Anything, comment.ID).Return(comment, nil)

	s := NewComment(commentStore, &mocks.PostStore{}, &mocks.UserStore{}, testutil.MakeNoopLogger())

	err := s.Delete(ctx, model.User{ID: uuid.New()}, comment.ID)
	require.ErrorIs(t, err, model.ErrForbidden)
	commentStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestComment_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	commentStore := &mocks.CommentStore{}

	commentID := uuid.New()
	commentStore.On("GetByID", mock.Anything, commentID).Return(model.Comment{}, model.ErrNotFound)

	s := NewComment(commentStore, &mocks.PostStore{}, &mocks.UserStore{}, testutil.MakeNoopLogger())

	require.ErrorIs(t, s.Delete(ctx, model.User{ID: uuid.New()}, commentID), model.ErrNotFound)
}
