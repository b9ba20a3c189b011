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

type postServiceMocks struct {
	postStore    *mocks.PostStore
	commentStore *mocks.CommentStore
	userStore    *mocks.UserStore
	storage      *mocks.Storage
}

func newPostService() (*Post, postServiceMocks) {
	m := postServiceMocks{
		postStore:    &mocks.PostStore{},
		commentStore: &mocks.CommentStore{},
		userStore:    &mocks.UserStore{},
		storage:      &mocks.Storage{},
	}
	s := NewPost(m.postStore, m.commentStore, m.userStore, m.storage, testutil.MakeNoopLogger())
	return s, m
}

func TestPost_Create(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	actor := model.User{ID: uuid.New(), Username: "alice"}

	m.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
	m.postStore.On("Create", mock.Anything, mock.MatchedBy(func(p model.Post) bool {
		return p.AuthorID == actor.ID && len(p.Media) == 2 &&
			p.Media[0].Kind == model.MediaKindImage && p.Media[1].Kind == model.MediaKindVideo
	})).Return(model.Post{
		ID:       uuid.New(),
		AuthorID: actor.ID,
		Caption:  "hello",
		Media: []model.MediaItem{
			{Key: "posts/x/0", Kind: model.MediaKindImage},
			{Key: "posts/x/1", Kind: model.MediaKindVideo},
		},
		Likes: model.NewIDSet(),
	}, nil)
	m.userStore.On("GetByID", mock.Anything, actor.ID).Return(actor, nil)
	m.commentStore.On("CountByPost", mock.Anything, mock.Anything).Return(0, nil)

	view, err := s.Create(ctx, actor, CreatePostParams{
		Caption: "hello",
		Media: []MediaUpload{
			{Data: []byte{1}, Kind: model.MediaKindImage},
			{Data: []byte{2}, Kind: model.MediaKindVideo},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", view.AuthorUsername)
	assert.Equal(t, 0, view.LikesCount)
	assert.False(t, view.IsLiked)
	m.storage.AssertExpectations(t)
	m.postStore.AssertExpectations(t)
}

func TestPost_Create_UploadFailure(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	actor := model.User{ID: uuid.New()}

	m.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := s.Create(ctx, actor, CreatePostParams{
		Media: []MediaUpload{{Data: []byte{1}, Kind: model.MediaKindImage}},
	})
	require.Error(t, err)
	m.postStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPost_Feed_IncludesSelf(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	followee := uuid.New()
	viewer := model.User{ID: uuid.New(), Following: model.NewIDSet(followee)}

	m.postStore.On("Feed", mock.Anything, mock.MatchedBy(func(ids []uuid.UUID) bool {
		if len(ids) != 2 {
			return false
		}
		seen := model.NewIDSet(ids...)
		return seen.Contains(viewer.ID) && seen.Contains(followee)
	}), 0, 10).Return([]model.Post{}, nil)

	views, err := s.Feed(ctx, viewer, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, views)
	m.postStore.AssertExpectations(t)
}

func TestPost_Get_DeletedAuthorFallback(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	viewer := model.User{ID: uuid.New()}
	post := model.Post{ID: uuid.New(), AuthorID: uuid.New(), Likes: model.NewIDSet()}

	m.postStore.On("GetByID", mock.Anything, post.ID).Return(post, nil)
	m.userStore.On("GetByID", mock.Anything, post.AuthorID).Return(model.User{}, model.ErrNotFound)
	m.commentStore.On("CountByPost", mock.Anything, post.ID).Return(2, nil)

	view, err := s.Get(ctx, viewer, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", view.AuthorUsername)
	assert.Equal(t, 2, view.CommentsCount)
}

func TestPost_Delete_Success(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	actor := model.User{ID: uuid.New()}
	post := model.Post{
		ID:       uuid.New(),
		AuthorID: actor.ID,
		Media: []model.MediaItem{
			{Key: "posts/p/0", Kind: model.MediaKindImage},
			{Key: "posts/p/1", Kind: model.MediaKindImage},
		},
		Likes: model.NewIDSet(),
	}

	m.postStore.On("GetByID", mock.Anything, post.ID).Return(post, nil)
	m.commentStore.On("DeleteByPost", mock.Anything, post.ID).Return(nil)
	m.postStore.On("Delete", mock.Anything, post.ID).Return(nil)
	m.storage.On("Delete", mock.Anything, "posts/p/0").Return(nil)
	m.storage.On("Delete", mock.Anything, "posts/p/1").Return(nil)

	require.NoError(t, s.Delete(ctx, actor, post.ID))
	m.commentStore.AssertExpectations(t)
	m.postStore.AssertExpectations(t)
	m.storage.AssertExpectations(t)
}

func TestPost_Delete_BlobFailureIsNotFatal(t *testing.T) {
	// The post row is gone; a failed blob delete only gets logged.
	ctx := context.Background()
	s, m := newPostService()

	actor := model.User{ID: uuid.New()}
	post := model.Post{
		ID:       uuid.New(),
		AuthorID: actor.ID,
		Media:    []model.MediaItem{{Key: "posts/p/0", Kind: model.MediaKindImage}},
		Likes:    model.NewIDSet(),
	}

	m.postStore.On("GetByID", mock.Anything, post.ID).Return(post, nil)
	m.commentStore.On("DeleteByPost", mock.Anything, post.ID).Return(nil)
	m.postStore.On("Delete", mock.Anything, post.ID).Return(nil)
	m.storage.On("Delete", mock.Anything, "posts/p/0").Return(assert.AnError)

	require.NoError(t, s.Delete(ctx, actor, post.ID))
}

func TestPost_Delete_Forbidden(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	post := model.Post{ID: uuid.New(), AuthorID: uuid.New(), Likes: model.NewIDSet()}

	m.postStore.On("GetByID", mock.Anything, post.ID).Return(post, nil)

	err := s.Delete(ctx, model.User{ID: uuid.New()}, post.ID)
	require.ErrorIs(t, err, model.ErrForbidden)
	m.postStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	m.commentStore.AssertNotCalled(t, "DeleteByPost", mock.Anything, mock.Anything)
}

func TestPost_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	postID := uuid.New()
	m.postStore.On("GetByID", mock.Anything, postID).Return(model.Post{}, model.ErrNotFound)

	require.ErrorIs(t, s.Delete(ctx, model.User{ID: uuid.New()}, postID), model.ErrNotFound)
}

func TestPost_Like_Success(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	actor := model.User{ID: uuid.New()}
	post := model.Post{ID: uuid.New(), AuthorID: uuid.New(), Likes: model.NewIDSet()}

	m.postStore.On("GetByID", mock.Anything, post.ID).Return(post, nil)
	m.postStore.On("Like", mock.Anything, post.ID, actor.ID).Return(nil)

	require.NoError(t, s.Like(ctx, actor, post.ID))
	m.postStore.AssertExpectations(t)
}

func TestPost_Like_Duplicate(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	actor := model.User{ID: uuid.New()}
	post := model.Post{ID: uuid.New(), AuthorID: uuid.New(), Likes: model.NewIDSet(actor.ID)}

	m.postStore.On("GetByID", mock.Anything, post.ID).Return(post, nil)

	require.ErrorIs(t, s.Like(ctx, actor, post.ID), model.ErrAlreadyLiked)
	m.postStore.AssertNotCalled(t, "Like", mock.Anything, mock.Anything, mock.Anything)
}

func TestPost_Like_UnknownPost(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	postID := uuid.New()
	m.postStore.On("GetByID", mock.Anything, postID).Return(model.Post{}, model.ErrNotFound)

	require.ErrorIs(t, s.Like(ctx, model.User{ID: uuid.New()}, postID), model.ErrNotFound)
}

func TestPost_Unlike_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, m := newPostService()

	actor := model.User{ID: uuid.New()}
	postID := uuid.New()

	m.postStore.On("Unlike", mock.Anything, postID, actor.ID).Return(nil)

	require.NoError(t, s.Unlike(ctx, actor, postID))
	require.NoError(t, s.Unlike(ctx, actor, postID))
}
