package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkovalev/pixelfeed/internal/guard"
	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/model"
)

// Post handles post CRUD, likes and the feed.
type Post struct {
	postStore    model.PostStore
	commentStore model.CommentStore
	userStore    model.UserStore
	storage      model.Storage
	logger       *logger.Logger
}

// NewPost creates a new Post service.
func NewPost(
	postStore model.PostStore,
	commentStore model.CommentStore,
	userStore model.UserStore,
	storage model.Storage,
	logger *logger.Logger,
) *Post {
	return &Post{
		postStore:    postStore,
		commentStore: commentStore,
		userStore:    userStore,
		storage:      storage,
		logger:       logger,
	}
}

// MediaUpload is one media payload of a new post, already decoded from the
// wire encoding.
type MediaUpload struct {
	Data []byte
	Kind model.MediaKind
}

// CreatePostParams contains parameters to create a post.
type CreatePostParams struct {
	Caption string
	Media   []MediaUpload
}

// PostView is a hydrated post for API responses.
type PostView struct {
	Post             model.Post
	AuthorUsername   string
	AuthorProfilePic string
	LikesCount       int
	CommentsCount    int
	IsLiked          bool
}

// Create uploads the media payloads to blob storage and persists the post.
// Media keeps the order it was submitted in.
func (s *Post) Create(ctx context.Context, actor model.User, params CreatePostParams) (PostView, error) {
	s.logger.Debug("Post service: creating post",
		"author_id", actor.ID,
		"media_count", len(params.Media))

	postID := uuid.New()
	media := make([]model.MediaItem, 0, len(params.Media))
	for i, m := range params.Media {
		key := fmt.Sprintf("posts/%s/%d", postID, i)
		if err := s.storage.Upload(ctx, key, bytes.NewReader(m.Data)); err != nil {
			s.logger.Error("Post service: failed to upload media",
				"post_id", postID,
				"key", key,
				"error", err.Error())
			return PostView{}, fmt.Errorf("failed to upload media: %w", err)
		}
		media = append(media, model.MediaItem{Key: key, Kind: m.Kind})
	}

	post := model.Post{
		ID:        postID,
		AuthorID:  actor.ID,
		Caption:   params.Caption,
		Media:     media,
		Likes:     model.NewIDSet(),
		CreatedAt: time.Now(),
	}

	saved, err := s.postStore.Create(ctx, post)
	if err != nil {
		return PostView{}, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("Post service: post created",
		"post_id", saved.ID,
		"author_id", actor.ID)

	return s.view(ctx, actor, saved)
}

// Get loads a single post as seen by viewer.
func (s *Post) Get(ctx context.Context, viewer model.User, postID uuid.UUID) (PostView, error) {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return PostView{}, model.ErrNotFound
		}
		return PostView{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return s.view(ctx, viewer, post)
}

// Feed returns posts by the viewer and everyone the viewer follows, newest
// first.
func (s *Post) Feed(ctx context.Context, viewer model.User, offset, limit int) ([]PostView, error) {
	authorIDs := append(viewer.Following.IDs(), viewer.ID)

	posts, err := s.postStore.Feed(ctx, authorIDs, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	return s.views(ctx, viewer, posts)
}

// ByUser returns posts authored by userID, newest first.
func (s *Post) ByUser(ctx context.Context, viewer model.User, userID uuid.UUID, offset, limit int) ([]PostView, error) {
	posts, err := s.postStore.GetByAuthor(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by author: %w", err)
	}

	return s.views(ctx, viewer, posts)
}

// Delete removes a post, its comments and its media blobs. Only the author
// may delete a post. Comments are removed before the post row so a partial
// failure never leaves orphaned comments behind a deleted post; media blob
// deletion is best-effort once the store mutation succeeded.
func (s *Post) Delete(ctx context.Context, actor model.User, postID uuid.UUID) error {
	post, err := s.postStore.GetByID(ctx, postID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get post by id: %w", err)
	}

	if err := guard.Ownership(actor.ID, post.AuthorID); err != nil {
		return err
	}

	if err := s.commentStore.DeleteByPost(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	if err := s.postStore.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	for _, m := range post.Media {
		if err := s.storage.Delete(ctx, m.Key); err != nil {
			s.logger.Error("Post service: failed to delete media object",
				"post_id", postID,
				"key", m.Key,
				"error", err.Error())
		}
	}

	s.logger.Info("Post service: post deleted",
		"post_id", postID,
		"author_id", actor.ID)

	return nil
}

// Like adds the actor to the post's like set. Liking twice is a conflict.
func (s *Post) Like(ctx context.Context, actor model.User, postID uuid.UUID) error {
	post, err := s.postStore.GetByID(ctx, postID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get post by id: %w", err)
	}

	if err := guard.DuplicateLike(post, actor.ID); err != nil {
		return err
	}

	if err := s.postStore.Like(ctx, postID, actor.ID); err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}

	return nil
}

// Unlike removes the actor from the post's like set. Unliking a post that
// was never liked is a no-op success.
func (s *Post) Unlike(ctx context.Context, actor model.User, postID uuid.UUID) error {
	if err := s.postStore.Unlike(ctx, postID, actor.ID); err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	return nil
}

func (s *Post) view(ctx context.Context, viewer model.User, post model.Post) (PostView, error) {
	// The author may have been deleted after the post was loaded.
	authorUsername := "Unknown"
	authorPic := ""
	author, err := s.userStore.GetByID(ctx, post.AuthorID)
	if err == nil {
		authorUsername = author.Username
		authorPic = author.ProfilePicKey
	} else if !errors.Is(err, model.ErrNotFound) {
		return PostView{}, fmt.Errorf("failed to get author: %w", err)
	}

	commentsCount, err := s.commentStore.CountByPost(ctx, post.ID)
	if err != nil {
		return PostView{}, fmt.Errorf("failed to count comments: %w", err)
	}

	return PostView{
		Post:             post,
		AuthorUsername:   authorUsername,
		AuthorProfilePic: authorPic,
		LikesCount:       post.Likes.Len(),
		CommentsCount:    commentsCount,
		IsLiked:          post.Likes.Contains(viewer.ID),
	}, nil
}

func (s *Post) views(ctx context.Context, viewer model.User, posts []model.Post) ([]PostView, error) {
	result := make([]PostView, 0, len(posts))
	for _, p := range posts {
		v, err := s.view(ctx, viewer, p)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}
