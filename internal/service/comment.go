package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkovalev/pixelfeed/internal/guard"
	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/model"
)

// Comment handles comment creation, listing and deletion.
type Comment struct {
	commentStore model.CommentStore
	postStore    model.PostStore
	userStore    model.UserStore
	logger       *logger.Logger
}

// NewComment creates a new Comment service.
func NewComment(
	commentStore model.CommentStore,
	postStore model.PostStore,
	userStore model.UserStore,
	logger *logger.Logger,
) *Comment {
	return &Comment{
		commentStore: commentStore,
		postStore:    postStore,
		userStore:    userStore,
		logger:       logger,
	}
}

// CommentView is a hydrated comment for API responses.
type CommentView struct {
	Comment          model.Comment
	AuthorUsername   string
	AuthorProfilePic string
}

// Create adds a comment to an existing post.
func (s *Comment) Create(ctx context.Context, actor model.User, postID uuid.UUID, text string) (CommentView, error) {
	_, err := s.postStore.GetByID(ctx, postID)
	if errors.Is(err, model.ErrNotFound) {
		return CommentView{}, model.ErrNotFound
	}
	if err != nil {
		return CommentView{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	comment := model.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		AuthorID:  actor.ID,
		Text:      text,
		CreatedAt: time.Now(),
	}

	saved, err := s.commentStore.Create(ctx, comment)
	if err != nil {
		return CommentView{}, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("Comment service: comment created",
		"comment_id", saved.ID,
		"post_id", postID,
		"author_id", actor.ID)

	return CommentView{
		Comment:          saved,
		AuthorUsername:   actor.Username,
		AuthorProfilePic: actor.ProfilePicKey,
	}, nil
}

// ByPost returns the post's comments, newest first.
func (s *Comment) ByPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]CommentView, error) {
	comments, err := s.commentStore.GetByPost(ctx, postID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		v := CommentView{Comment: c, AuthorUsername: "Unknown"}
		author, err := s.userStore.GetByID(ctx, c.AuthorID)
		if err == nil {
			v.AuthorUsername = author.Username
			v.AuthorProfilePic = author.ProfilePicKey
		} else if !errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("failed to get comment author: %w", err)
		}
		views = append(views, v)
	}

	return views, nil
}

// Delete removes a comment. Only the comment's author may delete it.
func (s *Comment) Delete(ctx context.Context, actor model.User, commentID uuid.UUID) error {
	comment, err := s.commentStore.GetByID(ctx, commentID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get comment by id: %w", err)
	}

	if err := guard.Ownership(actor.ID, comment.AuthorID); err != nil {
		return err
	}

	if err := s.commentStore.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("Comment service: comment deleted",
		"comment_id", commentID,
		"author_id", actor.ID)

	return nil
}
