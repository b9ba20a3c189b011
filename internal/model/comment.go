package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CommentStore defines persistence operations for comments.
type CommentStore interface {
	Create(ctx context.Context, comment Comment) (Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (Comment, error)
	GetByPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
	CountByPost(ctx context.Context, postID uuid.UUID) (int, error)
}

// Comment represents a stored comment. Its lifecycle is tied to the post it
// references: deleting the post deletes its comments.
type Comment struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	AuthorID  uuid.UUID
	Text      string
	CreatedAt time.Time
}
