package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostStore defines persistence operations for posts, their media sequence
// and their like set.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	GetByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]Post, error)
	Feed(ctx context.Context, authorIDs []uuid.UUID, offset, limit int) ([]Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, postID, userID uuid.UUID) error
	Unlike(ctx context.Context, postID, userID uuid.UUID) error
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
}

// Post represents a stored post. Media order is significant.
type Post struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Caption   string
	Media     []MediaItem
	Likes     IDSet
	CreatedAt time.Time
}

// MediaItem is one element of a post's media sequence. Key references the
// blob in object storage.
type MediaItem struct {
	Key  string
	Kind MediaKind
}

// MediaKind enumerates media item kinds.
type MediaKind string

const (
	// MediaKindImage is a still image.
	MediaKindImage MediaKind = "image"
	// MediaKindVideo is a video clip.
	MediaKindVideo MediaKind = "video"
)
