package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dkovalev/pixelfeed/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO posts (id, author_id, caption, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, query, post.ID, post.AuthorID, post.Caption, post.CreatedAt); err != nil {
		return model.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}

	mediaQuery := `INSERT INTO post_media (post_id, position, object_key, kind) VALUES ($1, $2, $3, $4)`
	for i, m := range post.Media {
		if _, err := tx.Exec(ctx, mediaQuery, post.ID, i, m.Key, m.Kind); err != nil {
			return model.Post{}, fmt.Errorf("failed to insert post media: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Post{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if post.Likes == nil {
		post.Likes = model.NewIDSet()
	}
	return post, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	var post model.Post
	query := `SELECT id, author_id, caption, created_at FROM posts WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(&post.ID, &post.AuthorID, &post.Caption, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	if err := r.hydrate(ctx, &post); err != nil {
		return model.Post{}, err
	}

	return post, nil
}

func (r *PostRepository) GetByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]model.Post, error) {
	query := `SELECT id, author_id, caption, created_at FROM posts
			  WHERE author_id = $1
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	return r.list(ctx, query, authorID, offset, limit)
}

func (r *PostRepository) Feed(ctx context.Context, authorIDs []uuid.UUID, offset, limit int) ([]model.Post, error) {
	query := `SELECT id, author_id, caption, created_at FROM posts
			  WHERE author_id = ANY($1)
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	return r.list(ctx, query, authorIDs, offset, limit)
}

// Delete removes the post row. Media rows, likes and comments go with it
// via ON DELETE CASCADE.
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (r *PostRepository) Like(ctx context.Context, postID, userID uuid.UUID) error {
	query := `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.Exec(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

func (r *PostRepository) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	if _, err := r.db.Exec(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM posts WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func (r *PostRepository) list(ctx context.Context, query string, arg any, offset, limit int) ([]model.Post, error) {
	rows, err := r.db.Query(ctx, query, arg, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Caption, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	for i := range posts {
		if err := r.hydrate(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

// hydrate loads the media sequence and like set of a post.
func (r *PostRepository) hydrate(ctx context.Context, post *model.Post) error {
	mediaQuery := `SELECT object_key, kind FROM post_media WHERE post_id = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, mediaQuery, post.ID)
	if err != nil {
		return fmt.Errorf("failed to load post media: %w", err)
	}
	defer rows.Close()

	post.Media = nil
	for rows.Next() {
		var item model.MediaItem
		if err := rows.Scan(&item.Key, &item.Kind); err != nil {
			return fmt.Errorf("failed to scan media item: %w", err)
		}
		post.Media = append(post.Media, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate media items: %w", err)
	}

	post.Likes = model.NewIDSet()
	likeRows, err := r.db.Query(ctx, `SELECT user_id FROM post_likes WHERE post_id = $1`, post.ID)
	if err != nil {
		return fmt.Errorf("failed to load likes: %w", err)
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var userID uuid.UUID
		if err := likeRows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan like: %w", err)
		}
		post.Likes.Add(userID)
	}
	if err := likeRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate likes: %w", err)
	}

	return nil
}
