package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dkovalev/pixelfeed/internal/model"
)

var _ model.CommentStore = (*CommentRepository)(nil)

type CommentRepository struct {
	db *Connection
}

func NewCommentRepository(db *Connection) *CommentRepository {
	return &CommentRepository{
		db: db,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	query := `INSERT INTO comments (id, post_id, author_id, body, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, post_id, author_id, body, created_at`

	var saved model.Comment
	err := r.db.QueryRow(ctx, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Text, comment.CreatedAt,
	).Scan(&saved.ID, &saved.PostID, &saved.AuthorID, &saved.Text, &saved.CreatedAt)
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}

	return saved, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Comment, error) {
	var comment model.Comment
	query := `SELECT id, post_id, author_id, body, created_at FROM comments WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Text, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return comment, nil
}

func (r *CommentRepository) GetByPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]model.Comment, error) {
	query := `SELECT id, post_id, author_id, body, created_at FROM comments
			  WHERE post_id = $1
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, postID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Text, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete comments by post: %w", err)
	}
	return nil
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM comments WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
