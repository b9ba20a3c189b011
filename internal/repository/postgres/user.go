package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dkovalev/pixelfeed/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, username, full_name, password_hash, profile_pic, bio, created_at`

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, username, full_name, password_hash, profile_pic, bio, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.Username, user.FullName,
		user.PasswordHash, user.ProfilePicKey, user.Bio, user.CreatedAt,
	)
	saved, err := scanUser(row)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	saved.Followers = model.NewIDSet()
	saved.Following = model.NewIDSet()
	return saved, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg any) (model.User, error) {
	row := r.db.QueryRow(ctx, query, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := r.loadEdges(ctx, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Update applies a partial profile update. Nil patch fields leave the
// corresponding column unchanged.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) (model.User, error) {
	query := `UPDATE users
			  SET username = COALESCE($2, username),
			      full_name = COALESCE($3, full_name),
			      profile_pic = COALESCE($4, profile_pic),
			      bio = COALESCE($5, bio)
			  WHERE id = $1
			  RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, id, patch.Username, patch.FullName, patch.ProfilePicKey, patch.Bio)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	if err := r.loadEdges(ctx, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (r *UserRepository) Search(ctx context.Context, query string, limit int) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users
			WHERE username ILIKE '%' || $1 || '%' OR full_name ILIKE '%' || $1 || '%'
			ORDER BY username
			LIMIT $2`

	rows, err := r.db.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	// Duplicate edges are harmless at the store layer; the guard rejects
	// them before the mutation is attempted.
	query := `INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.Exec(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to insert follow: %w", err)
	}
	return nil
}

func (r *UserRepository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`
	if _, err := r.db.Exec(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

// loadEdges populates the follower/following sets from the edge table. Both
// directions come from the same rows, so the inverse edges can never
// diverge.
func (r *UserRepository) loadEdges(ctx context.Context, user *model.User) error {
	user.Followers = model.NewIDSet()
	user.Following = model.NewIDSet()

	query := `SELECT follower_id, followee_id FROM follows WHERE follower_id = $1 OR followee_id = $1`
	rows, err := r.db.Query(ctx, query, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load follow edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var followerID, followeeID uuid.UUID
		if err := rows.Scan(&followerID, &followeeID); err != nil {
			return fmt.Errorf("failed to scan follow edge: %w", err)
		}
		if followerID == user.ID {
			user.Following.Add(followeeID)
		}
		if followeeID == user.ID {
			user.Followers.Add(followerID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate follow edges: %w", err)
	}

	return nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.FullName,
		&user.PasswordHash, &user.ProfilePicKey, &user.Bio, &user.CreatedAt,
	)
	return user, err
}
