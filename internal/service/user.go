package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dkovalev/pixelfeed/internal/guard"
	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/model"
)

// User handles profile reads, profile updates, search and the follow graph.
type User struct {
	userStore model.UserStore
	postStore model.PostStore
	storage   model.Storage
	logger    *logger.Logger
}

// NewUser creates a new User service.
func NewUser(userStore model.UserStore, postStore model.PostStore, storage model.Storage, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		postStore: postStore,
		storage:   storage,
		logger:    logger,
	}
}

// Profile is a hydrated user view returned by the API.
type Profile struct {
	User           model.User
	FollowersCount int
	FollowingCount int
	PostsCount     int
	IsFollowing    bool
}

// SearchResult is a trimmed profile row for user search.
type SearchResult struct {
	User        model.User
	IsFollowing bool
}

// UpdateProfileParams describes a partial profile update. Nil fields are
// unchanged. A non-nil Avatar replaces the profile picture.
type UpdateProfileParams struct {
	Username *string
	FullName *string
	Bio      *string
	Avatar   []byte
}

// Profile loads the profile of userID as seen by viewer.
func (s *User) Profile(ctx context.Context, viewer model.User, userID uuid.UUID) (Profile, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return Profile{}, model.ErrUserNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return s.hydrate(ctx, viewer, user)
}

// UpdateProfile applies a patch to the caller's own profile. The username,
// when changed, is re-checked for uniqueness.
func (s *User) UpdateProfile(ctx context.Context, actor model.User, params UpdateProfileParams) (Profile, error) {
	s.logger.Debug("User service: updating profile",
		"user_id", actor.ID)

	if params.Username != nil && *params.Username != actor.Username {
		_, err := s.userStore.GetByUsername(ctx, *params.Username)
		if err == nil {
			return Profile{}, model.ErrUsernameTaken
		}
		if !errors.Is(err, model.ErrNotFound) {
			return Profile{}, fmt.Errorf("failed to get user by username: %w", err)
		}
	}

	patch := model.ProfilePatch{
		Username: params.Username,
		FullName: params.FullName,
		Bio:      params.Bio,
	}

	if params.Avatar != nil {
		key := fmt.Sprintf("avatars/%s", actor.ID)
		if err := s.storage.Upload(ctx, key, bytes.NewReader(params.Avatar)); err != nil {
			s.logger.Error("User service: failed to upload avatar",
				"user_id", actor.ID,
				"error", err.Error())
			return Profile{}, fmt.Errorf("failed to upload avatar: %w", err)
		}
		patch.ProfilePicKey = &key
	}

	updated, err := s.userStore.Update(ctx, actor.ID, patch)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: profile updated",
		"user_id", actor.ID)

	return s.hydrate(ctx, updated, updated)
}

// Search finds users whose username or full name matches query,
// case-insensitively. The viewer is excluded from results.
func (s *User) Search(ctx context.Context, viewer model.User, query string, limit int) ([]SearchResult, error) {
	users, err := s.userStore.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	results := make([]SearchResult, 0, len(users))
	for _, u := range users {
		if u.ID == viewer.ID {
			continue
		}
		results = append(results, SearchResult{
			User:        u,
			IsFollowing: viewer.Following.Contains(u.ID),
		})
	}

	return results, nil
}

// Follow adds target to the actor's following set and the actor to the
// target's followers set. Self-follow and duplicate follow are rejected.
func (s *User) Follow(ctx context.Context, actor model.User, targetID uuid.UUID) error {
	if err := guard.SelfFollow(actor.ID, targetID); err != nil {
		return err
	}

	_, err := s.userStore.GetByID(ctx, targetID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := guard.DuplicateFollow(actor, targetID); err != nil {
		return err
	}

	if err := s.userStore.Follow(ctx, actor.ID, targetID); err != nil {
		return fmt.Errorf("failed to follow user: %w", err)
	}

	s.logger.Info("User service: followed",
		"follower_id", actor.ID,
		"followee_id", targetID)

	return nil
}

// Unfollow removes the follow edge. Unfollowing a user who was never
// followed is a no-op success; only self-unfollow is rejected.
func (s *User) Unfollow(ctx context.Context, actor model.User, targetID uuid.UUID) error {
	if err := guard.SelfFollow(actor.ID, targetID); err != nil {
		return err
	}

	if err := s.userStore.Unfollow(ctx, actor.ID, targetID); err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}

	s.logger.Info("User service: unfollowed",
		"follower_id", actor.ID,
		"followee_id", targetID)

	return nil
}

func (s *User) hydrate(ctx context.Context, viewer, user model.User) (Profile, error) {
	postsCount, err := s.postStore.CountByAuthor(ctx, user.ID)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to count posts: %w", err)
	}

	return Profile{
		User:           user,
		FollowersCount: user.Followers.Len(),
		FollowingCount: user.Following.Len(),
		PostsCount:     postsCount,
		IsFollowing:    user.ID != viewer.ID && viewer.Following.Contains(user.ID),
	}, nil
}
