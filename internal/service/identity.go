package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/model"
)

// Identity maps validated bearer tokens to persisted user records.
type Identity struct {
	userStore model.UserStore
	tokens    model.TokenManager
	logger    *logger.Logger
}

// NewIdentity creates a new Identity service.
func NewIdentity(userStore model.UserStore, tokens model.TokenManager, logger *logger.Logger) *Identity {
	return &Identity{
		userStore: userStore,
		tokens:    tokens,
		logger:    logger,
	}
}

// Resolve validates the token and loads the user it refers to. A token can
// be structurally valid yet reference a deleted user; that case surfaces as
// ErrUserNotFound, distinct from the token errors.
func (s *Identity) Resolve(ctx context.Context, tokenString string) (model.User, error) {
	userID, err := s.tokens.Parse(tokenString)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Identity service: token references missing user",
			"user_id", userID)
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
