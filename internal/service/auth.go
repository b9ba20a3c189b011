package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/model"
	"github.com/dkovalev/pixelfeed/internal/password"
)

// Auth handles registration and login.
type Auth struct {
	userStore model.UserStore
	tokens    model.TokenManager
	logger    *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(userStore model.UserStore, tokens model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore: userStore,
		tokens:    tokens,
		logger:    logger,
	}
}

// RegisterParams contains parameters to register a new user.
type RegisterParams struct {
	Email    string
	Password string
	Username string
	FullName string
}

// Session is the result of a successful registration or login: a bearer
// token and the user it identifies.
type Session struct {
	Token string
	User  model.User
}

// Register creates a user with a hashed password and issues a session
// token. Email and username must each be globally unique.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (Session, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email,
		"username", params.Username)

	_, err := a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("Auth service: email already registered",
			"email", params.Email)
		return Session{}, model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	_, err = a.userStore.GetByUsername(ctx, params.Username)
	if err == nil {
		a.logger.Info("Auth service: username already taken",
			"username", params.Username)
		return Session{}, model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return Session{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	hash, err := password.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        params.Email,
		Username:     params.Username,
		FullName:     params.FullName,
		PasswordHash: hash,
		Followers:    model.NewIDSet(),
		Following:    model.NewIDSet(),
		CreatedAt:    time.Now(),
	}

	saved, err := a.userStore.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	tokenString, err := a.tokens.Generate(saved.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", saved.ID,
		"username", saved.Username)

	return Session{Token: tokenString, User: saved}, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password produce the same error.
func (a *Auth) Login(ctx context.Context, email, plaintext string) (Session, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		a.logger.Info("Auth service: password verification failed",
			"user_id", user.ID)
		return Session{}, model.ErrInvalidCredentials
	}

	tokenString, err := a.tokens.Generate(user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return Session{Token: tokenString, User: user}, nil
}
