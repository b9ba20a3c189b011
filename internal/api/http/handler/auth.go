package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/service"
)

// AuthService defines registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (service.Session, error)
	Login(ctx context.Context, email, password string) (service.Session, error)
}

// Auth handles the public authentication endpoints.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

type sessionResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

// Register creates a user account and returns a bearer token.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		badRequest(w, "email, password and username are required")
		return
	}

	session, err := h.authService.Register(r.Context(), service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		AccessToken: session.Token,
		TokenType:   "bearer",
		User: userResponse{
			ID:       session.User.ID.String(),
			Email:    session.User.Email,
			Username: session.User.Username,
			FullName: session.User.FullName,
		},
	})
}

// Login verifies credentials and returns a bearer token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(w, "email and password are required")
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		AccessToken: session.Token,
		TokenType:   "bearer",
		User: userResponse{
			ID:       session.User.ID.String(),
			Email:    session.User.Email,
			Username: session.User.Username,
			FullName: session.User.FullName,
		},
	})
}
