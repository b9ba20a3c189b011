package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/model"
	"github.com/dkovalev/pixelfeed/internal/service"
)

// UserService defines profile and follow-graph operations.
type UserService interface {
	Profile(ctx context.Context, viewer model.User, userID uuid.UUID) (service.Profile, error)
	UpdateProfile(ctx context.Context, actor model.User, params service.UpdateProfileParams) (service.Profile, error)
	Search(ctx context.Context, viewer model.User, query string, limit int) ([]service.SearchResult, error)
	Follow(ctx context.Context, actor model.User, targetID uuid.UUID) error
	Unfollow(ctx context.Context, actor model.User, targetID uuid.UUID) error
}

// User handles profile and follow endpoints.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type updateProfileRequest struct {
	Username   *string `json:"username"`
	FullName   *string `json:"full_name"`
	ProfilePic *string `json:"profile_pic"`
	Bio        *string `json:"bio"`
}

type profileResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	FullName       string `json:"full_name,omitempty"`
	ProfilePic     string `json:"profile_pic,omitempty"`
	Bio            string `json:"bio,omitempty"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	PostsCount     int    `json:"posts_count"`
	IsFollowing    bool   `json:"is_following"`
}

type searchResultResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name,omitempty"`
	ProfilePic  string `json:"profile_pic,omitempty"`
	IsFollowing bool   `json:"is_following"`
}

// Me returns the caller's own profile.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	profile, err := h.userService.Profile(r.Context(), actor, actor.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// UpdateMe applies a partial update to the caller's profile. Absent fields
// are unchanged.
func (h *User) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	params := service.UpdateProfileParams{
		Username: req.Username,
		FullName: req.FullName,
		Bio:      req.Bio,
	}
	if req.ProfilePic != nil {
		data, err := base64.StdEncoding.DecodeString(*req.ProfilePic)
		if err != nil {
			badRequest(w, "profile_pic must be base64 encoded")
			return
		}
		params.Avatar = data
	}

	profile, err := h.userService.UpdateProfile(r.Context(), actor, params)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// Get returns the profile of the user named in the path.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}

	profile, err := h.userService.Profile(r.Context(), actor, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// Search finds users by username or full name.
func (h *User) Search(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	results, err := h.userService.Search(r.Context(), actor, r.PathValue("query"), 20)
	if err != nil {
		handleError(w, err)
		return
	}

	resp := make([]searchResultResponse, 0, len(results))
	for _, res := range results {
		resp = append(resp, searchResultResponse{
			ID:          res.User.ID.String(),
			Username:    res.User.Username,
			FullName:    res.User.FullName,
			ProfilePic:  res.User.ProfilePicKey,
			IsFollowing: res.IsFollowing,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Follow adds the path user to the caller's following set.
func (h *User) Follow(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}

	if err := h.userService.Follow(r.Context(), actor, targetID); err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, "Successfully followed user")
}

// Unfollow removes the path user from the caller's following set.
func (h *User) Unfollow(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}

	if err := h.userService.Unfollow(r.Context(), actor, targetID); err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, "Successfully unfollowed user")
}

func toProfileResponse(p service.Profile) profileResponse {
	return profileResponse{
		ID:             p.User.ID.String(),
		Email:          p.User.Email,
		Username:       p.User.Username,
		FullName:       p.User.FullName,
		ProfilePic:     p.User.ProfilePicKey,
		Bio:            p.User.Bio,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
		PostsCount:     p.PostsCount,
		IsFollowing:    p.IsFollowing,
	}
}
