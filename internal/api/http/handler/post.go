package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/model"
	"github.com/dkovalev/pixelfeed/internal/service"
)

// PostService defines post CRUD, like and feed operations.
type PostService interface {
	Create(ctx context.Context, actor model.User, params service.CreatePostParams) (service.PostView, error)
	Get(ctx context.Context, viewer model.User, postID uuid.UUID) (service.PostView, error)
	Feed(ctx context.Context, viewer model.User, offset, limit int) ([]service.PostView, error)
	ByUser(ctx context.Context, viewer model.User, userID uuid.UUID, offset, limit int) ([]service.PostView, error)
	Delete(ctx context.Context, actor model.User, postID uuid.UUID) error
	Like(ctx context.Context, actor model.User, postID uuid.UUID) error
	Unlike(ctx context.Context, actor model.User, postID uuid.UUID) error
}

// Post handles post endpoints.
type Post struct {
	postService    PostService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPost creates a new Post handler.
func NewPost(postService PostService, contextManager model.ContextManager, logger *logger.Logger) *Post {
	return &Post{
		postService:    postService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type mediaItemRequest struct {
	URI  string `json:"uri"`
	Type string `json:"type"`
}

type createPostRequest struct {
	Caption string             `json:"caption"`
	Media   []mediaItemRequest `json:"media"`
}

type mediaItemResponse struct {
	URI  string `json:"uri"`
	Type string `json:"type"`
}

type postResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	Username      string              `json:"username"`
	ProfilePic    string              `json:"profile_pic,omitempty"`
	Caption       string              `json:"caption,omitempty"`
	Media         []mediaItemResponse `json:"media"`
	LikesCount    int                 `json:"likes_count"`
	CommentsCount int                 `json:"comments_count"`
	IsLiked       bool                `json:"is_liked"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Create publishes a new post. Media payloads arrive base64-encoded.
func (h *Post) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if len(req.Media) == 0 {
		badRequest(w, "at least one media item is required")
		return
	}

	params := service.CreatePostParams{Caption: req.Caption}
	for _, m := range req.Media {
		kind := model.MediaKind(m.Type)
		if kind != model.MediaKindImage && kind != model.MediaKindVideo {
			badRequest(w, "media type must be image or video")
			return
		}
		data, err := base64.StdEncoding.DecodeString(m.URI)
		if err != nil {
			badRequest(w, "media uri must be base64 encoded")
			return
		}
		params.Media = append(params.Media, service.MediaUpload{Data: data, Kind: kind})
	}

	view, err := h.postService.Create(r.Context(), actor, params)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(view))
}

// Get returns a single post.
func (h *Post) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid post id")
		return
	}

	view, err := h.postService.Get(r.Context(), actor, postID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(view))
}

// Feed returns posts by the caller and everyone the caller follows.
func (h *Post) Feed(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	offset, limit := pagination(r, 20)

	views, err := h.postService.Feed(r.Context(), actor, offset, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponses(views))
}

// ByUser returns the posts authored by the path user.
func (h *Post) ByUser(w http.ResponseWriter, r *http.Request) {
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

	offset, limit := pagination(r, 20)

	views, err := h.postService.ByUser(r.Context(), actor, userID, offset, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponses(views))
}

// Delete removes the caller's own post along with its comments and media.
func (h *Post) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid post id")
		return
	}

	if err := h.postService.Delete(r.Context(), actor, postID); err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, "Post deleted successfully")
}

// Like adds the caller to the post's like set.
func (h *Post) Like(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid post id")
		return
	}

	if err := h.postService.Like(r.Context(), actor, postID); err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, "Post liked successfully")
}

// Unlike removes the caller from the post's like set.
func (h *Post) Unlike(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid post id")
		return
	}

	if err := h.postService.Unlike(r.Context(), actor, postID); err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, "Post unliked successfully")
}

// pagination reads skip/limit query parameters, clamping to sane values.
func pagination(r *http.Request, defaultLimit int) (offset, limit int) {
	limit = defaultLimit
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return offset, limit
}

func toPostResponse(v service.PostView) postResponse {
	media := make([]mediaItemResponse, 0, len(v.Post.Media))
	for _, m := range v.Post.Media {
		media = append(media, mediaItemResponse{URI: m.Key, Type: string(m.Kind)})
	}
	return postResponse{
		ID:            v.Post.ID.String(),
		UserID:        v.Post.AuthorID.String(),
		Username:      v.AuthorUsername,
		ProfilePic:    v.AuthorProfilePic,
		Caption:       v.Post.Caption,
		Media:         media,
		LikesCount:    v.LikesCount,
		CommentsCount: v.CommentsCount,
		IsLiked:       v.IsLiked,
		CreatedAt:     v.Post.CreatedAt,
	}
}

func toPostResponses(views []service.PostView) []postResponse {
	resp := make([]postResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toPostResponse(v))
	}
	return resp
}
