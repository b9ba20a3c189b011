package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/model"
	"github.com/dkovalev/pixelfeed/internal/service"
)

// CommentService defines comment operations.
type CommentService interface {
	Create(ctx context.Context, actor model.User, postID uuid.UUID, text string) (service.CommentView, error)
	ByPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]service.CommentView, error)
	Delete(ctx context.Context, actor model.User, commentID uuid.UUID) error
}

// Comment handles comment endpoints.
type Comment struct {
	commentService CommentService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewComment creates a new Comment handler.
func NewComment(commentService CommentService, contextManager model.ContextManager, logger *logger.Logger) *Comment {
	return &Comment{
		commentService: commentService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createCommentRequest struct {
	Text string `json:"text"`
}

type commentResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	ProfilePic string    `json:"profile_pic,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// Create adds a comment to the path post.
func (h *Comment) Create(w http.ResponseWriter, r *http.Request) {
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

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Text == "" {
		badRequest(w, "text is required")
		return
	}

	view, err := h.commentService.Create(r.Context(), actor, postID, req.Text)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponse(view))
}

// ByPost lists the path post's comments, newest first.
func (h *Comment) ByPost(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.contextManager.GetUser(r.Context()); !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid post id")
		return
	}

	offset, limit := pagination(r, 50)

	views, err := h.commentService.ByPost(r.Context(), postID, offset, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	resp := make([]commentResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toCommentResponse(v))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Delete removes the caller's own comment.
func (h *Comment) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.contextManager.GetUser(r.Context())
	if !ok {
		handleError(w, model.ErrTokenInvalid)
		return
	}

	commentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid comment id")
		return
	}

	if err := h.commentService.Delete(r.Context(), actor, commentID); err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, "Comment deleted successfully")
}

func toCommentResponse(v service.CommentView) commentResponse {
	return commentResponse{
		ID:         v.Comment.ID.String(),
		UserID:     v.Comment.AuthorID.String(),
		Username:   v.AuthorUsername,
		ProfilePic: v.AuthorProfilePic,
		Text:       v.Comment.Text,
		CreatedAt:  v.Comment.CreatedAt,
	}
}
