package handler

import (
	"errors"
	"net/http"

	"github.com/dkovalev/pixelfeed/internal/model"
)

// handleError maps the domain error taxonomy to HTTP status codes. Errors
// outside the taxonomy surface as an opaque 500.
func handleError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenInvalid):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrForbidden),
		errors.Is(err, model.ErrSelfFollow):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrAlreadyFollowing),
		errors.Is(err, model.ErrAlreadyLiked),
		errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrUsernameTaken):
		status = http.StatusConflict
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
		return
	}

	writeJSON(w, status, errorResponse{Detail: err.Error()})
}
