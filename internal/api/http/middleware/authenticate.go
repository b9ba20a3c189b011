package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/model"
)

// IdentityService resolves bearer tokens to persisted user records.
type IdentityService interface {
	Resolve(ctx context.Context, token string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the resolved user into
// the request context.
type Authenticate struct {
	identity       IdentityService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(identity IdentityService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{identity: identity, contextManager: contextManager, logger: logger}
}

const bearerPrefix = "Bearer "

// Wrap parses the Authorization header, resolves the user and calls next
// with the user on the request context. Every failure is Unauthenticated;
// the detail distinguishes missing, expired and invalid tokens, and tokens
// referencing a deleted user.
func (m *Authenticate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			unauthenticated(w, "not authenticated")
			return
		}

		user, err := m.identity.Resolve(r.Context(), strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			switch {
			case errors.Is(err, model.ErrTokenExpired):
				unauthenticated(w, "token has expired")
			case errors.Is(err, model.ErrTokenInvalid):
				unauthenticated(w, "invalid token")
			case errors.Is(err, model.ErrUserNotFound):
				unauthenticated(w, "user not found")
			default:
				m.logger.Error("Authenticate middleware: failed to resolve user",
					"error", err.Error())
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "internal server error"})
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUser(r.Context(), user)))
	})
}

func unauthenticated(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
