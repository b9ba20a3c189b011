package router

import (
	"net/http"

	"github.com/dkovalev/pixelfeed/internal/api/http/handler"
	"github.com/dkovalev/pixelfeed/internal/api/http/middleware"
)

// Router assembles the API routes with their middleware.
type Router struct {
	auth         *handler.Auth
	users        *handler.User
	posts        *handler.Post
	comments     *handler.Comment
	authenticate *middleware.Authenticate
	logging      *middleware.Logging
}

// New creates a new Router instance.
func New(
	auth *handler.Auth,
	users *handler.User,
	posts *handler.Post,
	comments *handler.Comment,
	authenticate *middleware.Authenticate,
	logging *middleware.Logging,
) *Router {
	return &Router{
		auth:         auth,
		users:        users,
		posts:        posts,
		comments:     comments,
		authenticate: authenticate,
		logging:      logging,
	}
}

// Handler builds the full route table. Register and login are public;
// everything else under /api requires a bearer token.
func (rt *Router) Handler() http.Handler {
	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/me", rt.users.Me)
	protected.HandleFunc("PUT /api/me", rt.users.UpdateMe)
	protected.HandleFunc("GET /api/users/search/{query}", rt.users.Search)
	protected.HandleFunc("GET /api/users/{id}", rt.users.Get)
	protected.HandleFunc("POST /api/users/{id}/follow", rt.users.Follow)
	protected.HandleFunc("DELETE /api/users/{id}/follow", rt.users.Unfollow)
	protected.HandleFunc("GET /api/users/{id}/posts", rt.posts.ByUser)

	protected.HandleFunc("POST /api/posts", rt.posts.Create)
	protected.HandleFunc("GET /api/posts/{id}", rt.posts.Get)
	protected.HandleFunc("DELETE /api/posts/{id}", rt.posts.Delete)
	protected.HandleFunc("GET /api/feed", rt.posts.Feed)
	protected.HandleFunc("POST /api/posts/{id}/like", rt.posts.Like)
	protected.HandleFunc("DELETE /api/posts/{id}/like", rt.posts.Unlike)

	protected.HandleFunc("POST /api/posts/{id}/comments", rt.comments.Create)
	protected.HandleFunc("GET /api/posts/{id}/comments", rt.comments.ByPost)
	protected.HandleFunc("DELETE /api/comments/{id}", rt.comments.Delete)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", rt.auth.Register)
	mux.HandleFunc("POST /api/login", rt.auth.Login)
	mux.Handle("/api/", rt.authenticate.Wrap(protected))

	return rt.logging.Wrap(mux)
}
