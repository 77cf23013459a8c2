package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/taskmanager/api/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the task manager API.
//
// Routes:
//
//	POST   /api/auth/register    → authHandler.Register
//	POST   /api/auth/login       → authHandler.Login
//	GET    /api/tasks            → taskHandler.List
//	POST   /api/tasks            → taskHandler.Create
//	PUT    /api/tasks/{id}       → taskHandler.Update
//	PATCH  /api/tasks/{id}/toggle → taskHandler.Toggle
//	DELETE /api/tasks/{id}       → taskHandler.Delete
//
// Request logging runs on every route; JSON content-type enforcement
// only on the routes that read a body. Token verification is not
// middleware: each task operation verifies the Authorization header
// explicitly inside the workflow.
func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.With(chiMiddleware.AllowContentType("application/json")).Post("/", taskHandler.Create)
			r.With(chiMiddleware.AllowContentType("application/json")).Put("/{id}", taskHandler.Update)
			r.Patch("/{id}/toggle", taskHandler.Toggle)
			r.Delete("/{id}", taskHandler.Delete)
		})
	})

	return r
}
