package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-auth-backend/errs"
	"github.com/rs/zerolog/log"
)

// setupRoutes mounts the public and authenticated API routes under /api
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.healthHandler.health())

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handlers.authHandler.signup())
			r.Post("/login", handlers.authHandler.login())
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", handlers.blogPostHandler.getAllBlogPosts())
			r.Get("/{blogPostID}", handlers.blogPostHandler.getBlogPost())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)

				r.Post("/", handlers.blogPostHandler.createBlogPost())
				r.Put("/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
				r.Delete("/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())
				r.Post("/{blogPostID}/comments", handlers.blogPostHandler.addComment())
				r.Delete("/{blogPostID}/comments/{commentID}", handlers.blogPostHandler.deleteComment())
				r.Post("/{blogPostID}/like", handlers.blogPostHandler.likeBlogPost())
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/profile", handlers.userHandler.getProfile())
			r.Put("/profile", handlers.userHandler.updateProfile())
			r.Put("/profile/password", handlers.userHandler.changePassword())
		})
	})

	responder := NewResponder(log.Logger)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responder.WriteError(w, errs.NewNotFoundError(fmt.Sprintf("Not Found - %s", req.URL.RequestURI())))
	})
}
