package api

import (
	"time"

	"github.com/rpupo63/blog-auth-backend/auth"
	"github.com/rpupo63/blog-auth-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, credentials *auth.CredentialStore, accounts *auth.AccountService, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		authHandler:     newAuthHandler(accounts),
		blogPostHandler: newBlogPostHandler(database.BlogPostRepo()),
		userHandler:     newUserHandler(database.UserRepo(), credentials),
		healthHandler:   newHealthHandler(startupTime),
	}
}
