package api

import "github.com/rpupo63/blog-auth-backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler     authHandler
	blogPostHandler blogPostHandler
	userHandler     userHandler
	healthHandler   healthHandler
}

// ErrorResponse is the envelope written for every failed request
type ErrorResponse struct {
	Success bool          `json:"success"`
	Status  string        `json:"status"`
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Error   string        `json:"error"`
	Details *ErrorDetails `json:"details,omitempty"`
}

type ErrorDetails struct {
	Field  string            `json:"field,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// SessionResponse is returned by signup and login
type SessionResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    SessionData `json:"data"`
}

type SessionData struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// DataResponse wraps a single resource
type DataResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// BlogPostCollection is returned by the list endpoint
type BlogPostCollection struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []*models.BlogPost `json:"data"`
}

// MessageResponse carries only a confirmation
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
