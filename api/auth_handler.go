package api

import (
	"net/http"

	"github.com/rpupo63/blog-auth-backend/auth"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	accounts  *auth.AccountService
}

func newAuthHandler(accounts *auth.AccountService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		accounts:  accounts,
	}
}

// signup creates an account and returns it with a token
// @Summary Sign up
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body signupRequest true "Account data"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ErrorResponse "VALIDATION_ERROR or USER_EXISTS"
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		session, err := h.accounts.Signup(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, orInternal(err, "Failed to create user"))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, SessionResponse{
			Status:  "success",
			Message: "User created successfully",
			Data:    SessionData{User: session.User, Token: session.Token},
		})
	}
}

// login exchanges credentials for a token
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse "INVALID_CREDENTIALS"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		session, err := h.accounts.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, orInternal(err, "Login failed"))
			return
		}

		h.responder.WriteJSON(w, SessionResponse{
			Status:  "success",
			Message: "Login successful",
			Data:    SessionData{User: session.User, Token: session.Token},
		})
	}
}
