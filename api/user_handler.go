package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/blog-auth-backend/auth"
	"github.com/rpupo63/blog-auth-backend/database"
	"github.com/rpupo63/blog-auth-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder   Responder
	logger      zerolog.Logger
	userRepo    *database.UserRepo
	credentials *auth.CredentialStore
}

func newUserHandler(userRepo *database.UserRepo, credentials *auth.CredentialStore) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		userRepo:    userRepo,
		credentials: credentials,
	}
}

// getProfile returns the caller's account
// @Summary Get profile
// @Tags Users
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/profile [get]
func (h userHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnknownUserError())
			return
		}

		h.responder.WriteJSON(w, DataResponse{Success: true, Data: user})
	}
}

// updateProfile changes username, picture or bio. Empty fields keep their value.
// @Summary Update profile
// @Tags Users
// @Accept json
// @Produce json
// @Param body body profileRequest true "Profile"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse "VALIDATION_ERROR or USER_EXISTS"
// @Router /users/profile [put]
func (h userHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnknownUserError())
			return
		}

		var req profileRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated := *user
		if username := strings.TrimSpace(req.Username); username != "" && username != user.Username {
			taken, err := h.userRepo.ExistsByUsername(r.Context(), username, user.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.NewUserExistsError("username"))
				return
			}
			updated.Username = username
		}
		if req.ProfilePicture != "" {
			updated.ProfilePicture = req.ProfilePicture
		}
		if req.Bio != nil {
			updated.Bio = req.Bio
		}

		if err := h.userRepo.UpdateProfile(r.Context(), &updated); err != nil {
			if errs.IsUniqueConstraintViolationError(err) {
				h.responder.WriteError(w, errs.NewUserExistsError("username"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, DataResponse{
			Success: true,
			Message: "Profile updated successfully",
			Data:    updated,
		})
	}
}

// changePassword replaces the caller's password after checking the current one
// @Summary Change password
// @Tags Users
// @Accept json
// @Produce json
// @Param body body passwordRequest true "Passwords"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "INVALID_CREDENTIALS"
// @Router /users/profile/password [put]
func (h userHandler) changePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnknownUserError())
			return
		}

		var req passwordRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.credentials.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
			h.responder.WriteError(w, orInternal(err, "Failed to update password"))
			return
		}

		h.logger.Info().Str("userID", user.ID.String()).Msg("password changed")
		h.responder.WriteJSON(w, MessageResponse{Success: true, Message: "Password updated successfully"})
	}
}
