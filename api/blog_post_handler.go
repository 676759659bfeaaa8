package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-auth-backend/auth"
	"github.com/rpupo63/blog-auth-backend/database"
	"github.com/rpupo63/blog-auth-backend/errs"
	"github.com/rpupo63/blog-auth-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

// resourceID parses a uuid path parameter. A malformed id is reported the
// same way as a missing resource.
func resourceID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, errs.NewNotFoundError("Resource not found")
	}
	return id, nil
}

// findBlogPost loads the post named in the path or writes the 404.
func (h blogPostHandler) findBlogPost(w http.ResponseWriter, r *http.Request) (*models.BlogPost, bool) {
	blogPostID, err := resourceID(r, "blogPostID")
	if err != nil {
		h.responder.WriteError(w, err)
		return nil, false
	}

	blogPost, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
	if err != nil {
		if errs.IsNotFound(err) {
			h.responder.WriteError(w, errs.NewNotFoundError(fmt.Sprintf("Blog not found with id of %s", blogPostID)))
			return nil, false
		}
		h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
		return nil, false
	}
	return blogPost, true
}

// reload writes the post as it is stored now.
func (h blogPostHandler) reload(w http.ResponseWriter, r *http.Request, status int, blogPostID uuid.UUID) {
	blogPost, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
		return
	}
	h.responder.WriteJSONStatus(w, status, DataResponse{Success: true, Data: blogPost})
}

// getAllBlogPosts lists every post, newest first
// @Summary Get all blog posts
// @Tags Blog Posts
// @Produce json
// @Success 200 {object} BlogPostCollection
// @Failure 500 {object} ErrorResponse
// @Router /blogs [get]
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPosts, err := h.blogPostRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blogs", err))
			return
		}

		h.responder.WriteJSON(w, BlogPostCollection{
			Success: true,
			Count:   len(blogPosts),
			Data:    blogPosts,
		})
	}
}

// getBlogPost returns one post and counts the view
// @Summary Get blog post
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{blogPostID} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := resourceID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.IncrementViews(r.Context(), blogPostID); err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError(fmt.Sprintf("Blog not found with id of %s", blogPostID)))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		h.reload(w, r, http.StatusOK, blogPostID)
	}
}

// createBlogPost stores a post authored by the caller
// @Summary Create blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param body body blogPostRequest true "Blog post"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /blogs [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnknownUserError())
			return
		}

		var req blogPostRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost := models.BlogPost{
			Title:    req.Title,
			Content:  req.Content,
			Status:   req.Status,
			AuthorID: user.ID,
		}
		if err := h.blogPostRepo.Add(r.Context(), &blogPost); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog", err))
			return
		}

		h.logger.Info().Str("blogPostID", blogPost.ID.String()).Str("authorID", user.ID.String()).Msg("blog post created")
		h.reload(w, r, http.StatusCreated, blogPost.ID)
	}
}

// updateBlogPost edits a post owned by the caller
// @Summary Update blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Param body body blogPostRequest true "Blog post"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{blogPostID} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnknownUserError())
			return
		}

		var req blogPostRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, ok := h.findBlogPost(w, r)
		if !ok {
			return
		}
		if err := auth.AssertOwner(user.ID, blogPost); err != nil {
			h.responder.WriteError(w, errs.NewNotOwnerError(user.ID.String(), "update", "blog"))
			return
		}

		blogPost.Rename(req.Title)
		blogPost.Content = req.Content
		if req.Status != "" {
			blogPost.Status = req.Status
		}
		if err := h.blogPostRepo.Update(r.Context(), blogPost); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		h.reload(w, r, http.StatusOK, blogPost.ID)
	}
}

// deleteBlogPost removes a post owned by the caller together with its comments
// @Summary Delete blog post
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} DataResponse
// @Failure 401 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{blogPostID} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnknownUserError())
			return
		}

		blogPost, ok := h.findBlogPost(w, r)
		if !ok {
			return
		}
		if err := auth.AssertOwner(user.ID, blogPost); err != nil {
			h.responder.WriteError(w, errs.NewNotOwnerError(user.ID.String(), "delete", "blog"))
			return
		}

		if err := h.blogPostRepo.Delete(r.Context(), blogPost.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog", err))
			return
		}

		h.responder.WriteJSON(w, DataResponse{Success: true, Data: struct{}{}})
	}
}

// addComment puts the caller's comment at the top of the post's comments
// @Summary Add comment
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Param body body commentRequest true "Comment"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{blogPostID}/comments [post]
func (h blogPostHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnknownUserError())
			return
		}

		var req commentRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, ok := h.findBlogPost(w, r)
		if !ok {
			return
		}

		comment := models.Comment{
			BlogPostID: blogPost.ID,
			UserID:     user.ID,
			Content:    req.Content,
		}
		if err := h.blogPostRepo.AddComment(r.Context(), &comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		h.reload(w, r, http.StatusOK, blogPost.ID)
	}
}

// deleteComment removes a comment written by the caller
// @Summary Delete comment
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Param commentID path string true "Comment ID" format(uuid)
// @Success 200 {object} DataResponse
// @Failure 401 {object} ErrorResponse "Not the comment author"
// @Failure 404 {object} ErrorResponse "Post or comment missing"
// @Router /blogs/{blogPostID}/comments/{commentID} [delete]
func (h blogPostHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnknownUserError())
			return
		}

		blogPost, ok := h.findBlogPost(w, r)
		if !ok {
			return
		}

		commentID, err := resourceID(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		comment := blogPost.FindComment(commentID)
		if comment == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(fmt.Sprintf("Comment not found with id of %s", commentID)))
			return
		}
		if err := auth.AssertOwner(user.ID, comment); err != nil {
			h.responder.WriteError(w, errs.NewNotOwnerError(user.ID.String(), "delete", "comment"))
			return
		}

		if err := h.blogPostRepo.DeleteComment(r.Context(), blogPost.ID, commentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}

		h.reload(w, r, http.StatusOK, blogPost.ID)
	}
}

// likeBlogPost toggles the caller's like
// @Summary Like or unlike blog post
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{blogPostID}/like [post]
func (h blogPostHandler) likeBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnknownUserError())
			return
		}

		blogPostID, err := resourceID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		liked, err := h.blogPostRepo.ToggleLike(r.Context(), blogPostID, user.ID)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError(fmt.Sprintf("Blog not found with id of %s", blogPostID)))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		h.logger.Debug().Str("blogPostID", blogPostID.String()).Bool("liked", liked).Msg("like toggled")
		h.reload(w, r, http.StatusOK, blogPostID)
	}
}
