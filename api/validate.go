package api

import (
	"encoding/json"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/rpupo63/blog-auth-backend/errs"
	"github.com/rpupo63/blog-auth-backend/models"
)

const maxRequestBodyBytes = 1 << 20

type validatable interface {
	Validate() error
}

// normalizer is implemented by requests that clean their fields before validation.
type normalizer interface {
	normalize()
}

// decodeAndValidate reads a JSON body into dst and runs its rules before the
// handler sees it.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst validatable) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return errs.NewMalformedPayloadError(err)
	}
	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}
	return dst.Validate()
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("Please add a username")),
		validation.Field(&r.Email,
			validation.Required.Error("Please add an email"),
			is.Email.Error("Please add a valid email")),
		validation.Field(&r.Password, validation.Required.Error("Please add a password")),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Please add an email"),
			is.Email.Error("Please add a valid email")),
		validation.Field(&r.Password, validation.Required.Error("Please add a password")),
	)
}

type blogPostRequest struct {
	Title   string            `json:"title"`
	Content string            `json:"content"`
	Status  models.PostStatus `json:"status"`
}

func (r *blogPostRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
}

func (r blogPostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Please add a title"),
			validation.RuneLength(0, 100).Error("Title can not be more than 100 characters")),
		validation.Field(&r.Content, validation.Required.Error("Please add content")),
		validation.Field(&r.Status,
			validation.In(models.StatusDraft, models.StatusPublished).Error("Status must be draft or published")),
	)
}

type commentRequest struct {
	Content string `json:"content"`
}

func (r *commentRequest) normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

func (r commentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("Please add a comment"),
			validation.RuneLength(0, 500).Error("Comment can not be more than 500 characters")),
	)
}

type profileRequest struct {
	Username       string  `json:"username"`
	ProfilePicture string  `json:"profilePicture"`
	Bio            *string `json:"bio"`
}

func (r profileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.RuneLength(3, 0).Error("Username must be at least 3 characters long")),
		validation.Field(&r.Bio,
			validation.RuneLength(0, 500).Error("Bio can not be more than 500 characters")),
	)
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r passwordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required.Error("Please add your current password")),
		validation.Field(&r.NewPassword,
			validation.Required.Error("Please add a password"),
			validation.RuneLength(6, 0).Error("Password must be at least 6 characters long")),
	)
}
