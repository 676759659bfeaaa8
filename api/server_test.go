package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-auth-backend/auth"
	"github.com/rpupo63/blog-auth-backend/config"
	"github.com/rpupo63/blog-auth-backend/database"
	"github.com/rpupo63/blog-auth-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testSecret = []byte("test-signing-key")

type testEnv struct {
	router *chi.Mux
	db     *gorm.DB
}

type recordingNotifier struct {
	mu     sync.Mutex
	emails []string
}

func (n *recordingNotifier) SendWelcomeEmail(user models.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, user.Email)
}

func newTestEnv(t *testing.T, opts ...RouterOption) testEnv {
	t.Helper()

	db, err := database.Open(config.Database{
		Type:       "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "api.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := config.Config{
		Environment:     "test",
		AcceptedOrigins: []string{"*"},
		Auth:            config.Auth{JWTSecret: testSecret},
	}
	return testEnv{router: newRouter(cfg, database.New(db), opts...), db: db}
}

func (e testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type postResponse struct {
	Success bool            `json:"success"`
	Data    models.BlogPost `json:"data"`
}

func (e testEnv) signup(t *testing.T, username, email string) SessionData {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[SessionResponse](t, rec).Data
}

func (e testEnv) createPost(t *testing.T, token, title string) models.BlogPost {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/blogs", token, map[string]string{
		"title":   title,
		"content": "A short post about Go.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[postResponse](t, rec).Data
}

func TestSignupAndLogin(t *testing.T) {
	notifier := &recordingNotifier{}
	env := newTestEnv(t, WithWelcomeNotifier(notifier))

	rec := env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	signup := decode[SessionResponse](t, rec)
	assert.Equal(t, "success", signup.Status)
	assert.Equal(t, "User created successfully", signup.Message)
	assert.Equal(t, "alice", signup.Data.User.Username)
	assert.Equal(t, "a@x.com", signup.Data.User.Email)
	assert.NotEmpty(t, signup.Data.Token)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Equal(t, []string{"a@x.com"}, notifier.emails)

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[SessionResponse](t, rec)
	assert.Equal(t, "Login successful", login.Message)
	assert.Equal(t, signup.Data.User.ID, login.Data.User.ID)
	assert.NotEmpty(t, login.Data.Token)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "a@x.com")

	tests := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{"wrong password", "a@x.com", "wrong-password", "password"},
		{"unknown email", "nobody@x.com", "secret1", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			})
			require.Equal(t, http.StatusUnauthorized, rec.Code)

			body := decode[ErrorResponse](t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, "INVALID_CREDENTIALS", body.Code)
			assert.Equal(t, "Invalid email or password", body.Message)
			require.NotNil(t, body.Details)
			assert.Equal(t, tt.field, body.Details.Field)
		})
	}
}

func TestSignupRejections(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "a@x.com")

	tests := []struct {
		name    string
		body    map[string]string
		code    string
		field   string
		message string
	}{
		{"duplicate email", map[string]string{"username": "bob", "email": "a@x.com", "password": "secret1"}, "USER_EXISTS", "email", "Email already exists"},
		{"duplicate username", map[string]string{"username": "alice", "email": "b@x.com", "password": "secret1"}, "USER_EXISTS", "username", "Username already exists"},
		{"both collide", map[string]string{"username": "alice", "email": "a@x.com", "password": "secret1"}, "USER_EXISTS", "email", "Email already exists"},
		{"short password", map[string]string{"username": "bob", "email": "b@x.com", "password": "12345"}, "VALIDATION_ERROR", "password", "Validation failed"},
		{"short username", map[string]string{"username": "bo", "email": "b@x.com", "password": "secret1"}, "VALIDATION_ERROR", "username", "Validation failed"},
		{"missing email", map[string]string{"username": "bob", "password": "secret1"}, "VALIDATION_ERROR", "email", "Validation failed"},
		{"malformed email", map[string]string{"username": "bob", "email": "not-an-email", "password": "secret1"}, "VALIDATION_ERROR", "email", "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/auth/signup", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
			require.NotNil(t, body.Details)
			assert.Equal(t, tt.field, body.Details.Field)
		})
	}

	rec := env.do(t, http.MethodPost, "/api/auth/signup", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[ErrorResponse](t, rec).Code)
}

func TestConcurrentSignupSameEmail(t *testing.T) {
	env := newTestEnv(t)

	const attempts = 5
	codes := make(chan int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
				"username": "user" + string(rune('a'+i)) + "x",
				"email":    "same@x.com",
				"password": "secret1",
			})
			codes <- rec.Code
		}(i)
	}
	wg.Wait()
	close(codes)

	var created, rejected int
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
			rejected++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, rejected)
}

func TestIdentityResolver(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "a@x.com")

	expired, err := auth.NewTokenService(testSecret, auth.WithClock(func() time.Time {
		return time.Now().Add(-25 * time.Hour)
	})).Issue(alice.User.ID)
	require.NoError(t, err)

	foreign, err := auth.NewTokenService([]byte("other-key")).Issue(alice.User.ID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"no header", "", "Not authorized, no token"},
		{"wrong scheme", "Token " + alice.Token, "Not authorized, no token"},
		{"empty bearer", "Bearer ", "Not authorized, no token"},
		{"garbage token", "Bearer not-a-jwt", "Not authorized, token failed"},
		{"expired token", "Bearer " + expired, "Not authorized, token failed"},
		{"foreign secret", "Bearer " + foreign, "Not authorized, token failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, "NOT_AUTHORIZED", body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}

	t.Run("deleted user", func(t *testing.T) {
		require.NoError(t, env.db.Delete(&models.User{}, "id = ?", alice.User.ID).Error)

		rec := env.do(t, http.MethodGet, "/api/users/profile", alice.Token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not authorized, user not found", decode[ErrorResponse](t, rec).Message)
	})
}

func TestBlogPostLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "a@x.com")
	bob := env.signup(t, "bob", "b@x.com")

	post := env.createPost(t, alice.Token, "Hello World")
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, models.StatusPublished, post.Status)
	assert.Equal(t, alice.User.ID, post.AuthorID)
	require.NotNil(t, post.Author)
	assert.Equal(t, "alice", post.Author.Username)
	assert.Equal(t, 1, post.ReadTime)
	assert.Empty(t, post.Likes)

	path := "/api/blogs/" + post.ID.String()

	// every read by id counts once
	first := decode[postResponse](t, env.do(t, http.MethodGet, path, "", nil)).Data
	second := decode[postResponse](t, env.do(t, http.MethodGet, path, "", nil)).Data
	assert.Equal(t, 1, first.Views)
	assert.Equal(t, 2, second.Views)

	rec := env.do(t, http.MethodPost, path+"/like", bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []uuid.UUID{bob.User.ID}, []uuid.UUID(decode[postResponse](t, rec).Data.Likes))

	rec = env.do(t, http.MethodPost, path+"/like", alice.Token, nil)
	assert.Equal(t, []uuid.UUID{alice.User.ID, bob.User.ID}, []uuid.UUID(decode[postResponse](t, rec).Data.Likes))

	rec = env.do(t, http.MethodPost, path+"/like", bob.Token, nil)
	assert.Equal(t, []uuid.UUID{alice.User.ID}, []uuid.UUID(decode[postResponse](t, rec).Data.Likes))

	update := map[string]string{"title": "Hello Again", "content": "Edited.", "status": "draft"}

	rec = env.do(t, http.MethodPut, path, bob.Token, update)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	notOwner := decode[ErrorResponse](t, rec)
	assert.Equal(t, "NOT_AUTHORIZED", notOwner.Code)
	assert.Equal(t, "User "+bob.User.ID.String()+" is not authorized to update this blog", notOwner.Message)

	rec = env.do(t, http.MethodPut, path, alice.Token, update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[postResponse](t, rec).Data
	assert.Equal(t, "Hello Again", updated.Title)
	assert.Equal(t, "hello-again", updated.Slug)
	assert.Equal(t, models.StatusDraft, updated.Status)
	assert.Equal(t, 2, updated.Views)
	assert.Equal(t, alice.User.ID, updated.AuthorID)

	rec = env.do(t, http.MethodDelete, path, bob.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodDelete, path, alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{}}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogPostValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "a@x.com")

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"missing title", map[string]string{"content": "x"}, "title"},
		{"long title", map[string]string{"title": string(long), "content": "x"}, "title"},
		{"missing content", map[string]string{"title": "t"}, "content"},
		{"bad status", map[string]string{"title": "t", "content": "x", "status": "archived"}, "status"},
		{"blank title", map[string]string{"title": "   ", "content": "x"}, "title"},
		{"blank content", map[string]string{"title": "t", "content": " \n\t "}, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/blogs", alice.Token, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
			require.NotNil(t, body.Details)
			assert.Contains(t, body.Details.Fields, tt.field)
		})
	}

	rec := env.do(t, http.MethodPost, "/api/blogs", "", map[string]string{"title": "t", "content": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/blogs", alice.Token, map[string]string{"title": "  Padded Title  ", "content": "  body  "})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	padded := decode[postResponse](t, rec).Data
	assert.Equal(t, "Padded Title", padded.Title)
	assert.Equal(t, "padded-title", padded.Slug)
	assert.Equal(t, "body", padded.Content)

	rec = env.do(t, http.MethodPut, "/api/blogs/"+padded.ID.String(), alice.Token, map[string]string{"title": "   ", "content": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[ErrorResponse](t, rec).Code)
}

func TestNotFoundBeforeOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "a@x.com")
	update := map[string]string{"title": "t", "content": "x"}

	rec := env.do(t, http.MethodPut, "/api/blogs/"+uuid.NewString(), alice.Token, update)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[ErrorResponse](t, rec).Code)

	rec = env.do(t, http.MethodGet, "/api/blogs/not-a-uuid", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resource not found", decode[ErrorResponse](t, rec).Message)

	rec = env.do(t, http.MethodPost, "/api/blogs/"+uuid.NewString()+"/like", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/nothing-here", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found - /api/nothing-here", decode[ErrorResponse](t, rec).Message)
}

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "a@x.com")
	bob := env.signup(t, "bob", "b@x.com")
	post := env.createPost(t, alice.Token, "Hello")
	path := "/api/blogs/" + post.ID.String() + "/comments"

	rec := env.do(t, http.MethodPost, path, bob.Token, map[string]string{"content": "first"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	time.Sleep(10 * time.Millisecond)
	rec = env.do(t, http.MethodPost, path, alice.Token, map[string]string{"content": "second"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	comments := decode[postResponse](t, rec).Data.Comments
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)
	require.NotNil(t, comments[1].User)
	assert.Equal(t, "bob", comments[1].User.Username)

	bobsComment := comments[1].ID

	for _, blank := range []string{"", "   ", "  \n "} {
		rec = env.do(t, http.MethodPost, path, bob.Token, map[string]string{"content": blank})
		require.Equal(t, http.StatusBadRequest, rec.Code, "content %q", blank)
		body := decode[ErrorResponse](t, rec)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		assert.Equal(t, "content", body.Details.Field)
	}

	rec = env.do(t, http.MethodDelete, path+"/"+bobsComment.String(), alice.Token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User "+alice.User.ID.String()+" is not authorized to delete this comment", decode[ErrorResponse](t, rec).Message)

	rec = env.do(t, http.MethodDelete, path+"/"+uuid.NewString(), bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, path+"/"+bobsComment.String(), bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	remaining := decode[postResponse](t, rec).Data.Comments
	require.Len(t, remaining, 1)
	assert.Equal(t, "second", remaining[0].Content)
}

func TestListBlogPosts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "a@x.com")

	rec := env.do(t, http.MethodGet, "/api/blogs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	empty := decode[BlogPostCollection](t, rec)
	assert.True(t, empty.Success)
	assert.Equal(t, 0, empty.Count)

	env.createPost(t, alice.Token, "First")
	time.Sleep(10 * time.Millisecond)
	env.createPost(t, alice.Token, "Second")

	list := decode[BlogPostCollection](t, env.do(t, http.MethodGet, "/api/blogs", "", nil))
	assert.Equal(t, 2, list.Count)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "Second", list.Data[0].Title)
	require.NotNil(t, list.Data[0].Author)
	assert.Equal(t, "alice", list.Data[0].Author.Username)
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "a@x.com")
	env.signup(t, "bob", "b@x.com")

	rec := env.do(t, http.MethodGet, "/api/users/profile", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	profile := decode[struct {
		Data models.User `json:"data"`
	}](t, rec).Data
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, models.DefaultProfilePicture, profile.ProfilePicture)

	rec = env.do(t, http.MethodPut, "/api/users/profile", alice.Token, map[string]string{"username": "bob"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	conflict := decode[ErrorResponse](t, rec)
	assert.Equal(t, "USER_EXISTS", conflict.Code)
	assert.Equal(t, "username", conflict.Details.Field)

	rec = env.do(t, http.MethodPut, "/api/users/profile", alice.Token, map[string]string{
		"username":       "alice2",
		"profilePicture": "me.png",
		"bio":            "hello",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// profile changes must leave the stored hash usable
	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice2", decode[SessionResponse](t, rec).Data.User.Username)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "a@x.com")

	rec := env.do(t, http.MethodPut, "/api/users/profile/password", alice.Token, map[string]string{
		"currentPassword": "wrong-one",
		"newPassword":     "newsecret",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	wrong := decode[ErrorResponse](t, rec)
	assert.Equal(t, "INVALID_CREDENTIALS", wrong.Code)
	assert.Equal(t, "currentPassword", wrong.Details.Field)

	rec = env.do(t, http.MethodPut, "/api/users/profile/password", alice.Token, map[string]string{
		"currentPassword": "secret1",
		"newPassword":     "newsecret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "newsecret"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rec).Status)
}

func TestCORSPreflight(t *testing.T) {
	db, err := database.Open(config.Database{Type: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "cors.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	router := newRouter(config.Config{
		AcceptedOrigins: []string{"https://blog.example.com"},
		Auth:            config.Auth{JWTSecret: testSecret},
	}, database.New(db))

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/blogs", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("https://evil.example.com")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "CORS_BLOCKED", decode[ErrorResponse](t, rec).Code)

	rec = preflight("https://blog.example.com")
	assert.Equal(t, "https://blog.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSWildcardWithoutCredentials(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/blogs", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestAllowsAnyOrigin(t *testing.T) {
	assert.True(t, allowsAnyOrigin([]string{"*"}))
	assert.True(t, allowsAnyOrigin([]string{"https://a.example.com", "*"}))
	assert.False(t, allowsAnyOrigin([]string{"https://a.example.com"}))
	assert.False(t, allowsAnyOrigin(nil))
}
