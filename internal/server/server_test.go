package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/posts-gateway/backend/internal/config"
	"github.com/emilythestrangee/posts-gateway/backend/internal/models"
)

type memoryPosts struct {
	posts []models.Post
}

func (m *memoryPosts) ListPosts(context.Context) ([]models.Post, error) {
	return m.posts, nil
}

func (m *memoryPosts) CreatePost(_ context.Context, title, body, userID string) (*models.Post, error) {
	post := models.Post{ID: uuid.New(), Title: title, Body: body, UserID: userID, CreatedAt: time.Now().UTC()}
	m.posts = append([]models.Post{post}, m.posts...)
	return &post, nil
}

func testConfig() *config.Config {
	gin.SetMode(gin.TestMode)
	return &config.Config{
		App: config.App{Env: config.EnvDevelopment},
		HTTPServer: config.HTTPServer{
			Port:         "5000",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
			AllowOrigins: []string{"*"},
		},
	}
}

func TestNewServer(t *testing.T) {
	srv := New(testConfig(), &memoryPosts{}, time.Now()).NewServer()

	assert.Equal(t, "0.0.0.0:5000", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.NotNil(t, srv.Handler)
}

func TestUnknownRoutes(t *testing.T) {
	r := New(testConfig(), &memoryPosts{}, time.Now()).RegisterRoutes()
	want := []any{"GET /api/health", "GET /api/posts", "POST /api/posts"}

	for _, target := range []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodGet, "/api/users"},
		{http.MethodDelete, "/api/posts"},
		{http.MethodPut, "/api/posts/1"},
		{http.MethodGet, "/api/posts/"},
		{http.MethodPost, "/api/posts/"},
		{http.MethodGet, "/api/health/"},
		{http.MethodGet, "/API/posts"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(target.method, target.path, nil))

		assert.Equal(t, http.StatusNotFound, w.Code, target.path)
		assert.Empty(t, w.Header().Get("Location"), target.path)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Route not found", body["error"])
		assert.Equal(t, want, body["availableRoutes"])
	}
}

func TestCreateThenList(t *testing.T) {
	r := New(testConfig(), &memoryPosts{}, time.Now()).RegisterRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title":"Hi","body":"World","user_id":"u1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.CreatePostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.NotEqual(t, uuid.Nil, created.Data.ID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var listed models.ListPostsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Count)
	assert.Equal(t, created.Data.ID, listed.Data[0].ID)
}

func TestCORSPreflight(t *testing.T) {
	r := New(testConfig(), &memoryPosts{}, time.Now()).RegisterRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateRequiresTokenWhenSecretSet(t *testing.T) {
	conf := testConfig()
	conf.JWTSecret = "s3cret"
	r := New(conf, &memoryPosts{}, time.Now()).RegisterRoutes()

	payload := `{"title":"Hi","body":"World","user_id":"u1"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(payload))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// reads stay public
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
