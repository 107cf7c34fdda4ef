package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-blog-api/internal/config"
	"go-blog-api/internal/handler"
	"go-blog-api/internal/middleware"
	"go-blog-api/internal/model"
	"go-blog-api/internal/router"
	"go-blog-api/internal/security"
	"go-blog-api/internal/service"
)

// In-memory stores standing in for the pgx repositories. They reproduce
// the repositories' observable contract: unique emails, exact-match
// lookup, and the ownership gate on blog mutation.

type memUserStore struct {
	mu    sync.Mutex
	seq   int64
	users map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]model.User{}}
}

func (s *memUserStore) Create(_ context.Context, email string, passwordHash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return model.User{}, model.ErrUserAlreadyExists
	}

	s.seq++
	u := model.User{ID: s.seq, Email: email, PasswordHash: passwordHash, IsActive: true}
	s.users[email] = u
	return u, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[email]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

type memBlogStore struct {
	mu    sync.Mutex
	seq   int64
	blogs map[int64]model.Blog
}

func newMemBlogStore() *memBlogStore {
	return &memBlogStore{blogs: map[int64]model.Blog{}}
}

func (s *memBlogStore) Create(_ context.Context, b model.Blog) (model.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	b.ID = s.seq
	b.IsActive = true
	b.CreatedAt = time.Now().UTC()
	s.blogs[b.ID] = b
	return b, nil
}

func (s *memBlogStore) Get(_ context.Context, id int64) (model.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, exists := s.blogs[id]
	if !exists {
		return model.Blog{}, model.ErrBlogNotFound
	}
	return b, nil
}

func (s *memBlogStore) ListActive(_ context.Context) ([]model.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blogs := make([]model.Blog, 0)
	for id := int64(1); id <= s.seq; id++ {
		if b, exists := s.blogs[id]; exists && b.IsActive {
			blogs = append(blogs, b)
		}
	}
	return blogs, nil
}

func (s *memBlogStore) Update(_ context.Context, id int64, title string, content string, actingAuthorID int64) (model.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, exists := s.blogs[id]
	if !exists {
		return model.Blog{}, model.ErrBlogNotFound
	}
	if b.AuthorID != actingAuthorID {
		return model.Blog{}, model.ErrForbidden
	}

	b.Title = title
	b.Content = content
	s.blogs[id] = b
	return b, nil
}

func (s *memBlogStore) Delete(_ context.Context, id int64, actingAuthorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, exists := s.blogs[id]
	if !exists {
		return model.ErrBlogNotFound
	}
	if b.AuthorID != actingAuthorID {
		return model.ErrForbidden
	}

	delete(s.blogs, id)
	return nil
}

// newTestServer wires the real services, middleware and router over the
// in-memory stores.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		ServerPort:      "8080",
		RequestTimeout:  10 * time.Second,
		SecretKey:       "test-secret",
		Algorithm:       "HS256",
		AccessTokenTTL:  time.Hour,
		DefaultAuthorID: 1,
		CORSOrigins:     []string{"*"},
	}

	tokenService := security.NewTokenService(cfg.SecretKey, cfg.AccessTokenTTL)
	authService := service.NewAuthService(newMemUserStore(), tokenService)
	blogService := service.NewBlogService(newMemBlogStore())

	authMiddleware := middleware.NewAuthMiddleware(authService)
	userHandler := handler.NewUserHandler(authService)
	loginHandler := handler.NewLoginHandler(authService)
	blogHandler := handler.NewBlogHandler(blogService, cfg.DefaultAuthorID)

	server := httptest.NewServer(router.New(cfg, authMiddleware, userHandler, loginHandler, blogHandler))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method string, rawURL string, payload any, token string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, rawURL, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func registerUser(t *testing.T, server *httptest.Server, email string, password string) {
	t.Helper()

	resp := doJSON(t, http.MethodPost, server.URL+"/users/", model.CreateUserRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func loginUser(t *testing.T, server *httptest.Server, email string, password string) string {
	t.Helper()

	form := url.Values{"username": {email}, "password": {password}}
	resp, err := http.Post(server.URL+"/token", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createBlog(t *testing.T, server *httptest.Server, title string, content string, token string) map[string]any {
	t.Helper()

	resp := doJSON(t, http.MethodPost, server.URL+"/blogs/", model.CreateBlogRequest{Title: title, Content: content}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody(t, resp)
}
