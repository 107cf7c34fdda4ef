package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"go-blog-api/internal/model"
)

type stubResolver struct {
	user model.User
	err  error
}

func (s *stubResolver) CurrentUser(_ context.Context, _ string) (model.User, error) {
	return s.user, s.err
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	alice := model.User{ID: 7, Email: "alice@example.com", IsActive: true}

	okHandler := func(t *testing.T) (http.Handler, *model.User) {
		var seen model.User
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			require.True(t, ok)
			seen = user
			w.WriteHeader(http.StatusNoContent)
		})
		return h, &seen
	}

	t.Run("missing header", func(t *testing.T) {
		m := NewAuthMiddleware(&stubResolver{user: alice})
		rec := httptest.NewRecorder()
		m.RequireAuth(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("non-bearer header", func(t *testing.T) {
		m := NewAuthMiddleware(&stubResolver{user: alice})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		m.RequireAuth(http.NotFoundHandler()).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		m := NewAuthMiddleware(&stubResolver{err: model.ErrInvalidToken})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		m.RequireAuth(http.NotFoundHandler()).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown subject gets the same 401 body as an invalid token", func(t *testing.T) {
		m := NewAuthMiddleware(&stubResolver{err: model.ErrUserNotFound})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		recNotFound := httptest.NewRecorder()
		m.RequireAuth(http.NotFoundHandler()).ServeHTTP(recNotFound, req)

		m = NewAuthMiddleware(&stubResolver{err: model.ErrInvalidToken})
		recInvalid := httptest.NewRecorder()
		m.RequireAuth(http.NotFoundHandler()).ServeHTTP(recInvalid, req)

		require.Equal(t, http.StatusUnauthorized, recNotFound.Code)
		require.Equal(t, recInvalid.Body.String(), recNotFound.Body.String())
	})

	t.Run("valid token injects the user", func(t *testing.T) {
		m := NewAuthMiddleware(&stubResolver{user: alice})
		next, seen := okHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		m.RequireAuth(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, alice, *seen)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Parallel()

	alice := model.User{ID: 7, Email: "alice@example.com", IsActive: true}

	t.Run("no token passes through anonymously", func(t *testing.T) {
		m := NewAuthMiddleware(&stubResolver{user: alice})
		rec := httptest.NewRecorder()
		m.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := UserFromContext(r.Context())
			require.False(t, ok)
			w.WriteHeader(http.StatusNoContent)
		})).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("invalid token still passes through", func(t *testing.T) {
		m := NewAuthMiddleware(&stubResolver{err: model.ErrInvalidToken})
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		m.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := UserFromContext(r.Context())
			require.False(t, ok)
			w.WriteHeader(http.StatusNoContent)
		})).ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("valid token injects the user", func(t *testing.T) {
		m := NewAuthMiddleware(&stubResolver{user: alice})
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		m.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			require.True(t, ok)
			require.Equal(t, alice, user)
			w.WriteHeader(http.StatusNoContent)
		})).ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}
