package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/app/auth"
	"quill/app/models"
	"quill/app/repositories/mock"
)

func TestLoginRequired(t *testing.T) {
	handler := LoginRequired(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous request redirects to login with next", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/1/edit/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/auth/login/?next=%2Fposts%2F1%2Fedit%2F", w.Header().Get("Location"))
	})

	t.Run("authenticated request passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/create/", nil)
		req = req.WithContext(WithUser(req.Context(), &models.User{ID: 1, Username: "auth"}))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSession(t *testing.T) {
	store := mock.NewStore()
	user := &models.User{Username: "auth"}
	require.NoError(t, store.Users().Create(user))
	sessions := auth.NewSessions([]byte("test-key"), time.Hour)

	var seen *models.User
	handler := Session(sessions, store.Users())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CurrentUser(r)
	}))

	t.Run("valid cookie resolves the user", func(t *testing.T) {
		token, err := sessions.Issue(user.ID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, seen)
		assert.Equal(t, "auth", seen.Username)
	})

	t.Run("missing cookie leaves the request anonymous", func(t *testing.T) {
		seen = nil
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, seen)
	})

	t.Run("forged cookie leaves the request anonymous", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "forged"})
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Nil(t, seen)
	})

	t.Run("cookie for a deleted user leaves the request anonymous", func(t *testing.T) {
		seen = nil
		token, err := sessions.Issue(999)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Nil(t, seen)
	})
}
