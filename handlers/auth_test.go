package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkfree/models"
	"checkfree/services/auth"
	"checkfree/services/user"
	"checkfree/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth struct {
	auth.AuthService
	loginErr  error
	result    *auth.LoginResult
	loggedOut []string
	logoutErr error
	beginErr  error
}

func (s *stubAuth) BeginLogin(context.Context) (string, error) {
	return "https://accounts.google.com/o/oauth2/auth?state=abc", s.beginErr
}

func (s *stubAuth) CompleteLogin(context.Context, string, string) (*auth.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.result, nil
}

func (s *stubAuth) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return s.logoutErr
}

func newAuthRouter(s *stubAuth) *gin.Engine {
	h := NewAuthHandler(s, "http://localhost:3000/", time.Hour, true)
	r := gin.New()
	r.GET("/login", h.GoogleLoginHandler)
	r.GET("/callback", h.GoogleCallbackHandler)
	r.POST("/logout", h.LogoutHandler)
	return r
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestGoogleLoginHandler(t *testing.T) {
	w := httptest.NewRecorder()
	newAuthRouter(&stubAuth{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=abc", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	newAuthRouter(&stubAuth{beginErr: errors.New("redis down")}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGoogleCallbackHandler_Redirect(t *testing.T) {
	usr := &models.User{ID: primitive.NewObjectID(), Email: "ana@example.com"}
	s := &stubAuth{result: &auth.LoginResult{Token: "session-token", User: usr}}

	w := httptest.NewRecorder()
	newAuthRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback?code=c&state=s", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/auth/callback", w.Header().Get("Location"))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, "session-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestGoogleCallbackHandler_JSON(t *testing.T) {
	usr := &models.User{ID: primitive.NewObjectID(), Email: "ana@example.com", RefreshToken: "encrypted"}
	s := &stubAuth{result: &auth.LoginResult{Token: "session-token", User: usr}}

	req := httptest.NewRequest(http.MethodGet, "/callback?code=c&state=s", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	newAuthRouter(s).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "session-token", body["token"])
	assert.Equal(t, "ana@example.com", body["user"].(map[string]any)["email"])
	assert.NotContains(t, w.Body.String(), "encrypted")
}

func TestGoogleCallbackHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"declined", "?error=access_denied", nil, http.StatusBadRequest},
		{"bad state", "?code=c&state=s", auth.ErrInvalidState, http.StatusBadRequest},
		{"no refresh token", "?code=c&state=s", user.ErrNoRefreshToken, http.StatusBadRequest},
		{"upstream", "?code=c&state=s", errors.New("exchange failed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newAuthRouter(&stubAuth{loginErr: tt.err}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback"+tt.query, nil))
			assert.Equal(t, tt.status, w.Code)
			assert.Nil(t, sessionCookie(w))
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	s := &stubAuth{}
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "session-token"})
	w := httptest.NewRecorder()
	newAuthRouter(s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"session-token"}, s.loggedOut)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)

	// Without a session there is nothing to revoke.
	s = &stubAuth{}
	w = httptest.NewRecorder()
	newAuthRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.loggedOut)

	s = &stubAuth{logoutErr: errors.New("redis down")}
	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer t")
	w = httptest.NewRecorder()
	newAuthRouter(s).ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
