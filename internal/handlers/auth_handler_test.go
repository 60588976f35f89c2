package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenstudio/booking-api/internal/middleware"
	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/lumenstudio/booking-api/internal/services"
	apperrors "github.com/lumenstudio/booking-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(service *MockAuthService) *gin.Engine {
	handler := NewAuthHandler(service, middleware.CookieSettings{})
	router := gin.New()
	router.Use(middleware.OptionalSessionMiddleware(service, middleware.CookieSettings{}))
	auth := router.Group("/api/v1/auth")
	auth.GET("/google", handler.SignIn)
	auth.GET("/google/callback", handler.Callback)
	auth.GET("/session", handler.GetSession)
	auth.POST("/sign-out", handler.SignOut)
	return router
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func callback(router *gin.Engine, query, stateCookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?"+query, http.NoBody)
	if stateCookie != "" {
		req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: stateCookie})
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_SignInRedirectsWithState(t *testing.T) {
	service := new(MockAuthService)
	var state string
	service.On("SignInURL", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		state = args.String(0)
	}).Return("https://accounts.google.com/o/oauth2/auth?state=x").Once()

	w := httptest.NewRecorder()
	newAuthRouter(service).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google", http.NoBody))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=x", w.Header().Get("Location"))
	cookie := findCookie(w, oauthStateCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, state, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestAuthHandler_CallbackSetsSession(t *testing.T) {
	service := new(MockAuthService)
	service.On("CompleteSignIn", mock.Anything, "auth-code").
		Return(&models.Session{UserID: "42"}, "signed-token", nil).Once()
	service.On("SessionTTL").Return(7 * 24 * time.Hour)

	w := callback(newAuthRouter(service), "state=s-1&code=auth-code", "s-1")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	session := findCookie(w, middleware.SessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "signed-token", session.Value)
	assert.Equal(t, 604800, session.MaxAge)
	service.AssertExpectations(t)
}

func TestAuthHandler_CallbackRejectsStateMismatch(t *testing.T) {
	service := new(MockAuthService)
	router := newAuthRouter(service)

	for _, tc := range []struct{ query, cookie string }{
		{"state=s-1&code=c", "s-2"},
		{"state=s-1&code=c", ""},
		{"code=c", "s-1"},
	} {
		w := callback(router, tc.query, tc.cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc)
	}
	service.AssertNotCalled(t, "CompleteSignIn", mock.Anything, mock.Anything)
}

func TestAuthHandler_CallbackProviderError(t *testing.T) {
	service := new(MockAuthService)
	w := callback(newAuthRouter(service), "error=access_denied&state=s-1", "s-1")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	service.AssertNotCalled(t, "CompleteSignIn", mock.Anything, mock.Anything)
}

func TestAuthHandler_CallbackErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{services.ErrMissingAuthCode, http.StatusBadRequest},
		{services.ErrUnverifiedEmail, http.StatusForbidden},
		{apperrors.UpstreamError("google oauth", errors.New("invalid_grant")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			service := new(MockAuthService)
			service.On("CompleteSignIn", mock.Anything, "c").Return(nil, "", tt.err).Once()

			w := callback(newAuthRouter(service), "state=s-1&code=c", "s-1")

			assert.Equal(t, tt.status, w.Code)
			assert.Nil(t, findCookie(w, middleware.SessionCookieName))
		})
	}
}

func TestAuthHandler_GetSession(t *testing.T) {
	service := new(MockAuthService)
	service.On("ValidateSession", "signed-token").
		Return(&models.Session{UserID: "42", Email: "ada@example.com", Name: "Ada"}, nil).Once()
	router := newAuthRouter(service)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", http.NoBody))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", http.NoBody)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "signed-token"})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"ada@example.com"`)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestAuthHandler_SignOut(t *testing.T) {
	service := new(MockAuthService)

	w := httptest.NewRecorder()
	newAuthRouter(service).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-out", strings.NewReader("")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookieName+"=;")
}
