package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumenstudio/booking-api/internal/middleware"
	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/lumenstudio/booking-api/internal/services"
	apperrors "github.com/lumenstudio/booking-api/pkg/errors"
	"github.com/lumenstudio/booking-api/pkg/jwt"
)

const (
	oauthStateCookieName = "studio_oauth_state"
	oauthStateTTLSeconds = 10 * 60
)

// AuthHandler handles the Google sign-in endpoints
type AuthHandler struct {
	service services.AuthServiceInterface
	cookies middleware.CookieSettings
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface, cookies middleware.CookieSettings) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookies: cookies,
	}
}

// SignIn handles GET /api/v1/auth/google
// Redirects to Google with a fresh anti-forgery state
func (h *AuthHandler) SignIn(c *gin.Context) {
	state := uuid.NewString()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, oauthStateTTLSeconds, "/api/v1/auth", h.cookies.Domain, h.cookies.Secure, true)

	c.Redirect(http.StatusFound, h.service.SignInURL(state))
}

// Callback handles GET /api/v1/auth/google/callback
// Checks the state, completes the exchange and sets the session cookie
func (h *AuthHandler) Callback(c *gin.Context) {
	expected, _ := c.Cookie(oauthStateCookieName) //nolint:errcheck
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth", h.cookies.Domain, h.cookies.Secure, true)

	if providerErr := c.Query("error"); providerErr != "" {
		respondError(c, http.StatusUnauthorized, "Sign-in was cancelled", errors.New("google: "+providerErr))
		return
	}

	state := c.Query("state")
	if expected == "" || state == "" || !jwt.TimingSafeCompare(state, expected) {
		respondError(c, http.StatusBadRequest, "Invalid sign-in state", errors.New("oauth state mismatch"))
		return
	}

	_, token, err := h.service.CompleteSignIn(c.Request.Context(), c.Query("code"))
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, "Invalid sign-in request", err)
		case apperrors.Is(err, apperrors.ErrUnauthorized):
			respondError(c, http.StatusForbidden, "Google account email is not verified", err)
		case apperrors.Is(err, apperrors.ErrUpstream):
			respondError(c, http.StatusBadGateway, "Google sign-in failed", err)
		default:
			respondError(c, http.StatusInternalServerError, "Sign-in failed", err)
		}
		return
	}

	middleware.SetSessionCookie(c, token, h.service.SessionTTL(), h.cookies)
	c.Redirect(http.StatusFound, "/")
}

// GetSession handles GET /api/v1/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.SessionResponse{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		Authenticated: true,
		Session:       session,
	})
}

// SignOut handles POST /api/v1/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookies)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
