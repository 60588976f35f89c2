package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenstudio/booking-api/internal/models"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "studio_session"

	// SessionContextKey is the key used to store session in context
	SessionContextKey = "studio_session"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// SessionValidator turns a session cookie value into a session
type SessionValidator interface {
	ValidateSession(token string) (*models.Session, error)
}

// CookieSettings are the attributes shared by every cookie the service sets
type CookieSettings struct {
	Domain string
	Secure bool
}

// OptionalSessionMiddleware loads the session when a valid cookie is present.
// Requests without one pass through untouched; a bad cookie is cleared.
func OptionalSessionMiddleware(validator SessionValidator, cookies CookieSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		session, err := validator.ValidateSession(cookie)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck
			ClearSessionCookie(c, cookies)
			c.Next()
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// RequireSessionMiddleware rejects requests that have no session in context
func RequireSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetSession(c); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession extracts session from context
func GetSession(c *gin.Context) (*models.Session, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.Session)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}

// SetSessionCookie sets the session cookie
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, cookies CookieSettings) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		int(ttl.Seconds()),
		"/",
		cookies.Domain,
		cookies.Secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie clears the session cookie
func ClearSessionCookie(c *gin.Context, cookies CookieSettings) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		cookies.Domain,
		cookies.Secure,
		true, // HttpOnly
	)
}
