package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenstudio/booking-api/config"
	"github.com/lumenstudio/booking-api/internal/models"
	apperrors "github.com/lumenstudio/booking-api/pkg/errors"
	"github.com/lumenstudio/booking-api/pkg/jwt"
	"github.com/lumenstudio/booking-api/pkg/logger"
	"github.com/lumenstudio/booking-api/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var (
	ErrMissingAuthCode = fmt.Errorf("authorization code required: %w", apperrors.ErrInvalidInput)
	ErrUnverifiedEmail = fmt.Errorf("google account email is not verified: %w", apperrors.ErrUnauthorized)
	ErrInvalidSession  = fmt.Errorf("invalid session: %w", apperrors.ErrUnauthorized)
)

// ProfileFetcher loads the signed-in Google account's profile
type ProfileFetcher func(ctx context.Context, ts oauth2.TokenSource) (*models.GoogleProfile, error)

// AuthService delegates sign-in to Google and keeps the result in a signed cookie token.
// It stores nothing server side.
type AuthService struct {
	oauth        *oauth2.Config
	tokens       *jwt.TokenManager
	fetchProfile ProfileFetcher
}

// AuthOption customizes an AuthService
type AuthOption func(*AuthService)

// WithEndpoint overrides Google's OAuth endpoints
func WithEndpoint(endpoint oauth2.Endpoint) AuthOption {
	return func(s *AuthService) { s.oauth.Endpoint = endpoint }
}

// WithProfileFetcher overrides how the user profile is loaded after the code exchange
func WithProfileFetcher(f ProfileFetcher) AuthOption {
	return func(s *AuthService) { s.fetchProfile = f }
}

// NewAuthService creates the Google sign-in service
func NewAuthService(googleCfg config.GoogleAuthConfig, sessionCfg config.SessionConfig, opts ...AuthOption) *AuthService {
	s := &AuthService{
		oauth: &oauth2.Config{
			ClientID:     googleCfg.ClientID,
			ClientSecret: googleCfg.ClientSecret,
			RedirectURL:  googleCfg.RedirectURL,
			Scopes: []string{
				googleoauth.OpenIDScope,
				googleoauth.UserinfoEmailScope,
				googleoauth.UserinfoProfileScope,
			},
			Endpoint: google.Endpoint,
		},
		tokens: jwt.NewTokenManager(
			sessionCfg.Secret,
			sessionCfg.Issuer,
			time.Duration(sessionCfg.TTLHours)*time.Hour,
		),
		fetchProfile: fetchGoogleProfile,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SignInURL returns the Google consent URL for the given anti-forgery state
func (s *AuthService) SignInURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// CompleteSignIn exchanges the callback code and issues a session token
func (s *AuthService) CompleteSignIn(ctx context.Context, code string) (*models.Session, string, error) {
	if code == "" {
		metrics.SignIns.WithLabelValues("missing_code").Inc()
		return nil, "", ErrMissingAuthCode
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		metrics.SignIns.WithLabelValues("exchange_failed").Inc()
		logger.Warn("Google code exchange failed", zap.Error(err))
		return nil, "", apperrors.UpstreamError("google oauth", err)
	}

	profile, err := s.fetchProfile(ctx, s.oauth.TokenSource(ctx, token))
	if err != nil {
		metrics.SignIns.WithLabelValues("profile_failed").Inc()
		logger.Warn("Google profile lookup failed", zap.Error(err))
		return nil, "", apperrors.UpstreamError("google userinfo", err)
	}

	if profile.Email == "" || !profile.VerifiedEmail {
		metrics.SignIns.WithLabelValues("unverified").Inc()
		return nil, "", ErrUnverifiedEmail
	}

	signed, err := s.tokens.GenerateToken(profile.ID, profile.Email, profile.Name, profile.Picture)
	if err != nil {
		metrics.SignIns.WithLabelValues("error").Inc()
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	session, err := s.ValidateSession(signed)
	if err != nil {
		metrics.SignIns.WithLabelValues("error").Inc()
		return nil, "", err
	}

	metrics.SignIns.WithLabelValues("success").Inc()
	logger.Info("User signed in", zap.String("user_id", session.UserID))

	return session, signed, nil
}

// ValidateSession parses a session token
func (s *AuthService) ValidateSession(token string) (*models.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	return &models.Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Picture:   claims.Picture,
		ExpiresAt: claims.ExpiresAt.Unix(),
		IssuedAt:  claims.IssuedAt.Unix(),
	}, nil
}

// SessionTTL is how long an issued session stays valid
func (s *AuthService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

func fetchGoogleProfile(ctx context.Context, ts oauth2.TokenSource) (*models.GoogleProfile, error) {
	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo client: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}

	return &models.GoogleProfile{
		ID:            info.Id,
		Email:         info.Email,
		VerifiedEmail: info.VerifiedEmail != nil && *info.VerifiedEmail,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}
