package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultIntakeURL            = "http://localhost:5678/webhook-test/appointment"
	defaultMonthAppointmentsURL = "http://localhost:5678/webhook/month-appointments"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Webhooks      WebhooksConfig
	Cache         CacheConfig
	ReCAPTCHA     ReCAPTCHAConfig
	GoogleAuth    GoogleAuthConfig
	Session       SessionConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

// WebhooksConfig points at the external automation service that owns appointments.
type WebhooksConfig struct {
	IntakeURL            string
	MonthAppointmentsURL string
	TimeoutSeconds       int
}

type CacheConfig struct {
	AppointmentsTTLSeconds int // 0 disables the appointments cache
}

type ReCAPTCHAConfig struct {
	SecretKey string
	SiteKey   string
}

type GoogleAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type SessionConfig struct {
	Secret       string
	Issuer       string
	TTLHours     int
	CookieDomain string
	CookieSecure bool
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("WEBHOOK_INTAKE_URL", defaultIntakeURL)
	v.SetDefault("WEBHOOK_MONTH_APPOINTMENTS_URL", defaultMonthAppointmentsURL)
	v.SetDefault("WEBHOOK_TIMEOUT_SECONDS", 30)
	v.SetDefault("APPOINTMENTS_CACHE_TTL", 60)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "") // tracing off unless set
	v.SetDefault("O11Y_SERVICE_NAME", "studio-booking")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "studio")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "studio-booking")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// 7 days, same as the identity provider's cookie cache
	v.SetDefault("SESSION_TTL_HOURS", 7*24)
	v.SetDefault("SESSION_ISSUER", "studio-booking")
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // .env is optional

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Webhooks: WebhooksConfig{
			IntakeURL:            v.GetString("WEBHOOK_INTAKE_URL"),
			MonthAppointmentsURL: v.GetString("WEBHOOK_MONTH_APPOINTMENTS_URL"),
			TimeoutSeconds:       v.GetInt("WEBHOOK_TIMEOUT_SECONDS"),
		},
		Cache: CacheConfig{
			AppointmentsTTLSeconds: v.GetInt("APPOINTMENTS_CACHE_TTL"),
		},
		ReCAPTCHA: ReCAPTCHAConfig{
			SecretKey: v.GetString("RECAPTCHA_SECRET_KEY"),
			SiteKey:   v.GetString("RECAPTCHA_SITE_KEY"),
		},
		GoogleAuth: GoogleAuthConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("SESSION_SECRET"),
			Issuer:       v.GetString("SESSION_ISSUER"),
			TTLHours:     v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain: v.GetString("COOKIE_DOMAIN"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping empty entries
func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Webhooks.IntakeURL == "" {
		return fmt.Errorf("WEBHOOK_INTAKE_URL is required")
	}
	if c.Webhooks.MonthAppointmentsURL == "" {
		return fmt.Errorf("WEBHOOK_MONTH_APPOINTMENTS_URL is required")
	}
	if c.Webhooks.TimeoutSeconds <= 0 {
		return fmt.Errorf("WEBHOOK_TIMEOUT_SECONDS must be positive")
	}

	if c.Cache.AppointmentsTTLSeconds < 0 {
		return fmt.Errorf("APPOINTMENTS_CACHE_TTL must not be negative")
	}

	if c.GoogleAuthEnabled() && c.GoogleAuth.RedirectURL == "" {
		return fmt.Errorf("GOOGLE_REDIRECT_URL is required when Google sign-in is configured")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// GoogleAuthEnabled reports whether sign-in routes should be mounted.
// Both OAuth credentials and a session signing secret are needed.
func (c *Config) GoogleAuthEnabled() bool {
	return c.GoogleAuth.ClientID != "" && c.GoogleAuth.ClientSecret != "" && c.Session.Secret != ""
}

// CaptchaEnabled reports whether booking submissions must carry a reCAPTCHA token
func (c *Config) CaptchaEnabled() bool {
	return c.ReCAPTCHA.SecretKey != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
