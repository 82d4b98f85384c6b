package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Development fallbacks for secrets. Validate refuses them in production.
const (
	devJWTSecret          = "checkfree-dev-jwt-secret"
	devRefreshTokenSecret = "checkfree-dev-refresh-token-secret"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	FrontendURL       string `mapstructure:"FRONTEND_URL"`
	CORSOrigins       string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`

	// Google OAuth client.
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// Secrets.
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	SessionTTLHours    int    `mapstructure:"SESSION_TTL_HOURS"`
	RefreshTokenSecret string `mapstructure:"REFRESH_TOKEN_SECRET"`

	// Seller working hours.
	SellerTimezone   string `mapstructure:"SELLER_TIMEZONE"`
	WorkdayStartHour int    `mapstructure:"WORKDAY_START_HOUR"`
	WorkdayEndHour   int    `mapstructure:"WORKDAY_END_HOUR"`
	SlotMinutes      int    `mapstructure:"SLOT_MINUTES"`

	AppointmentLookaheadDays int `mapstructure:"APPOINTMENT_LOOKAHEAD_DAYS"`
}

var AppConfig Config

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "checkfree")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_TTL_HOURS", 720)
	v.SetDefault("REFRESH_TOKEN_SECRET", "")
	v.SetDefault("SELLER_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("WORKDAY_START_HOUR", 9)
	v.SetDefault("WORKDAY_END_HOUR", 21)
	v.SetDefault("SLOT_MINUTES", 30)
	v.SetDefault("APPOINTMENT_LOOKAHEAD_DAYS", 30)
}

// Load reads config.yaml (from "." or "./config") and the environment into a Config.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadConfig loads the process-wide AppConfig and exits on invalid configuration.
func LoadConfig() {
	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	AppConfig = cfg
}

// Validate checks the configuration and fills development fallbacks for
// secrets outside production.
func (c *Config) Validate() error {
	var errs []error

	if c.GoogleClientID == "" || c.GoogleClientSecret == "" {
		errs = append(errs, errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required"))
	}
	if _, err := time.LoadLocation(c.SellerTimezone); err != nil {
		errs = append(errs, fmt.Errorf("unknown SELLER_TIMEZONE %q: %w", c.SellerTimezone, err))
	}
	if c.WorkdayStartHour < 0 || c.WorkdayEndHour > 24 || c.WorkdayStartHour >= c.WorkdayEndHour {
		errs = append(errs, fmt.Errorf("invalid working hours %d-%d", c.WorkdayStartHour, c.WorkdayEndHour))
	}
	if c.SlotMinutes <= 0 {
		errs = append(errs, fmt.Errorf("SLOT_MINUTES must be positive, got %d", c.SlotMinutes))
	}
	if c.SessionTTLHours <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", c.SessionTTLHours))
	}

	if c.JWTSecret == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		} else {
			log.Println("WARNING: JWT_SECRET not set, using development secret")
			c.JWTSecret = devJWTSecret
		}
	}
	if c.RefreshTokenSecret == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("REFRESH_TOKEN_SECRET is required in production"))
		} else {
			log.Println("WARNING: REFRESH_TOKEN_SECRET not set, using development secret")
			c.RefreshTokenSecret = devRefreshTokenSecret
		}
	}

	return errors.Join(errs...)
}

// IsProduction reports whether ENV is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Location returns the sellers' working-hours time zone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.SellerTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SessionTTL is the lifetime of an issued session token.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas and falls back to
// FRONTEND_URL when it is empty.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 && c.FrontendURL != "" {
		origins = []string{strings.TrimSuffix(c.FrontendURL, "/")}
	}
	return origins
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return AppConfig.IsProduction()
}
