package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings. It is built once at startup and passed
// explicitly to the components that need it.
type Config struct {
	AppPort     string
	CORSOrigins string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret    string
	JWTTTL       time.Duration
	CookieSecure bool

	// AuthProtectCart requires a valid token on the cart routes.
	AuthProtectCart bool
	// AuthEnforceAdminRole requires role "admin" on the catalog admin routes.
	AuthEnforceAdminRole bool

	RabbitMQURL      string
	RabbitMQExchange string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	LogLevel string
	LogFile  string
}

// SetDefaults registers the default value of every known key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "shopcart.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "60m")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("AUTH_PROTECT_CART", false)
	v.SetDefault("AUTH_ENFORCE_ADMIN_ROLE", false)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "shop")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
}

// Load reads an optional .env file, then environment variables, on top of
// the defaults.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// A missing .env is normal outside local development.
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	ttl, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_TTL %q: %w", v.GetString("JWT_TTL"), err)
	}

	cfg := Config{
		AppPort:              v.GetString("APP_PORT"),
		CORSOrigins:          v.GetString("CORS_ORIGINS"),
		DatabaseDriver:       strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:          v.GetString("DATABASE_DSN"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTTTL:               ttl,
		CookieSecure:         v.GetBool("COOKIE_SECURE"),
		AuthProtectCart:      v.GetBool("AUTH_PROTECT_CART"),
		AuthEnforceAdminRole: v.GetBool("AUTH_ENFORCE_ADMIN_ROLE"),
		RabbitMQURL:          v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:     v.GetString("RABBITMQ_EXCHANGE"),
		CloudinaryCloudName:  v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:     v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:  v.GetString("CLOUDINARY_API_SECRET"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFile:              v.GetString("LOG_FILE"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable default.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	// Credentialed CORS cannot be combined with a wildcard origin.
	if c.CORSOrigins == "" {
		return fmt.Errorf("CORS_ORIGINS is required")
	}
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if strings.TrimSpace(origin) == "*" {
			return fmt.Errorf("CORS_ORIGINS must list explicit origins, not %q", "*")
		}
	}
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	return nil
}

// CloudinaryEnabled reports whether image upload credentials are present.
func (c Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
