package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gemtrove/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	B2     B2Config
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// B2Config holds object store credentials and bucket identity.
type B2Config struct {
	KeyID         string        `mapstructure:"key_id"`
	AppKey        string        `mapstructure:"app_key"`
	BucketID      string        `mapstructure:"bucket_id"`
	BucketName    string        `mapstructure:"bucket_name"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	AuthEndpoint  string        `mapstructure:"auth_endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// Validate checks that every credential and bucket field required to reach
// the object store is present, naming the first missing one.
func (c *B2Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"b2.key_id", c.KeyID},
		{"b2.app_key", c.AppKey},
		{"b2.bucket_id", c.BucketID},
		{"b2.bucket_name", c.BucketName},
		{"b2.public_base_url", c.PublicBaseURL},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s", domain.ErrMissingConfig, f.name)
		}
	}
	return nil
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the GEMTROVE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GEMTROVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gemtrove")
	v.SetDefault("db.password", "gemtrove_secret")
	v.SetDefault("db.name", "gemtrove_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "gemtrove")

	// B2 defaults
	v.SetDefault("b2.key_id", "")
	v.SetDefault("b2.app_key", "")
	v.SetDefault("b2.bucket_id", "")
	v.SetDefault("b2.bucket_name", "")
	v.SetDefault("b2.public_base_url", "")
	v.SetDefault("b2.auth_endpoint", "https://api.backblazeb2.com")
	v.SetDefault("b2.timeout", "8s")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "GEMTROVE_SERVER_PORT",
		"server.read_timeout":  "GEMTROVE_SERVER_READ_TIMEOUT",
		"server.write_timeout": "GEMTROVE_SERVER_WRITE_TIMEOUT",
		"server.environment":   "GEMTROVE_SERVER_ENVIRONMENT",
		"db.host":              "GEMTROVE_DB_HOST",
		"db.port":              "GEMTROVE_DB_PORT",
		"db.user":              "GEMTROVE_DB_USER",
		"db.password":          "GEMTROVE_DB_PASSWORD",
		"db.name":              "GEMTROVE_DB_NAME",
		"db.sslmode":           "GEMTROVE_DB_SSLMODE",
		"db.max_open":          "GEMTROVE_DB_MAX_OPEN",
		"db.max_idle":          "GEMTROVE_DB_MAX_IDLE",
		"jwt.secret":           "GEMTROVE_JWT_SECRET",
		"jwt.access_expiry":    "GEMTROVE_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":   "GEMTROVE_JWT_REFRESH_EXPIRY",
		"jwt.issuer":           "GEMTROVE_JWT_ISSUER",
		"b2.key_id":            "GEMTROVE_B2_KEY_ID",
		"b2.app_key":           "GEMTROVE_B2_APP_KEY",
		"b2.bucket_id":         "GEMTROVE_B2_BUCKET_ID",
		"b2.bucket_name":       "GEMTROVE_B2_BUCKET_NAME",
		"b2.public_base_url":   "GEMTROVE_B2_PUBLIC_BASE_URL",
		"b2.auth_endpoint":     "GEMTROVE_B2_AUTH_ENDPOINT",
		"b2.timeout":           "GEMTROVE_B2_TIMEOUT",
		"log.level":            "GEMTROVE_LOG_LEVEL",
		"log.format":           "GEMTROVE_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GEMTROVE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GEMTROVE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.B2 = B2Config{
		KeyID:         v.GetString("b2.key_id"),
		AppKey:        v.GetString("b2.app_key"),
		BucketID:      v.GetString("b2.bucket_id"),
		BucketName:    v.GetString("b2.bucket_name"),
		PublicBaseURL: strings.TrimRight(v.GetString("b2.public_base_url"), "/"),
		AuthEndpoint:  v.GetString("b2.auth_endpoint"),
		Timeout:       v.GetDuration("b2.timeout"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
