package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Storage       StorageConfig
	Auth          AuthConfig
	EventTriggers EventTriggerConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// StorageConfig configures the S3-compatible object storage bucket that
// holds mentor profile images.
type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

// AuthConfig describes the external identity provider whose JWTs this
// service validates. OTP issuance and verification happen entirely on the
// provider side; we only check signatures.
type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

// EventTriggerConfig holds webhook URLs fired after local mutations.
type EventTriggerConfig struct {
	MentorAppliedTriggerURL string
	MentorClaimedTriggerURL string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	CollectorEndpoint string
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

type CacheConfig struct {
	SlotTTLSeconds   int  // Slot list cache TTL in seconds
	DisableSlotCache bool // Read from DB on every request (debugging aid)
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://mentorstack.dev")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://mentorstack.dev,https://www.mentorstack.dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("AUTH_JWT_ISSUER", "mentorstack-auth")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "") // OTLP over HTTP, e.g. alloy:4318
	v.SetDefault("O11Y_SERVICE_NAME", "mentorstack-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "mentorstack")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "mentorstack-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("SLOT_CACHE_TTL", 300) // 5 minutes in seconds
	v.SetDefault("DISABLE_SLOT_CACHE", false)
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
		},
		Storage: StorageConfig{
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			Region:          v.GetString("STORAGE_REGION"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("AUTH_JWT_SECRET"),
			JWTIssuer: v.GetString("AUTH_JWT_ISSUER"),
		},
		EventTriggers: EventTriggerConfig{
			MentorAppliedTriggerURL: v.GetString("MENTOR_APPLIED_TRIGGER_URL"),
			MentorClaimedTriggerURL: v.GetString("MENTOR_CLAIMED_TRIGGER_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			CollectorEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
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
		Cache: CacheConfig{
			SlotTTLSeconds:   v.GetInt("SLOT_CACHE_TTL"),
			DisableSlotCache: v.GetBool("DISABLE_SLOT_CACHE"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set. A missing
// database URL or auth secret means the service cannot do anything useful,
// so startup is refused outright.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
