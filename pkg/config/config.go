package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	GHL        GHLConfig
	Gemini     GeminiConfig
	GoogleDocs GoogleDocsConfig
	Assembly   AssemblyAIConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Followup   FollowupConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// GHLConfig holds GoHighLevel CRM configuration
type GHLConfig struct {
	APIKey     string
	LocationID string
	BaseURL    string
}

// GeminiConfig holds generative-text backend configuration
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// GoogleDocsConfig holds document-store configuration
type GoogleDocsConfig struct {
	AccessToken string
	BaseURL     string
}

// AssemblyAIConfig holds speech-to-text configuration
type AssemblyAIConfig struct {
	APIKey string
}

// RedisConfig holds the run-store Redis configuration. When Enabled is
// false the service falls back to the in-memory run store.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds artifact-archive object storage configuration.
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// FollowupConfig holds pipeline tuning knobs.
type FollowupConfig struct {
	// LookupDelay is the minimum pause between successive CRM lookups.
	// The upstream CRM rate-limits; going faster loses contacts.
	LookupDelay time.Duration
	// StageTimeout bounds each per-attendee generation call.
	StageTimeout time.Duration
	// StageMaxRetries is the retry count for a failed generation stage.
	StageMaxRetries int
	// RunTTL is how long finished run records stay retrievable.
	RunTTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		GHL: GHLConfig{
			APIKey:     getEnv("GHL_API_KEY", ""),
			LocationID: getEnv("GHL_LOCATION_ID", ""),
			BaseURL:    getEnv("GHL_API_URL", "https://services.leadconnectorhq.com"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			BaseURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),
			Model:   getEnv("GEMINI_MODEL", "gemini-3-pro-preview"),
		},
		GoogleDocs: GoogleDocsConfig{
			AccessToken: getEnv("GOOGLE_DOCS_ACCESS_TOKEN", ""),
			BaseURL:     getEnv("GOOGLE_DOCS_API_URL", "https://docs.googleapis.com"),
		},
		Assembly: AssemblyAIConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "followup-booklets"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Followup: FollowupConfig{
			LookupDelay:     getEnvAsDuration("FOLLOWUP_LOOKUP_DELAY", "200ms"),
			StageTimeout:    getEnvAsDuration("FOLLOWUP_STAGE_TIMEOUT", "120s"),
			StageMaxRetries: getEnvAsInt("FOLLOWUP_STAGE_MAX_RETRIES", 0),
			RunTTL:          getEnvAsDuration("FOLLOWUP_RUN_TTL", "24h"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration. Service credentials are
// deliberately not required at boot; missing ones surface as
// user-facing errors when the matching feature is used.
func (c *Config) Validate() error {
	if c.Followup.LookupDelay < 200*time.Millisecond {
		return fmt.Errorf("FOLLOWUP_LOOKUP_DELAY must be at least 200ms")
	}
	if c.Followup.StageTimeout <= 0 {
		return fmt.Errorf("FOLLOWUP_STAGE_TIMEOUT must be positive")
	}
	if c.Followup.StageMaxRetries < 0 {
		return fmt.Errorf("FOLLOWUP_STAGE_MAX_RETRIES must not be negative")
	}
	return nil
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
