package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// AI provider names accepted in AI_PROVIDER
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`

	// Snapshot proposal source
	SnapshotURL     string        `json:"snapshot_url" validate:"required,url"`
	SnapshotTimeout time.Duration `json:"snapshot_timeout" validate:"gt=0"`
	ProposalLimit   int           `json:"proposal_limit" validate:"gte=1,lte=100"`

	// AI Configuration
	AIProvider  string        `json:"ai_provider" validate:"oneof=openai gemini"`
	AIApiKey    string        `json:"-"`
	AIModel     string        `json:"ai_model"`
	AIBaseURL   string        `json:"ai_base_url" validate:"omitempty,url"`
	AITimeout   time.Duration `json:"ai_timeout" validate:"gt=0"`
	AIMaxTokens int           `json:"ai_max_tokens" validate:"gte=1"`

	MaxConcurrency int `json:"max_concurrency" validate:"gte=1"`

	// Redis backs the session store when set
	RedisURL    string `json:"redis_url" validate:"omitempty,url"`
	RedisPrefix string `json:"redis_prefix"`

	// Logging
	LogLevel string `json:"log_level" validate:"oneof=debug info warn error"`
	LogFile  string `json:"log_file"`

	// Security
	SessionSecret string `json:"-" validate:"required"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// FromEnv builds a Config from the current environment without validating it
func FromEnv() *Config {
	provider := strings.ToLower(getEnv("AI_PROVIDER", ProviderOpenAI))

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "5000"),
		Env:             getEnv("APP_ENV", getEnv("FLASK_ENV", "production")),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 60*time.Second),

		// Snapshot proposal source
		SnapshotURL:     getEnv("SNAPSHOT_API_URL", "https://hub.snapshot.org/graphql"),
		SnapshotTimeout: getEnvAsDuration("SNAPSHOT_TIMEOUT", 30*time.Second),
		ProposalLimit:   getEnvAsInt("PROPOSAL_LIMIT", 10),

		// AI Configuration
		AIProvider:  provider,
		AIApiKey:    firstEnv("OPENAI_API_KEY", "AI_API_KEY"),
		AIModel:     getEnv("AI_MODEL", defaultModel(provider)),
		AIBaseURL:   getEnv("AI_BASE_URL", ""),
		AITimeout:   getEnvAsDuration("AI_TIMEOUT", 10*time.Second),
		AIMaxTokens: getEnvAsInt("AI_MAX_TOKENS", 100),

		MaxConcurrency: getEnvAsInt("MAX_CONCURRENCY", 5),

		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "dao-explorer:session:"),

		// Logging
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:  getEnv("LOG_FILE", ""),

		// Security
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-key-change-in-production"),
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// IsDevelopment reports whether verbose development logging is wanted
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// EffectiveLogLevel is debug in development and LogLevel otherwise
func (c *Config) EffectiveLogLevel() string {
	if c.IsDevelopment() {
		return "debug"
	}
	return c.LogLevel
}

// AIConfigured reports whether a text-generation credential is present
func (c *Config) AIConfigured() bool {
	return strings.TrimSpace(c.AIApiKey) != ""
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-1.5-flash"
	}
	return "gpt-5"
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// firstEnv returns the first non-empty value among keys
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
