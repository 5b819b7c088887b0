package config

import (
	"os"
	"strconv"
	"time"
)

// LLMConfig holds settings for the chat-completion API used to produce recommendations.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// PromptConfig caps how much of an upload is embedded into a single prompt.
type PromptConfig struct {
	MaxRows  int
	MaxChars int
}

// ScratchConfig selects where uploads are held while they are decoded.
// Backend is either "local" (Dir on disk) or "minio" (see MinIOConfig).
type ScratchConfig struct {
	Backend        string
	Dir            string
	MaxUploadBytes int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RateLimitConfig bounds how fast uploads may hit the upstream model.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port        string
	LogTimezone string
	LLM         LLMConfig
	Prompt      PromptConfig
	Scratch     ScratchConfig
	MinIO       MinIOConfig
	RateLimit   RateLimitConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:        getEnv("PORT", "5000"),
		LogTimezone: getEnv("LOG_TIMEZONE", "UTC"),
		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			MaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 500),
			Temperature: getEnvFloat("OPENAI_TEMPERATURE", 0.7),
			Timeout:     getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		},
		Prompt: PromptConfig{
			MaxRows:  getEnvInt("PROMPT_MAX_ROWS", 200),
			MaxChars: getEnvInt("PROMPT_MAX_CHARS", 12000),
		},
		Scratch: ScratchConfig{
			Backend:        getEnv("SCRATCH_BACKEND", "local"),
			Dir:            getEnv("UPLOAD_DIR", "uploads"),
			MaxUploadBytes: getEnvInt("MAX_UPLOAD_BYTES", 10<<20),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
			Burst: getEnvInt("RATE_LIMIT_BURST", 10),
		},
	}
}

// Location resolves LogTimezone, falling back to UTC when the zone is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.LogTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("45s") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
