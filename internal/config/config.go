// Package config loads planner configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// LLM provider identifiers.
const (
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// HTTP server
	ListenAddr string

	// Canvas API
	CanvasBaseURL      string
	CanvasToken        string
	AnnouncementCourse int
	AssignmentCourses  []int
	CanvasTimeout      time.Duration

	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Extraction model
	LLMProvider     string
	LLMModel        string
	LLMBaseURL      string
	LLMAPIKey       string
	OllamaHost      string
	AnthropicAPIKey string
	BedrockModel    string

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Subject alias overrides (optional YAML file, see aliases.go)
	AliasFile string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		ListenAddr: getEnv("PLANNER_LISTEN_ADDR", ":8090"),

		CanvasBaseURL:      getEnv("CANVAS_BASE_URL", "https://learning.acc.edu.au"),
		CanvasToken:        getEnv("CANVAS_TOKEN", ""),
		AnnouncementCourse: getEnvInt("CANVAS_ANNOUNCEMENT_COURSE", 20564),
		AssignmentCourses:  getEnvInts("CANVAS_ASSIGNMENT_COURSES", []int{20564, 20354}),
		CanvasTimeout:      getEnvDuration("CANVAS_TIMEOUT", 30*time.Second),

		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "zschool"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "planner"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		LLMProvider:     getEnv("PLANNER_LLM_PROVIDER", ProviderOpenAI),
		LLMModel:        getEnv("PLANNER_LLM_MODEL", "grok-3-mini"),
		LLMBaseURL:      getEnv("PLANNER_LLM_BASE_URL", "https://api.x.ai/v1"),
		LLMAPIKey:       getEnv("XAI_TOKEN", os.Getenv("OPENAI_API_KEY")),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		BedrockModel:    getEnv("PLANNER_BEDROCK_MODEL", "anthropic.claude-3-haiku-20240307-v1:0"),

		LogFile:  getEnv("PLANNER_LOG_FILE", "/tmp/planner.log"),
		LogLevel: parseLogLevel(getEnv("PLANNER_LOG_LEVEL", "INFO")),

		AliasFile: getEnv("PLANNER_ALIAS_FILE", ""),
	}
}

// Validate checks settings that have no usable default.
func (c Config) Validate() error {
	if c.CanvasToken == "" {
		return fmt.Errorf("CANVAS_TOKEN is required")
	}
	if c.LLMProvider == ProviderOpenAI && c.LLMAPIKey == "" {
		return fmt.Errorf("XAI_TOKEN (or OPENAI_API_KEY) is required for the %s provider", c.LLMProvider)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvInts(key string, defaultVal []int) []int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []int
	for _, part := range strings.Split(val, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultVal
		}
		out = append(out, n)
	}
	return out
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
