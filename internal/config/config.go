package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port     int
	LogLevel string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	AnthropicAPIKey   string
	GeminiAPIKey      string
	ChatModels        []string
	OutreachModels    []string
	LLMTimeout        time.Duration
	ProfilePath       string

	ResendAPIKey    string
	ResendSender    string
	OwnerEmail      string
	ResumeLink      string
	RedirectURL     string
	GithubToken     string
	AutoboundAPIKey string

	StoreBackend string
	StorePath    string
	DatabaseURL  string

	RedisURL     string
	ChatCacheTTL time.Duration
	NatsURL      string
	NatsToken    string

	CORSOrigins        []string
	ChatRateLimitRPS   float64
	ChatRateLimitBurst int

	ExportDir string
}

func Load() Config {
	return Config{
		Port:     envInt("AXION_PORT", 8080),
		LogLevel: envStr("LOG_LEVEL", "info"),

		OpenRouterAPIKey:  envStr("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: envStr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		AnthropicAPIKey:   envStr("ANTHROPIC_API_KEY", ""),
		GeminiAPIKey:      envStr("GEMINI_API_KEY", ""),
		ChatModels:        envList("CHAT_MODELS", []string{"mistralai/mistral-small-3.1-24b-instruct:free"}),
		OutreachModels: envList("OUTREACH_MODELS", []string{
			"nvidia/nemotron-nano-9b-v2:free",
			"tngtech/deepseek-r1t2-chimera:free",
			"google/gemma-3n-e2b-it:free",
		}),
		LLMTimeout:  envDuration("LLM_TIMEOUT", 15*time.Second),
		ProfilePath: envStr("PROFILE_PATH", ""),

		ResendAPIKey:    envStr("RESEND_API_KEY", ""),
		ResendSender:    envStr("RESEND_SENDER", ""),
		OwnerEmail:      envStr("OWNER_EMAIL", ""),
		ResumeLink:      envStr("RESUME_LINK", ""),
		RedirectURL:     envStr("REDIRECT_URL", "https://mohammed-karab.rest/"),
		GithubToken:     envStr("GITHUB_TOKEN", ""),
		AutoboundAPIKey: envStr("AUTOBOUND_API_KEY", ""),

		StoreBackend: envStr("STORE_BACKEND", "csv"),
		StorePath:    envStr("STORE_PATH", "data/visitors.csv"),
		DatabaseURL:  envStr("DATABASE_URL", ""),

		RedisURL:     envStr("REDIS_URL", ""),
		ChatCacheTTL: envDuration("CHAT_CACHE_TTL", time.Hour),
		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),

		CORSOrigins:        envList("CORS_ORIGINS", []string{"https://www.mohammed-karab.rest"}),
		ChatRateLimitRPS:   envFloat("CHAT_RATE_LIMIT_RPS", 2),
		ChatRateLimitBurst: envInt("CHAT_RATE_LIMIT_BURST", 5),

		ExportDir: envStr("EXPORT_DIR", "data/exports"),
	}
}

// Validate reports configuration that must stop a command at startup. Every
// command needs a record store; only serve calls models or listens.
func (c Config) Validate(command string) error {
	var errs []error
	if command == "serve" {
		if c.OpenRouterAPIKey == "" {
			errs = append(errs, errors.New("OPENROUTER_API_KEY is required"))
		}
		if c.Port < 1 || c.Port > 65535 {
			errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
		}
	}
	switch c.StoreBackend {
	case "memory":
	case "csv":
		if c.StorePath == "" {
			errs = append(errs, errors.New("STORE_PATH is required for the csv store"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q (want memory, csv or postgres)", c.StoreBackend))
	}
	return errors.Join(errs...)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma separated value, dropping blank entries.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
