package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for the token limits, matching the mistral.rs server setup this
// front end was built against.
const (
	DefaultServerURL            = "http://localhost:8081"
	DefaultMaxContextWindow     = 4096
	DefaultSystemMessageReserve = 200
	DefaultResponseReserve      = 500
	DefaultMinTokens            = 100
	DefaultMaxTokens            = 4096
	DefaultTemperature          = 0.7
	DefaultTopP                 = 0.95
	DefaultProvider             = "mistral"
	DefaultListenAddr           = ":8080"
)

// Config holds the validated runtime configuration. It is constructed once
// at startup and read-only afterwards.
type Config struct {
	ServerURL            string
	MaxContextWindow     int
	SystemMessageReserve int
	ResponseReserve      int
	MinTokens            int
	MaxTokens            int
	Temperature          float64
	TopP                 float64

	Provider   string
	ListenAddr string
	AuthSecret string
}

// Load reads configuration from the environment and validates the token
// limit invariants. Any violation is returned as an error; the caller is
// expected to treat it as fatal before serving.
func Load() (*Config, error) {
	cfg := &Config{
		ServerURL:            envString("MISTRAL_SERVER_URL", DefaultServerURL),
		MaxContextWindow:     envInt("MAX_CONTEXT_WINDOW", DefaultMaxContextWindow),
		SystemMessageReserve: envInt("SYSTEM_MESSAGE_RESERVE", DefaultSystemMessageReserve),
		ResponseReserve:      envInt("RESPONSE_RESERVE", DefaultResponseReserve),
		MinTokens:            envInt("MIN_TOKENS", DefaultMinTokens),
		MaxTokens:            envInt("MAX_TOKENS", DefaultMaxTokens),
		Temperature:          envFloat("TEMPERATURE", DefaultTemperature),
		TopP:                 envFloat("TOP_P", DefaultTopP),
		Provider:             envString("LLM_PROVIDER", DefaultProvider),
		ListenAddr:           envString("LISTEN_ADDR", DefaultListenAddr),
		AuthSecret:           os.Getenv("API_AUTH_SECRET"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for name, v := range map[string]int{
		"MAX_CONTEXT_WINDOW":     c.MaxContextWindow,
		"SYSTEM_MESSAGE_RESERVE": c.SystemMessageReserve,
		"RESPONSE_RESERVE":       c.ResponseReserve,
		"MIN_TOKENS":             c.MinTokens,
		"MAX_TOKENS":             c.MaxTokens,
	} {
		if v <= 0 {
			return fmt.Errorf("invalid token limits: %s (%d) must be positive", name, v)
		}
	}

	if c.MinTokens > c.MaxTokens {
		return fmt.Errorf("invalid token limits: MIN_TOKENS (%d) > MAX_TOKENS (%d)", c.MinTokens, c.MaxTokens)
	}
	if c.MaxTokens > c.MaxContextWindow {
		return fmt.Errorf("invalid token limits: MAX_TOKENS (%d) > MAX_CONTEXT_WINDOW (%d)", c.MaxTokens, c.MaxContextWindow)
	}

	totalReserve := c.SystemMessageReserve + c.ResponseReserve
	if totalReserve >= c.MaxContextWindow {
		return fmt.Errorf(
			"invalid token limits: SYSTEM_MESSAGE_RESERVE (%d) + RESPONSE_RESERVE (%d) >= MAX_CONTEXT_WINDOW (%d)",
			c.SystemMessageReserve, c.ResponseReserve, c.MaxContextWindow)
	}

	// There must be room for at least one exchange after the reserves.
	if space := c.MaxContextWindow - totalReserve; space < 100 {
		return fmt.Errorf(
			"insufficient space for messages: MAX_CONTEXT_WINDOW (%d) - reserves (%d) = %d < 100",
			c.MaxContextWindow, totalReserve, space)
	}

	return nil
}

func envString(key, fallback string) string {
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
