package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM holds the generation model settings. DeepSeek is served through its
// OpenAI-compatible endpoint, so it only differs by base URL and model name.
type LLM struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// Config contains everything the service reads from the process environment.
// It is read-only after Load.
type Config struct {
	Port           string
	AppSecret      string
	GitHubToken    string
	LLM            LLM
	PagesWarmup    time.Duration
	NotifyAttempts int
}

// Load reads a .env file if present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	appSecret := getEnv("APP_SECRET", "MY_SECRET")
	if appSecret == "" {
		return Config{}, errors.New("APP_SECRET is required")
	}

	githubToken := getEnv("GITHUB_TOKEN", "GITHUB_PAT")
	if githubToken == "" {
		return Config{}, errors.New("GITHUB_TOKEN is required")
	}

	llmKey := getEnv("LLM_API_KEY", "DEEPSEEK_API_KEY", "OPENAI_API_KEY")
	if llmKey == "" {
		return Config{}, errors.New("LLM_API_KEY is required")
	}

	provider := getEnv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}
	baseURL := getEnv("LLM_BASE_URL")
	if provider == "deepseek" && baseURL == "" {
		return Config{}, errors.New("LLM_BASE_URL is required when LLM_PROVIDER=deepseek")
	}

	model := getEnv("LLM_MODEL")
	if model == "" {
		switch provider {
		case "deepseek":
			model = "deepseek-chat"
		default:
			model = "gpt-4o-mini"
		}
	}

	warmup, err := intEnv("PAGES_WARMUP_SECONDS", 20)
	if err != nil {
		return Config{}, err
	}
	attempts, err := intEnv("NOTIFY_ATTEMPTS", 5)
	if err != nil {
		return Config{}, err
	}

	port := getEnv("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:        port,
		AppSecret:   appSecret,
		GitHubToken: githubToken,
		LLM: LLM{
			Provider: provider,
			Model:    model,
			APIKey:   llmKey,
			BaseURL:  baseURL,
		},
		PagesWarmup:    time.Duration(warmup) * time.Second,
		NotifyAttempts: attempts,
	}, nil
}

// getEnv returns the first non-empty value among the given keys.
func getEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}
	return n, nil
}
