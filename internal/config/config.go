package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	DBDriver string // sqlite3|sqlite|postgres
	DBDSN    string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	AuthHMACSecret string
	EnableDevLogin bool
	CORSOrigins    []string

	QuestionCount int
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// ErrMissingSecret is returned by Validate when no token signing secret is set.
var ErrMissingSecret = errors.New("AUTH_HMAC_SECRET must be set")

const minSecretLen = 16

// Validate checks the settings the HTTP service cannot run safely without.
func (c Config) Validate() error {
	secret := strings.TrimSpace(c.AuthHMACSecret)
	if secret == "" {
		return ErrMissingSecret
	}
	if len(secret) < minSecretLen {
		return fmt.Errorf("AUTH_HMAC_SECRET must be at least %d characters", minSecretLen)
	}
	return nil
}

func FromEnv() Config {
	return Config{
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		DBDriver:       envOr("DB_DRIVER", "sqlite3"),
		DBDSN:          envOr("DB_DSN", ""),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:  envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiTimeout:  envDuration("GEMINI_TIMEOUT", 30*time.Second),
		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", ""),
		EnableDevLogin: envBool("ENABLE_DEV_LOGIN", false),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		QuestionCount:  envInt("QUESTION_COUNT", 5),
	}
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch strings.TrimSpace(os.Getenv(k)) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
