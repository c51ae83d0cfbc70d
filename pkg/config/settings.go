package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"otpctl/pkg/endpoint"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Settings is the runtime configuration, built once at startup and handed to
// every component that needs it.
type Settings struct {
	APIURL      string
	PageOrigin  string
	HTTPTimeout time.Duration
	MaxRetries  int
	Timezone    *time.Location
	MetricsAddr string
	CacheSize   int
	CacheTTL    time.Duration
	LogLevel    log.Level
}

// LoadSettings reads .env (if present) and the OTP_* environment variables.
func LoadSettings() (*Settings, error) {
	_ = godotenv.Load()

	s := &Settings{
		APIURL:     getenvDefault("OTP_API_URL", "/otp"),
		PageOrigin: getenvDefault("OTP_PAGE_ORIGIN", "http://localhost:8080"),
	}

	// Empty disables the metrics server
	s.MetricsAddr = os.Getenv("OTP_METRICS_ADDR")

	timeoutSec, err := intFromEnv("OTP_HTTP_TIMEOUT_SEC", 30, 1)
	if err != nil {
		return nil, err
	}
	s.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	if s.MaxRetries, err = intFromEnv("OTP_MAX_RETRIES", 3, 1); err != nil {
		return nil, err
	}

	if s.CacheSize, err = intFromEnv("OTP_RESULT_CACHE_SIZE", 0, 0); err != nil {
		return nil, err
	}

	ttlSec, err := intFromEnv("OTP_RESULT_CACHE_TTL_SEC", 60, 1)
	if err != nil {
		return nil, err
	}
	s.CacheTTL = time.Duration(ttlSec) * time.Second

	if tz := os.Getenv("OTP_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid OTP_TIMEZONE: %v", err)
		}
		s.Timezone = loc
	}

	s.LogLevel = log.InfoLevel
	if v := os.Getenv("OTP_LOG_LEVEL"); v != "" {
		lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return nil, fmt.Errorf("invalid OTP_LOG_LEVEL: %q", v)
		}
		s.LogLevel = lvl
	}

	return s, nil
}

// Endpoint returns the absolute GraphQL URL requests are sent to.
func (s *Settings) Endpoint() string {
	return endpoint.GraphQLURL(endpoint.Resolve(s.APIURL, s.PageOrigin))
}

// NewLogger builds the stderr logger used for diagnostics.
func (s *Settings) NewLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  s.LogLevel,
		Prefix: "otpctl",
	})
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def, minimum int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < minimum {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}
