package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings of the console and the relay.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	Session     SessionConfig
	Redis       RedisConfig
	Relay       RelayConfig
	Poller      PollerConfig
	Monitor     MonitorConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

// APIConfig is the single client policy shared by every backend call.
type APIConfig struct {
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
	RetryBudget   int
	RetryDelay    time.Duration
	MaxConns      int
	UserAgent     string
}

type SessionConfig struct {
	Backend string // bolt, redis or memory
	Path    string
	Bucket  string
	Prefix  string
	TTL     time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type RelayConfig struct {
	Host          string
	Port          string
	Upstream      string
	PathPrefix    string
	RewritePrefix string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	MaxConn       int
	EnableMetrics bool
}

type PollerConfig struct {
	NotificationSpec string
	DashboardSpec    string
}

type MonitorConfig struct {
	Interval time.Duration
	Path     string
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults matching the backend's development setup.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "warehouse-console"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:       strings.TrimRight(getString("API_BASE_URL", "http://localhost:8000/api/v1"), "/"),
			Timeout:       getDuration("API_TIMEOUT", 30*time.Second),
			UploadTimeout: getDuration("API_UPLOAD_TIMEOUT", 60*time.Second),
			RetryBudget:   getInt("API_RETRY_BUDGET", 3),
			RetryDelay:    getDuration("API_RETRY_DELAY", time.Second),
			MaxConns:      getInt("API_MAX_CONNS", 64),
			UserAgent:     getString("API_USER_AGENT", "wmsctl"),
		},
		Session: SessionConfig{
			Backend: strings.ToLower(getString("SESSION_BACKEND", "bolt")),
			Path:    getString("SESSION_PATH", defaultSessionPath()),
			Bucket:  getString("SESSION_BUCKET", "session"),
			Prefix:  getString("SESSION_PREFIX", "wms:session:"),
			TTL:     getDuration("SESSION_TTL", 0),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Relay: RelayConfig{
			Host:          getString("RELAY_HOST", "0.0.0.0"),
			Port:          getString("RELAY_PORT", "8082"),
			Upstream:      strings.TrimRight(getString("RELAY_UPSTREAM", "http://localhost:8000"), "/"),
			PathPrefix:    getString("RELAY_PATH_PREFIX", "/api"),
			RewritePrefix: getString("RELAY_REWRITE_PREFIX", "/api/v1"),
			ReadTimeout:   getDuration("RELAY_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:  getDuration("RELAY_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:   getDuration("RELAY_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:       getInt("RELAY_MAX_CONN", 0),
			EnableMetrics: getBool("RELAY_ENABLE_METRICS", true),
		},
		Poller: PollerConfig{
			NotificationSpec: getString("POLL_NOTIFICATIONS", "@every 30s"),
			DashboardSpec:    getString("POLL_DASHBOARD", "@every 5m"),
		},
		Monitor: MonitorConfig{
			Interval: getDuration("MONITOR_INTERVAL", 15*time.Second),
			Path:     getString("MONITOR_PATH", "/health"),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 90*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects settings the client cannot operate with.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.RetryBudget < 0 {
		return fmt.Errorf("API_RETRY_BUDGET must not be negative")
	}
	switch c.Session.Backend {
	case "bolt", "redis", "memory":
	default:
		return fmt.Errorf("SESSION_BACKEND must be bolt, redis or memory, got %q", c.Session.Backend)
	}
	return nil
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".", "data", "session.db")
	}
	return filepath.Join(dir, "wmsctl", "session.db")
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// RelayAddress returns the listen address of the CORS relay.
func (c *Config) RelayAddress() string {
	return fmt.Sprintf("%s:%s", c.Relay.Host, c.Relay.Port)
}
