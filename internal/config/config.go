package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds configuration for the smecert web frontend.
type ServerConfig struct {
	Addr          string        `yaml:"addr"`           // Listen address (default ":8080")
	APIBaseURL    string        `yaml:"api_base_url"`   // Upstream REST API, e.g. http://localhost:8000/api
	DBPath        string        `yaml:"db_path"`        // Session database path (default ~/.smecert/sessions.db, ":memory:" for testing)
	LogLevel      string        `yaml:"log_level"`      // Log level: debug, info, warn, error
	LogFormat     string        `yaml:"log_format"`     // Log format: text, json
	SecureCookies bool          `yaml:"secure_cookies"` // Set Secure on session cookies (HTTPS deployments)
	SessionTTL    time.Duration `yaml:"session_ttl"`    // Session lifetime (default 24h)
	APITimeout    time.Duration `yaml:"api_timeout"`    // Upstream request timeout (default 10s)
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:       ":8080",
		APIBaseURL: "http://localhost:8000/api",
		LogLevel:   "info",
		LogFormat:  "text",
		SessionTTL: 24 * time.Hour,
		APITimeout: 10 * time.Second,
	}
}

// Load reads a YAML config file over the defaults. A missing path is not an
// error; flags applied by the caller take precedence over both.
func Load(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotenv loads a .env file into the process environment if it exists.
// Values already set in the environment win.
func LoadDotenv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv overlays environment variables onto the config.
// Recognized: SMECERT_ADDR, SMECERT_API_URL, SMECERT_DB, SMECERT_LOG_LEVEL.
func (c *ServerConfig) FromEnv() {
	if v := os.Getenv("SMECERT_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("SMECERT_API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("SMECERT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("SMECERT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
