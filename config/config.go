package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pagecraft/utils"

	"github.com/BurntSushi/toml"
)

// Storage drivers
const (
	DriverFile = "file"
	DriverBolt = "bolt"
)

// Token modes
const (
	AuthOpaque = "opaque"
	AuthSigned = "signed"
)

type ServerConfig struct {
	Port int  `toml:"port"`
	CORS bool `toml:"cors"`
}

type StorageConfig struct {
	Driver  string `toml:"driver"`   // "file" or "bolt"
	DataDir string `toml:"data_dir"` // holds users.json and site.json / site.db
}

type AuthConfig struct {
	Mode     string        `toml:"mode"`   // "opaque" accepts any non-empty token, "signed" issues JWTs
	Secret   string        `toml:"secret"` // HMAC secret for signed mode
	TokenTTL time.Duration `toml:"token_ttl"`
	Header   string        `toml:"header"`
}

type EditorConfig struct {
	MaxSessions      int           `toml:"max_sessions"`
	StatusClearDelay time.Duration `toml:"status_clear_delay"`
}

type RateLimitConfig struct {
	LoginRequests int           `toml:"login_requests"`
	LoginWindow   time.Duration `toml:"login_window"`
}

type LocaleConfig struct {
	Default string `toml:"default"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Auth      AuthConfig      `toml:"auth"`
	Editor    EditorConfig    `toml:"editor"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Locale    LocaleConfig    `toml:"locale"`
	Log       LogConfig       `toml:"log"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3000,
			CORS: true,
		},
		Storage: StorageConfig{
			Driver:  DriverFile,
			DataDir: "data",
		},
		Auth: AuthConfig{
			Mode:     AuthOpaque,
			TokenTTL: 24 * time.Hour,
			Header:   "x-admin-token",
		},
		Editor: EditorConfig{
			MaxSessions:      32,
			StatusClearDelay: 1500 * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			LoginRequests: 20,
			LoginWindow:   time.Minute,
		},
		Locale: LocaleConfig{Default: "de"},
		Log:    LogConfig{Level: "info"},
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing file is
// not an error: the defaults are used and a warning is logged.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	if _, err := toml.DecodeFile(path, config); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			utils.Log.Warn("Config file %s not found, using defaults", path)
			return config, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	switch c.Storage.Driver {
	case DriverFile, DriverBolt:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage data_dir is required")
	}

	switch c.Auth.Mode {
	case AuthOpaque:
	case AuthSigned:
		if c.Auth.Secret == "" {
			return fmt.Errorf("auth secret is required in signed mode")
		}
		if c.Auth.TokenTTL <= 0 {
			return fmt.Errorf("auth token_ttl must be positive in signed mode")
		}
	default:
		return fmt.Errorf("unknown auth mode %q", c.Auth.Mode)
	}
	if c.Auth.Header == "" {
		return fmt.Errorf("auth header is required")
	}

	if c.Editor.MaxSessions <= 0 {
		return fmt.Errorf("editor max_sessions must be positive")
	}

	return nil
}

// UsersFile is the path of the credentials document
func (c *Config) UsersFile() string {
	return filepath.Join(c.Storage.DataDir, "users.json")
}

// SiteFile is the path of the site document for the file driver
func (c *Config) SiteFile() string {
	return filepath.Join(c.Storage.DataDir, "site.json")
}

// SiteDB is the path of the bbolt database for the bolt driver
func (c *Config) SiteDB() string {
	return filepath.Join(c.Storage.DataDir, "site.db")
}
