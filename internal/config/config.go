// Package config handles loading and managing recipeideas configuration.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is TheMealDB's public v1 endpoint (test key "1").
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// DefaultPopular is the chip list shown under the search box.
var DefaultPopular = []string{
	"chicken",
	"paneer",
	"egg",
	"tomato",
	"potato",
	"rice",
	"mushroom",
	"fish",
	"prawn",
	"chickpea",
}

// APIConfig holds settings for the upstream recipe API.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // Per-request bound (default: 15)
	UserAgent      string `toml:"user_agent"`
	Concurrency    int    `toml:"concurrency"` // Max parallel lookups for multi-id requests
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	DefaultIngredient string   `toml:"default_ingredient"`
	Popular           []string `toml:"popular"`
}

// ServerConfig holds HTTP API server configuration.
type ServerConfig struct {
	APIPort         int      `toml:"api_port"`  // HTTP server port (default: 8080)
	BindAddr        string   `toml:"bind_addr"` // Listen address (default: 127.0.0.1)
	APIKey          string   `toml:"api_key"`   // API authentication key
	CORSOrigins     []string `toml:"cors_origins"`
	CORSCredentials bool     `toml:"cors_credentials"`
	CORSMaxAge      int      `toml:"cors_max_age"`
}

// Config represents the recipeideas configuration.
type Config struct {
	API    APIConfig    `toml:"api"`
	Search SearchConfig `toml:"search"`
	Server ServerConfig `toml:"server"`

	// Computed paths (not from config file)
	HomeDir    string `toml:"-"`
	configPath string
}

// DefaultHome returns the default recipeideas home directory.
// Respects RECIPEIDEAS_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("RECIPEIDEAS_HOME"); h != "" {
		return expandPath(h)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recipeideas"
	}
	return filepath.Join(home, ".recipeideas")
}

// Load reads the configuration from the specified file.
// If path is empty, uses <home>/config.toml. homeDir overrides the
// default home (RECIPEIDEAS_HOME or ~/.recipeideas) when non-empty.
func Load(path, homeDir string) (*Config, error) {
	if homeDir == "" {
		homeDir = DefaultHome()
	} else {
		homeDir = expandPath(homeDir)
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(homeDir, "config.toml")
	}
	path = expandPath(path)

	cfg := &Config{
		HomeDir:    homeDir,
		configPath: path,
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 15,
			UserAgent:      "recipeideas",
			Concurrency:    4,
		},
		Search: SearchConfig{
			DefaultIngredient: "chicken",
			Popular:           append([]string(nil), DefaultPopular...),
		},
		Server: ServerConfig{
			APIPort:  8080,
			BindAddr: "127.0.0.1",
		},
	}

	// Config file is optional unless named explicitly
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	cfg.API.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.API.BaseURL), "/")
	cfg.Search.DefaultIngredient = strings.TrimSpace(cfg.Search.DefaultIngredient)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url must include a host")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	if c.API.Concurrency <= 0 {
		return fmt.Errorf("api.concurrency must be positive, got %d", c.API.Concurrency)
	}
	for i, term := range c.Search.Popular {
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("search.popular[%d] is blank", i)
		}
	}
	if c.Server.APIPort < 0 || c.Server.APIPort > 65535 {
		return fmt.Errorf("server.api_port out of range: %d", c.Server.APIPort)
	}
	return nil
}

// ValidateSecure refuses to expose the API beyond loopback without a key.
func (s ServerConfig) ValidateSecure() error {
	if s.APIKey != "" || IsLoopback(s.BindAddr) {
		return nil
	}
	return fmt.Errorf("refusing to bind API server to %s without authentication\n\n"+
		"Set [server] api_key in config.toml, or bind to 127.0.0.1", s.BindAddr)
}

// IsLoopback reports whether addr is a loopback host. An empty address is
// treated as loopback because the server defaults to 127.0.0.1.
func IsLoopback(addr string) bool {
	if addr == "" || addr == "localhost" {
		return true
	}
	ip := net.ParseIP(addr)
	return ip != nil && ip.IsLoopback()
}

// Timeout returns the per-request timeout for the recipe API.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// ConfigFilePath returns the path the configuration was (or would be) loaded from.
func (c *Config) ConfigFilePath() string {
	if c.configPath != "" {
		return c.configPath
	}
	return filepath.Join(c.HomeDir, "config.toml")
}

// LogsDir returns the directory used for log files written while the TUI owns the terminal.
func (c *Config) LogsDir() string {
	return filepath.Join(c.HomeDir, "logs")
}

// EnsureHomeDir creates the home directory if it does not exist.
func (c *Config) EnsureHomeDir() error {
	return os.MkdirAll(c.HomeDir, 0700)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
