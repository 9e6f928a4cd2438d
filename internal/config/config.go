// ABOUTME: Fitlog configuration management with backend selection.
// ABOUTME: Handles settings, log level, and the storage backend factory.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitlog/internal/charm"
	"github.com/harperreed/fitlog/internal/storage"
)

// Backend names accepted by Backend and OpenKV.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// DefaultListenAddr is where `fitlog serve` listens when nothing is configured.
const DefaultListenAddr = "127.0.0.1:8080"

// ErrUnknownBackend is returned for a backend name OpenKV does not know.
var ErrUnknownBackend = errors.New("unknown backend")

// Config stores fitlog configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger",
	// "charm", or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts fitlog.db here. Badger puts a badger/ folder here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fitlog.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`

	// CharmHost overrides the Charm Cloud server for the charm backend.
	CharmHost string `json:"charm_host,omitempty"`

	// CharmAutoSync pulls remote changes after every charm write.
	// Defaults to true.
	CharmAutoSync *bool `json:"charm_auto_sync,omitempty"`

	// ListenAddr is the dashboard server address.
	ListenAddr string `json:"listen_addr,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel parses LogLevel, defaulting to warn.
func (c *Config) GetLogLevel() (log.Level, error) {
	if c.LogLevel == "" {
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// GetCharmHost returns the Charm server, defaulting to charm.DefaultHost.
func (c *Config) GetCharmHost() string {
	if c.CharmHost == "" {
		return charm.DefaultHost
	}
	return c.CharmHost
}

// GetCharmAutoSync reports whether the charm backend pulls after writes.
func (c *Config) GetCharmAutoSync() bool {
	if c.CharmAutoSync == nil {
		return true
	}
	return *c.CharmAutoSync
}

// GetListenAddr returns the dashboard address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenKV opens the named backend using this config's data directory and
// charm host.
func (c *Config) OpenKV(backend string) (storage.KV, error) {
	dataDir := c.GetDataDir()

	switch strings.ToLower(backend) {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, "fitlog.db"))
	case BackendBadger:
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case BackendCharm:
		client, err := charm.Open(charm.DefaultDBName, c.GetCharmHost())
		if err != nil {
			return nil, err
		}
		client.SetAutoSync(c.GetCharmAutoSync())
		return client, nil
	case BackendMemory:
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// OpenStore opens the configured backend and wraps it in a Repository.
func (c *Config) OpenStore(logger *log.Logger) (*storage.Repository, error) {
	kv, err := c.OpenKV(c.GetBackend())
	if err != nil {
		return nil, err
	}
	return storage.NewRepository(kv, logger), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitlog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
