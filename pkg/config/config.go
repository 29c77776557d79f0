// Package config provides persistent configuration for the desktop shell.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// AppDirName is the directory under the user config dir holding all state.
const AppDirName = "bowlrms"

// Defaults.
const (
	DefaultTargetURL        = "https://beta.bowlrms.com/login"
	DefaultHomePath         = "/"
	DefaultWidth            = 1024
	DefaultHeight           = 768
	DefaultDiscoveryService = "_bowlrms._tcp"
	DefaultDiscoveryTimeout = 3 * time.Second
	DefaultLogLevel         = "info"
)

// TargetConfig selects the remote application.
type TargetConfig struct {
	URL  string `yaml:"url"`
	Home string `yaml:"home"`
}

// WindowConfig is the size of the main view.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DiscoveryConfig controls mDNS lookup of a server on the local network.
type DiscoveryConfig struct {
	Enabled bool          `yaml:"enabled"`
	Service string        `yaml:"service"`
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// TrayConfig controls the system tray icon.
type TrayConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config holds the shell configuration.
type Config struct {
	Target    TargetConfig    `yaml:"target"`
	Window    WindowConfig    `yaml:"window"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Log       LogConfig       `yaml:"log"`
	Tray      TrayConfig      `yaml:"tray"`
}

// Default returns the configuration used when no file exists. dir is the
// application config directory and anchors the default log directory.
func Default(dir string) Config {
	return Config{
		Target: TargetConfig{
			URL:  DefaultTargetURL,
			Home: DefaultHomePath,
		},
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Discovery: DiscoveryConfig{
			Service: DefaultDiscoveryService,
			Timeout: DefaultDiscoveryTimeout,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
			Dir:   filepath.Join(dir, "logs"),
		},
		Tray: TrayConfig{
			Enabled: true,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := ValidateTargetURL(c.Target.URL); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Target.Home, "/") {
		return fmt.Errorf("target.home must start with '/': %q", c.Target.Home)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Discovery.Timeout < 0 {
		return fmt.Errorf("discovery.timeout must not be negative: %s", c.Discovery.Timeout)
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}

// ValidateTargetURL checks that raw is an absolute http(s) URL.
func ValidateTargetURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid target.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("target.url must use http or https: %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("target.url has no host: %q", raw)
	}
	return nil
}

// HomeURL resolves target.home against target.url.
func (c *Config) HomeURL() string {
	base, err := url.Parse(c.Target.URL)
	if err != nil {
		return c.Target.URL
	}
	home, err := url.Parse(c.Target.Home)
	if err != nil {
		return c.Target.URL
	}
	return base.ResolveReference(home).String()
}

// Origin returns scheme://host of target.url.
func (c *Config) Origin() string {
	u, err := url.Parse(c.Target.URL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// Manager handles loading and saving configuration.
type Manager struct {
	mu       sync.RWMutex
	config   Config
	filePath string
}

// Dir returns the application config directory, creating it if needed.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", err
		}
		configDir = home
	}

	dir := filepath.Join(configDir, AppDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// NewManager loads config.yaml from the application config directory,
// writing defaults on first run.
func NewManager() (*Manager, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, "config.yaml"))
}

// Open loads the configuration file at path. A missing file is created with
// defaults.
func Open(path string) (*Manager, error) {
	m := &Manager{
		filePath: path,
		config:   Default(filepath.Dir(path)),
	}

	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

// load reads config from disk.
func (m *Manager) load() error {
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// First run - save defaults
			return m.Save()
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal over defaults so missing keys keep their default value.
	cfg := m.config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.filePath, err)
	}

	m.config = cfg
	return nil
}

// Save writes config to disk.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(m.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.filePath
}

// Get returns a copy of the current config.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetTargetURL returns the remote application URL.
func (m *Manager) GetTargetURL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Target.URL
}

// SetTargetURL validates and saves a new remote application URL.
func (m *Manager) SetTargetURL(raw string) error {
	if err := ValidateTargetURL(raw); err != nil {
		return err
	}

	m.mu.Lock()
	m.config.Target.URL = raw
	m.mu.Unlock()

	return m.Save()
}

// SetTrayEnabled toggles the tray icon and saves config.
func (m *Manager) SetTrayEnabled(enabled bool) error {
	m.mu.Lock()
	m.config.Tray.Enabled = enabled
	m.mu.Unlock()

	return m.Save()
}
