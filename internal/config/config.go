package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Backend   BackendConfig   `toml:"backend"`
	Gateway   GatewayConfig   `toml:"gateway"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Log       LogConfig       `toml:"log"`
}

type BackendConfig struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

type GatewayConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type DashboardConfig struct {
	PollInterval Duration `toml:"poll_interval"`
	SettleDelay  Duration `toml:"settle_delay"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	// Output is where logs go while the terminal dashboard owns the screen.
	Output string `toml:"output"`
}

// Duration is a time.Duration written as a string ("2s") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

const (
	globalConfigPath = ".config/studiodash/config.toml"
	defaultLogFile   = ".local/state/studiodash/dashboard.log"
)

// Default returns the built-in configuration.
func Default() *Config {
	logOutput := defaultLogFile
	if home, err := os.UserHomeDir(); err == nil {
		logOutput = filepath.Join(home, defaultLogFile)
	}

	return &Config{
		Backend: BackendConfig{
			URL:     "http://127.0.0.1:5000",
			Timeout: Duration{10 * time.Second},
		},
		Gateway: GatewayConfig{
			Host: "127.0.0.1",
			Port: 3000,
		},
		Dashboard: DashboardConfig{
			PollInterval: Duration{2 * time.Second},
			SettleDelay:  Duration{500 * time.Millisecond},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: logOutput,
		},
	}
}

// Path returns the config file location.
func Path() (string, error) {
	// Check STUDIODASH_CONFIG env var first
	if envPath := os.Getenv("STUDIODASH_CONFIG"); envPath != "" {
		return envPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}

	return filepath.Join(home, globalConfigPath), nil
}

// Load reads the config file over the defaults. A missing file is not an
// error. API_BASE overrides the backend URL.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("access config: %w", err)
	}

	if base := os.Getenv("API_BASE"); base != "" {
		cfg.Backend.URL = base
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend url %q must be an absolute http(s) URL", c.Backend.URL)
	}
	if c.Backend.Timeout.Duration <= 0 {
		return errors.New("backend timeout must be positive")
	}
	if c.Dashboard.PollInterval.Duration <= 0 {
		return errors.New("dashboard poll_interval must be positive")
	}
	if c.Dashboard.SettleDelay.Duration < 0 {
		return errors.New("dashboard settle_delay must not be negative")
	}
	if c.Gateway.Port < 0 || c.Gateway.Port > 65535 {
		return fmt.Errorf("gateway port %d out of range", c.Gateway.Port)
	}
	return nil
}

// GatewayAddr is the host:port the gateway listens on.
func (c *Config) GatewayAddr() string {
	return fmt.Sprintf("%s:%d", c.Gateway.Host, c.Gateway.Port)
}

func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := f.Chmod(0600); err != nil {
		return fmt.Errorf("set config permissions: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return nil
}
