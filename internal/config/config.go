package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the client settings.
type Config struct {
	APIBaseURL        string
	DeploymentHost    string
	AuthTransport     string
	StorePath         string
	LogPath           string
	LogLevel          string
	Language          string
	SessionTimeout    time.Duration
	SessionWarning    time.Duration
	RequestsPerSecond float64
	MetricsAddr       string
}

const (
	defaultConfigPath     = "~/.config/kitchenhelper/config.toml"
	defaultStorePath      = "~/.local/share/kitchenhelper/session.db"
	defaultLogPath        = "~/.local/share/kitchenhelper/kitchen.log"
	defaultAuthTransport  = "bearer"
	defaultSessionTimeout = 15 * time.Minute
	defaultSessionWarning = 2 * time.Minute
	defaultRequestsPerSec = 5

	// HostEnv overrides deployment_host.
	HostEnv = "KITCHEN_HOST"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL        string  `toml:"api_base_url"`
		DeploymentHost    string  `toml:"deployment_host"`
		AuthTransport     string  `toml:"auth_transport"`
		StorePath         string  `toml:"store_path"`
		LogPath           string  `toml:"log_path"`
		LogLevel          string  `toml:"log_level"`
		Language          string  `toml:"language"`
		SessionTimeout    string  `toml:"session_timeout"`
		SessionWarning    string  `toml:"session_warning"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
		MetricsAddr       string  `toml:"metrics_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSpace(raw.APIBaseURL)
	cfg.DeploymentHost = strings.TrimSpace(raw.DeploymentHost)
	cfg.Language = strings.TrimSpace(raw.Language)
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	cfg.LogLevel = strings.TrimSpace(raw.LogLevel)

	if v := strings.ToLower(strings.TrimSpace(raw.AuthTransport)); v != "" {
		if v != "bearer" && v != "cookie" {
			return Config{}, fmt.Errorf("parse config: auth_transport %q must be bearer or cookie", raw.AuthTransport)
		}
		cfg.AuthTransport = v
	}
	if v := strings.TrimSpace(raw.StorePath); v != "" {
		cfg.StorePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if cfg.SessionTimeout, err = parseDuration("session_timeout", raw.SessionTimeout, defaultSessionTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SessionWarning, err = parseDuration("session_warning", raw.SessionWarning, defaultSessionWarning); err != nil {
		return Config{}, err
	}
	if cfg.SessionWarning >= cfg.SessionTimeout {
		return Config{}, fmt.Errorf("parse config: session_warning must be shorter than session_timeout")
	}
	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}

	cfg.applyEnv()
	return cfg, nil
}

// BaseURL returns the API prefix for this config.
func (c Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	return ResolveBaseURL(c.DeploymentHost)
}

func defaults() Config {
	return Config{
		AuthTransport:     defaultAuthTransport,
		StorePath:         mustExpand(defaultStorePath),
		LogPath:           mustExpand(defaultLogPath),
		SessionTimeout:    defaultSessionTimeout,
		SessionWarning:    defaultSessionWarning,
		RequestsPerSecond: defaultRequestsPerSec,
	}
}

func (c *Config) applyEnv() {
	if host := strings.TrimSpace(os.Getenv(HostEnv)); host != "" {
		c.DeploymentHost = host
	}
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive", field)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
