package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(HostEnv, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL() != DefaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL(), DefaultBaseURL)
	}
	if cfg.AuthTransport != "bearer" {
		t.Fatalf("AuthTransport = %q, want bearer", cfg.AuthTransport)
	}
	if cfg.SessionTimeout != 15*time.Minute || cfg.SessionWarning != 2*time.Minute {
		t.Fatalf("session = %v/%v, want 15m/2m", cfg.SessionTimeout, cfg.SessionWarning)
	}
	wantStore, err := expandPath(defaultStorePath)
	if err != nil {
		t.Fatalf("expandPath(defaultStorePath) returned error: %v", err)
	}
	if cfg.StorePath != wantStore {
		t.Fatalf("StorePath = %q, want %q", cfg.StorePath, wantStore)
	}
	if cfg.RequestsPerSecond != defaultRequestsPerSec {
		t.Fatalf("RequestsPerSecond = %v, want %v", cfg.RequestsPerSecond, defaultRequestsPerSec)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(HostEnv, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
deployment_host = "  staging.kitchenhelper-ai.de  "
auth_transport = " Cookie "
store_path = "  ~/.kh/session.db  "
language = " en "
session_timeout = "30m"
session_warning = "5m"
requests_per_second = 2.5
metrics_addr = " 127.0.0.1:9465 "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL() != "https://staging.kitchenhelper-ai.de/api" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL())
	}
	if cfg.AuthTransport != "cookie" {
		t.Fatalf("AuthTransport = %q, want cookie", cfg.AuthTransport)
	}
	if !strings.HasPrefix(cfg.StorePath, home) {
		t.Fatalf("StorePath = %q, want it under HOME %q", cfg.StorePath, home)
	}
	if cfg.Language != "en" || cfg.MetricsAddr != "127.0.0.1:9465" {
		t.Fatalf("language/metrics = %q/%q", cfg.Language, cfg.MetricsAddr)
	}
	if cfg.SessionTimeout != 30*time.Minute || cfg.SessionWarning != 5*time.Minute {
		t.Fatalf("session = %v/%v, want 30m/5m", cfg.SessionTimeout, cfg.SessionWarning)
	}
	if cfg.RequestsPerSecond != 2.5 {
		t.Fatalf("RequestsPerSecond = %v, want 2.5", cfg.RequestsPerSecond)
	}
}

func TestLoad_ExplicitBaseURLWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(HostEnv, "kitchenhelper-ai.de")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = "http://10.0.0.5:8000/api/"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL() != "http://10.0.0.5:8000/api" {
		t.Fatalf("BaseURL = %q, want explicit url", cfg.BaseURL())
	}
}

func TestLoad_HostEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(HostEnv, "www.kitchenhelper-ai.de")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`deployment_host = "localhost"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL() != "https://api.kitchenhelper-ai.de/api" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL())
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for name, body := range map[string]string{
		"toml":      `api_base_url = [`,
		"transport": `auth_transport = "smoke"`,
		"duration":  `session_timeout = "soon"`,
		"negative":  `session_warning = "-1m"`,
		"warning":   "session_timeout = \"1m\"\nsession_warning = \"2m\"",
	} {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := Load(path)
		if err == nil {
			t.Fatalf("%s: Load returned nil error, want parse error", name)
		}
		if !strings.Contains(err.Error(), "parse config") {
			t.Fatalf("%s: Load error = %q, want it to mention parse config", name, err.Error())
		}
	}
}

func TestResolveBaseURL(t *testing.T) {
	tests := map[string]string{
		"":                                  DefaultBaseURL,
		"kitchenhelper-ai.de":               "https://api.kitchenhelper-ai.de/api",
		"WWW.kitchenhelper-ai.de":           "https://api.kitchenhelper-ai.de/api",
		"https://kitchenhelper-ai.de/login": "https://api.kitchenhelper-ai.de/api",
		"beta.kitchenhelper-ai.de":          "https://beta.kitchenhelper-ai.de/api",
		"beta.kitchenhelper-ai.de:443":      "https://beta.kitchenhelper-ai.de/api",
		"localhost":                         DefaultBaseURL,
		"127.0.0.1:5500":                    DefaultBaseURL,
		"[::1]:8080":                        DefaultBaseURL,
		"notkitchenhelper-ai.de":            DefaultBaseURL,
		"example.com":                       DefaultBaseURL,
	}
	for host, want := range tests {
		if got := ResolveBaseURL(host); got != want {
			t.Errorf("ResolveBaseURL(%q) = %q, want %q", host, got, want)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
