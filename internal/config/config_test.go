package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ITEMS_API_URL", "")
	t.Setenv("ITEMS_HOST", "")
	return home
}

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Path() != "" || cfg.Theme != "classic" || !cfg.Diagnostics {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if got := cfg.APIRoot(); got != LocalAPIRoot {
		t.Fatalf("APIRoot = %q", got)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	home := isolate(t)
	if _, err := Load(filepath.Join(home, "nope.toml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_DefaultTOML(t *testing.T) {
	home := isolate(t)
	write(t, home, ".items/config.toml", `
host = "app.internal"
timeout = "5s"
theme = "neon"
diagnostics = false
log_level = "debug"
`)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Timeout.Duration != 5*time.Second || cfg.Theme != "neon" || cfg.Diagnostics || cfg.LogLevel != "debug" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if got := cfg.APIRoot(); got != ContainerAPIRoot {
		t.Fatalf("APIRoot = %q", got)
	}
	if !strings.HasSuffix(cfg.Path(), "config.toml") {
		t.Fatalf("path = %q", cfg.Path())
	}
}

func TestLoad_YAML(t *testing.T) {
	home := isolate(t)
	p := write(t, home, "items.yml", "api_url: http://example.test:8080/\ntimeout: 250ms\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.APIRoot(); got != "http://example.test:8080" {
		t.Fatalf("APIRoot = %q", got)
	}
	if cfg.Timeout.Duration != 250*time.Millisecond {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	p := write(t, home, "c.toml", `host = "localhost"`)
	t.Setenv("ITEMS_HOST", "frontend")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.APIRoot(); got != ContainerAPIRoot {
		t.Fatalf("APIRoot = %q", got)
	}

	t.Setenv("ITEMS_API_URL", "http://override.test")
	cfg, err = Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.APIRoot(); got != "http://override.test" {
		t.Fatalf("api url should win over host: %q", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	home := isolate(t)
	cases := map[string]struct {
		body string
		want string
	}{
		"bad theme":    {`theme = "plaid"`, "theme: must be one of"},
		"bad url":      {`api_url = "not a url"`, "api_url: must be a valid URL"},
		"bad level":    {`log_level = "loud"`, "log_level"},
		"bad duration": {`timeout = "soon"`, "duration"},
		"negative":     {`timeout = "-1s"`, "timeout: must be >= 0"},
		"syntax":       {"theme = ", "line 1"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := write(t, home, strings.ReplaceAll(name, " ", "_")+".toml", tc.body)
			_, err := Load(p)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestResolveAPIRoot(t *testing.T) {
	cases := map[string]string{
		"":           LocalAPIRoot,
		"localhost":  LocalAPIRoot,
		"127.0.0.1":  LocalAPIRoot,
		" LocalHost": LocalAPIRoot,
		"frontend":   ContainerAPIRoot,
		"10.0.0.5":   ContainerAPIRoot,
	}
	for host, want := range cases {
		if got := ResolveAPIRoot(host); got != want {
			t.Fatalf("ResolveAPIRoot(%q) = %q, want %q", host, got, want)
		}
	}
}
