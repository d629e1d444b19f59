package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTokenLifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(TokenEnv, "")

	if ti, err := GetToken(); err != nil || ti != nil {
		t.Fatalf("expected logged out, got %+v, %v", ti, err)
	}
	if err := SetToken("  Bearer abc123 ", nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	ti, err := GetToken()
	if err != nil || ti == nil {
		t.Fatalf("get: %+v, %v", ti, err)
	}
	if ti.Token != "abc123" || ti.Source != "file" {
		t.Fatalf("unexpected token info: %+v", ti)
	}
	if err := DeleteToken(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if tok, err := Token(); err != nil || tok != "" {
		t.Fatalf("expected empty token after delete, got %q, %v", tok, err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := SetToken("from-file", nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	t.Setenv(TokenEnv, "bearer from-env")

	ti, err := GetToken()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ti.Token != "from-env" || ti.Source != "env" {
		t.Fatalf("unexpected token info: %+v", ti)
	}
}

func TestSetToken_Empty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := SetToken("   ", nil); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestToken_SkipsExpired(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(TokenEnv, "")

	past := time.Now().Add(-time.Hour)
	if err := SetToken("old", &past); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tok, err := Token(); tok != "" || !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %q, %v", tok, err)
	}

	future := time.Now().Add(time.Hour)
	if err := SetToken("fresh", &future); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tok, err := Token(); tok != "fresh" || err != nil {
		t.Fatalf("got %q, %v", tok, err)
	}
}

func TestEnvWinsOverCorruptFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := filepath.Join(home, ".items", credFileName)
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(TokenEnv, "")
	if _, err := GetToken(); err == nil {
		t.Fatal("expected error for corrupt credentials")
	}
	t.Setenv(TokenEnv, "env-token")
	ti, err := GetToken()
	if err != nil || ti == nil || ti.Source != "env" {
		t.Fatalf("got %+v, %v", ti, err)
	}
}
