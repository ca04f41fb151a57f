package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("FLAPPY_TEST_INT", "42")
	t.Setenv("FLAPPY_TEST_BAD_INT", "forty")
	t.Setenv("FLAPPY_TEST_FLOAT", " 1.5 ")
	t.Setenv("FLAPPY_TEST_BOOL", "true")

	if got := GetEnv("FLAPPY_TEST_UNSET", "x"); got != "x" {
		t.Fatalf("GetEnv unset = %q, want x", got)
	}
	if got := GetEnvInt("FLAPPY_TEST_INT", 1); got != 42 {
		t.Fatalf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("FLAPPY_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("GetEnvInt bad = %d, want fallback 7", got)
	}
	if got := GetEnvFloat("FLAPPY_TEST_FLOAT", 0); got != 1.5 {
		t.Fatalf("GetEnvFloat = %v, want 1.5", got)
	}
	if got := GetEnvBool("FLAPPY_TEST_BOOL", false); !got {
		t.Fatalf("GetEnvBool = false, want true")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("FLAPPY_DOTENV_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FLAPPY_DOTENV_VALUE", "")
	os.Unsetenv("FLAPPY_DOTENV_VALUE")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("FLAPPY_DOTENV_VALUE"); got != "from-file" {
		t.Fatalf("FLAPPY_DOTENV_VALUE = %q, want from-file", got)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	if got := NewLogger(io.Discard, "").GetLevel(); got != log.DebugLevel {
		t.Fatalf("level = %v, want debug", got)
	}
	t.Setenv("LOG_LEVEL", "loud")
	if got := NewLogger(io.Discard, "").GetLevel(); got != log.InfoLevel {
		t.Fatalf("level = %v, want info fallback", got)
	}
}
