package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestTypedGetters(t *testing.T) {
	t.Setenv("DODGE_TEST_INT", "42")
	t.Setenv("DODGE_TEST_BAD_INT", "forty")
	t.Setenv("DODGE_TEST_BOOL", "yes")
	t.Setenv("DODGE_TEST_DUR", "1500ms")

	if got := GetEnvInt("DODGE_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("DODGE_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvInt malformed = %d, want fallback 7", got)
	}
	if got := GetEnvInt64("DODGE_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt64 = %d, want 42", got)
	}
	if got := GetEnvBool("DODGE_TEST_BOOL", false); !got {
		t.Errorf("GetEnvBool = false, want true")
	}
	if got := GetEnvBool("DODGE_TEST_UNSET", true); !got {
		t.Errorf("GetEnvBool unset = false, want fallback true")
	}
	if got := GetEnvDuration("DODGE_TEST_DUR", time.Second); got != 1500*time.Millisecond {
		t.Errorf("GetEnvDuration = %v, want 1.5s", got)
	}
	if got := GetEnv("DODGE_TEST_UNSET", "dflt"); got != "dflt" {
		t.Errorf("GetEnv unset = %q", got)
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "DODGE_TEST_FROM_FILE=hello\nDODGE_TEST_PRESET=file\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DODGE_TEST_PRESET", "env")
	t.Setenv("DODGE_TEST_FROM_FILE", "")
	os.Unsetenv("DODGE_TEST_FROM_FILE")

	if err := Load(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := GetEnv("DODGE_TEST_FROM_FILE", ""); got != "hello" {
		t.Errorf("DODGE_TEST_FROM_FILE = %q, want hello", got)
	}
	if got := GetEnv("DODGE_TEST_PRESET", ""); got != "env" {
		t.Errorf("DODGE_TEST_PRESET = %q, want env (existing vars win)", got)
	}
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("DODGE_DEBUG", "true")
	t.Setenv("DODGE_HIGHSCORE_FILE", "/tmp/hs.json")
	t.Setenv("DODGE_SEED", "7")
	t.Setenv("DODGE_LOG_LEVEL", "debug")

	s := LoadSettings()
	if !s.Debug || s.HighScoreFile != "/tmp/hs.json" || s.Seed != 7 {
		t.Fatalf("settings = %+v", s)
	}
	if s.LogLevel != log.DebugLevel {
		t.Fatalf("log level = %v, want debug", s.LogLevel)
	}
	if !s.GameConfig().Debug {
		t.Fatal("debug flag not applied to the game config")
	}

	a, b := s.Rand(), s.Rand()
	for range 5 {
		if a.Float64() != b.Float64() {
			t.Fatal("seeded sources diverge")
		}
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	for _, k := range []string{"DODGE_DEBUG", "DODGE_HIGHSCORE_FILE", "DODGE_SEED", "DODGE_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	s := LoadSettings()
	if s.Debug || s.HighScoreFile != DefaultHighScoreFile || s.Seed != 0 || s.LogLevel != log.InfoLevel {
		t.Fatalf("defaults = %+v", s)
	}
	if s.Rand() != nil {
		t.Fatal("unseeded settings returned a fixed source")
	}
}
