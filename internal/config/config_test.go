package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/osmiq/osmiq/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultModel != models.DefaultModel {
		t.Errorf("DefaultModel = %q, want %q", cfg.DefaultModel, models.DefaultModel)
	}
	if cfg.WebSearch {
		t.Error("WebSearch should default to off")
	}
	if cfg.MarkdownStyle != "dark" {
		t.Errorf("MarkdownStyle = %q, want dark", cfg.MarkdownStyle)
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DefaultModel != models.DefaultModel {
		t.Errorf("missing file should yield defaults, got model %q", cfg.DefaultModel)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.APIKey = "test-key-123"
	cfg.DisplayName = "Ada"
	cfg.WebSearch = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.APIKey != "test-key-123" {
		t.Errorf("APIKey = %q", loaded.APIKey)
	}
	if loaded.DisplayName != "Ada" {
		t.Errorf("DisplayName = %q", loaded.DisplayName)
	}
	if !loaded.WebSearch {
		t.Error("WebSearch flag not persisted")
	}
}

func TestSaveConfig_Permissions(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := SaveConfig(DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(home, ".osmiq", "config.json"))
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}

	dirInfo, err := os.Stat(filepath.Join(home, ".osmiq"))
	if err != nil {
		t.Fatalf("config dir missing: %v", err)
	}
	if perm := dirInfo.Mode().Perm(); perm != 0o700 {
		t.Errorf("config dir mode = %o, want 700", perm)
	}
}

func TestLoadConfig_CorruptFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".osmiq")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("expected error for corrupt config")
	}
	if cfg.DefaultModel != models.DefaultModel {
		t.Error("corrupt config should fall back to defaults")
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("OSMIQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := Config{APIKey: "from-config"}
	if got := ResolveAPIKey(cfg); got != "from-config" {
		t.Errorf("ResolveAPIKey = %q, want from-config", got)
	}

	t.Setenv("GEMINI_API_KEY", "from-gemini-env")
	if got := ResolveAPIKey(cfg); got != "from-gemini-env" {
		t.Errorf("ResolveAPIKey = %q, want from-gemini-env", got)
	}

	t.Setenv("OSMIQ_API_KEY", "from-osmiq-env")
	if got := ResolveAPIKey(cfg); got != "from-osmiq-env" {
		t.Errorf("ResolveAPIKey = %q, want from-osmiq-env (OSMIQ_API_KEY wins)", got)
	}
}
