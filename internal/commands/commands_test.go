package commands

import (
	"testing"

	"github.com/osmiq/osmiq/internal/config"
)

func TestGetModel(t *testing.T) {
	cfg := config.Config{DefaultModel: "from-config"}

	modelFlag = ""
	if got := getModel(cfg); got != "from-config" {
		t.Errorf("getModel = %q, want from-config", got)
	}

	modelFlag = "from-flag"
	defer func() { modelFlag = "" }()
	if got := getModel(cfg); got != "from-flag" {
		t.Errorf("getModel = %q, want from-flag (flag wins)", got)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "(unset)"},
		{"abc", "****"},
		{"AIzaSyExample1234", "****1234"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.key); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestValueOrUnset(t *testing.T) {
	if got := valueOrUnset(""); got != "(unset)" {
		t.Errorf("valueOrUnset(\"\") = %q", got)
	}
	if got := valueOrUnset("Ada"); got != "Ada" {
		t.Errorf("valueOrUnset(Ada) = %q", got)
	}
}

func TestRunConfig_SetAndShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OSMIQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfgName = "Ada"
	cfgWeb = "on"
	defer func() { cfgName, cfgWeb = "", "" }()

	if err := runConfig(configCmd); err != nil {
		t.Fatalf("runConfig failed: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DisplayName != "Ada" {
		t.Errorf("DisplayName = %q", cfg.DisplayName)
	}
	if !cfg.WebSearch {
		t.Error("WebSearch not enabled")
	}
}

func TestRunConfig_InvalidWebValue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfgWeb = "maybe"
	defer func() { cfgWeb = "" }()

	if err := runConfig(configCmd); err == nil {
		t.Error("expected error for invalid --web-search value")
	}
}

func TestNewSpinner(t *testing.T) {
	s := newSpinner("working")

	// stopOnce must be safe to call repeatedly without panicking.
	s.stopOnce()
	s.stopOnce()
}
