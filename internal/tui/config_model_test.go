package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/osmiq/osmiq/internal/config"
)

func configModel(t *testing.T) ConfigModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	m := NewConfigModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(ConfigModel)
}

func press(t *testing.T, m ConfigModel, keys ...tea.KeyType) ConfigModel {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(ConfigModel)
	}
	return m
}

func TestConfigModel_ToggleWebSearch(t *testing.T) {
	m := configModel(t)

	// API Key, Default Model, then Web Search.
	m = press(t, m, tea.KeyDown, tea.KeyDown, tea.KeyEnter)

	if !m.config.WebSearch {
		t.Fatal("web search not enabled after toggle")
	}
	if m.feedback == "" {
		t.Error("toggle left no confirmation")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.WebSearch {
		t.Error("toggle was not persisted")
	}

	m = press(t, m, tea.KeyEnter)
	if m.config.WebSearch {
		t.Error("second toggle did not turn web search back off")
	}
}

func TestConfigModel_SelectModel(t *testing.T) {
	m := configModel(t)

	m = press(t, m, tea.KeyDown, tea.KeyEnter)
	if m.view != viewModelSelect {
		t.Fatalf("view = %v, want model selection", m.view)
	}

	m = press(t, m, tea.KeyDown, tea.KeyEnter)
	want := config.AvailableModels()[1]
	if m.config.DefaultModel != want {
		t.Errorf("DefaultModel = %q, want %q", m.config.DefaultModel, want)
	}
	if m.view != viewMenu {
		t.Error("selection did not return to the main menu")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DefaultModel != want {
		t.Error("model choice was not persisted")
	}
}

func TestConfigModel_EditAPIKey(t *testing.T) {
	m := configModel(t)

	m = press(t, m, tea.KeyEnter)
	if m.view != viewKeyEdit {
		t.Fatalf("view = %v, want key entry", m.view)
	}

	m.input.SetValue("  AIzaSyTest1234  ")
	m = press(t, m, tea.KeyEnter)

	if m.config.APIKey != "AIzaSyTest1234" {
		t.Errorf("APIKey = %q, want trimmed value", m.config.APIKey)
	}
	if m.view != viewMenu {
		t.Error("saving did not return to the main menu")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.APIKey != "AIzaSyTest1234" {
		t.Error("API key was not persisted")
	}
}

func TestConfigModel_EscLeavesSubmenu(t *testing.T) {
	m := configModel(t)

	m = press(t, m, tea.KeyDown, tea.KeyEnter)
	if m.view != viewModelSelect {
		t.Fatalf("view = %v, want model selection", m.view)
	}

	m = press(t, m, tea.KeyEsc)
	if m.view != viewMenu {
		t.Errorf("view after esc = %v, want main menu", m.view)
	}
}

func TestConfigModel_CursorWraps(t *testing.T) {
	m := configModel(t)

	m = press(t, m, tea.KeyUp)
	if m.cursor != menuItemCount-1 {
		t.Errorf("cursor = %d after up from the top, want %d", m.cursor, menuItemCount-1)
	}
	m = press(t, m, tea.KeyDown)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after wrapping down, want 0", m.cursor)
	}
}

func TestConfigModel_ViewShowsSettings(t *testing.T) {
	m := configModel(t)

	view := m.View()
	for _, label := range []string{"Settings", "API Key", "Default Model", "Web Search", "Markdown Style"} {
		if !strings.Contains(view, label) {
			t.Errorf("menu view missing %q", label)
		}
	}
	if !strings.Contains(view, "(unset)") {
		t.Error("empty API key should show as unset")
	}
}
