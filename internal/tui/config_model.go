package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osmiq/osmiq/internal/config"
	"github.com/osmiq/osmiq/internal/render"
)

// configView is the active screen of the configuration menu
type configView int

const (
	viewMenu configView = iota
	viewModelSelect
	viewStyleSelect
	viewKeyEdit
	viewNameEdit
)

// Main menu item indices
const (
	menuAPIKey = iota
	menuDefaultModel
	menuWebSearch
	menuDisplayName
	menuStyle
	menuExit
	menuItemCount
)

// feedbackClearMsg clears the transient confirmation line
type feedbackClearMsg struct{}

// ConfigModel is the interactive configuration menu. Every change is
// written to disk as soon as it is made.
type ConfigModel struct {
	config    config.Config
	configDir string

	view        configView
	cursor      int
	modelCursor int
	styleCursor int
	input       textinput.Model

	feedback        string
	feedbackTimeout time.Duration

	width  int
	height int
	ready  bool
}

// NewConfigModel creates the configuration menu model
func NewConfigModel() ConfigModel {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	configDir, _ := config.GetConfigDir()

	modelCursor := 0
	for i, m := range config.AvailableModels() {
		if m == cfg.DefaultModel {
			modelCursor = i
			break
		}
	}

	styleCursor := 0
	for i, s := range render.StyleNames() {
		if s == cfg.MarkdownStyle {
			styleCursor = i
			break
		}
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48

	return ConfigModel{
		config:          cfg,
		configDir:       configDir,
		view:            viewMenu,
		modelCursor:     modelCursor,
		styleCursor:     styleCursor,
		input:           ti,
		feedbackTimeout: 2 * time.Second,
	}
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return textinput.Blink
}

// clearFeedback clears the confirmation line after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		if m.view == viewKeyEdit || m.view == viewNameEdit {
			return m.updateEdit(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view == viewMenu {
				return m, tea.Quit
			}
			m.view = viewMenu

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// updateEdit routes keys to the text input while editing a value
func (m ConfigModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.view = viewMenu
		m.input.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if m.view == viewKeyEdit {
			m.config.APIKey = value
			m.feedback = m.save("API key updated")
		} else {
			m.config.DisplayName = value
			m.feedback = m.save("Display name updated")
		}
		m.view = viewMenu
		m.input.Blur()
		return m, clearFeedback(m.feedbackTimeout)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// moveCursor moves the cursor of whichever list is showing, wrapping
// at both ends.
func (m *ConfigModel) moveCursor(delta int) {
	wrap := func(cur, n int) int {
		cur += delta
		if cur < 0 {
			return n - 1
		}
		if cur >= n {
			return 0
		}
		return cur
	}

	switch m.view {
	case viewMenu:
		m.cursor = wrap(m.cursor, menuItemCount)
	case viewModelSelect:
		m.modelCursor = wrap(m.modelCursor, len(config.AvailableModels()))
	case viewStyleSelect:
		m.styleCursor = wrap(m.styleCursor, len(render.StyleNames()))
	}
}

// handleSelect acts on the highlighted item
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMenu:
		switch m.cursor {
		case menuAPIKey:
			m.view = viewKeyEdit
			m.input.SetValue(m.config.APIKey)
			m.input.EchoMode = textinput.EchoPassword
			m.input.Placeholder = "AIza..."
			m.input.Focus()
			return m, textinput.Blink

		case menuDefaultModel:
			m.view = viewModelSelect
			return m, nil

		case menuWebSearch:
			m.config.WebSearch = !m.config.WebSearch
			state := "disabled"
			if m.config.WebSearch {
				state = "enabled"
			}
			m.feedback = m.save("Web search " + state + " by default")
			return m, clearFeedback(m.feedbackTimeout)

		case menuDisplayName:
			m.view = viewNameEdit
			m.input.SetValue(m.config.DisplayName)
			m.input.EchoMode = textinput.EchoNormal
			m.input.Placeholder = "How should Osmiq greet you?"
			m.input.Focus()
			return m, textinput.Blink

		case menuStyle:
			m.view = viewStyleSelect
			return m, nil

		case menuExit:
			return m, tea.Quit
		}

	case viewModelSelect:
		m.config.DefaultModel = config.AvailableModels()[m.modelCursor]
		m.feedback = m.save("Default model set to " + m.config.DefaultModel)
		m.view = viewMenu
		return m, clearFeedback(m.feedbackTimeout)

	case viewStyleSelect:
		m.config.MarkdownStyle = render.StyleNames()[m.styleCursor]
		m.feedback = m.save("Markdown style set to " + m.config.MarkdownStyle)
		m.view = viewMenu
		return m, clearFeedback(m.feedbackTimeout)
	}

	return m, nil
}

// save persists the configuration and returns the feedback line
func (m *ConfigModel) save(ok string) string {
	if err := config.SaveConfig(m.config); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return ok
}

// View renders the configuration menu
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	header := configHeaderStyle.Width(contentWidth).Render(
		titleStyle.Render("✦ Osmiq") +
			hintStyle.Render("  •  ") +
			subtitleStyle.Render("configuration"))
	sections = append(sections, header)

	path := configPathStyle.Render(m.configDir + "/config.json")
	sections = append(sections, configPathStyle.Padding(0, 1).Render("Config: ")+path)

	var body string
	switch m.view {
	case viewMenu:
		body = m.renderMenu()
	case viewModelSelect:
		body = m.renderList("Select default model", config.AvailableModels(), m.modelCursor, m.config.DefaultModel)
	case viewStyleSelect:
		body = m.renderList("Select markdown style", render.StyleNames(), m.styleCursor, m.config.MarkdownStyle)
	case viewKeyEdit:
		body = m.renderEdit("API key")
	case viewNameEdit:
		body = m.renderEdit("Display name")
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(body))

	if m.feedback != "" {
		sections = append(sections, configFeedbackStyle.Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderConfigStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMenu renders the main settings list
func (m ConfigModel) renderMenu() string {
	rows := []struct {
		label string
		value string
	}{
		{"API Key", maskedKey(m.config.APIKey)},
		{"Default Model", m.config.DefaultModel},
		{"Web Search", boolValue(m.config.WebSearch)},
		{"Display Name", nameValue(m.config.DisplayName)},
		{"Markdown Style", m.config.MarkdownStyle},
		{"Exit", ""},
	}

	items := []string{configSectionStyle.Render("⚙ Settings"), ""}
	for i, row := range rows {
		cursor := "  "
		style := configItemStyle
		if m.cursor == i {
			cursor = configCursorStyle.Render("▸ ")
			style = configSelectedStyle
		}
		line := cursor + style.Render(padLabel(row.label)) + row.value
		if i == menuExit {
			line = "\n" + cursor + style.Render(row.label)
		}
		items = append(items, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderList renders a selection sub-menu
func (m ConfigModel) renderList(title string, options []string, cursor int, current string) string {
	items := []string{configSectionStyle.Render(title), ""}
	for i, opt := range options {
		prefix := "  "
		style := configItemStyle
		if i == cursor {
			prefix = configCursorStyle.Render("▸ ")
			style = configSelectedStyle
		}
		marker := ""
		if opt == current {
			marker = configOnStyle.Render("  (current)")
		}
		items = append(items, prefix+style.Render(opt)+marker)
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderEdit renders a text entry screen
func (m ConfigModel) renderEdit(title string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		configSectionStyle.Render(title),
		"",
		m.input.View(),
		"",
		hintStyle.Render("Enter to save, Esc to cancel"),
	)
}

// renderConfigStatusBar renders the bottom shortcut bar
func (m ConfigModel) renderConfigStatusBar(width int) string {
	escDesc := "Quit"
	if m.view != viewMenu {
		escDesc = "Back"
	}
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", escDesc},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

func padLabel(label string) string {
	const width = 16
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label))
}

func maskedKey(key string) string {
	if key == "" {
		return configOffStyle.Render("(unset)")
	}
	if len(key) <= 4 {
		return configValueStyle.Render("****")
	}
	return configValueStyle.Render("****" + key[len(key)-4:])
}

func boolValue(v bool) string {
	if v {
		return configOnStyle.Render("on")
	}
	return configOffStyle.Render("off")
}

func nameValue(name string) string {
	if name == "" {
		return configOffStyle.Render("(unset)")
	}
	return configValueStyle.Render(name)
}

// RunConfig starts the configuration menu and blocks until it exits
func RunConfig() error {
	p := tea.NewProgram(NewConfigModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
