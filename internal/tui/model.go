package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/osmiq/osmiq/internal/chat"
	"github.com/osmiq/osmiq/internal/models"
	"github.com/osmiq/osmiq/internal/render"
)

// Message types for the TUI
type (
	// engineUpdateMsg is sent whenever the session engine mutated the
	// store (new message, reveal tick, feedback change).
	engineUpdateMsg struct{}
	// submitFinishedMsg is sent when a Submit call returns; the reveal
	// may still be running at that point.
	submitFinishedMsg struct {
		err error
	}
)

// Options configures the chat TUI
type Options struct {
	ModelName     string
	DisplayName   string // greeting only; empty is fine
	MarkdownStyle string
	WebSearch     bool // initial state of the web search toggle
}

// Model represents the TUI state
type Model struct {
	engine   *chat.Controller
	store    *chat.Store
	feedback *chat.Feedback
	updates  chan struct{}

	opts      Options
	webSearch bool

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading   bool
	ready     bool
	promptIdx int // next suggested prompt for tab-cycling

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model around the given generator
func NewChatModel(gen chat.Generator, opts Options) Model {
	updates := make(chan struct{}, 64)
	notify := func() {
		// Drop the signal if the UI is behind; it re-reads the full
		// snapshot on every update anyway.
		select {
		case updates <- struct{}{}:
		default:
		}
	}

	store := chat.NewStore()
	engine := chat.NewController(gen, store, chat.WithNotify(notify))
	feedback := chat.NewFeedback(models.FeedbackExpiry, notify)

	ta := textarea.New()
	ta.Placeholder = "Message Osmiq..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = "dark"
	}
	if opts.ModelName == "" {
		opts.ModelName = models.DefaultModel
	}

	return Model{
		engine:    engine,
		store:     store,
		feedback:  feedback,
		updates:   updates,
		opts:      opts,
		webSearch: opts.WebSearch,
		textarea:  ta,
		spinner:   s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.waitForUpdate(),
	)
}

// waitForUpdate re-arms the engine notification listener
func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		<-m.updates
		return engineUpdateMsg{}
	}
}

// submit dispatches one turn to the engine off the UI goroutine
func (m Model) submit(text string) tea.Cmd {
	web := m.webSearch
	return func() tea.Msg {
		return submitFinishedMsg{err: m.engine.Submit(context.Background(), text, web)}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 4
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.engine.Close()
			return m, tea.Quit

		case "esc":
			if m.engine.Busy() {
				// Cancel the reveal; partial text stays in place.
				m.engine.Close()
				m.loading = false
				m.updateViewport()
			} else {
				return m, tea.Quit
			}

		case "ctrl+s":
			m.webSearch = !m.webSearch

		case "ctrl+y":
			m.copyLastAnswer()

		case "tab":
			if m.store.Len() == 0 && !m.loading {
				prompt := models.SuggestedPrompts[m.promptIdx%len(models.SuggestedPrompts)]
				m.promptIdx++
				m.textarea.SetValue(prompt)
			}

		case "enter":
			input := strings.TrimSpace(m.textarea.Value())
			if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
				m.engine.Close()
				return m, tea.Quit
			}
			if !m.engine.Busy() && input != "" {
				// The buffer clears before the request leaves, so the
				// input is empty by the time an answer starts arriving.
				m.textarea.Reset()
				m.loading = true
				m.updateViewport()
				return m, tea.Batch(m.submit(input), m.spinner.Tick)
			}
		}

	case engineUpdateMsg:
		m.updateViewport()
		m.viewport.GotoBottom()
		if !m.engine.Busy() {
			m.loading = false
		}
		cmds = append(cmds, m.waitForUpdate())

	case submitFinishedMsg:
		// Empty input and busy rejections are silent no-ops; real
		// failures were already converted into an error reply.
		if msg.err != nil {
			log.Debug().Err(msg.err).Msg("submission rejected")
		}
		if !m.engine.Busy() {
			m.loading = false
		}
		m.updateViewport()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass key events to the textarea, and never while a turn is
	// in flight.
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("✦ Osmiq"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.opts.ModelName),
	}
	if m.opts.DisplayName != "" {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render("hi, "+m.opts.DisplayName),
		)
	}
	if m.webSearch {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			webOnStyle.Render("web search"),
		)
	}
	header := headerStyle.Width(contentWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, headerParts...))
	sections = append(sections, header)

	// Messages
	var messagesContent string
	if m.store.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input
	var inputContent string
	if m.loading {
		inputContent = m.spinner.View() + loadingStyle.Render(" Osmiq is thinking...")
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the empty-session screen with the suggested
// prompts from the original study assistant.
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4

	title := welcomeTitleStyle.Width(width).Render("What would you like to know?")
	subtitle := welcomeStyle.Width(width).Render(
		"Use one of the common prompts below (Tab to cycle) or type your own to begin your study session.")

	var prompts []string
	for i, p := range models.SuggestedPrompts {
		prompts = append(prompts,
			"  "+promptNumberStyle.Render(fmt.Sprintf("%d.", i+1))+" "+promptTextStyle.Render(p))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		title,
		"",
		subtitle,
		"",
		strings.Join(prompts, "\n"),
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (m.viewport.Height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderStatusBar renders the bottom shortcut bar
func (m Model) renderStatusBar(width int) string {
	webState := "off"
	if m.webSearch {
		webState = "on"
	}
	escDesc := "Quit"
	if m.engine.Busy() {
		escDesc = "Cancel"
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Tab", "Prompts"},
		{"Ctrl+S", "Web: " + webState},
		{"Ctrl+Y", "Copy"},
		{"Esc", escDesc},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// copyLastAnswer copies the most recent model message and marks it
func (m *Model) copyLastAnswer() {
	snap := m.store.Snapshot()
	for i := len(snap) - 1; i >= 0; i-- {
		if snap[i].Role != models.RoleModel || snap[i].Text == "" {
			continue
		}
		if err := clipboard.WriteAll(snap[i].Text); err != nil {
			log.Debug().Err(err).Msg("clipboard write failed")
			return
		}
		m.feedback.Mark(snap[i].ID)
		return
	}
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	inFlight := m.engine.InFlightID()
	copied := m.feedback.ActiveID()

	for i, msg := range m.store.Snapshot() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Role == models.RoleUser {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Text)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ Osmiq")
			if msg.ID == copied {
				label += copiedStyle.Render("  ✓ copied")
			}

			text := msg.Text
			if msg.ID == inFlight {
				text += " ▌"
			}

			rendered, err := render.Markdown(text, m.opts.MarkdownStyle, bubbleWidth-4)
			if err != nil {
				rendered = text
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the chat TUI and blocks until it exits
func RunChat(gen chat.Generator, opts Options) error {
	m := NewChatModel(gen, opts)
	defer m.engine.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
