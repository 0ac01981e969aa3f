// Package tui provides the interactive chat interface for osmiq.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorBorder  = lipgloss.Color("#3b4261")
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorAccent  = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")

	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#414868")
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextMute)

	messagesAreaStyle = lipgloss.NewStyle().
				Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	userBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorTextMute).
			Padding(0, 1)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				PaddingLeft(1)

	copiedStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	inputPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	webOnStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Bold(true).
				Align(lipgloss.Center)

	welcomeIconStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Align(lipgloss.Center)

	promptNumberStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	promptTextStyle = lipgloss.NewStyle().
			Foreground(colorText)
)

// Config menu styles
var (
	configHeaderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 2)

	configPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(1, 2)

	configSectionStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	configPathStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	configItemStyle = lipgloss.NewStyle().
			Foreground(colorText)

	configSelectedStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	configCursorStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	configValueStyle = lipgloss.NewStyle().
				Foreground(colorWarning)

	configOnStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	configOffStyle = lipgloss.NewStyle().
			Foreground(colorTextMute)

	configFeedbackStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Padding(0, 1)
)
