package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/osmiq/osmiq/internal/api"
	"github.com/osmiq/osmiq/internal/config"
	"github.com/osmiq/osmiq/internal/render"
)

// runQuery sends a single prompt and prints the complete answer. The
// one-shot path has no reveal simulation; that belongs to the chat UI.
func runQuery(prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt is empty")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	client, err := api.NewClient(config.ResolveAPIKey(cfg), api.WithModel(getModel(cfg)))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	spin := newSpinner("Thinking")
	spin.start()
	answer, err := client.Generate(context.Background(), prompt, nil, webFlag)
	if err != nil {
		spin.stopWithError()
		return err
	}
	spin.stopWithSuccess("Done")

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(answer), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("Answer saved to %s\n", outputFlag)
		return nil
	}

	// Render markdown only when stdout is a terminal; pipes get the
	// raw text.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 {
			width = 80
		}
		rendered, err := render.Markdown(answer, cfg.MarkdownStyle, width-2)
		if err == nil {
			fmt.Print(rendered)
			return nil
		}
	}

	fmt.Println(answer)
	return nil
}

var (
	spinnerColors = []lipgloss.Color{
		lipgloss.Color("#ff6b6b"),
		lipgloss.Color("#feca57"),
		lipgloss.Color("#9ece6a"),
		lipgloss.Color("#7aa2f7"),
		lipgloss.Color("#bb9af7"),
	}

	spinnerTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5"))
	spinnerOkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Bold(true)
	spinnerErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true)
)

// spinner handles the animated loading indicator on stderr
type spinner struct {
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

// newSpinner creates a new animated spinner
func newSpinner(message string) *spinner {
	return &spinner{
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		fmt.Fprint(os.Stderr, "\033[?25l") // hide cursor

		for {
			select {
			case <-s.stop:
				fmt.Fprint(os.Stderr, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinIdx := s.frame % len(chars)
	color := spinnerColors[s.frame%len(spinnerColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(color).Bold(true).Render(chars[spinIdx])

	dots := strings.Repeat(".", (s.frame/4)%4)
	fmt.Fprintf(os.Stderr, "\r\033[K%s %s%s", spinnerChar, spinnerTextStyle.Render(s.message), dots)
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and prints a success mark
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done
	fmt.Fprintf(os.Stderr, "%s %s\n", spinnerOkStyle.Render("✓"), spinnerTextStyle.Render(message))
}

// stopWithError stops the spinner without a message
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
	fmt.Fprintf(os.Stderr, "%s\n", spinnerErrStyle.Render("✗"))
}
