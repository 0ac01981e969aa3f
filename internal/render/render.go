// Package render turns markdown answers into styled terminal output.
package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

type cacheKey struct {
	style string
	width int
}

// renderers are cached per style/width pair; building a glamour
// renderer is expensive and the chat view re-renders on every tick.
var (
	mu    sync.Mutex
	cache = make(map[cacheKey]*glamour.TermRenderer)
)

func renderer(style string, width int) (*glamour.TermRenderer, error) {
	key := cacheKey{style: style, width: width}
	if r, ok := cache[key]; ok {
		return r, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	cache[key] = r
	return r, nil
}

// Markdown renders markdown content for terminal display
func Markdown(content, style string, width int) (string, error) {
	if style == "" {
		style = "dark"
	}
	if width < 10 {
		width = 10
	}

	mu.Lock()
	defer mu.Unlock()

	r, err := renderer(style, width)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

// MarkdownWithWidth is a convenience wrapper using the default style
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, "dark", width)
}

// StyleNames lists the built-in glamour styles offered in the
// configuration menu.
func StyleNames() []string {
	return []string{"dark", "light", "dracula", "tokyo-night", "notty", "ascii"}
}
