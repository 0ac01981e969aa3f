package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osmiq/osmiq/internal/api"
	"github.com/osmiq/osmiq/internal/config"
	"github.com/osmiq/osmiq/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive study session",
	Long: `Start an interactive chat session with Osmiq.

The session keeps the conversation in memory for context; nothing is
persisted when you quit. Type 'exit', 'quit', or press Ctrl+C to end
the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	apiKey := config.ResolveAPIKey(cfg)
	client, err := api.NewClient(apiKey, api.WithModel(getModel(cfg)))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	webSearch := cfg.WebSearch
	if webFlag {
		webSearch = true
	}

	return tui.RunChat(client, tui.Options{
		ModelName:     client.Model(),
		DisplayName:   cfg.DisplayName,
		MarkdownStyle: cfg.MarkdownStyle,
		WebSearch:     webSearch,
	})
}
