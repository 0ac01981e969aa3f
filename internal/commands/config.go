package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/osmiq/osmiq/internal/config"
	"github.com/osmiq/osmiq/internal/tui"
)

var (
	cfgAPIKey string
	cfgModel  string
	cfgName   string
	cfgStyle  string
	cfgWeb    string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open the configuration menu",
	Long: `Open the interactive configuration menu, or change settings
directly with flags (scripts and pipes get the non-interactive path).

Examples:
  osmiq config                              Open the interactive menu
  osmiq config --api-key AIza...            Set the API key
  osmiq config --name Ada --web-search on   Set greeting name, enable web search`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd)
	},
}

func init() {
	configCmd.Flags().StringVar(&cfgAPIKey, "api-key", "", "API key for the generation backend")
	configCmd.Flags().StringVar(&cfgModel, "default-model", "", "Default generation model")
	configCmd.Flags().StringVar(&cfgName, "name", "", "Display name used in the chat greeting")
	configCmd.Flags().StringVar(&cfgStyle, "style", "", "Markdown style (dark, light, or theme path)")
	configCmd.Flags().StringVar(&cfgWeb, "web-search", "", "Default web search grounding (on/off)")
}

func runConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	changed := false
	if cfgAPIKey != "" {
		cfg.APIKey = cfgAPIKey
		changed = true
	}
	if cfgModel != "" {
		cfg.DefaultModel = cfgModel
		changed = true
	}
	if cfgName != "" {
		cfg.DisplayName = cfgName
		changed = true
	}
	if cfgStyle != "" {
		cfg.MarkdownStyle = cfgStyle
		changed = true
	}
	switch cfgWeb {
	case "":
	case "on", "true", "yes":
		cfg.WebSearch = true
		changed = true
	case "off", "false", "no":
		cfg.WebSearch = false
		changed = true
	default:
		return fmt.Errorf("invalid --web-search value %q (want on or off)", cfgWeb)
	}

	if changed {
		if err := config.SaveConfig(cfg); err != nil {
			return err
		}
		fmt.Println("Configuration saved.")
		return nil
	}

	// With no flags, a terminal gets the interactive menu; pipes get a
	// plain summary.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.RunConfig()
	}

	dir, _ := config.GetConfigDir()
	fmt.Printf("Config directory: %s\n\n", dir)
	fmt.Printf("  default_model:  %s\n", cfg.DefaultModel)
	fmt.Printf("  web_search:     %v\n", cfg.WebSearch)
	fmt.Printf("  display_name:   %s\n", valueOrUnset(cfg.DisplayName))
	fmt.Printf("  markdown_style: %s\n", cfg.MarkdownStyle)
	fmt.Printf("  api_key:        %s\n", maskKey(config.ResolveAPIKey(cfg)))
	return nil
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

// maskKey hides all but the tail of the API key
func maskKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
