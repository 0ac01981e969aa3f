// Package commands provides the CLI commands for osmiq.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/osmiq/osmiq/internal/config"
	"github.com/osmiq/osmiq/internal/logging"
)

var (
	// Global flags
	modelFlag  string
	outputFlag string
	fileFlag   string
	webFlag    bool
	debugFlag  bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "osmiq [prompt]",
	Short: "AI study assistant for your terminal",
	Long: `osmiq is a study assistant in your terminal. Ask questions, get
explanations, and keep a conversation going while you study.

Examples:
  osmiq chat                       Start an interactive study session
  osmiq config                     Configure API key and defaults
  osmiq "Explain entropy"          Send a single question
  osmiq -f notes.md                Read the question from a file
  cat notes.md | osmiq             Read the question from stdin
  osmiq "Explain entropy" -o a.md  Save the answer to a file`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags are parsed by now; the log file stays open for the
		// life of the process.
		_, err := logging.Setup(debugFlag)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("osmiq %s (built %s)\n", Version, BuildTime)
			return nil
		}

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data))
		}

		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data))
		}

		if len(args) > 0 {
			return runQuery(args[0])
		}

		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write debug logs to the config directory")
	rootCmd.PersistentFlags().BoolVar(&webFlag, "web", false, "Ground the answer with web search")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save answer to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
}

// getModel returns the model to use (from flag or config)
func getModel(cfg config.Config) string {
	if modelFlag != "" {
		return modelFlag
	}
	return cfg.DefaultModel
}
