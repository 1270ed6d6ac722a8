package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "craftplan",
		Short: "craftplan - search for minimum-cost crafting plans",
		Long: `craftplan computes a minimum-cost sequence of production actions that
turns a starting inventory into one meeting your item goals, by running
a time-bounded best-first search over the recipe graph.

Examples:
  craftplan plan --file Crafting.json --budget 30s
  craftplan plan --file Crafting.json --no-heuristic
  craftplan validate --file Crafting.json
  craftplan catalog --file Crafting.json
  craftplan history list
  craftplan config set-file Crafting.json`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml (default: search ./, ./configs, /etc/craftplan)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
