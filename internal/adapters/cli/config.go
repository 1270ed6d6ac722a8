package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/craftplan-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage craftplan configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CRAFTPLAN_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default crafting file, default budget) are stored in
~/.craftplan/config.json

Examples:
  craftplan config show
  craftplan config set-file Crafting.json
  craftplan config set-budget 30s
  craftplan config clear`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetFileCommand())
	cmd.AddCommand(newConfigSetBudgetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("craftplan Configuration")
			fmt.Println("=======================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultSpecFile != "" {
				fmt.Printf("  Default spec:     %s\n", userCfg.DefaultSpecFile)
			} else {
				fmt.Printf("  Default spec:     (not set)\n")
			}
			if userCfg.DefaultBudget != "" {
				fmt.Printf("  Default budget:   %s\n", userCfg.DefaultBudget)
			} else {
				fmt.Printf("  Default budget:   (not set)\n")
			}

			fmt.Println("\nPlanner:")
			fmt.Printf("  Budget:           %s\n", cfg.Planner.Budget)
			fmt.Printf("  Record runs:      %v\n", cfg.Planner.RecordRuns)
			fmt.Printf("  Heuristic:        disabled=%v, ladders=%d, caps=%d\n",
				cfg.Planner.Heuristic.Disabled,
				len(cfg.Planner.Heuristic.Ladders),
				len(cfg.Planner.Heuristic.Caps))

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			if cfg.Database.Type == "sqlite" {
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			} else {
				fmt.Printf("  Host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Printf("  Name:             %s\n", cfg.Database.Name)
			}

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %v\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Endpoint:         http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			return nil
		},
	}
}

func newConfigSetFileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-file <path>",
		Short: "Set the default crafting specification file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateUserConfig(func(userCfg *config.UserConfig) {
				userCfg.DefaultSpecFile = args[0]
			})
		},
	}
}

func newConfigSetBudgetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-budget <duration>",
		Short: "Set the default search budget (e.g. 30s, 2m)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := time.ParseDuration(args[0]); err != nil {
				return fmt.Errorf("invalid budget %q: %w", args[0], err)
			}
			return updateUserConfig(func(userCfg *config.UserConfig) {
				userCfg.DefaultBudget = args[0]
			})
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all user preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateUserConfig(func(userCfg *config.UserConfig) {
				*userCfg = config.UserConfig{}
			})
		},
	}
}

func updateUserConfig(mutate func(*config.UserConfig)) error {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return fmt.Errorf("failed to create user config handler: %w", err)
	}

	userCfg, err := handler.Load()
	if err != nil {
		return fmt.Errorf("failed to load user config: %w", err)
	}

	mutate(userCfg)

	if err := handler.Save(userCfg); err != nil {
		return err
	}

	fmt.Println("Preferences updated.")
	return nil
}
