package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/craftplan-go/internal/adapters/persistence"
	"github.com/andrescamacho/craftplan-go/internal/infrastructure/config"
	"github.com/andrescamacho/craftplan-go/internal/infrastructure/database"
)

// NewHistoryCommand creates the history command with subcommands
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded plan runs",
		Long: `Inspect past search runs recorded with 'plan --record' (or with
planner.record_runs enabled).

Examples:
  craftplan history list
  craftplan history list --limit 50
  craftplan history show <run-id>`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent plan runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRunRepository()
			if err != nil {
				return err
			}

			runs, err := repo.ListRecent(context.Background(), limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No recorded runs.")
				return nil
			}

			fmt.Printf("%-36s  %-8s  %-10s  %-10s  %s\n", "RUN", "OUTCOME", "COST", "ELAPSED", "GOAL")
			for _, run := range runs {
				outcome := "failure"
				cost := "-"
				if run.Found {
					outcome = "success"
					cost = fmt.Sprintf("%.1f", run.TotalCost)
				}
				fmt.Printf("%-36s  %-8s  %-10s  %-10s  %s\n",
					run.RunID, outcome, cost,
					run.Elapsed.Round(time.Millisecond), run.Goal)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRunRepository()
			if err != nil {
				return err
			}

			run, err := repo.FindByID(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Run %s\n", run.RunID)
			fmt.Printf("  Spec file:       %s\n", run.SpecFile)
			fmt.Printf("  Goal:            %s\n", run.Goal)
			fmt.Printf("  Recorded:        %s\n", run.CreatedAt.Format(time.RFC3339))
			fmt.Printf("  Elapsed:         %s\n", run.Elapsed.Round(time.Millisecond))
			fmt.Printf("  States expanded: %d\n", run.StatesExpanded)
			if !run.Found {
				fmt.Println("  Outcome:         no plan found")
				return nil
			}
			fmt.Printf("  Outcome:         success (cost %.1f)\n", run.TotalCost)
			fmt.Printf("  Plan:            %s\n", strings.Join(run.Actions, " -> "))
			return nil
		},
	}
}

func openRunRepository() (*persistence.GormPlanRunRepository, error) {
	cfg := config.LoadConfigOrDefault(configPath)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return persistence.NewGormPlanRunRepository(db), nil
}
