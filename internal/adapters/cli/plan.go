package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/craftplan-go/internal/adapters/loader"
	"github.com/andrescamacho/craftplan-go/internal/adapters/metrics"
	"github.com/andrescamacho/craftplan-go/internal/adapters/persistence"
	"github.com/andrescamacho/craftplan-go/internal/domain/planning"
	"github.com/andrescamacho/craftplan-go/internal/domain/shared"
	"github.com/andrescamacho/craftplan-go/internal/infrastructure/config"
	"github.com/andrescamacho/craftplan-go/internal/infrastructure/database"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		specFile    string
		budget      time.Duration
		noHeuristic bool
		record      bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Search for a minimum-cost crafting plan",
		Long: `Run a time-bounded best-first search from the initial inventory to a
state meeting the goal, and print the winning action sequence.

The search budget comes from --budget, the user preferences file, or the
planner configuration, in that order.

Examples:
  craftplan plan --file Crafting.json
  craftplan plan --file Crafting.json --budget 30s --record
  craftplan plan --file Crafting.json --no-heuristic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfigOrDefault(configPath)

			problem, specPath, err := loadProblem(specFile)
			if err != nil {
				return err
			}

			searchBudget := resolveBudget(budget, cfg)

			var policy planning.Policy = planning.ZeroPolicy{}
			if !noHeuristic && !cfg.Planner.Heuristic.Disabled {
				policy = planning.NewRulePolicy(problem.Catalog, problem.Goal, heuristicRules(&cfg.Planner.Heuristic))
			}

			var observer planning.SearchObserver = planning.NopObserver{}
			if cfg.Metrics.Enabled {
				collector := metrics.NewSearchMetricsCollector()
				server, err := metrics.StartServer(&cfg.Metrics, collector)
				if err != nil {
					return fmt.Errorf("failed to start metrics server: %w", err)
				}
				defer server.Close()
				observer = collector
			}

			engine := planning.NewEngine(problem.Catalog, policy, shared.NewRealClock(), observer)
			engine.Verbose = verbose

			fmt.Printf("Planning %s -> %s (budget %s)\n",
				specPath, problem.Goal.Describe(problem.Universe), searchBudget)

			result := engine.Search(problem.Start, problem.Goal, searchBudget)

			if record || cfg.Planner.RecordRuns {
				if err := recordRun(cfg, specPath, problem, result); err != nil {
					log.Printf("Warning: failed to record run: %v", err)
				}
			}

			if !result.Found {
				fmt.Printf("No plan found within budget (searched %s, %d states expanded)\n",
					result.Elapsed.Round(time.Millisecond), result.StatesExpanded)
				return result.Err()
			}

			printPlan(result.Plan)
			fmt.Printf("Search took %s, %d states expanded\n",
				result.Elapsed.Round(time.Millisecond), result.StatesExpanded)
			return nil
		},
	}

	cmd.Flags().StringVar(&specFile, "file", "", "Crafting specification file (JSON)")
	cmd.Flags().DurationVar(&budget, "budget", 0, "Wall-clock search budget (e.g. 30s)")
	cmd.Flags().BoolVar(&noHeuristic, "no-heuristic", false, "Disable the pruning heuristic (plain uniform-cost search)")
	cmd.Flags().BoolVar(&record, "record", false, "Record this run in the history database")

	return cmd
}

// resolveBudget picks the search budget: flag > user preference > config
func resolveBudget(flagValue time.Duration, cfg *config.Config) time.Duration {
	if flagValue > 0 {
		return flagValue
	}
	if handler, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := handler.Load(); err == nil {
			if d := userCfg.BudgetDuration(); d > 0 {
				return d
			}
		}
	}
	return cfg.Planner.Budget
}

func recordRun(cfg *config.Config, specPath string, problem *loader.Problem, result *planning.Result) error {
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}

	run := &planning.PlanRun{
		RunID:          uuid.NewString(),
		SpecFile:       specPath,
		Goal:           problem.Goal.Describe(problem.Universe),
		Found:          result.Found,
		Elapsed:        result.Elapsed,
		StatesExpanded: result.StatesExpanded,
		CreatedAt:      time.Now().UTC(),
	}
	if result.Found {
		run.TotalCost = result.Plan.TotalCost()
		run.Actions = result.Plan.Actions()
	}

	repo := persistence.NewGormPlanRunRepository(db)
	return repo.RecordRun(context.Background(), run)
}
