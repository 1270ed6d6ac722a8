package cli

import (
	"fmt"

	"github.com/andrescamacho/craftplan-go/internal/adapters/loader"
	"github.com/andrescamacho/craftplan-go/internal/domain/planning"
	"github.com/andrescamacho/craftplan-go/internal/infrastructure/config"
)

// resolveSpecFile resolves the crafting file path from the flag or the
// user preferences file. Priority: --file flag > user config default.
func resolveSpecFile(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no crafting file specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no crafting file specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultSpecFile != "" {
		return userCfg.DefaultSpecFile, nil
	}

	return "", fmt.Errorf("no crafting file specified: use --file, or set a default with 'craftplan config set-file'")
}

// loadProblem resolves and loads the crafting specification
func loadProblem(flagValue string) (*loader.Problem, string, error) {
	path, err := resolveSpecFile(flagValue)
	if err != nil {
		return nil, "", err
	}

	problem, err := loader.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return problem, path, nil
}

// heuristicRules converts the heuristic configuration into the policy's
// declarative rule tables
func heuristicRules(cfg *config.HeuristicConfig) planning.Rules {
	rules := planning.Rules{
		TerminalBonus: cfg.TerminalBonus,
		UpgradeBonus:  cfg.UpgradeBonus,
		Caps:          make(map[string][]planning.StockCap),
	}
	for _, l := range cfg.Ladders {
		rules.Ladders = append(rules.Ladders, planning.ToolLadder{
			Family:   l.Family,
			Resource: l.Resource,
			Tools:    l.Tools,
		})
	}
	for _, c := range cfg.Caps {
		rules.Caps[c.Item] = append(rules.Caps[c.Item], planning.StockCap{
			Limit:   c.Limit,
			Penalty: c.Penalty,
		})
	}
	return rules
}

// printPlan renders the plan as a step table
func printPlan(plan *planning.Plan) {
	fmt.Printf("Plan %s (%d steps, total cost %.1f)\n", plan.ID(), plan.Len(), plan.TotalCost())
	fmt.Println("==================================================")
	running := 0.0
	for i, step := range plan.Steps() {
		running += step.Cost
		fmt.Printf("%3d. %-40s cost %6.1f  (running %6.1f)\n", i+1, step.Action, step.Cost, running)
		if verbose {
			fmt.Printf("     -> %s\n", step.State)
		}
	}
}
