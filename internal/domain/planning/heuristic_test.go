package planning_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftplan-go/internal/adapters/loader"
	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
	"github.com/andrescamacho/craftplan-go/internal/domain/planning"
	"github.com/andrescamacho/craftplan-go/test/helpers"
)

func actionIndex(t *testing.T, problem *loader.Problem, name string) int {
	t.Helper()
	for i := 0; i < problem.Catalog.Len(); i++ {
		if problem.Catalog.Recipe(i).Name() == name {
			return i
		}
	}
	t.Fatalf("no recipe named %q", name)
	return -1
}

// apply runs the named recipe against the state and returns the
// (action index, candidate state) pair the policy would see
func apply(t *testing.T, problem *loader.Problem, current *inventory.State, name string) (int, *inventory.State) {
	t.Helper()
	action := actionIndex(t, problem, name)
	r := problem.Catalog.Recipe(action)
	require.True(t, r.ApplicableTo(current), "recipe %q not applicable to %s", name, current)
	return action, r.Apply(current)
}

func toolingPolicy(t *testing.T) (*loader.Problem, *planning.RulePolicy) {
	t.Helper()
	problem := helpers.ToolingProblem(t)
	return problem, planning.NewRulePolicy(problem.Catalog, problem.Goal, helpers.ToolingRules())
}

func TestZeroPolicy_AlwaysZero(t *testing.T) {
	problem := helpers.WoodPlankProblem(t)
	policy := planning.ZeroPolicy{}

	current := problem.Start
	action, candidate := apply(t, problem, current, "chop")

	assert.Zero(t, policy.Bias(current, candidate, action))
}

func TestRulePolicy_PrunesWeakerGatheringTool(t *testing.T) {
	problem, policy := toolingPolicy(t)
	u := problem.Universe

	bareHands := inventory.NewState(u, nil)
	withAxe := inventory.NewState(u, map[string]int{"wooden_axe": 1})
	withStoneAxe := inventory.NewState(u, map[string]int{"wooden_axe": 1, "stone_axe": 1})

	// No tool held: punching is the right tier
	action, candidate := apply(t, problem, bareHands, "punch for wood")
	assert.Zero(t, policy.Bias(bareHands, candidate, action))

	// Axe held: punching is pruned, the axe is not
	action, candidate = apply(t, problem, withAxe, "punch for wood")
	assert.True(t, math.IsInf(policy.Bias(withAxe, candidate, action), 1))

	action, candidate = apply(t, problem, withAxe, "wooden_axe for wood")
	assert.Zero(t, policy.Bias(withAxe, candidate, action))

	// Stone axe held: the wooden axe is now the weaker tool
	action, candidate = apply(t, problem, withStoneAxe, "wooden_axe for wood")
	assert.True(t, math.IsInf(policy.Bias(withStoneAxe, candidate, action), 1))

	action, candidate = apply(t, problem, withStoneAxe, "stone_axe for wood")
	assert.Zero(t, policy.Bias(withStoneAxe, candidate, action))
}

func TestRulePolicy_PrunesSecondDurable(t *testing.T) {
	problem, policy := toolingPolicy(t)
	u := problem.Universe

	noBench := inventory.NewState(u, map[string]int{"plank": 4})
	oneBench := inventory.NewState(u, map[string]int{"plank": 4, "bench": 1})

	// First bench is fine
	action, candidate := apply(t, problem, noBench, "craft bench")
	assert.Zero(t, policy.Bias(noBench, candidate, action))

	// Second bench is never useful
	action, candidate = apply(t, problem, oneBench, "craft bench")
	assert.True(t, math.IsInf(policy.Bias(oneBench, candidate, action), 1))
}

func TestRulePolicy_TerminalGoalBonusAndOverproductionPrune(t *testing.T) {
	problem, policy := toolingPolicy(t)
	u := problem.Universe

	ready := inventory.NewState(u, map[string]int{"bench": 1, "plank": 3, "stick": 2})

	// Producing the goal artifact the first time gets the strong bonus
	action, candidate := apply(t, problem, ready, "craft wooden_axe at bench")
	assert.Equal(t, -1000.0, policy.Bias(ready, candidate, action))

	// Producing a second one is pruned
	alreadyDone := inventory.NewState(u, map[string]int{"bench": 1, "plank": 3, "stick": 2, "wooden_axe": 1})
	action, candidate = apply(t, problem, alreadyDone, "craft wooden_axe at bench")
	assert.True(t, math.IsInf(policy.Bias(alreadyDone, candidate, action), 1))
}

func TestRulePolicy_StockpileCapsEscalate(t *testing.T) {
	problem, policy := toolingPolicy(t)
	u := problem.Universe

	nearCap := inventory.NewState(u, map[string]int{"wood": 4})
	wellOver := inventory.NewState(u, map[string]int{"wood": 8})

	// Crossing the first cap costs the first penalty
	action, candidate := apply(t, problem, nearCap, "punch for wood")
	assert.Equal(t, 100.0, policy.Bias(nearCap, candidate, action))

	// Crossing the second cap stacks both penalties
	action, candidate = apply(t, problem, wellOver, "punch for wood")
	assert.Equal(t, 500.0, policy.Bias(wellOver, candidate, action))
}

func TestRulePolicy_EncouragesMissingToolTiers(t *testing.T) {
	problem, policy := toolingPolicy(t)
	u := problem.Universe

	ready := inventory.NewState(u, map[string]int{"bench": 1, "plank": 3, "stick": 2})

	// Granting the stone family's only tier earns the upgrade bonus
	action, candidate := apply(t, problem, ready, "craft wooden_pickaxe at bench")
	assert.Equal(t, -50.0, policy.Bias(ready, candidate, action))

	// Granting the wood family's top tier (2 of 2) gets the base bonus
	stoneReady := inventory.NewState(u, map[string]int{"bench": 1, "cobble": 3, "stick": 2})
	action, candidate = apply(t, problem, stoneReady, "craft stone_axe at bench")
	assert.Equal(t, -50.0, policy.Bias(stoneReady, candidate, action))
}

func TestRulePolicy_DefaultsToZero(t *testing.T) {
	problem, policy := toolingPolicy(t)
	u := problem.Universe

	oneWood := inventory.NewState(u, map[string]int{"wood": 1})

	action, candidate := apply(t, problem, oneWood, "craft plank")
	assert.Zero(t, policy.Bias(oneWood, candidate, action))
}

func TestRulePolicy_DropsRulesForUnknownItems(t *testing.T) {
	// The wood/plank universe lacks every ladder and cap item except
	// wood; constructing the policy must not panic and unknown entries
	// must simply not fire
	problem := helpers.WoodPlankProblem(t)
	policy := planning.NewRulePolicy(problem.Catalog, problem.Goal, helpers.ToolingRules())

	action, candidate := apply(t, problem, problem.Start, "chop")
	assert.Zero(t, policy.Bias(problem.Start, candidate, action))
}
