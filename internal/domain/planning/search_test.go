package planning_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
	"github.com/andrescamacho/craftplan-go/internal/domain/planning"
	"github.com/andrescamacho/craftplan-go/internal/domain/recipe"
	"github.com/andrescamacho/craftplan-go/internal/domain/shared"
	"github.com/andrescamacho/craftplan-go/test/helpers"
)

// countingObserver records search events for assertions
type countingObserver struct {
	expanded int
	pushed   int
	pruned   int
	stale    int
	finished bool
}

func (o *countingObserver) StateExpanded()     { o.expanded++ }
func (o *countingObserver) SuccessorPushed()   { o.pushed++ }
func (o *countingObserver) TransitionPruned()  { o.pruned++ }
func (o *countingObserver) StaleEntrySkipped() { o.stale++ }
func (o *countingObserver) SearchFinished(found bool, elapsed time.Duration) {
	o.finished = true
}

func TestSearch_WoodPlankEndToEnd(t *testing.T) {
	problem := helpers.WoodPlankProblem(t)
	engine := planning.NewEngine(problem.Catalog, planning.ZeroPolicy{}, shared.NewRealClock(), nil)

	result := engine.Search(problem.Start, problem.Goal, 5*time.Second)

	require.True(t, result.Found)
	require.NoError(t, result.Err())
	assert.Equal(t, []string{"chop", "craft plank"}, result.Plan.Actions())
	assert.Equal(t, 2.0, result.Plan.TotalCost())

	// Each step records the state the action resulted in
	steps := result.Plan.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].State.Count("wood"))
	assert.Equal(t, 1, steps[1].State.Count("plank"))
	assert.Equal(t, 0, steps[1].State.Count("wood"))
}

func TestSearch_HeuristicFindsSamePlanOnSimpleGraph(t *testing.T) {
	problem := helpers.WoodPlankProblem(t)
	policy := planning.NewRulePolicy(problem.Catalog, problem.Goal, helpers.ToolingRules())
	engine := planning.NewEngine(problem.Catalog, policy, shared.NewRealClock(), nil)

	result := engine.Search(problem.Start, problem.Goal, 5*time.Second)

	require.True(t, result.Found)
	assert.Equal(t, []string{"chop", "craft plank"}, result.Plan.Actions())
	assert.Equal(t, 2.0, result.Plan.TotalCost())
}

// With a zero bias the engine is plain uniform-cost search and must
// return the cheapest path, not the shortest one
func TestSearch_ZeroBiasPicksCheapestPath(t *testing.T) {
	u, err := inventory.NewUniverse([]string{"wood", "plank"})
	require.NoError(t, err)

	catalog, err := recipe.NewCatalog(u, []recipe.Definition{
		{Name: "chop", Produces: map[string]int{"wood": 1}, Cost: 1},
		{Name: "bulk plank", Consumes: map[string]int{"wood": 2}, Produces: map[string]int{"plank": 1}, Cost: 1},
		{Name: "slow plank", Consumes: map[string]int{"wood": 1}, Produces: map[string]int{"plank": 1}, Cost: 5},
	})
	require.NoError(t, err)

	goal, err := planning.NewGoal(u, map[string]int{"plank": 1})
	require.NoError(t, err)

	engine := planning.NewEngine(catalog, planning.ZeroPolicy{}, shared.NewRealClock(), nil)
	result := engine.Search(inventory.NewState(u, nil), goal, 5*time.Second)

	require.True(t, result.Found)
	// chop+chop+bulk (cost 3) beats chop+slow (cost 6)
	assert.Equal(t, 3.0, result.Plan.TotalCost())
	assert.Equal(t, []string{"chop", "chop", "bulk plank"}, result.Plan.Actions())
}

func TestSearch_SatisfiedStartYieldsEmptyPlan(t *testing.T) {
	problem := helpers.WoodPlankProblem(t)
	u := problem.Universe
	start := inventory.NewState(u, map[string]int{"plank": 2})

	engine := planning.NewEngine(problem.Catalog, planning.ZeroPolicy{}, shared.NewRealClock(), nil)
	result := engine.Search(start, problem.Goal, 5*time.Second)

	require.True(t, result.Found)
	assert.Zero(t, result.Plan.Len())
	assert.Zero(t, result.Plan.TotalCost())
}

func TestSearch_DeterministicAcrossRuns(t *testing.T) {
	problem := helpers.ToolingProblem(t)
	policy := planning.NewRulePolicy(problem.Catalog, problem.Goal, helpers.ToolingRules())

	var plans [][]string
	var costs []float64
	for i := 0; i < 3; i++ {
		engine := planning.NewEngine(problem.Catalog, policy, shared.NewRealClock(), nil)
		result := engine.Search(problem.Start, problem.Goal, 30*time.Second)
		require.True(t, result.Found)
		plans = append(plans, result.Plan.Actions())
		costs = append(costs, result.Plan.TotalCost())
	}

	assert.Equal(t, plans[0], plans[1])
	assert.Equal(t, plans[0], plans[2])
	assert.Equal(t, costs[0], costs[1])
	assert.Equal(t, costs[0], costs[2])
}

func TestSearch_QueueExhaustionFailsFast(t *testing.T) {
	u, err := inventory.NewUniverse([]string{"wood", "plank"})
	require.NoError(t, err)

	// No recipe produces anything: the start state is the whole graph
	catalog, err := recipe.NewCatalog(u, nil)
	require.NoError(t, err)

	goal, err := planning.NewGoal(u, map[string]int{"plank": 1})
	require.NoError(t, err)

	observer := &countingObserver{}
	engine := planning.NewEngine(catalog, planning.ZeroPolicy{}, shared.NewRealClock(), observer)
	result := engine.Search(inventory.NewState(u, nil), goal, 5*time.Second)

	assert.False(t, result.Found)
	assert.Nil(t, result.Plan)
	assert.Error(t, result.Err())
	assert.Equal(t, 1, observer.expanded)
	assert.True(t, observer.finished)
}

func TestSearch_BudgetExhaustionTerminates(t *testing.T) {
	u, err := inventory.NewUniverse([]string{"wood", "plank"})
	require.NoError(t, err)

	// Chopping forever never produces a plank; only the budget stops
	// this search
	catalog, err := recipe.NewCatalog(u, []recipe.Definition{
		{Name: "chop", Produces: map[string]int{"wood": 1}, Cost: 1},
	})
	require.NoError(t, err)

	goal, err := planning.NewGoal(u, map[string]int{"plank": 1})
	require.NoError(t, err)

	engine := planning.NewEngine(catalog, planning.ZeroPolicy{}, shared.NewRealClock(), nil)

	wall := time.Now()
	result := engine.Search(inventory.NewState(u, nil), goal, 100*time.Millisecond)
	overall := time.Since(wall)

	assert.False(t, result.Found)
	assert.Error(t, result.Err())
	assert.Less(t, overall, 2*time.Second, "budget exhaustion must terminate promptly")

	var noPlan *shared.NoPlanFoundError
	require.ErrorAs(t, result.Err(), &noPlan)
	assert.Equal(t, result.Elapsed, noPlan.Elapsed)
}

// A state first reached through an expensive edge and later relaxed
// through a cheaper chain leaves its old queue entry behind; popping
// that entry must skip it instead of re-expanding
func TestSearch_SkipsStaleEntriesAfterRelaxation(t *testing.T) {
	u, err := inventory.NewUniverse([]string{"ore"})
	require.NoError(t, err)

	// "haul" reaches {ore: n+2} at cost 9; two "dig" steps reach the
	// same state at cost 2, relaxing it after the haul entry is queued
	catalog, err := recipe.NewCatalog(u, []recipe.Definition{
		{Name: "dig", Produces: map[string]int{"ore": 1}, Cost: 1},
		{Name: "haul", Produces: map[string]int{"ore": 2}, Cost: 9},
	})
	require.NoError(t, err)

	goal, err := planning.NewGoal(u, map[string]int{"ore": 10})
	require.NoError(t, err)

	observer := &countingObserver{}
	engine := planning.NewEngine(catalog, planning.ZeroPolicy{}, shared.NewRealClock(), observer)
	result := engine.Search(inventory.NewState(u, nil), goal, 5*time.Second)

	require.True(t, result.Found)
	assert.Positive(t, observer.stale, "relaxed states must leave stale entries behind")

	// Every haul edge was relaxed away: the optimum is ten digs
	assert.Equal(t, 10.0, result.Plan.TotalCost())
	assert.Len(t, result.Plan.Actions(), 10)
	for _, action := range result.Plan.Actions() {
		assert.Equal(t, "dig", action)
	}
}

func TestSearch_ObserverSeesPrunes(t *testing.T) {
	problem := helpers.ToolingProblem(t)
	policy := planning.NewRulePolicy(problem.Catalog, problem.Goal, helpers.ToolingRules())

	observer := &countingObserver{}
	engine := planning.NewEngine(problem.Catalog, policy, shared.NewRealClock(), observer)
	result := engine.Search(problem.Start, problem.Goal, 30*time.Second)

	require.True(t, result.Found)
	assert.Equal(t, result.StatesExpanded, observer.expanded)
	assert.Positive(t, observer.pushed)
	assert.Positive(t, observer.pruned)
	assert.True(t, observer.finished)
}
