package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/craftplan-go/internal/adapters/loader"
	"github.com/andrescamacho/craftplan-go/internal/domain/planning"
	"github.com/andrescamacho/craftplan-go/internal/domain/shared"
)

type plannerContext struct {
	file    *loader.CraftingFile
	problem *loader.Problem
	budget  time.Duration
	result  *planning.Result
}

func (ctx *plannerContext) reset() {
	ctx.file = nil
	ctx.problem = nil
	ctx.budget = 5 * time.Second
	ctx.result = nil
}

// Given steps

func (ctx *plannerContext) aCraftingWorldWithItems(items string) error {
	names := splitList(items)
	ctx.file = &loader.CraftingFile{
		Items:   names,
		Initial: map[string]int{},
		Goal:    map[string]int{},
		Recipes: map[string]loader.RecipeSpec{},
	}
	return nil
}

func (ctx *plannerContext) aRecipeThatProducesAtCost(name, item string, qty int, cost int) error {
	if ctx.file == nil {
		return fmt.Errorf("no crafting world defined")
	}
	ctx.file.Recipes[name] = loader.RecipeSpec{
		Produces: map[string]int{item: qty},
		Time:     float64(cost),
	}
	return nil
}

func (ctx *plannerContext) aRecipeThatTurnsIntoAtCost(name, input string, inQty int, output string, outQty int, cost int) error {
	if ctx.file == nil {
		return fmt.Errorf("no crafting world defined")
	}
	ctx.file.Recipes[name] = loader.RecipeSpec{
		Consumes: map[string]int{input: inQty},
		Produces: map[string]int{output: outQty},
		Time:     float64(cost),
	}
	return nil
}

func (ctx *plannerContext) theInitialInventoryHas(item string, qty int) error {
	if ctx.file == nil {
		return fmt.Errorf("no crafting world defined")
	}
	ctx.file.Initial[item] = qty
	return nil
}

func (ctx *plannerContext) theGoalIsToHaveAtLeast(qty int, item string) error {
	if ctx.file == nil {
		return fmt.Errorf("no crafting world defined")
	}
	ctx.file.Goal[item] = qty
	return nil
}

func (ctx *plannerContext) aSearchBudgetOfMilliseconds(millis int) error {
	ctx.budget = time.Duration(millis) * time.Millisecond
	return nil
}

// When steps

func (ctx *plannerContext) iPlanTowardTheGoal() error {
	problem, err := loader.Compile(ctx.file)
	if err != nil {
		return fmt.Errorf("failed to compile crafting world: %w", err)
	}
	ctx.problem = problem

	engine := planning.NewEngine(problem.Catalog, planning.ZeroPolicy{}, shared.NewRealClock(), nil)
	ctx.result = engine.Search(problem.Start, problem.Goal, ctx.budget)
	return nil
}

// Then steps

func (ctx *plannerContext) aPlanShouldBeFound() error {
	if ctx.result == nil {
		return fmt.Errorf("no search was run")
	}
	if !ctx.result.Found {
		return fmt.Errorf("expected a plan but search failed after %s", ctx.result.Elapsed)
	}
	return nil
}

func (ctx *plannerContext) noPlanShouldBeFound() error {
	if ctx.result == nil {
		return fmt.Errorf("no search was run")
	}
	if ctx.result.Found {
		return fmt.Errorf("expected no plan but found one: %v", ctx.result.Plan.Actions())
	}
	if ctx.result.Err() == nil {
		return fmt.Errorf("failed search must surface an error")
	}
	return nil
}

func (ctx *plannerContext) thePlanShouldBe(actions string) error {
	if err := ctx.aPlanShouldBeFound(); err != nil {
		return err
	}
	expected := splitList(actions)
	actual := ctx.result.Plan.Actions()
	if len(actual) != len(expected) {
		return fmt.Errorf("expected plan %v but got %v", expected, actual)
	}
	for i := range expected {
		if actual[i] != expected[i] {
			return fmt.Errorf("expected plan %v but got %v", expected, actual)
		}
	}
	return nil
}

func (ctx *plannerContext) thePlanShouldCost(cost int) error {
	if err := ctx.aPlanShouldBeFound(); err != nil {
		return err
	}
	if ctx.result.Plan.TotalCost() != float64(cost) {
		return fmt.Errorf("expected total cost %d but got %.1f", cost, ctx.result.Plan.TotalCost())
	}
	return nil
}

func (ctx *plannerContext) thePlanShouldBeEmpty() error {
	if err := ctx.aPlanShouldBeFound(); err != nil {
		return err
	}
	if ctx.result.Plan.Len() != 0 {
		return fmt.Errorf("expected empty plan but got %v", ctx.result.Plan.Actions())
	}
	return nil
}

func (ctx *plannerContext) theFinalInventoryShouldSatisfyTheGoal() error {
	if err := ctx.aPlanShouldBeFound(); err != nil {
		return err
	}
	steps := ctx.result.Plan.Steps()
	final := ctx.problem.Start
	if len(steps) > 0 {
		final = steps[len(steps)-1].State
	}
	if !ctx.problem.Goal.SatisfiedBy(final) {
		return fmt.Errorf("final inventory %s does not satisfy goal %s", final, ctx.problem.Goal.Describe(ctx.problem.Universe))
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// Register steps

func InitializePlannerScenario(sc *godog.ScenarioContext) {
	plannerCtx := &plannerContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		plannerCtx.reset()
		return ctx, nil
	})

	// Given steps
	sc.Step(`^a crafting world with items "([^"]*)"$`, plannerCtx.aCraftingWorldWithItems)
	sc.Step(`^a recipe "([^"]*)" that produces "([^"]*)" x(\d+) at cost (\d+)$`, plannerCtx.aRecipeThatProducesAtCost)
	sc.Step(`^a recipe "([^"]*)" that turns "([^"]*)" x(\d+) into "([^"]*)" x(\d+) at cost (\d+)$`, plannerCtx.aRecipeThatTurnsIntoAtCost)
	sc.Step(`^the initial inventory has "([^"]*)" x(\d+)$`, plannerCtx.theInitialInventoryHas)
	sc.Step(`^the goal is to have at least (\d+) "([^"]*)"$`, plannerCtx.theGoalIsToHaveAtLeast)
	sc.Step(`^a search budget of (\d+) milliseconds$`, plannerCtx.aSearchBudgetOfMilliseconds)

	// When steps
	sc.Step(`^I plan toward the goal$`, plannerCtx.iPlanTowardTheGoal)

	// Then steps
	sc.Step(`^a plan should be found$`, plannerCtx.aPlanShouldBeFound)
	sc.Step(`^no plan should be found$`, plannerCtx.noPlanShouldBeFound)
	sc.Step(`^the plan should be "([^"]*)"$`, plannerCtx.thePlanShouldBe)
	sc.Step(`^the plan should cost (\d+)$`, plannerCtx.thePlanShouldCost)
	sc.Step(`^the plan should be empty$`, plannerCtx.thePlanShouldBeEmpty)
	sc.Step(`^the final inventory should satisfy the goal$`, plannerCtx.theFinalInventoryShouldSatisfyTheGoal)
}
