package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftplan-go/internal/adapters/loader"
	"github.com/andrescamacho/craftplan-go/internal/domain/planning"
)

// WoodPlankFile is the minimal two-item crafting spec: chop wood, craft
// a plank from it
func WoodPlankFile() *loader.CraftingFile {
	return &loader.CraftingFile{
		Items:   []string{"wood", "plank"},
		Initial: map[string]int{},
		Goal:    map[string]int{"plank": 1},
		Recipes: map[string]loader.RecipeSpec{
			"chop": {
				Produces: map[string]int{"wood": 1},
				Time:     1,
			},
			"craft plank": {
				Consumes: map[string]int{"wood": 1},
				Produces: map[string]int{"plank": 1},
				Time:     1,
			},
		},
	}
}

// WoodPlankProblem compiles the wood/plank fixture
func WoodPlankProblem(t *testing.T) *loader.Problem {
	t.Helper()
	problem, err := loader.Compile(WoodPlankFile())
	require.NoError(t, err)
	return problem
}

// ToolingFile is a crafting spec with a bench, a tool ladder, and two
// gathering tiers, close in shape to the classic crafting rule set
func ToolingFile() *loader.CraftingFile {
	return &loader.CraftingFile{
		Items:   []string{"wood", "plank", "stick", "bench", "wooden_axe", "stone_axe", "cobble", "wooden_pickaxe"},
		Initial: map[string]int{},
		Goal:    map[string]int{"wooden_axe": 1},
		Recipes: map[string]loader.RecipeSpec{
			"punch for wood": {
				Produces: map[string]int{"wood": 1},
				Time:     4,
			},
			"wooden_axe for wood": {
				Requires: map[string]bool{"wooden_axe": true},
				Produces: map[string]int{"wood": 1},
				Time:     2,
			},
			"stone_axe for wood": {
				Requires: map[string]bool{"stone_axe": true},
				Produces: map[string]int{"wood": 1},
				Time:     1,
			},
			"craft plank": {
				Consumes: map[string]int{"wood": 1},
				Produces: map[string]int{"plank": 4},
				Time:     1,
			},
			"craft stick": {
				Consumes: map[string]int{"plank": 2},
				Produces: map[string]int{"stick": 4},
				Time:     1,
			},
			"craft bench": {
				Consumes: map[string]int{"plank": 4},
				Produces: map[string]int{"bench": 1},
				Time:     1,
			},
			"craft wooden_axe at bench": {
				Requires: map[string]bool{"bench": true},
				Consumes: map[string]int{"plank": 3, "stick": 2},
				Produces: map[string]int{"wooden_axe": 1},
				Time:     1,
			},
			"wooden_pickaxe for cobble": {
				Requires: map[string]bool{"wooden_pickaxe": true},
				Produces: map[string]int{"cobble": 1},
				Time:     2,
			},
			"craft wooden_pickaxe at bench": {
				Requires: map[string]bool{"bench": true},
				Consumes: map[string]int{"plank": 3, "stick": 2},
				Produces: map[string]int{"wooden_pickaxe": 1},
				Time:     1,
			},
			"craft stone_axe at bench": {
				Requires: map[string]bool{"bench": true},
				Consumes: map[string]int{"cobble": 3, "stick": 2},
				Produces: map[string]int{"stone_axe": 1},
				Time:     1,
			},
		},
	}
}

// ToolingProblem compiles the tooling fixture
func ToolingProblem(t *testing.T) *loader.Problem {
	t.Helper()
	problem, err := loader.Compile(ToolingFile())
	require.NoError(t, err)
	return problem
}

// ToolingRules is a heuristic rule set matching the tooling fixture
func ToolingRules() planning.Rules {
	return planning.Rules{
		TerminalBonus: 1000,
		UpgradeBonus:  50,
		Ladders: []planning.ToolLadder{
			{Family: "wood", Resource: "wood", Tools: []string{"wooden_axe", "stone_axe"}},
			{Family: "stone", Resource: "cobble", Tools: []string{"wooden_pickaxe"}},
		},
		Caps: map[string][]planning.StockCap{
			"wood":   {{Limit: 4, Penalty: 100}, {Limit: 8, Penalty: 400}},
			"plank":  {{Limit: 8, Penalty: 100}},
			"stick":  {{Limit: 4, Penalty: 100}},
			"cobble": {{Limit: 8, Penalty: 100}},
		},
	}
}
