package recipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
	"github.com/andrescamacho/craftplan-go/internal/domain/recipe"
)

func testUniverse(t *testing.T) *inventory.Universe {
	t.Helper()
	u, err := inventory.NewUniverse([]string{"wood", "plank", "bench"})
	require.NoError(t, err)
	return u
}

func testCatalog(t *testing.T) (*inventory.Universe, *recipe.Catalog) {
	t.Helper()
	u := testUniverse(t)
	catalog, err := recipe.NewCatalog(u, []recipe.Definition{
		{
			Name:     "chop",
			Produces: map[string]int{"wood": 1},
			Cost:     1,
		},
		{
			Name:     "craft plank",
			Consumes: map[string]int{"wood": 1},
			Produces: map[string]int{"plank": 1},
			Cost:     1,
		},
		{
			Name:     "craft plank at bench",
			Requires: []string{"bench"},
			Consumes: map[string]int{"wood": 2},
			Produces: map[string]int{"plank": 3},
			Cost:     1,
		},
	})
	require.NoError(t, err)
	return u, catalog
}

func TestNewCatalog_RejectsMalformedDefinitions(t *testing.T) {
	u := testUniverse(t)

	tests := []struct {
		name string
		def  recipe.Definition
	}{
		{"empty name", recipe.Definition{Produces: map[string]int{"wood": 1}, Cost: 1}},
		{"no produces", recipe.Definition{Name: "noop", Cost: 1}},
		{"zero cost", recipe.Definition{Name: "free", Produces: map[string]int{"wood": 1}}},
		{"negative cost", recipe.Definition{Name: "neg", Produces: map[string]int{"wood": 1}, Cost: -1}},
		{"unknown required item", recipe.Definition{Name: "r", Requires: []string{"anvil"}, Produces: map[string]int{"wood": 1}, Cost: 1}},
		{"unknown consumed item", recipe.Definition{Name: "c", Consumes: map[string]int{"ore": 1}, Produces: map[string]int{"wood": 1}, Cost: 1}},
		{"unknown produced item", recipe.Definition{Name: "p", Produces: map[string]int{"ore": 1}, Cost: 1}},
		{"non-positive amount", recipe.Definition{Name: "z", Consumes: map[string]int{"wood": 0}, Produces: map[string]int{"plank": 1}, Cost: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := recipe.NewCatalog(u, []recipe.Definition{tc.def})
			assert.Error(t, err)
		})
	}
}

func TestNewCatalog_RejectsDuplicateNames(t *testing.T) {
	u := testUniverse(t)
	def := recipe.Definition{Name: "chop", Produces: map[string]int{"wood": 1}, Cost: 1}

	_, err := recipe.NewCatalog(u, []recipe.Definition{def, def})
	assert.Error(t, err)
}

func TestApplicableTo_GatingAndConsumption(t *testing.T) {
	u, catalog := testCatalog(t)

	empty := inventory.NewState(u, nil)
	oneWood := inventory.NewState(u, map[string]int{"wood": 1})
	benched := inventory.NewState(u, map[string]int{"wood": 2, "bench": 1})

	chop := catalog.Recipe(0)
	craft := catalog.Recipe(1)
	atBench := catalog.Recipe(2)

	// chop has no preconditions
	assert.True(t, chop.ApplicableTo(empty))

	// crafting needs the consumed wood on hand
	assert.False(t, craft.ApplicableTo(empty))
	assert.True(t, craft.ApplicableTo(oneWood))

	// the bench recipe gates on the bench and needs two wood
	assert.False(t, atBench.ApplicableTo(oneWood))
	assert.True(t, atBench.ApplicableTo(benched))
}

func TestApply_ConsumesThenProduces(t *testing.T) {
	u, catalog := testCatalog(t)
	benched := inventory.NewState(u, map[string]int{"wood": 2, "bench": 1})

	next := catalog.Recipe(2).Apply(benched)

	assert.Equal(t, 0, next.Count("wood"))
	assert.Equal(t, 3, next.Count("plank"))
	assert.Equal(t, 1, next.Count("bench"))

	// input untouched
	assert.Equal(t, 2, benched.Count("wood"))
}

// Applying any applicable recipe must never drive a count negative
func TestApply_EffectConsistency(t *testing.T) {
	u, catalog := testCatalog(t)
	states := []*inventory.State{
		inventory.NewState(u, nil),
		inventory.NewState(u, map[string]int{"wood": 1}),
		inventory.NewState(u, map[string]int{"wood": 2, "bench": 1}),
	}

	for _, s := range states {
		for i := 0; i < catalog.Len(); i++ {
			r := catalog.Recipe(i)
			if !r.ApplicableTo(s) {
				continue
			}
			next := r.Apply(s)
			for idx := 0; idx < u.Size(); idx++ {
				assert.GreaterOrEqual(t, next.CountAt(idx), 0,
					"recipe %s produced a negative count", r.Name())
			}
		}
	}
}

func TestSuccessors_YieldsApplicableInCatalogOrder(t *testing.T) {
	u, catalog := testCatalog(t)
	oneWood := inventory.NewState(u, map[string]int{"wood": 1})

	var actions []string
	catalog.Successors(oneWood, func(action int, next *inventory.State, cost float64) bool {
		actions = append(actions, catalog.Recipe(action).Name())
		assert.Positive(t, cost)
		return true
	})

	assert.Equal(t, []string{"chop", "craft plank"}, actions)
}

func TestSuccessors_StopsWhenVisitReturnsFalse(t *testing.T) {
	u, catalog := testCatalog(t)
	oneWood := inventory.NewState(u, map[string]int{"wood": 1})

	calls := 0
	catalog.Successors(oneWood, func(action int, next *inventory.State, cost float64) bool {
		calls++
		return false
	})

	assert.Equal(t, 1, calls)
}
