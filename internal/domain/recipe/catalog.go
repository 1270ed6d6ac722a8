package recipe

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
	"github.com/andrescamacho/craftplan-go/internal/domain/shared"
)

// Compiled is one recipe translated to index-based form with its
// applicability check and effect bound to the universe. Compilation
// happens once; the check and effect run millions of times per search.
type Compiled struct {
	name     string
	cost     float64
	requires []int
	consumes []inventory.Delta
	produces []inventory.Delta
}

// Name returns the action name of the recipe
func (c *Compiled) Name() string {
	return c.name
}

// Cost returns the edge cost of one application
func (c *Compiled) Cost() float64 {
	return c.cost
}

// Requires returns the gating item indices
func (c *Compiled) Requires() []int {
	out := make([]int, len(c.requires))
	copy(out, c.requires)
	return out
}

// Consumes returns the consumed (item, amount) pairs
func (c *Compiled) Consumes() []inventory.Delta {
	out := make([]inventory.Delta, len(c.consumes))
	copy(out, c.consumes)
	return out
}

// Produces returns the produced (item, amount) pairs
func (c *Compiled) Produces() []inventory.Delta {
	out := make([]inventory.Delta, len(c.produces))
	copy(out, c.produces)
	return out
}

// ProducedQty returns the amount of the given item this recipe produces,
// zero if it does not produce it
func (c *Compiled) ProducedQty(item int) int {
	for _, d := range c.produces {
		if d.Item == item {
			return d.Qty
		}
	}
	return 0
}

// ApplicableTo reports whether the recipe can fire in the given state:
// every required item held with count >= 1 and every consumed item held
// with count >= its amount.
func (c *Compiled) ApplicableTo(s *inventory.State) bool {
	for _, item := range c.requires {
		if s.CountAt(item) < 1 {
			return false
		}
	}
	for _, d := range c.consumes {
		if s.CountAt(d.Item) < d.Qty {
			return false
		}
	}
	return true
}

// Apply produces the successor state: consumption subtracted, then
// production added, on a copy of the input. Callers must have checked
// ApplicableTo first.
func (c *Compiled) Apply(s *inventory.State) *inventory.State {
	return s.WithDelta(c.consumes, c.produces)
}

// Catalog is the fixed, read-only set of compiled recipes for one
// planning problem. It is built once at load time and shared read-only
// for the process lifetime; no locking is needed because it is never
// mutated after construction.
type Catalog struct {
	universe *inventory.Universe
	recipes  []Compiled
}

// NewCatalog compiles definitions against the universe. Definitions are
// taken in the order given; the loader sorts them so catalog order, and
// therefore successor order, is deterministic.
func NewCatalog(u *inventory.Universe, defs []Definition) (*Catalog, error) {
	c := &Catalog{
		universe: u,
		recipes:  make([]Compiled, 0, len(defs)),
	}

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		compiled, err := compile(u, def)
		if err != nil {
			return nil, err
		}
		if seen[def.Name] {
			return nil, shared.NewValidationError(def.Name, "duplicate recipe name")
		}
		seen[def.Name] = true
		c.recipes = append(c.recipes, compiled)
	}

	return c, nil
}

func compile(u *inventory.Universe, def Definition) (Compiled, error) {
	if def.Name == "" {
		return Compiled{}, shared.NewValidationError("recipe", "recipe has an empty name")
	}
	if len(def.Produces) == 0 {
		return Compiled{}, shared.NewValidationError(def.Name, "recipe produces nothing")
	}
	if def.Cost <= 0 {
		return Compiled{}, shared.NewValidationError(def.Name, fmt.Sprintf("non-positive cost %v", def.Cost))
	}

	compiled := Compiled{
		name: def.Name,
		cost: def.Cost,
	}

	for _, name := range def.Requires {
		if !u.Contains(name) {
			return Compiled{}, shared.NewUnknownItemError(name)
		}
		compiled.requires = append(compiled.requires, u.IndexOf(name))
	}
	sort.Ints(compiled.requires)

	var err error
	if compiled.consumes, err = compileAmounts(u, def.Name, def.Consumes); err != nil {
		return Compiled{}, err
	}
	if compiled.produces, err = compileAmounts(u, def.Name, def.Produces); err != nil {
		return Compiled{}, err
	}

	return compiled, nil
}

// compileAmounts translates a name->amount map into index-sorted deltas
// so iteration order is stable regardless of map order
func compileAmounts(u *inventory.Universe, recipeName string, amounts map[string]int) ([]inventory.Delta, error) {
	deltas := make([]inventory.Delta, 0, len(amounts))
	for name, qty := range amounts {
		if !u.Contains(name) {
			return nil, shared.NewUnknownItemError(name)
		}
		if qty <= 0 {
			return nil, shared.NewValidationError(recipeName,
				fmt.Sprintf("non-positive amount %d for item %s", qty, name))
		}
		deltas = append(deltas, inventory.Delta{Item: u.IndexOf(name), Qty: qty})
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].Item < deltas[j].Item })
	return deltas, nil
}

// Universe returns the item universe the catalog was compiled against
func (c *Catalog) Universe() *inventory.Universe {
	return c.universe
}

// Len returns the number of recipes
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Recipe returns the compiled recipe at the given index
func (c *Catalog) Recipe(idx int) *Compiled {
	return &c.recipes[idx]
}

// Successors lazily yields one (action index, next state, cost) triple
// per recipe applicable to the given state, in catalog order. Successors
// are computed fresh on every call; the state graph is far too large to
// materialize, so no adjacency is ever stored. The visit callback
// returns false to stop early.
func (c *Catalog) Successors(s *inventory.State, visit func(action int, next *inventory.State, cost float64) bool) {
	for i := range c.recipes {
		r := &c.recipes[i]
		if !r.ApplicableTo(s) {
			continue
		}
		if !visit(i, r.Apply(s), r.cost) {
			return
		}
	}
}
