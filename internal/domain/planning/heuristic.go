package planning

import (
	"math"
	"sort"

	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
	"github.com/andrescamacho/craftplan-go/internal/domain/recipe"
)

// ZeroPolicy applies no bias. With it the engine degrades to plain
// uniform-cost search, which serves as the correctness oracle for the
// tuned policy.
type ZeroPolicy struct{}

func (ZeroPolicy) Bias(current, candidate *inventory.State, action int) float64 {
	return 0
}

// ToolLadder declares the ascending tool tiers for one resource family:
// Tools[0] is tier 1, Tools[1] tier 2, and so on. Gathering Resource
// with anything below the best tier held is wasted work.
type ToolLadder struct {
	Family   string
	Resource string
	Tools    []string
}

// StockCap is one soft cap on a consumable's count. Exceeding the limit
// adds the penalty to the transition's priority.
type StockCap struct {
	Limit   int
	Penalty float64
}

// Rules is the declarative input of the rule policy. It is keyed on
// item structure (families, tiers, caps), never on action names, so the
// policy stays testable and independent of naming conventions.
type Rules struct {
	// Ladders lists the tool ladders per resource family
	Ladders []ToolLadder

	// Caps maps consumable item name -> ascending soft caps
	Caps map[string][]StockCap

	// TerminalBonus is subtracted from the priority of the transition
	// that first produces a goal item (strongly prefer finishing)
	TerminalBonus float64

	// UpgradeBonus scales the negative bias of transitions granting a
	// missing tool tier; earlier tiers are scaled up to front-load
	// tool acquisition
	UpgradeBonus float64
}

// compiled ladder over item indices; tools absent from the universe are
// dropped and tiers renumbered over what remains
type ladder struct {
	resource int
	tools    []int
}

// tierGrant marks an action producing the tool of (ladder, tier)
type tierGrant struct {
	ladder int
	tier   int
}

type itemCaps struct {
	item int
	caps []StockCap
}

// actionMeta is the structured metadata of one recipe, derived once at
// policy construction from the recipe's requires/consumes/produces
type actionMeta struct {
	gatherLadder int // index into ladders, -1 if not a gathering action
	gatherTier   int // tier of the ladder tool the action uses, 0 = bare hands
	durables     []int
	terminal     []inventory.Delta
	grants       []tierGrant
}

// RulePolicy is the pruning/shaping heuristic. Rules are evaluated in
// fixed order and the first applicable one wins:
//
//  1. gathering with a tool weaker than the best tier held: prune
//  2. a second copy of any durable good: prune
//  3. terminal goal production: strong bonus up to the needed count,
//     prune beyond it
//  4. stockpile soft caps: increasing penalties for overproduction
//  5. granting a missing tool tier: bonus, stronger for earlier tiers
//  6. zero
//
// It trades optimality for tractability; there is no admissibility
// guarantee.
type RulePolicy struct {
	rules   Rules
	ladders []ladder
	caps    []itemCaps
	meta    []actionMeta
}

// NewRulePolicy derives per-action metadata from the catalog, the goal,
// and the declarative rules. Rule entries naming items outside the
// universe are dropped so one rule set can serve many crafting files.
func NewRulePolicy(catalog *recipe.Catalog, goal Goal, rules Rules) *RulePolicy {
	u := catalog.Universe()
	p := &RulePolicy{rules: rules}

	for _, l := range rules.Ladders {
		if !u.Contains(l.Resource) {
			continue
		}
		compiled := ladder{resource: u.IndexOf(l.Resource)}
		for _, tool := range l.Tools {
			if u.Contains(tool) {
				compiled.tools = append(compiled.tools, u.IndexOf(tool))
			}
		}
		if len(compiled.tools) > 0 {
			p.ladders = append(p.ladders, compiled)
		}
	}

	for name, caps := range rules.Caps {
		if !u.Contains(name) || len(caps) == 0 {
			continue
		}
		sorted := make([]StockCap, len(caps))
		copy(sorted, caps)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Limit < sorted[j].Limit })
		p.caps = append(p.caps, itemCaps{item: u.IndexOf(name), caps: sorted})
	}
	sort.Slice(p.caps, func(i, j int) bool { return p.caps[i].item < p.caps[j].item })

	durables := p.durableSet(catalog)
	for i := 0; i < catalog.Len(); i++ {
		p.meta = append(p.meta, p.deriveMeta(catalog.Recipe(i), goal, durables))
	}

	return p
}

// durableSet collects the single-use goods: every ladder tool plus any
// item some recipe requires (stations and tools gate recipes, stock
// does not)
func (p *RulePolicy) durableSet(catalog *recipe.Catalog) map[int]bool {
	durables := make(map[int]bool)
	for _, l := range p.ladders {
		for _, tool := range l.tools {
			durables[tool] = true
		}
	}
	for i := 0; i < catalog.Len(); i++ {
		for _, item := range catalog.Recipe(i).Requires() {
			durables[item] = true
		}
	}
	return durables
}

func (p *RulePolicy) deriveMeta(r *recipe.Compiled, goal Goal, durables map[int]bool) actionMeta {
	meta := actionMeta{gatherLadder: -1}

	requires := make(map[int]bool)
	for _, item := range r.Requires() {
		requires[item] = true
	}

	for li, l := range p.ladders {
		if r.ProducedQty(l.resource) == 0 {
			continue
		}
		meta.gatherLadder = li
		for tier, tool := range l.tools {
			if requires[tool] {
				meta.gatherTier = tier + 1
			}
		}
		break
	}

	for _, d := range r.Produces() {
		if durables[d.Item] {
			meta.durables = append(meta.durables, d.Item)
		}
		for li, l := range p.ladders {
			for ti, tool := range l.tools {
				if d.Item == tool {
					meta.grants = append(meta.grants, tierGrant{ladder: li, tier: ti + 1})
				}
			}
		}
		for _, t := range goal.Thresholds() {
			if d.Item == t.Item {
				meta.terminal = append(meta.terminal, t)
			}
		}
	}

	return meta
}

// bestTierHeld returns the highest ladder tier present in the state,
// zero when no tool of the ladder is held
func bestTierHeld(s *inventory.State, l ladder) int {
	best := 0
	for tier, tool := range l.tools {
		if s.CountAt(tool) > 0 {
			best = tier + 1
		}
	}
	return best
}

// Bias evaluates the rule table for one candidate transition
func (p *RulePolicy) Bias(current, candidate *inventory.State, action int) float64 {
	m := &p.meta[action]

	// 1. never gather with a weaker tool than the best already held
	if m.gatherLadder >= 0 {
		if bestTierHeld(current, p.ladders[m.gatherLadder]) != m.gatherTier {
			return math.Inf(1)
		}
	}

	// 2. a second copy of a durable good is never useful
	for _, item := range m.durables {
		if candidate.CountAt(item) > 1 {
			return math.Inf(1)
		}
	}

	// 3. finish the goal once, never overshoot it
	if len(m.terminal) > 0 {
		for _, t := range m.terminal {
			if candidate.CountAt(t.Item) > t.Qty {
				return math.Inf(1)
			}
		}
		return -p.rules.TerminalBonus
	}

	// 4. soft caps on consumable stockpiles
	penalty := 0.0
	for _, ic := range p.caps {
		count := candidate.CountAt(ic.item)
		for _, cap := range ic.caps {
			if count > cap.Limit {
				penalty += cap.Penalty
			}
		}
	}
	if penalty > 0 {
		return penalty
	}

	// 5. front-load tool acquisition, earlier tiers first
	bonus := 0.0
	for _, g := range m.grants {
		l := p.ladders[g.ladder]
		if bestTierHeld(current, l) < g.tier && candidate.CountAt(l.tools[g.tier-1]) > 0 {
			bonus -= p.rules.UpgradeBonus * float64(len(l.tools)-g.tier+1)
		}
	}
	return bonus
}
