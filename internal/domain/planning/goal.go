package planning

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
	"github.com/andrescamacho/craftplan-go/internal/domain/shared"
)

// Goal is a set of per-item minimum counts. A state satisfies the goal
// iff its count for every goal item meets or exceeds the threshold, so
// satisfaction is monotonic: any state dominating a satisfying state
// also satisfies it.
type Goal struct {
	thresholds []inventory.Delta
}

// NewGoal builds a goal from item-name thresholds against the universe
func NewGoal(u *inventory.Universe, thresholds map[string]int) (Goal, error) {
	if len(thresholds) == 0 {
		return Goal{}, shared.NewValidationError("goal", "goal must name at least one item")
	}

	deltas := make([]inventory.Delta, 0, len(thresholds))
	for name, min := range thresholds {
		if !u.Contains(name) {
			return Goal{}, shared.NewUnknownItemError(name)
		}
		if min <= 0 {
			return Goal{}, shared.NewValidationError("goal",
				fmt.Sprintf("threshold for %s must be positive, got %d", name, min))
		}
		deltas = append(deltas, inventory.Delta{Item: u.IndexOf(name), Qty: min})
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].Item < deltas[j].Item })

	return Goal{thresholds: deltas}, nil
}

// SatisfiedBy reports whether the state meets every threshold
func (g Goal) SatisfiedBy(s *inventory.State) bool {
	for _, t := range g.thresholds {
		if s.CountAt(t.Item) < t.Qty {
			return false
		}
	}
	return true
}

// Thresholds returns the (item index, minimum count) pairs in index order
func (g Goal) Thresholds() []inventory.Delta {
	out := make([]inventory.Delta, len(g.thresholds))
	copy(out, g.thresholds)
	return out
}

// Describe renders the goal with item names for display
func (g Goal) Describe(u *inventory.Universe) string {
	parts := make([]string, 0, len(g.thresholds))
	for _, t := range g.thresholds {
		parts = append(parts, fmt.Sprintf("%s>=%d", u.Name(t.Item), t.Qty))
	}
	return strings.Join(parts, ", ")
}
