package inventory

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/andrescamacho/craftplan-go/internal/domain/shared"
)

// Delta is an (item index, quantity) pair used for state transitions
// and goal thresholds
type Delta struct {
	Item int
	Qty  int
}

// State is an immutable inventory snapshot: a total mapping from every
// item in the universe to a non-negative count.
//
// Invariants:
// - Counts never go negative (WithDelta panics rather than produce one)
// - Never mutated after construction; transitions copy
// - Two states are equal iff all counts are equal
//
// The canonical key encodes each count as 4 fixed-width big-endian bytes
// in index order, so byte-wise key comparison is both structural equality
// and a total order consistent with it. The key is what makes a state
// usable as a map key and as a deterministic priority-queue tie-break.
type State struct {
	universe *Universe
	counts   []int
	key      string
}

// NewState creates a state with every item at zero except those listed
// in initial. Initial references outside the universe panic; external
// input is validated by the loader before it reaches here.
func NewState(u *Universe, initial map[string]int) *State {
	counts := make([]int, u.Size())
	for name, qty := range initial {
		if qty < 0 {
			panic(shared.NewValidationError(name, fmt.Sprintf("negative initial count %d", qty)))
		}
		counts[u.IndexOf(name)] = qty
	}
	return &State{
		universe: u,
		counts:   counts,
		key:      encodeCounts(counts),
	}
}

func encodeCounts(counts []int) string {
	buf := make([]byte, 4*len(counts))
	for i, c := range counts {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(c))
	}
	return string(buf)
}

// Universe returns the item universe this state belongs to
func (s *State) Universe() *Universe {
	return s.universe
}

// Count returns the count of the named item; unknown names panic
func (s *State) Count(name string) int {
	return s.counts[s.universe.IndexOf(name)]
}

// CountAt returns the count at the given item index
func (s *State) CountAt(idx int) int {
	return s.counts[idx]
}

// Key returns the canonical encoding of the state, suitable as a map key
func (s *State) Key() string {
	return s.key
}

// Equals reports structural equality
func (s *State) Equals(other *State) bool {
	return s.key == other.key
}

// Compare imposes a total order consistent with Equals. It carries no
// domain meaning; the search uses it purely as a deterministic tie-break
// between queue entries of equal priority.
func (s *State) Compare(other *State) int {
	return strings.Compare(s.key, other.key)
}

// Dominates reports whether every count in s is >= the corresponding
// count in other. Goal satisfaction is monotonic under domination.
func (s *State) Dominates(other *State) bool {
	for i, c := range s.counts {
		if c < other.counts[i] {
			return false
		}
	}
	return true
}

// WithDelta returns a new independent state reflecting the subtraction
// of consumed and the addition of produced. The receiver is untouched.
// Driving any count negative is a programming error (the applicability
// check guards every transition) and panics.
func (s *State) WithDelta(consumed, produced []Delta) *State {
	counts := make([]int, len(s.counts))
	copy(counts, s.counts)

	for _, d := range consumed {
		counts[d.Item] -= d.Qty
		if counts[d.Item] < 0 {
			panic(shared.NewPlanningError(fmt.Sprintf(
				"count of %s driven negative", s.universe.Name(d.Item))))
		}
	}
	for _, d := range produced {
		counts[d.Item] += d.Qty
	}

	return &State{
		universe: s.universe,
		counts:   counts,
		key:      encodeCounts(counts),
	}
}

// String renders only the non-zero counts, in index order
func (s *State) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for i, c := range s.counts {
		if c == 0 {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", s.universe.Name(i), c)
		first = false
	}
	b.WriteByte('}')
	return b.String()
}
