package inventory

import (
	"fmt"

	"github.com/andrescamacho/craftplan-go/internal/domain/shared"
)

// Universe is the fixed set of item names known to one planning problem.
// It is established once at load time and assigns every item a stable
// dense index; all states and recipes for the problem share one Universe.
//
// Invariants:
// - Item names are unique and non-empty
// - Indices are insertion-stable (the order of the external item list)
// - Never mutated after construction
type Universe struct {
	names []string
	index map[string]int
}

// NewUniverse creates a Universe from the full external item list
func NewUniverse(names []string) (*Universe, error) {
	if len(names) == 0 {
		return nil, shared.NewValidationError("items", "item universe must not be empty")
	}

	u := &Universe{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if name == "" {
			return nil, shared.NewValidationError("items", fmt.Sprintf("item %d has an empty name", i))
		}
		if _, exists := u.index[name]; exists {
			return nil, shared.NewValidationError("items", fmt.Sprintf("duplicate item name: %s", name))
		}
		u.names[i] = name
		u.index[name] = i
	}

	return u, nil
}

// Size returns the number of items in the universe
func (u *Universe) Size() int {
	return len(u.names)
}

// Contains reports whether the universe knows the given item name
func (u *Universe) Contains(name string) bool {
	_, ok := u.index[name]
	return ok
}

// IndexOf returns the stable index of an item name.
// Looking up a name outside the universe is a programming error and panics;
// callers validate external references at load time.
func (u *Universe) IndexOf(name string) int {
	idx, ok := u.index[name]
	if !ok {
		panic(shared.NewUnknownItemError(name))
	}
	return idx
}

// Name returns the item name at the given index
func (u *Universe) Name(idx int) string {
	return u.names[idx]
}

// Names returns a copy of the item list in index order
func (u *Universe) Names() []string {
	names := make([]string, len(u.names))
	copy(names, u.names)
	return names
}
