// Package loader reads and validates the external crafting
// specification. All malformed data (missing fields, unknown item
// references, non-positive costs) is rejected here; the domain assumes
// a well-formed catalog and never re-validates at runtime.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
	"github.com/andrescamacho/craftplan-go/internal/domain/planning"
	"github.com/andrescamacho/craftplan-go/internal/domain/recipe"
)

// CraftingFile mirrors the on-disk crafting specification
type CraftingFile struct {
	// Items is the full universe of item names
	Items []string `json:"Items" validate:"required,min=1,dive,required"`

	// Initial maps a subset of items to positive starting counts;
	// unlisted items start at zero
	Initial map[string]int `json:"Initial" validate:"omitempty,dive,min=0"`

	// Goal maps item -> required minimum count
	Goal map[string]int `json:"Goal" validate:"required,min=1,dive,min=1"`

	// Recipes is the named rule collection
	Recipes map[string]RecipeSpec `json:"Recipes" validate:"required,min=1,dive"`
}

// RecipeSpec is one rule entry. Requires follows the historical file
// shape of item -> true flags.
type RecipeSpec struct {
	Requires map[string]bool `json:"Requires" validate:"omitempty,dive,eq=true"`
	Consumes map[string]int  `json:"Consumes" validate:"omitempty,dive,min=1"`
	Produces map[string]int  `json:"Produces" validate:"required,min=1,dive,min=1"`
	Time     float64         `json:"Time" validate:"required,gt=0"`
}

// Problem is a fully compiled planning problem ready for the engine
type Problem struct {
	Universe *inventory.Universe
	Start    *inventory.State
	Goal     planning.Goal
	Catalog  *recipe.Catalog
}

// LoadFile reads and compiles a crafting specification from disk
func LoadFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open crafting file: %w", err)
	}
	defer f.Close()

	problem, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("invalid crafting file %s: %w", path, err)
	}
	return problem, nil
}

// Load parses, validates, and compiles a crafting specification
func Load(r io.Reader) (*Problem, error) {
	var file CraftingFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse crafting spec: %w", err)
	}

	if err := validator.New().Struct(&file); err != nil {
		return nil, fmt.Errorf("crafting spec failed validation: %w", err)
	}

	return Compile(&file)
}

// Compile turns a parsed crafting file into a Problem. Item references
// outside the declared universe are rejected here so the domain never
// sees them.
func Compile(file *CraftingFile) (*Problem, error) {
	universe, err := inventory.NewUniverse(file.Items)
	if err != nil {
		return nil, err
	}

	if err := checkItemRefs(universe, file); err != nil {
		return nil, err
	}

	goal, err := planning.NewGoal(universe, file.Goal)
	if err != nil {
		return nil, err
	}

	catalog, err := recipe.NewCatalog(universe, definitions(file))
	if err != nil {
		return nil, err
	}

	return &Problem{
		Universe: universe,
		Start:    inventory.NewState(universe, file.Initial),
		Goal:     goal,
		Catalog:  catalog,
	}, nil
}

// definitions converts the recipe map into a name-sorted slice so the
// catalog order, and with it every search, is deterministic
func definitions(file *CraftingFile) []recipe.Definition {
	names := make([]string, 0, len(file.Recipes))
	for name := range file.Recipes {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]recipe.Definition, 0, len(names))
	for _, name := range names {
		spec := file.Recipes[name]

		requires := make([]string, 0, len(spec.Requires))
		for item := range spec.Requires {
			requires = append(requires, item)
		}
		sort.Strings(requires)

		defs = append(defs, recipe.Definition{
			Name:     name,
			Requires: requires,
			Consumes: spec.Consumes,
			Produces: spec.Produces,
			Cost:     spec.Time,
		})
	}
	return defs
}

func checkItemRefs(u *inventory.Universe, file *CraftingFile) error {
	for item := range file.Initial {
		if !u.Contains(item) {
			return fmt.Errorf("initial inventory references unknown item %q", item)
		}
	}
	for item := range file.Goal {
		if !u.Contains(item) {
			return fmt.Errorf("goal references unknown item %q", item)
		}
	}
	for name, spec := range file.Recipes {
		for item := range spec.Requires {
			if !u.Contains(item) {
				return fmt.Errorf("recipe %q requires unknown item %q", name, item)
			}
		}
		for item := range spec.Consumes {
			if !u.Contains(item) {
				return fmt.Errorf("recipe %q consumes unknown item %q", name, item)
			}
		}
		for item := range spec.Produces {
			if !u.Contains(item) {
				return fmt.Errorf("recipe %q produces unknown item %q", name, item)
			}
		}
	}
	return nil
}
