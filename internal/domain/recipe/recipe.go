package recipe

// Definition is the external shape of one production rule, expressed in
// item names. The loader builds Definitions from the crafting file; the
// Catalog compiles them against a Universe into index-based form.
type Definition struct {
	// Name uniquely identifies the recipe; it is the action name that
	// appears in plans.
	Name string

	// Requires lists items that must be present with count >= 1. They
	// gate the recipe (tools, stations) and are never consumed.
	Requires []string

	// Consumes maps item -> amount subtracted on application. Every
	// consumed item must be available with count >= amount.
	Consumes map[string]int

	// Produces maps item -> amount added on application. Every recipe
	// produces something.
	Produces map[string]int

	// Cost is the positive time cost of one application.
	Cost float64
}
