package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
)

// NewCatalogCommand creates the catalog command
func NewCatalogCommand() *cobra.Command {
	var specFile string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the compiled recipe catalog",
		Long: `Display every recipe of a crafting specification with its gating
requirements, consumed inputs, produced outputs, and cost.

Example:
  craftplan catalog --file Crafting.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, path, err := loadProblem(specFile)
			if err != nil {
				return err
			}

			fmt.Printf("Catalog of %s (%d recipes)\n", path, problem.Catalog.Len())
			fmt.Println("==================================================")
			for i := 0; i < problem.Catalog.Len(); i++ {
				r := problem.Catalog.Recipe(i)
				fmt.Printf("%-40s cost %6.1f\n", r.Name(), r.Cost())
				if reqs := formatItems(problem.Universe, r.Requires()); reqs != "" {
					fmt.Printf("  requires: %s\n", reqs)
				}
				if cons := formatDeltas(problem.Universe, r.Consumes()); cons != "" {
					fmt.Printf("  consumes: %s\n", cons)
				}
				fmt.Printf("  produces: %s\n", formatDeltas(problem.Universe, r.Produces()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&specFile, "file", "", "Crafting specification file (JSON)")

	return cmd
}

func formatItems(u *inventory.Universe, items []int) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = u.Name(item)
	}
	return strings.Join(names, ", ")
}

func formatDeltas(u *inventory.Universe, deltas []inventory.Delta) string {
	parts := make([]string, len(deltas))
	for i, d := range deltas {
		parts[i] = fmt.Sprintf("%s x%d", u.Name(d.Item), d.Qty)
	}
	return strings.Join(parts, ", ")
}
