package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	var specFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a crafting specification file",
		Long: `Parse and validate a crafting specification without searching.

Reports the universe size, recipe count, and goal, or the first
validation error found.

Example:
  craftplan validate --file Crafting.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, path, err := loadProblem(specFile)
			if err != nil {
				return err
			}

			fmt.Printf("%s is valid\n", path)
			fmt.Printf("  Items:   %d\n", problem.Universe.Size())
			fmt.Printf("  Recipes: %d\n", problem.Catalog.Len())
			fmt.Printf("  Initial: %s\n", problem.Start)
			fmt.Printf("  Goal:    %s\n", problem.Goal.Describe(problem.Universe))
			return nil
		},
	}

	cmd.Flags().StringVar(&specFile, "file", "", "Crafting specification file (JSON)")

	return cmd
}
