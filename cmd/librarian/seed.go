// Seed command loads sample catalog data.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample books and members",
	Long: `Seed inserts a small set of sample books and members for trying
out the catalog. Running it again re-adds the books but skips members
whose email already exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Seed(); err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		fmt.Println("Seeded sample books and members.")
		return nil
	},
}
