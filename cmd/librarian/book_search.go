// Book search command filters the catalog by keyword.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bookSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search books by title or author",
	Long: `Search matches the keyword as a substring of either title or author.

Example:
  librarian book search clean
  librarian book search "Martin" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runBookSearch,
}

func runBookSearch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	books, err := store.SearchBooks(args[0])
	if err != nil {
		return fmt.Errorf("search books: %w", err)
	}

	if flagJSON {
		return printJSON(books)
	}
	if len(books) == 0 {
		fmt.Println("No results.")
		return nil
	}
	printBookTable(books)
	return nil
}
