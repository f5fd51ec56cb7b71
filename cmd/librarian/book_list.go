// Book list command prints the whole catalog.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	Long: `List prints every book ordered by identifier.

Example:
  librarian book list
  librarian book list --json`,
	Args: cobra.NoArgs,
	RunE: runBookList,
}

func runBookList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	books, err := store.ListBooks()
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}

	if flagJSON {
		return printJSON(books)
	}
	printBookTable(books)
	return nil
}
