// Book add command inserts a new catalog title.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	bookAddTitle  string
	bookAddAuthor string
	bookAddYear   int
	bookAddCopies int
)

var bookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Long: `Add inserts a new book. All copies start out available.

Example:
  librarian book add --title "Clean Code" --author "Robert C. Martin" --year 2008 --copies 3
  librarian book add --title "Anonymous Pamphlet"`,
	Args: cobra.NoArgs,
	RunE: runBookAdd,
}

func init() {
	bookAddCmd.Flags().StringVar(&bookAddTitle, "title", "", "book title (required)")
	bookAddCmd.Flags().StringVar(&bookAddAuthor, "author", "", "book author")
	bookAddCmd.Flags().IntVar(&bookAddYear, "year", 0, "publication year")
	bookAddCmd.Flags().IntVar(&bookAddCopies, "copies", 1, "number of copies")
	_ = bookAddCmd.MarkFlagRequired("title")
}

func runBookAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	book, err := store.AddBook(bookAddTitle, bookAddAuthor, bookAddYear, bookAddCopies)
	if err != nil {
		return fmt.Errorf("add book: %w", err)
	}

	if flagJSON {
		return printJSON(book)
	}
	fmt.Printf("Added book id=%d\n", book.ID)
	return nil
}
