// Book command group for the librarian CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage catalog books",
}

func init() {
	bookCmd.AddCommand(bookAddCmd)
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookSearchCmd)
}

// printBookTable prints books in a human-readable table format.
func printBookTable(books []*types.Book) {
	if len(books) == 0 {
		fmt.Println("No books found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tYEAR\tAVAILABLE")
	fmt.Fprintln(w, "--\t-----\t------\t----\t---------")
	for _, b := range books {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d/%d\n",
			b.ID,
			b.Title,
			orDash(b.Author),
			yearText(b.Year),
			b.CopiesAvailable,
			b.CopiesTotal,
		)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d book(s)\n", len(books))
}
