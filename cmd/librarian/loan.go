// Loan command group for the librarian CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Issue, return, and list loans",
}

func init() {
	loanCmd.AddCommand(loanIssueCmd)
	loanCmd.AddCommand(loanReturnCmd)
	loanCmd.AddCommand(loanListCmd)
}

// printLoanTable prints loan records in a human-readable table format.
func printLoanTable(loans []*types.LoanRecord) {
	if len(loans) == 0 {
		fmt.Println("No loans found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tBOOK\tMEMBER\tSTATUS\tISSUE\tDUE\tRETURNED")
	fmt.Fprintln(w, "--\t----\t------\t------\t-----\t---\t--------")
	for _, l := range loans {
		returned := "-"
		if l.ReturnDate != nil {
			returned = l.ReturnDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%d\t(%d) %s\t(%d) %s\t%s\t%s\t%s\t%s\n",
			l.ID,
			l.BookID, l.BookTitle,
			l.MemberID, l.MemberName,
			l.Status(),
			l.IssueDate.Format("2006-01-02"),
			l.DueDate.Format("2006-01-02"),
			returned,
		)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d loan(s)\n", len(loans))
}
