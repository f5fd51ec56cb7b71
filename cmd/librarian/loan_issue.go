// Loan issue command lends a book copy to a member.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loanIssueBook   int64
	loanIssueMember int64
	loanIssueDays   int
)

var loanIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a book to a member",
	Long: `Issue lends one available copy and records the loan. The due date
is the issue date plus --days, or the configured loan period when --days
is omitted.

Example:
  librarian loan issue --book 1 --member 2
  librarian loan issue --book 1 --member 2 --days 7`,
	Args: cobra.NoArgs,
	RunE: runLoanIssue,
}

func init() {
	loanIssueCmd.Flags().Int64Var(&loanIssueBook, "book", 0, "book ID (required)")
	loanIssueCmd.Flags().Int64Var(&loanIssueMember, "member", 0, "member ID (required)")
	loanIssueCmd.Flags().IntVar(&loanIssueDays, "days", 0, "loan period in days (default: configured loan_days)")
	_ = loanIssueCmd.MarkFlagRequired("book")
	_ = loanIssueCmd.MarkFlagRequired("member")
}

func runLoanIssue(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	loan, err := store.IssueBook(loanIssueBook, loanIssueMember, loanIssueDays)
	if err != nil {
		return fmt.Errorf("issue book: %w", err)
	}

	if flagJSON {
		return printJSON(loan)
	}
	fmt.Printf("Issued book %d to member %d. Due on %s\n",
		loan.BookID, loan.MemberID, loan.DueDate.Format("2006-01-02"))
	return nil
}
