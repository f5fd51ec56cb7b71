// Loan return command closes an open loan.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loanReturnCmd = &cobra.Command{
	Use:   "return <loan-id>",
	Short: "Return a borrowed book",
	Long: `Return closes the loan and makes the copy available again.
Returning the same loan twice is rejected.

Example:
  librarian loan return 1`,
	Args: cobra.ExactArgs(1),
	RunE: runLoanReturn,
}

func runLoanReturn(cmd *cobra.Command, args []string) error {
	loanID, err := parseID(args[0], "loan ID")
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	loan, err := store.ReturnBook(loanID)
	if err != nil {
		return fmt.Errorf("return book: %w", err)
	}

	if flagJSON {
		return printJSON(loan)
	}
	fmt.Println("Book returned successfully.")
	return nil
}
