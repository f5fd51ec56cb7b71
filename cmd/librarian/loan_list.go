// Loan list command prints loan history.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loanListActive bool

var loanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loans",
	Long: `List prints loans joined with book title and member name, ordered
by loan identifier.

Example:
  librarian loan list
  librarian loan list --active
  librarian loan list --json`,
	Args: cobra.NoArgs,
	RunE: runLoanList,
}

func init() {
	loanListCmd.Flags().BoolVar(&loanListActive, "active", false, "only open loans")
}

func runLoanList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	loans, err := store.ListLoans(loanListActive)
	if err != nil {
		return fmt.Errorf("list loans: %w", err)
	}

	if flagJSON {
		return printJSON(loans)
	}
	printLoanTable(loans)
	return nil
}
