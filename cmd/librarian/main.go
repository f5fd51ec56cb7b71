// Package main provides the librarian CLI, a local-first library catalog
// manager. Run without arguments it starts the interactive menu;
// subcommands expose the same operations for scripting.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "librarian:", err)
		os.Exit(exitCodeFor(err))
	}
}

// userErrors are the catalog failures a caller can fix: bad identifiers,
// constraint violations, exhausted copies. Everything else is treated as
// a system error.
var userErrors = []error{
	types.ErrBookNotFound,
	types.ErrMemberNotFound,
	types.ErrLoanNotFound,
	types.ErrNoCopiesAvailable,
	types.ErrAlreadyReturned,
	types.ErrDuplicateEmail,
	types.ErrInvalidQuantity,
	types.ErrInvalidInput,
	types.ErrUnknownFormat,
}

func exitCodeFor(err error) int {
	for _, sentinel := range userErrors {
		if errors.Is(err, sentinel) {
			return exitUserError
		}
	}
	return exitSysError
}
