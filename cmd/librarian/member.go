// Member command group for the librarian CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage library members",
}

func init() {
	memberCmd.AddCommand(memberAddCmd)
	memberCmd.AddCommand(memberListCmd)
}

// printMemberTable prints members in a human-readable table format.
func printMemberTable(members []*types.Member) {
	if len(members) == 0 {
		fmt.Println("No members found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tJOINED")
	fmt.Fprintln(w, "--\t----\t-----\t-----\t------")
	for _, m := range members {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			m.ID,
			m.Name,
			orDash(m.Email),
			orDash(m.Phone),
			m.JoinedAt.Format("2006-01-02"),
		)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d member(s)\n", len(members))
}
