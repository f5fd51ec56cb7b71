// Member list command prints all registered members.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var memberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all members",
	Args:  cobra.NoArgs,
	RunE:  runMemberList,
}

func runMemberList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	members, err := store.ListMembers()
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}

	if flagJSON {
		return printJSON(members)
	}
	printMemberTable(members)
	return nil
}
