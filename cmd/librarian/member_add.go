// Member add command registers a new library member.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	memberAddName  string
	memberAddEmail string
	memberAddPhone string
)

var memberAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new member",
	Long: `Add registers a member. A non-empty email must be unique across
all members.

Example:
  librarian member add --name "Alice Johnson" --email alice@example.com --phone 1234567890
  librarian member add --name "Walk-in"`,
	Args: cobra.NoArgs,
	RunE: runMemberAdd,
}

func init() {
	memberAddCmd.Flags().StringVar(&memberAddName, "name", "", "member name (required)")
	memberAddCmd.Flags().StringVar(&memberAddEmail, "email", "", "member email (unique)")
	memberAddCmd.Flags().StringVar(&memberAddPhone, "phone", "", "member phone")
	_ = memberAddCmd.MarkFlagRequired("name")
}

func runMemberAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	member, err := store.AddMember(memberAddName, memberAddEmail, memberAddPhone)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}

	if flagJSON {
		return printJSON(member)
	}
	fmt.Printf("Added member id=%d\n", member.ID)
	return nil
}
