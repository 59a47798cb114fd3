package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (rt *runtime) usersCommand() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
		Long: `Manage user accounts. Every subcommand acts as the administrator given
by --as.

Examples:
  eventdesk users list --as root
  eventdesk users delete 42 --as root
  eventdesk users reset-password 42 --as root`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
	}
	listAs := addAsFlag(list)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		p, _, err := rt.adminLogin(cmd, *listAs)
		if err != nil {
			return err
		}
		all, err := rt.app.Profiles.ListUsers(cmd.Context(), p)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tPHONE\tTHEME")
		for _, u := range all {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Name, u.Phone, u.Theme)
		}
		return w.Flush()
	}

	del := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user and all of its events",
		Args:  cobra.ExactArgs(1),
	}
	delAs := addAsFlag(del)
	del.RunE = func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		p, _, err := rt.adminLogin(cmd, *delAs)
		if err != nil {
			return err
		}
		if err := rt.app.Profiles.DeleteUser(cmd.Context(), p, id); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "user %d deleted\n", id)
		return err
	}

	reset := &cobra.Command{
		Use:   "reset-password <user-id>",
		Short: "Set a new password for a user",
		Args:  cobra.ExactArgs(1),
	}
	resetAs := addAsFlag(reset)
	reset.RunE = func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		p, _, err := rt.adminLogin(cmd, *resetAs)
		if err != nil {
			return err
		}
		password, err := rt.prompt.NewPassword("New user password: ")
		if err != nil {
			return err
		}
		if err := rt.app.Profiles.ResetUserPassword(cmd.Context(), p, id, password); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "password of user %d reset\n", id)
		return err
	}

	users.AddCommand(list, del, reset)
	return users
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
