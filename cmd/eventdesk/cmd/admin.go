package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (rt *runtime) adminCommand() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
		Long: `Manage administrator accounts.

Administrators cannot register themselves; they are created here.

Examples:
  # Create an administrator
  eventdesk admin create root

  # Change your own password
  eventdesk admin passwd --as root`,
	}

	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an administrator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := rt.prompt.NewPassword("Password: ")
			if err != nil {
				return err
			}
			id, err := rt.app.Credentials.CreateAdmin(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (id %d)\n", args[0], id)
			return err
		},
	}

	passwd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of the administrator given by --as",
		Args:  cobra.NoArgs,
	}
	as := addAsFlag(passwd)
	passwd.RunE = func(cmd *cobra.Command, args []string) error {
		p, current, err := rt.adminLogin(cmd, *as)
		if err != nil {
			return err
		}
		next, err := rt.prompt.NewPassword("New password: ")
		if err != nil {
			return err
		}
		if err := rt.app.Credentials.ChangeAdminPassword(cmd.Context(), p.ID, current, next); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "password changed")
		return err
	}

	admin.AddCommand(create, passwd)
	return admin
}
