package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (rt *runtime) historyCommand() *cobra.Command {
	var utc bool

	history := &cobra.Command{
		Use:   "history",
		Short: "Show the login history, most recent first",
		Args:  cobra.NoArgs,
	}
	as := addAsFlag(history)
	history.Flags().BoolVar(&utc, "utc", false, "print times in UTC instead of local time")

	history.RunE = func(cmd *cobra.Command, args []string) error {
		p, _, err := rt.adminLogin(cmd, *as)
		if err != nil {
			return err
		}
		entries, err := rt.app.Audit.GetLoginHistory(cmd.Context(), p)
		if err != nil {
			return err
		}

		loc := time.Local
		if utc {
			loc = time.UTC
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tROLE\tID\tNAME")
		for _, e := range entries {
			name := "(deleted)"
			if e.DisplayName.Valid {
				name = e.DisplayName.String
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Formatted(loc), e.Role, e.SubjectID, name)
		}
		return w.Flush()
	}

	return history
}
