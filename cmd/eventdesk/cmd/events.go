package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	"github.com/spf13/cobra"
)

func (rt *runtime) eventsCommand() *cobra.Command {
	events := &cobra.Command{
		Use:   "events",
		Short: "List and search events of all users",
		Long: `List and search events. Without --user every user's events are shown.
Results are ordered by date, newest first.

Examples:
  eventdesk events list --as root
  eventdesk events list --user 42 --as root
  eventdesk events search festival --as root`,
	}

	var listUser int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
	}
	listAs := addAsFlag(list)
	list.Flags().Int64Var(&listUser, "user", 0, "only events of this user id")
	list.RunE = func(cmd *cobra.Command, args []string) error {
		p, _, err := rt.adminLogin(cmd, *listAs)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if listUser != 0 {
			evs, err := rt.app.Events.ListByOwner(ctx, p, listUser)
			if err != nil {
				return err
			}
			return printEvents(cmd.OutOrStdout(), ownedBy(evs))
		}
		evs, err := rt.app.Events.ListAll(ctx, p)
		if err != nil {
			return err
		}
		return printEvents(cmd.OutOrStdout(), evs)
	}

	var searchUser int64
	search := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search events by title or person (and date with --user)",
		Args:  cobra.ExactArgs(1),
	}
	searchAs := addAsFlag(search)
	search.Flags().Int64Var(&searchUser, "user", 0, "only events of this user id")
	search.RunE = func(cmd *cobra.Command, args []string) error {
		p, _, err := rt.adminLogin(cmd, *searchAs)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if searchUser != 0 {
			evs, err := rt.app.Events.SearchByOwner(ctx, p, searchUser, args[0])
			if err != nil {
				return err
			}
			return printEvents(cmd.OutOrStdout(), ownedBy(evs))
		}
		evs, err := rt.app.Events.SearchAll(ctx, p, args[0])
		if err != nil {
			return err
		}
		return printEvents(cmd.OutOrStdout(), evs)
	}

	events.AddCommand(list, search)
	return events
}

// ownedBy adapts single-owner results to the listing format; the owner
// column shows the user id.
func ownedBy(evs []models.Event) []models.OwnedEvent {
	out := make([]models.OwnedEvent, 0, len(evs))
	for _, e := range evs {
		out = append(out, models.OwnedEvent{Event: e, OwnerUsername: "#" + strconv.FormatInt(e.UserID, 10)})
	}
	return out
}

func printEvents(out io.Writer, evs []models.OwnedEvent) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTIME\tTITLE\tPERSON\tOWNER")
	for _, e := range evs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Time, e.Title, e.Person, e.OwnerUsername)
	}
	return w.Flush()
}
