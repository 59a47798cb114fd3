package cmd

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	"github.com/spf13/cobra"
)

// addAsFlag registers --as on cmd and returns where it is stored.
func addAsFlag(cmd *cobra.Command) *string {
	var as string
	cmd.Flags().StringVar(&as, "as", "", "admin username to act as (password is prompted)")
	return &as
}

// adminLogin signs in through the session gate and returns the principal
// recovered from the issued token, plus the password that was typed.
func (rt *runtime) adminLogin(cmd *cobra.Command, as string) (models.Principal, string, error) {
	if as == "" {
		return models.Principal{}, "", errors.New("--as <admin> is required")
	}

	password, err := rt.prompt.Password(fmt.Sprintf("Password for %s: ", as))
	if err != nil {
		return models.Principal{}, "", err
	}

	ctx := cmd.Context()
	session, err := rt.app.Sessions.Login(ctx, models.RoleAdmin, as, password)
	if err != nil {
		return models.Principal{}, "", fmt.Errorf("login as %s: %w", as, err)
	}

	p, err := rt.app.Sessions.Authenticate(ctx, session.Token)
	if err != nil {
		return models.Principal{}, "", err
	}
	return p, password, nil
}
