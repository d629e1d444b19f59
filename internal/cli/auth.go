package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/items/internal/auth"
	"github.com/idilsaglam/items/internal/ui"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the bearer token sent with every request",
	}

	var expires time.Duration
	login := &cobra.Command{
		Use:   "login",
		Short: "Save a token read from stdin",
		Args:  exactArgs(0, "auth login"),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), "Paste your token: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && strings.TrimSpace(line) == "" {
				return fmt.Errorf("read token: %w", err)
			}
			var exp *time.Time
			if expires > 0 {
				t := time.Now().Add(expires)
				exp = &t
			}
			if err := auth.SetToken(line, exp); err != nil {
				return err
			}
			ui.OK("logged in")
			return nil
		},
	}
	login.Flags().DurationVar(&expires, "expires", 0, "Record an expiry this far in the future")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Delete the saved token",
		Args:  exactArgs(0, "auth logout"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, err := auth.GetToken()
			if err != nil {
				// unreadable credentials are removed all the same
				ui.Println(ui.C(ui.Current().Warn, "warning: "+err.Error()))
			}
			if ti != nil && ti.Source == "env" {
				ui.OK("token is provided by " + auth.TokenEnv + " env var (nothing to delete)")
				return nil
			}
			if err := auth.DeleteToken(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK("logged out")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show where the token comes from",
		Args:  exactArgs(0, "auth status"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, err := auth.GetToken()
			if err != nil {
				return err
			}
			if ti == nil {
				ui.Println(ui.C(ui.Current().Muted, "not logged in"))
				ui.Println("Run: items auth login")
				return nil
			}
			ui.Println("source: " + ti.Source)
			switch {
			case ti.ExpiresAt == nil:
				ui.Println("expires: (unknown)")
			case ti.Expired():
				return errors.New("token expired at " + ti.ExpiresAt.UTC().Format(time.RFC3339))
			default:
				ui.Println("expires: " + ti.ExpiresAt.UTC().Format(time.RFC3339))
			}
			ui.Println("env override: " + auth.TokenEnv)
			return nil
		},
	}

	cmd.AddCommand(login, logout, status)
	return cmd
}
