package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/items/internal/api"
)

func newDiagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag <trigger>",
		Short: "Send a request that should fail with a known status",
		Long: `Send one of the deliberately failing requests and report the outcome.

Exits 0 when the server answered with the expected status, 1 otherwise.
Run 'items diag list' for the available triggers.`,
		Args: exactArgs(1, "diag <trigger>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := api.LookupTrigger(args[0])
			if !ok {
				return usagef(fmt.Sprintf("diag: unknown trigger %q (one of %s)", args[0], triggerNames()))
			}
			if err := app.setup(cmd, cmd.ErrOrStderr()); err != nil {
				return err
			}
			r := app.console.Diagnose(cmd.Context(), t)
			app.show(r)
			if r.Exchange != nil && r.Exchange.Status == t.Expected {
				return nil
			}
			// network failure or unexpected success
			return reportedError{msg: r.Status.Message}
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the error triggers",
		Args:  exactArgs(0, "diag list"),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, t := range api.Triggers {
				req := t.Request()
				fmt.Fprintf(w, "%-13s %d  %-6s %s\n", t.Name, t.Expected, req.Method, req.Path)
			}
			return nil
		},
	})
	return cmd
}

func triggerNames() string {
	names := make([]string, 0, len(api.Triggers))
	for _, t := range api.Triggers {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}
