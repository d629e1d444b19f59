package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/items/internal/console"
	"github.com/idilsaglam/items/internal/ui"
)

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: items " + usage)
		}
		return nil
	}
}

func parseID(cmd string, s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, usagef(cmd + ": not a number: " + s)
	}
	return id, nil
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    exactArgs(0, "ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd, cmd.ErrOrStderr()); err != nil {
				return err
			}
			r := app.console.List(cmd.Context())
			if r.Listed {
				lines := ui.ItemLines(r.Items)
				lines = append(lines, "", ui.C(ui.Current().Muted, "Tip: add with `items add \"Marker\" 3`"))
				ui.Panel(lines)
			}
			return app.result(r)
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <quantity>",
		Short: "Create an item",
		Args:  exactArgs(2, "add <name> <quantity>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd, cmd.ErrOrStderr()); err != nil {
				return err
			}
			return app.result(app.console.Add(cmd.Context(), args[0], args[1]))
		},
	}
}

func newUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "update <id> <name> <quantity>",
		Aliases: []string{"edit"},
		Short:   "Replace an item's name and quantity",
		Args:    exactArgs(3, "update <id> <name> <quantity>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("update", args[0])
			if err != nil {
				return err
			}
			if err := app.setup(cmd, cmd.ErrOrStderr()); err != nil {
				return err
			}
			return app.result(app.console.Update(cmd.Context(), id, args[1], args[2]))
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    exactArgs(1, "rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			if err := app.setup(cmd, cmd.ErrOrStderr()); err != nil {
				return err
			}
			return app.result(app.console.Delete(cmd.Context(), id))
		},
	}
}

// examples prints the request examples, merged with what the server
// advertises when it is reachable.
func newExamplesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Print request body examples",
		Args:  exactArgs(0, "examples"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd, cmd.ErrOrStderr()); err != nil {
				return err
			}
			var server map[string]any
			if r := app.console.List(cmd.Context()); r.Listed {
				server = r.Examples
			} else {
				app.logger.Warn("showing built-in examples", "reason", r.Status.Message)
			}
			fmt.Fprint(cmd.OutOrStdout(), console.ExamplesJSON(server))
			return nil
		},
	}
}
