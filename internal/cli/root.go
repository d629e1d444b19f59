package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/items/internal/api"
	"github.com/idilsaglam/items/internal/auth"
	"github.com/idilsaglam/items/internal/config"
	"github.com/idilsaglam/items/internal/console"
	"github.com/idilsaglam/items/internal/tui"
	"github.com/idilsaglam/items/internal/ui"
)

const tuiLogFile = "items-debug.log"

// App carries root flags and the wiring built from them.
type App struct {
	ConfigPath string
	APIURL     string
	Host       string
	Timeout    time.Duration
	Theme      string
	Verbose    bool
	Detail     bool
	Basic      bool

	cfg     *config.Config
	logger  *log.Logger
	client  *api.Client
	console *console.Console
}

// Run executes args and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	return run(context.Background(), args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	ui.SetOutput(out, errOut)
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		ui.Fail(err.Error())
		if exitCode(err) == 2 {
			fmt.Fprintln(errOut, "Run 'items --help' for usage.")
		}
	}
	return exitCode(err)
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "items",
		Short:         "Items Console: browse and edit an items REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Interactive console
  items

  # Scriptable commands
  items ls
  items add "Marker" 3
  items update 7 "Updated Marker" 6
  items rm 7

  # Show the raw request/response of a deliberately failing call
  items diag teapot --detail
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTUI(cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usagef(err.Error())
	})

	f := cmd.PersistentFlags()
	f.StringVar(&app.ConfigPath, "config", "", "Config file (.toml or .yaml; default ~/.items/config.toml)")
	f.StringVar(&app.APIURL, "api-url", "", "API origin, overrides host-based selection (env ITEMS_API_URL)")
	f.StringVar(&app.Host, "host", "", "Host name used to pick the API origin (env ITEMS_HOST)")
	f.DurationVar(&app.Timeout, "timeout", 0, "Request timeout (0 = none)")
	f.StringVar(&app.Theme, "theme", "", "Output theme (classic|neon|mono)")
	f.BoolVarP(&app.Verbose, "verbose", "v", false, "Log every request")
	f.BoolVar(&app.Detail, "detail", false, "Print the request/response detail after an action")
	f.BoolVar(&app.Basic, "basic", false, "Basic console: no exchange modal, no error triggers")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newUpdateCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newExamplesCmd(app))
	cmd.AddCommand(newDiagCmd(app))
	cmd.AddCommand(newAuthCmd())

	return cmd
}

// setup loads config, applies flag overrides and builds the client.
// logOut receives log output.
func (a *App) setup(cmd *cobra.Command, logOut io.Writer) error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.APIURL
	}
	if flags.Changed("host") {
		cfg.Host = a.Host
	}
	if flags.Changed("timeout") {
		cfg.Timeout.Duration = a.Timeout
	}
	if flags.Changed("theme") {
		cfg.Theme = a.Theme
	}
	if a.Verbose {
		cfg.Verbose = true
	}
	if a.Basic {
		cfg.Diagnostics = false
	}
	if err := cfg.Validate(); err != nil {
		return usagef(err.Error())
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)
	if os.Getenv("NO_COLOR") != "" {
		ui.SetColorForcing(false, true)
	}

	a.logger = newLogger(logOut, cfg)
	if p := cfg.Path(); p != "" {
		a.logger.Debug("config loaded", "path", p)
	}

	token, err := auth.Token()
	switch {
	case errors.Is(err, auth.ErrExpired):
		a.logger.Warn("saved token has expired, sending no token; run `items auth login`")
	case err != nil:
		a.logger.Warn("ignoring credentials", "err", err)
	}
	a.client = api.New(api.Options{
		Root:    cfg.APIRoot(),
		Token:   token,
		Timeout: cfg.Timeout.Duration,
		Logger:  a.logger,
	})
	a.console = console.New(a.client, a.logger)
	return nil
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if cfg.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "items",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

func (a *App) runTUI(cmd *cobra.Command) error {
	logOut := io.Discard
	if a.Verbose {
		f, err := tea.LogToFile(tuiLogFile, "items")
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	if err := a.setup(cmd, logOut); err != nil {
		return err
	}
	return tui.Run(cmd.Context(), tui.Options{
		Console:     a.console,
		Origin:      a.client.Root(),
		Diagnostics: a.cfg.Diagnostics,
		Theme:       a.cfg.Theme,
	})
}

// result prints the status line, then the exchange detail when asked for,
// and turns a failed action into exit code 1.
func (a *App) result(r console.Result) error {
	a.show(r)
	if r.Status.IsError {
		return reportedError{msg: r.Status.Message}
	}
	return nil
}

func (a *App) show(r console.Result) {
	ui.Status(r.Status)
	if a.Detail && r.Exchange != nil {
		ui.Panel(ui.ExchangeLines(r.Exchange))
	}
}
