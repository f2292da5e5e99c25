// Package cli implements the csvedit command tree and the interactive shell.
//
// Every command opens exactly one core.Session for its FILE argument and
// drives it through the core package; nothing is kept in package state.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/JonMunkholm/csvedit/internal/config"
	"github.com/JonMunkholm/csvedit/internal/core"
	"github.com/JonMunkholm/csvedit/internal/logging"
	"github.com/JonMunkholm/csvedit/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is reported by --version. Release builds set it with
// -ldflags "-X github.com/JonMunkholm/csvedit/internal/cli.Version=v1.2.3".
var Version = "dev"

// Exit statuses returned by Execute.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// App carries configuration, standard streams and parsed global flags for
// one invocation.
type App struct {
	cfg *config.Config

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	dimension shapeValue
	header    bool
	delimiter string
	sanitize  bool
	debug     int
	format    formatValue
	pageSize  int
	color     bool
}

// New returns an App writing to the given streams.
func New(cfg *config.Config, in io.Reader, out, errOut io.Writer) *App {
	return &App{
		cfg:    cfg,
		in:     in,
		out:    out,
		errOut: errOut,
		format: formatTable,
	}
}

// Execute runs the command line args and returns the process exit status.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return ExitOK
	}
	return a.reportError(cmd, err)
}

func (a *App) reportError(cmd *cobra.Command, err error) int {
	var ue *usageError
	if errors.As(err, &ue) || isCobraUsageError(err) {
		fmt.Fprintln(a.errOut, render.Error(err.Error(), a.color))
		if cmd != nil {
			fmt.Fprintf(a.errOut, "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
		return ExitUsage
	}

	uerr := core.NewUserError(err)
	slog.Info("command failed", "command", commandPath(cmd), "error", err.Error(), "code", uerr.User.Code)

	fmt.Fprintln(a.errOut, render.Error(err.Error(), a.color))
	// Unmapped errors get no generic hint line.
	if core.IsUserFacing(err) {
		fmt.Fprintf(a.errOut, "  %s\n", core.FormatUserError(err))
	}
	return ExitError
}

// isCobraUsageError recognises argument errors cobra raises before any
// RunE is reached.
func isCobraUsageError(err error) bool {
	s := err.Error()
	return strings.HasPrefix(s, "unknown command") ||
		strings.HasPrefix(s, "unknown flag") ||
		strings.HasPrefix(s, "unknown shorthand flag")
}

func commandPath(cmd *cobra.Command) string {
	if cmd == nil {
		return ""
	}
	return cmd.CommandPath()
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "csvedit",
		Version: Version,
		Short:   "View and edit fixed-shape CSV files",
		Long: `csvedit loads a CSV file whose rows all have the same number of fields,
shows it whole or a page at a time, edits single rows and fields, and writes
the result back as CSV or exports it as an .xlsx workbook.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.Var(&a.dimension, "dimension", "expected shape as rows,cols; 0 infers that part")
	pf.BoolVar(&a.header, "header", a.cfg.Table.Header, "treat the first record as a header row")
	pf.StringVar(&a.delimiter, "delimiter", a.cfg.Table.Delimiter, `field delimiter, a single character or "tab"`)
	pf.BoolVar(&a.sanitize, "sanitize", a.cfg.Table.SanitizeUTF8, "replace invalid UTF-8 instead of failing")
	pf.CountVarP(&a.debug, "debug", "d", "increase log verbosity (-d info, -dd debug)")
	pf.Var(&a.format, "format", "row output format: table or csv")
	pf.IntVarP(&a.pageSize, "page-size", "p", a.cfg.Display.PageSize, "rows per page")

	root.AddCommand(
		a.showCommand(),
		a.pageCommand(),
		a.pagesCommand(),
		a.deleteCommand(),
		a.setCommand(),
		a.replaceCommand(),
		a.infoCommand(),
		a.exportCommand(),
		a.shellCommand(),
	)
	return root
}

// setup runs after flag parsing and before any command.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	level := logging.VerbosityLevel(a.cfg.Logging.Level, a.debug)
	logging.SetupWithWriter(a.errOut, level, a.cfg.Logging.Format)

	if _, err := config.ParseDelimiter(a.delimiter); err != nil {
		return usageErrorf("invalid --delimiter %q: %v", a.delimiter, err)
	}
	if a.pageSize <= 0 {
		return usageErrorf("--page-size must be positive, got %d", a.pageSize)
	}
	a.color = a.cfg.Display.Color && isTerminal(a.out)

	slog.Debug("invocation",
		"command", cmd.CommandPath(),
		"dimension", a.dimension.String(),
		"header", a.header,
		"page_size", a.pageSize,
		"config", a.cfg.String(),
	)
	return nil
}

func (a *App) openOptions() core.OpenOptions {
	comma, _ := config.ParseDelimiter(a.delimiter)
	return core.OpenOptions{
		Load: core.LoadOptions{
			Shape:    a.dimension.shape,
			Header:   a.header,
			Sanitize: a.sanitize,
			Comma:    comma,
		},
		MaxFileSize: a.cfg.Files.MaxFileSize,
		Backup:      a.cfg.Files.Backup,
		PageSize:    a.pageSize,
	}
}

func (a *App) open(ctx context.Context, path string) (*core.Session, error) {
	return core.Open(ctx, path, a.openOptions())
}

// printRows writes rows in the selected --format. start is the absolute
// index of rows[0].
func (a *App) printRows(w io.Writer, t *core.Table, rows []core.Row, start int) error {
	if a.format == formatCSV {
		return render.Records(w, t.Delimiter(), rows)
	}

	opts := render.Options{
		Columns:      t.Columns(),
		Start:        start,
		MaxCellWidth: a.cfg.Display.MaxCellWidth,
		Color:        a.color,
	}
	if t.HasHeader() {
		opts.Header = t.Header()
	}
	return render.Table(w, rows, opts)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
