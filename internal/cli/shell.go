package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/JonMunkholm/csvedit/internal/core"
	"github.com/JonMunkholm/csvedit/internal/logging"
	"github.com/JonMunkholm/csvedit/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const shellHelp = `Commands (indexes are zero-based):
  show                    print every row
  page [N]                print page N (default: current page)
  next, prev              move to the next or previous page
  pages                   list page ranges
  delete ROW              delete a row
  set ROW COL VALUE       replace one field
  replace ROW CSV         replace a row; CSV is one record, e.g. "a,b,c"
  replace ROW F1 F2 ...   replace a row with one argument per field
  info                    describe the file
  history                 list edits made in this session
  save [PATH]             write CSV to PATH (default: the source file)
  export PATH [SHEET]     write an .xlsx workbook
  help                    show this help
  quit                    leave; refuses while there are unsaved edits
  quit!                   leave and discard unsaved edits

Words are separated by spaces. Wrap a value in double quotes to keep spaces
or to pass an empty value (""); inside quotes, "" stands for one quote.
Backslashes and # inside a value are kept as typed. A line that starts
with # is a comment.
`

var errQuit = errors.New("quit")

func (a *App) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell FILE",
		Short: "Edit a file interactively, or run commands from stdin",
		Long: `Open FILE once and read commands line by line. On a terminal each line
gets a prompt and errors are reported without leaving the shell. When stdin
is not a terminal the commands run as a script that stops at the first error.
Nothing is written until "save".`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sh := &shell{
				app:         a,
				session:     s,
				out:         cmd.OutOrStdout(),
				errOut:      cmd.ErrOrStderr(),
				interactive: isInteractive(cmd.InOrStdin()),
			}
			return sh.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type shell struct {
	app         *App
	session     *core.Session
	out         io.Writer
	errOut      io.Writer
	interactive bool
	page        int
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	ctx = logging.ContextWithSessionID(ctx, sh.session.ID())
	logger := logging.FromContext(ctx)
	logger.Debug("shell started", "interactive", sh.interactive)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), int(sh.app.cfg.Files.MaxFileSize))
	lineNo := 0

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("shell interrupted: %w", err)
		}
		sh.prompt()
		if !scanner.Scan() {
			break
		}
		lineNo++

		err := sh.exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err == nil {
			continue
		}

		logger.Info("shell command failed", "line", lineNo, "error", err.Error())
		if !sh.interactive {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		sh.printError(err)
	}

	if err := scanner.Err(); err != nil {
		return &core.IOError{Op: "read", Path: "stdin", Err: err}
	}
	if sh.session.Dirty() {
		fmt.Fprintln(sh.errOut, render.Error("input ended with unsaved edits; they were discarded", sh.app.color))
	}
	return nil
}

func (sh *shell) prompt() {
	if sh.interactive {
		mark := ""
		if sh.session.Dirty() {
			mark = "*"
		}
		fmt.Fprintf(sh.out, "csvedit%s> ", mark)
	}
}

func (sh *shell) printError(err error) {
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(sh.errOut, render.Error(err.Error(), sh.app.color))
		return
	}
	uerr := core.NewUserError(err)
	fmt.Fprintln(sh.errOut, render.Error(err.Error()+" ("+uerr.User.Code+")", sh.app.color))
}

// exec runs one input line. Blank lines and lines starting with # are ignored.
func (sh *shell) exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	words, err := splitWords(line)
	if err != nil {
		return usageErrorf("cannot split %q: %v", line, err)
	}
	if len(words) == 0 {
		return nil
	}
	name, args := words[0], words[1:]
	t := sh.session.Table()

	switch name {
	case "show":
		if err := wantArgs(name, args, 0, 0); err != nil {
			return err
		}
		return sh.app.printRows(sh.out, t, t.Rows(), 0)

	case "page":
		if err := wantArgs(name, args, 0, 1); err != nil {
			return err
		}
		n := sh.page
		if len(args) == 1 {
			if n, err = parseIndex("page", args[0]); err != nil {
				return err
			}
		}
		return sh.showPage(n)

	case "next":
		if err := wantArgs(name, args, 0, 0); err != nil {
			return err
		}
		return sh.showPage(sh.page + 1)

	case "prev":
		if err := wantArgs(name, args, 0, 0); err != nil {
			return err
		}
		return sh.showPage(sh.page - 1)

	case "pages":
		if err := wantArgs(name, args, 0, 0); err != nil {
			return err
		}
		return render.Pages(sh.out, t.Pages(sh.app.pageSize), sh.app.color)

	case "delete":
		if err := wantArgs(name, args, 1, 1); err != nil {
			return err
		}
		row, err := parseIndex("row", args[0])
		if err != nil {
			return err
		}
		if err := sh.session.DeleteRow(row); err != nil {
			return err
		}
		return sh.status("deleted row %d", row)

	case "set":
		if err := wantArgs(name, args, 3, 3); err != nil {
			return err
		}
		row, err := parseIndex("row", args[0])
		if err != nil {
			return err
		}
		col, err := parseIndex("column", args[1])
		if err != nil {
			return err
		}
		if err := sh.session.SetField(row, col, args[2]); err != nil {
			return err
		}
		return sh.status("set field (%d,%d)", row, col)

	case "replace":
		if err := wantArgs(name, args, 2, -1); err != nil {
			return err
		}
		row, err := parseIndex("row", args[0])
		if err != nil {
			return err
		}
		fields := args[1:]
		if len(fields) == 1 {
			rec, err := core.ParseRecord(fields[0], t.Delimiter())
			if err != nil {
				return err
			}
			fields = rec
		}
		if err := sh.session.ReplaceRow(row, fields); err != nil {
			return err
		}
		return sh.status("replaced row %d", row)

	case "info":
		if err := wantArgs(name, args, 0, 0); err != nil {
			return err
		}
		return render.Info(sh.out, sh.session.Info(), sh.app.color)

	case "history":
		if err := wantArgs(name, args, 0, 0); err != nil {
			return err
		}
		return render.Journal(sh.out, sh.session.Journal(), sh.app.color)

	case "save":
		if err := wantArgs(name, args, 0, 1); err != nil {
			return err
		}
		var dest string
		if len(args) == 1 {
			dest = args[0]
		}
		saved, err := sh.session.Save(ctx, dest)
		if err != nil {
			return err
		}
		return sh.status("saved %s", saved)

	case "export":
		if err := wantArgs(name, args, 1, 2); err != nil {
			return err
		}
		sheet := sh.app.cfg.Files.SheetName
		if len(args) == 2 {
			sheet = args[1]
		}
		if err := sh.session.Export(ctx, args[0], sheet); err != nil {
			return err
		}
		return sh.status("exported %s", args[0])

	case "help", "?":
		_, err := io.WriteString(sh.out, shellHelp)
		return err

	case "quit", "exit":
		if sh.session.Dirty() {
			return usageErrorf("unsaved edits; run save, or quit! to discard them")
		}
		return errQuit

	case "quit!", "exit!":
		if sh.session.Dirty() {
			slog.Warn("discarding unsaved edits", "session_id", sh.session.ID())
		}
		return errQuit

	default:
		return usageErrorf("unknown command %q (try help)", name)
	}
}

// showPage prints page n and makes it current.
func (sh *shell) showPage(n int) error {
	t := sh.session.Table()
	rows, pg, err := t.PageN(sh.app.pageSize, n)
	if err != nil {
		return err
	}
	sh.page = n

	if err := sh.app.printRows(sh.out, t, rows, pg.Start); err != nil {
		return err
	}
	if sh.interactive {
		fmt.Fprintf(sh.out, "page %d of %d\n", n, t.PageCount(sh.app.pageSize))
	}
	return nil
}

func (sh *shell) status(format string, args ...any) error {
	_, err := fmt.Fprintf(sh.out, format+"\n", args...)
	return err
}

// wantArgs checks the argument count; hi < 0 means no upper bound.
func wantArgs(name string, args []string, lo, hi int) error {
	switch {
	case len(args) < lo:
		return usageErrorf("%s: expected at least %d argument(s), got %d", name, lo, len(args))
	case hi >= 0 && len(args) > hi:
		return usageErrorf("%s: expected at most %d argument(s), got %d", name, hi, len(args))
	}
	return nil
}

func parseIndex(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageErrorf("%s must be an integer, got %q", what, s)
	}
	return n, nil
}

func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
