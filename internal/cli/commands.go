package cli

import (
	"fmt"

	"github.com/JonMunkholm/csvedit/internal/core"
	"github.com/JonMunkholm/csvedit/internal/render"
	"github.com/spf13/cobra"
)

func (a *App) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print every row",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			t := s.Table()
			return a.printRows(cmd.OutOrStdout(), t, t.Rows(), 0)
		},
	}
}

func (a *App) pageCommand() *cobra.Command {
	var number, start, end int

	cmd := &cobra.Command{
		Use:   "page FILE",
		Short: "Print one page, or an explicit row range with --start/--end",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranged := cmd.Flags().Changed("start") || cmd.Flags().Changed("end")
			if ranged && cmd.Flags().Changed("page") {
				return usageErrorf("--page cannot be combined with --start/--end")
			}

			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			t := s.Table()

			if ranged {
				if !cmd.Flags().Changed("end") {
					end = t.Len()
				}
				rows, err := t.Page(start, end)
				if err != nil {
					return err
				}
				return a.printRows(cmd.OutOrStdout(), t, rows, start)
			}

			rows, pg, err := t.PageN(a.pageSize, number)
			if err != nil {
				return err
			}
			return a.printRows(cmd.OutOrStdout(), t, rows, pg.Start)
		},
	}

	cmd.Flags().IntVar(&number, "page", 0, "zero-based page number")
	cmd.Flags().IntVar(&start, "start", 0, "first row of the range (inclusive)")
	cmd.Flags().IntVar(&end, "end", 0, "end of the range (exclusive, default: row count)")
	return cmd
}

func (a *App) pagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pages FILE",
		Short: "List the row range of every page",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render.Pages(cmd.OutOrStdout(), s.Table().Pages(a.pageSize), a.color)
		},
	}
}

func (a *App) deleteCommand() *cobra.Command {
	var row int
	var output string

	cmd := &cobra.Command{
		Use:   "delete FILE --row I",
		Short: "Delete a row and save",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "row"); err != nil {
				return err
			}
			return a.mutate(cmd, args[0], output, func(s *core.Session) (string, error) {
				return fmt.Sprintf("deleted row %d", row), s.DeleteRow(row)
			})
		},
	}

	cmd.Flags().IntVar(&row, "row", 0, "zero-based row index")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write here instead of FILE")
	return cmd
}

func (a *App) setCommand() *cobra.Command {
	var row, col int
	var value, output string

	cmd := &cobra.Command{
		Use:   "set FILE --row I --col J --value V",
		Short: "Replace one field and save",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "row", "col", "value"); err != nil {
				return err
			}
			return a.mutate(cmd, args[0], output, func(s *core.Session) (string, error) {
				return fmt.Sprintf("set field (%d,%d)", row, col), s.SetField(row, col, value)
			})
		},
	}

	cmd.Flags().IntVar(&row, "row", 0, "zero-based row index")
	cmd.Flags().IntVar(&col, "col", 0, "zero-based column index")
	cmd.Flags().StringVar(&value, "value", "", "new field value")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write here instead of FILE")
	return cmd
}

func (a *App) replaceCommand() *cobra.Command {
	var row int
	var values, output string

	cmd := &cobra.Command{
		Use:   "replace FILE --row I --values a,b,c",
		Short: "Replace a whole row and save",
		Long: `Replace a whole row and save. --values is parsed as one CSV record using
the file's delimiter, so a field containing the delimiter must be quoted.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "row", "values"); err != nil {
				return err
			}
			return a.mutate(cmd, args[0], output, func(s *core.Session) (string, error) {
				fields, err := core.ParseRecord(values, s.Table().Delimiter())
				if err != nil {
					return "", fmt.Errorf("--values: %w", err)
				}
				return fmt.Sprintf("replaced row %d", row), s.ReplaceRow(row, fields)
			})
		},
	}

	cmd.Flags().IntVar(&row, "row", 0, "zero-based row index")
	cmd.Flags().StringVar(&values, "values", "", "new row as a CSV record")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write here instead of FILE")
	return cmd
}

func (a *App) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Describe the file and its shape",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render.Info(cmd.OutOrStdout(), s.Info(), a.color)
		},
	}
}

func (a *App) exportCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "export FILE OUT.xlsx",
		Short: "Write the table to an Excel workbook",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := s.Export(cmd.Context(), args[1], sheet); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", s.Table().Len(), args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", a.cfg.Files.SheetName, "worksheet name")
	return cmd
}

// mutate opens path, applies edit and saves to output (or path). Nothing is
// written when the edit fails.
func (a *App) mutate(cmd *cobra.Command, path, output string, edit func(*core.Session) (string, error)) error {
	ctx := cmd.Context()

	s, err := a.open(ctx, path)
	if err != nil {
		return err
	}

	done, err := edit(s)
	if err != nil {
		return err
	}

	dest, err := s.Save(ctx, output)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s; saved %s\n", done, dest)
	return nil
}

func requireFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			return usageErrorf("--%s is required", name)
		}
	}
	return nil
}
