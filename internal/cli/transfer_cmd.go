package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/donna/internal/cli/formatter"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		days int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export upcoming events to an iCalendar file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ready(); err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			n, err := app.Transfer.Export(cmd.Context(), app.session(), w, days)
			if err != nil {
				return err
			}
			if out != "-" {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.FormatExportResult(n, out))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Days ahead to export (0 uses the look-ahead window)")
	cmd.Flags().StringVarP(&out, "out", "o", "donna.ics", "Output file, or - for stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Import events from an iCalendar file",
		Long: `Insert every event from an iCalendar file. Recurring events are expanded
into single events inside the look-ahead window.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ready(); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			res, err := app.Transfer.Import(cmd.Context(), app.session(), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}
