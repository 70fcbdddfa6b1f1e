package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/donna/internal/cli/formatter"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   `ask "<request>"`,
		Short: "Create, move, cancel or list events from plain language",
		Long: `Send one request to the assistant, for example:

  donna ask "lunch with Sam friday at noon for an hour"
  donna ask "move the dentist to 3pm tomorrow"
  donna ask "what do I have on Monday?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ready(); err != nil {
				return err
			}
			text := strings.Join(args, " ")
			sc := app.session()

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			resp := app.Requests.Process(cmd.Context(), sc, text)
			stop()

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatResponse(resp))
			return nil
		},
	}
}
