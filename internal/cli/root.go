package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// NewRootCmd creates the top-level "donna" command and registers all
// subcommands against the provided App. Run without a subcommand on a
// terminal, it opens the shell.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "donna",
		Short:        "Natural-language calendar assistant",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			shell, _, err := cmd.Find([]string{"shell"})
			if err != nil {
				return err
			}
			shell.SetContext(cmd.Context())
			return shell.RunE(shell, nil)
		},
	}

	root.AddCommand(
		newAskCmd(app),
		newViewCmd(app),
		newShellCmd(app),
		newAuthCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the donna version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "donna %s\n", Version)
		},
	}
}
