package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/donna/internal/cli/formatter"
	"github.com/alexanderramin/donna/internal/google"
)

func newAuthCmd(app *App) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Connect donna to your Google Calendar",
		Long: `Print the Google consent page URL, then store the token obtained from
the authorization code. Only needed with DONNA_BACKEND=google.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Auth == nil {
				return errors.New("the local calendar backend needs no authorization; set DONNA_BACKEND=google to use Google Calendar")
			}
			conf, err := app.Auth.OAuthConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if code == "" && google.HasToken(cmd.Context(), app.Auth.Tokens) &&
				!confirm(cmd.InOrStdin(), out, "Donna is already connected. Authorize again? [y/N]: ") {
				return nil
			}
			if code == "" {
				fmt.Fprintln(out, formatter.Bold("Open this URL and approve calendar access:"))
				fmt.Fprintln(out, google.AuthURL(conf, uuid.NewString()))
				fmt.Fprintln(out)

				code, err = readAuthCode(cmd.Context(), app.interactive(), cmd.InOrStdin(), out)
				if err != nil {
					return err
				}
			}

			if _, err := google.Exchange(cmd.Context(), conf, app.Auth.Tokens, code); err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.StyleGreen.Render("✔")+" Connected to Google Calendar.")
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "Authorization code, skips the prompt")
	return cmd
}

// readAuthCode asks for the authorization code with a form on a terminal
// and reads one line otherwise.
func readAuthCode(ctx context.Context, interactive bool, in io.Reader, out io.Writer) (string, error) {
	var code string
	if interactive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Authorization code").
					Value(&code).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return errors.New("paste the code shown after approving access")
						}
						return nil
					}),
			),
		)
		if err := form.RunWithContext(ctx); err != nil {
			return "", err
		}
	} else {
		fmt.Fprint(out, "Authorization code: ")
		line, err := readLine(in)
		if err != nil && line == "" {
			return "", fmt.Errorf("reading authorization code: %w", err)
		}
		code = line
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return "", errors.New("no authorization code given")
	}
	return code, nil
}
