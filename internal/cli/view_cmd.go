package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/cli/formatter"
	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/normalize"
	"github.com/alexanderramin/donna/internal/service"
)

func newViewCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view [day|date]",
		Short: "Show the events of one day",
		Long: `Show one day's events. The argument is a weekday ("fri", "thursday") or a
date ("tomorrow", "July 4", "2024-06-13"). Without an argument today is shown.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ready(); err != nil {
				return err
			}
			sc := a.session()
			d, err := viewDescriptor(sc, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), runView(cmd.Context(), a, sc, d))
			return nil
		},
	}
}

// viewDescriptor builds a VIEW descriptor from a weekday ("fri", "thursday")
// or any date the request parser accepts ("tomorrow", "July 4", "2024-06-13").
// An empty argument means today.
func viewDescriptor(sc *app.SchedulingContext, arg string) (domain.EventDescriptor, error) {
	arg = strings.TrimSpace(arg)
	d := domain.EventDescriptor{Action: domain.ActionView}
	if arg == "" {
		arg = "today"
	}
	if day, err := normalize.Day(arg); err == nil {
		d.Day = day
		return d, nil
	}
	date, err := normalize.Date(arg, sc.Now(), sc.Policy.Date)
	if err != nil {
		return d, domain.InvalidInput("%q is not a weekday or a date", arg)
	}
	t, err := normalize.ParseDate(date, sc.Location)
	if err != nil {
		return d, err
	}
	d.Date = date
	d.Day = domain.DayOf(t)
	return d, nil
}

func runView(ctx context.Context, a *App, sc *app.SchedulingContext, d domain.EventDescriptor) string {
	res, err := a.Actions.Execute(ctx, sc, d)
	if err != nil {
		return formatter.FormatResponse(app.Response{Message: service.ErrorMessage(err)})
	}
	if !res.Done() {
		return formatter.FormatResponse(app.Response{Message: res.Message})
	}
	if len(res.Listed) == 0 {
		return formatter.Dim(res.Message)
	}
	day := res.Listed[0].Start.Format("Monday, January 2")
	return formatter.Header(day) + "\n" + formatter.FormatAgenda(res.Listed, sc.Now())
}
