package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/domain"
)

const linkPrefix = "View event: "

// FormatResponse renders an assistant response: a status mark, then the
// message with event links dimmed.
func FormatResponse(resp app.Response) string {
	mark := "✔"
	if !resp.Success {
		mark = "✖"
	}

	lines := strings.Split(resp.Message, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, linkPrefix) {
			lines[i] = Dim(line)
		}
	}
	return OutcomeStyle(resp.Success).Render(mark) + " " + strings.Join(lines, "\n")
}

// FormatAgenda renders events as a table grouped by relative day.
func FormatAgenda(events []domain.CalendarEvent, now time.Time) string {
	if len(events) == 0 {
		return Dim("No events.")
	}

	table := newAgendaTable("DAY", "TIME", "EVENT", "WHERE")
	lastDay := ""
	for _, ev := range events {
		day := RelativeDateFrom(ev.Start, now)
		label := ""
		if day != lastDay {
			label = day
		}
		table.add(day != lastDay, StylePurple.Render(label), timeRange(ev), Bold(ev.Summary), Dim(ev.Location))
		lastDay = day
	}
	return table.String()
}

// FormatImportResult summarises an iCalendar import with a progress bar of
// imported over read.
func FormatImportResult(res *app.ImportResult) string {
	if res == nil || res.Read == 0 {
		return Dim("The file had no events.")
	}
	line := fmt.Sprintf("Imported %d of %d events", res.Imported, res.Read)
	if res.Failed > 0 {
		line += StyleYellow.Render(fmt.Sprintf(" (%d failed)", res.Failed))
	}
	return line + "\n" + RenderImportBar(res.Imported, res.Failed, res.Read, 20)
}

// FormatExportResult reports how many events were written to path.
func FormatExportResult(n int, path string) string {
	noun := "events"
	if n == 1 {
		noun = "event"
	}
	return StyleGreen.Render("✔") + fmt.Sprintf(" Exported %d %s to %s", n, noun, path)
}

func timeRange(ev domain.CalendarEvent) string {
	if ev.AllDay {
		return "All day"
	}
	return fmt.Sprintf("%s-%s %s", ev.Start.Format("3:04 PM"), ev.End.Format("3:04 PM"),
		Dim(FormatMinutes(ev.DurationMinutes())))
}
