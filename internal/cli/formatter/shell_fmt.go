package formatter

import (
	"fmt"
	"strings"
)

// FormatShellWelcome renders the welcome banner shown on shell startup.
func FormatShellWelcome() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(StylePurple.Render("  donna") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  Tell me what to put on your calendar, in plain words.") + "\n")
	b.WriteString("\n")
	b.WriteString("  " + StyleGreen.Render("lunch with Sam friday at noon") + "\n")
	b.WriteString("  " + StyleGreen.Render("move the dentist to 3pm tomorrow") + "\n")
	b.WriteString("  " + StyleGreen.Render("what do I have on Monday?") + "\n")
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  Type 'help' for commands, 'exit' to quit.") + "\n")
	b.WriteString("\n")

	return b.String()
}

type helpCategory struct {
	title    string
	commands [][]string
}

func renderHelpCategory(cat helpCategory) string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(cat.title)) + "\n")
	for _, c := range cat.commands {
		b.WriteString(fmt.Sprintf("  %-24s %s\n",
			StyleGreen.Render(c[0]),
			StyleDim.Render(c[1])))
	}
	return b.String()
}

// FormatShellHelp renders the shell command reference.
func FormatShellHelp() string {
	categories := []helpCategory{
		{
			title: "Calendar",
			commands: [][]string{
				{"<anything else>", "Create, move, cancel or list events"},
				{"today", "Show today's events"},
				{"view <day|date>", "Show one day, e.g. 'view FRI' or 'view 2024-06-14'"},
			},
		},
		{
			title: "Shell",
			commands: [][]string{
				{"help", "Show this command reference"},
				{"clear", "Clear the screen"},
				{"exit / quit", "Leave the shell"},
			},
		},
	}

	var b strings.Builder
	for _, cat := range categories {
		b.WriteString(renderHelpCategory(cat))
	}
	b.WriteString("\n" + StyleDim.Render("Up/Down walks the history. Placed events are remembered for this session."))

	return RenderBox("Commands", b.String())
}
