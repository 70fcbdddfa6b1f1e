package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// agendaTable lays out agenda rows under a header and a rule. Widths are
// measured with lipgloss so styled cells align. A row that starts a new day
// is preceded by a blank line, except the first row.
type agendaTable struct {
	headers []string
	rows    []agendaRow
}

type agendaRow struct {
	cells     []string
	startsDay bool
}

func newAgendaTable(headers ...string) *agendaTable {
	return &agendaTable{headers: headers}
}

func (t *agendaTable) add(startsDay bool, cells ...string) {
	t.rows = append(t.rows, agendaRow{cells: cells, startsDay: startsDay})
}

func (t *agendaTable) widths() []int {
	w := make([]int, len(t.headers))
	for i, h := range t.headers {
		w[i] = lipgloss.Width(h)
	}
	for _, r := range t.rows {
		for i := 0; i < len(w) && i < len(r.cells); i++ {
			w[i] = max(w[i], lipgloss.Width(r.cells[i]))
		}
	}
	return w
}

func (t *agendaTable) String() string {
	if len(t.headers) == 0 {
		return ""
	}
	widths := t.widths()

	var b strings.Builder
	header := make([]string, len(t.headers))
	for i, h := range t.headers {
		header[i] = StyleHeader.Render(h)
	}
	writeLine(&b, header, widths)

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeLine(&b, rule, widths)

	for i, r := range t.rows {
		if r.startsDay && i > 0 {
			b.WriteString("\n")
		}
		writeLine(&b, r.cells, widths)
	}
	return b.String()
}

// writeLine pads every cell but the last to its column width so trailing
// whitespace never reaches the terminal.
func writeLine(b *strings.Builder, cells []string, widths []int) {
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell))))
			b.WriteString(columnGap)
		}
	}
	b.WriteString("\n")
}
