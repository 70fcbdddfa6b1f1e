package formatter

import (
	"fmt"
	"strings"
)

const (
	importedCell = "█"
	failedCell   = "▓"
	pendingCell  = "░"
)

// RenderImportBar draws an import as a bar of width cells: imported events
// in green, failed ones in red, then the imported share of total. Any
// failure takes at least one cell so it never disappears in rounding.
func RenderImportBar(imported, failed, total, width int) string {
	width = max(width, 2)
	if total <= 0 {
		return fmt.Sprintf("[%s] %3d%%", strings.Repeat(pendingCell, width), 0)
	}
	imported = min(max(imported, 0), total)
	failed = min(max(failed, 0), total-imported)

	ok := imported * width / total
	bad := failed * width / total
	if failed > 0 && bad == 0 {
		bad = 1
	}
	if ok+bad > width {
		ok = width - bad
	}
	rest := width - ok - bad

	bar := StyleGreen.Render(strings.Repeat(importedCell, ok)) +
		StyleRed.Render(strings.Repeat(failedCell, bad)) +
		strings.Repeat(pendingCell, rest)
	return fmt.Sprintf("[%s] %3d%%", bar, imported*100/total)
}
