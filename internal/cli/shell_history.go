package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const historyLimit = 500

// requestHistory is the shell's recall list of past requests. Entries are
// persisted one per line at path; an empty path keeps them in memory only.
// Consecutive repeats collapse and exit, quit and clear are never kept.
type requestHistory struct {
	path    string
	entries []string
	cursor  int
}

// defaultHistoryPath is ~/.donna/shell_history, or "" without a home dir.
func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".donna", "shell_history")
}

// openRequestHistory loads the newest historyLimit entries from path. A
// missing or unreadable file starts an empty history.
func openRequestHistory(path string) *requestHistory {
	h := &requestHistory{path: path}
	if path != "" {
		h.entries = readHistoryFile(path)
	}
	h.cursor = len(h.entries)
	return h
}

func readHistoryFile(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var entries []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			entries = append(entries, line)
		}
	}
	if len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}
	return entries
}

// record adds line as the newest entry and moves the cursor past it.
func (h *requestHistory) record(line string) {
	line = strings.TrimSpace(line)
	defer func() { h.cursor = len(h.entries) }()
	if line == "" || isTransientCommand(line) {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}

	h.entries = append(h.entries, line)
	if len(h.entries) > historyLimit {
		h.entries = h.entries[len(h.entries)-historyLimit:]
	}
	if h.path != "" {
		appendHistoryLine(h.path, line)
	}
}

// prev steps back one entry. ok is false at the oldest entry.
func (h *requestHistory) prev() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// next steps forward one entry. Past the newest entry ok is false and the
// cursor rests on the empty prompt.
func (h *requestHistory) next() (string, bool) {
	if h.cursor < len(h.entries)-1 {
		h.cursor++
		return h.entries[h.cursor], true
	}
	h.cursor = len(h.entries)
	return "", false
}

func isTransientCommand(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "quit", "clear":
		return true
	}
	return false
}

// appendHistoryLine is best-effort: a history that cannot be written is not
// worth interrupting the shell for.
func appendHistoryLine(path, line string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line + "\n")
}
