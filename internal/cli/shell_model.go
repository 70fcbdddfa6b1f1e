package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/cli/formatter"
)

var shellSuggestions = []string{"help", "clear", "exit", "quit", "today", "view "}

// replyMsg carries the rendered output of a request that ran off the UI loop.
type replyMsg struct {
	output string
}

// shellModel is the bubbletea Model for the interactive shell REPL.
type shellModel struct {
	input textinput.Model
	spin  spinner.Model
	width int

	ctx context.Context
	app *App
	sc  *app.SchedulingContext

	busy bool

	history *requestHistory

	quitting bool
}

// newShellModel creates a shell bound to one scheduling session.
func newShellModel(ctx context.Context, a *App) shellModel {
	if ctx == nil {
		ctx = context.Background()
	}
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	ti.SetSuggestions(shellSuggestions)
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return shellModel{
		input:   ti,
		spin:    sp,
		ctx:     ctx,
		app:     a,
		sc:      a.session(),
		history: openRequestHistory(defaultHistoryPath()),
	}
}

func (m shellModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.Println(formatter.FormatShellWelcome()),
	)
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len("donna ❯ ") - 1
		return m, nil

	case replyMsg:
		m.busy = false
		return m, tea.Println(msg.output)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		return m.updatePrompt(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}
	if m.busy {
		return m.spin.View() + " " + formatter.Dim("Thinking...")
	}
	return formatter.StylePurple.Render("donna") + " " + formatter.Dim("❯") + " " + m.input.View()
}

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m, nil
		}
		m.history.record(line)
		return m.execute(line)

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// execute handles shell built-ins inline and sends everything else to the
// assistant on a background command.
func (m shellModel) execute(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		m.quitting = true
		return m, tea.Quit
	case "help":
		return m, tea.Println(formatter.FormatShellHelp())
	case "clear":
		return m, tea.ClearScreen
	case "today", "view":
		d, err := viewDescriptor(m.sc, strings.Join(fields[1:], " "))
		if err != nil {
			return m, tea.Println(formatter.StyleRed.Render("Error: " + err.Error()))
		}
		m.busy = true
		ctx, a, sc := m.ctx, m.app, m.sc
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return replyMsg{output: runView(ctx, a, sc, d)}
		})
	}

	m.busy = true
	ctx, a, sc := m.ctx, m.app, m.sc
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		resp := a.Requests.Process(ctx, sc, line)
		return replyMsg{output: formatter.FormatResponse(resp)}
	})
}

func (m *shellModel) historyUp() {
	if line, ok := m.history.prev(); ok {
		m.input.SetValue(line)
		m.input.CursorEnd()
	}
}

func (m *shellModel) historyDown() {
	line, ok := m.history.next()
	if !ok {
		m.input.Reset()
		return
	}
	m.input.SetValue(line)
	m.input.CursorEnd()
}
