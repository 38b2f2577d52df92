package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"statline/internal/engine"
	"statline/internal/storage"
	"statline/internal/ui"
)

// Board is the slice of the service the model needs.
type Board interface {
	State(ctx context.Context) (engine.State, error)
	ListTasks(ctx context.Context) ([]storage.Task, error)
	ToggleTask(ctx context.Context, id int64) (*engine.ToggleResult, error)
}

const recentLogLines = 6

type boardModel struct {
	ctx context.Context
	svc Board

	width  int
	height int

	state engine.State
	tasks []storage.Task

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	state engine.State
	tasks []storage.Task
	err   error
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

func newBoardModel(ctx context.Context, svc Board) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.State(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.ListTasks(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{state: st, tasks: tasks}
	}
}

func (m boardModel) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleTask(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		m.tasks = msg.tasks
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		verb := "Completed"
		if !msg.res.Completed {
			verb = "Undid"
		}
		m.lastLog = fmt.Sprintf("%s #%d %s: %s", verb, msg.res.TaskID, msg.res.Title, compactDelta(msg.res.Applied))
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.selected < 0 || m.selected >= len(m.tasks) {
				return m, nil
			}
			t := m.tasks[m.selected]
			m.lastLog = fmt.Sprintf("Toggling %d…", t.ID)
			return m, m.toggleCmd(t.ID)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	sidebar := m.renderSidebar()
	main := m.renderMain()

	leftW := 34
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return m.renderHeader() + "\n" + body.String() + "\n" + m.lastLog
}

func (m boardModel) renderHeader() string {
	if m.loading && len(m.tasks) == 0 {
		return "Statline — loading…"
	}
	done := 0
	for _, t := range m.tasks {
		if t.Status == string(engine.TaskCompleted) {
			done++
		}
	}
	return fmt.Sprintf("Statline | %d/%d tasks completed | log %d/%d", done, len(m.tasks), len(m.state.Log), engine.MaxLogEntries)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Stats"}
	for _, s := range engine.AllStats {
		v := m.state.Totals.Get(s)
		lines = append(lines, fmt.Sprintf("%-9s %3d %s", shortStat(s), v, progressBar(v, 100, 14)))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: toggle")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Tasks"}
	if len(m.tasks) == 0 {
		out = append(out, "(no tasks; add one with `statline add`)")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		box := "[ ]"
		if t.Status == string(engine.TaskCompleted) {
			box = "[x]"
		}
		label := t.Category
		if len(t.Tags) > 0 {
			label += " #" + strings.Join(t.Tags, " #")
		}
		out = append(out, fmt.Sprintf("%s%s %d %s (%s)", cursor, box, t.ID, t.Title, strings.TrimSpace(label)))
	}

	out = append(out, "", "Recent")
	if len(m.state.Log) == 0 {
		out = append(out, "(empty)")
	}
	for i, e := range m.state.Log {
		if i >= recentLogLines {
			break
		}
		out = append(out, fmt.Sprintf("- %s %s %s", e.Timestamp.Local().Format("Jan 02 15:04"), e.Status, e.TaskName))
	}
	return strings.Join(out, "\n")
}

func shortStat(s engine.Stat) string {
	switch s {
	case engine.StatIntelligence:
		return "intel"
	case engine.StatTimeManagement:
		return "time"
	default:
		return string(s)
	}
}

// compactDelta lists only the non-zero dimensions, e.g. "stamina+8 power+7".
func compactDelta(v engine.StatVector) string {
	var parts []string
	for _, s := range engine.AllStats {
		if n := v.Get(s); n != 0 {
			parts = append(parts, fmt.Sprintf("%s%+d", s, n))
		}
	}
	if len(parts) == 0 {
		return ui.Muted.Render("no change")
	}
	return strings.Join(parts, " ")
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
