package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/pdxmph/goals-tui/internal/goals"
)

// changeMsg carries a store change event into the program loop
type changeMsg goals.Change

// row is one selectable task line in the goals pane
type row struct {
	goalID uuid.UUID
	taskID uuid.UUID
}

// Model represents the main application state
type Model struct {
	svc       *goals.Service
	changes   chan goals.Change
	cancel    func()
	closeOnce *sync.Once

	firstWeekday time.Weekday
	now          func() time.Time

	selected time.Time
	dayGoals []goals.Goal
	cursor   int
	width    int
	height   int
	status   string
	err      error

	// Add goal mode
	addMode bool
	form    goalForm
}

// Option configures a Model
type Option func(*Model)

// WithFirstWeekday sets the weekday the month grid starts on
func WithFirstWeekday(d time.Weekday) Option {
	return func(m *Model) { m.firstWeekday = d }
}

// WithClock replaces time.Now, for "today" and default due dates
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// Styles
var (
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	doneTaskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	goalDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	todayStyle = lipgloss.NewStyle().
			Underline(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// New creates a new application model subscribed to svc's store
func New(svc *goals.Service, opts ...Option) *Model {
	m := &Model{
		svc:          svc,
		changes:      make(chan goals.Change, 64),
		closeOnce:    &sync.Once{},
		firstWeekday: time.Sunday,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.cancel = svc.Store().Subscribe(func(c goals.Change) {
		select {
		case m.changes <- c:
		default:
			// Receiver is behind; the next event carries a full snapshot anyway.
		}
	})

	m.selected = svc.Store().SelectedDate()
	m.dayGoals = m.collectDayGoals()
	m.form = newGoalForm()
	return m
}

// Close removes the store subscription and ends the change listener
func (m Model) Close() {
	m.closeOnce.Do(func() {
		if m.cancel != nil {
			m.cancel()
		}
		close(m.changes)
	})
}

// Init starts listening for store changes
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(ch <-chan goals.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg(c)
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case changeMsg:
		m.selected = msg.SelectedDate
		m.dayGoals = m.collectDayGoals()
		m.cursor = m.ensureValidCursor()
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		if m.addMode {
			return m.updateForm(msg)
		}

		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c":
			m.Close()
			return m, tea.Quit

		case "h", "left":
			m.svc.SelectDate(m.selected.AddDate(0, 0, -1))
		case "l", "right":
			m.svc.SelectDate(m.selected.AddDate(0, 0, 1))
		case "H":
			m.svc.SelectDate(m.selected.AddDate(0, 0, -7))
		case "L":
			m.svc.SelectDate(m.selected.AddDate(0, 0, 7))
		case "[":
			m.svc.SelectDate(addMonths(m.selected, -1, m.svc.Location()))
		case "]":
			m.svc.SelectDate(addMonths(m.selected, 1, m.svc.Location()))
		case "t":
			m.svc.SelectDate(m.now())

		case "j", "down":
			if m.cursor < len(m.rows())-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}

		case " ", "enter", "x":
			rows := m.rows()
			if len(rows) == 0 {
				return m, nil
			}
			r := rows[m.cursor]
			if _, err := m.svc.ToggleTaskCompletion(r.goalID, r.taskID); err != nil {
				m.status = err.Error()
			}

		case "a":
			m.addMode = true
			m.form = newGoalForm()
			m.form.reset(m.selected, m.svc.Location())
			return m, m.form.focusCmd()
		}
		return m, nil
	}

	if m.addMode {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// collectDayGoals pulls the selected day's goals from the service
func (m Model) collectDayGoals() []goals.Goal {
	var list []goals.Goal
	for g := range m.svc.GoalsOn(m.selected) {
		list = append(list, g)
	}
	return list
}

// rows flattens the day's goals into selectable task lines
func (m Model) rows() []row {
	var rows []row
	for _, g := range m.dayGoals {
		for _, t := range g.Tasks {
			rows = append(rows, row{goalID: g.ID, taskID: t.ID})
		}
	}
	return rows
}

// ensureValidCursor ensures the cursor is within valid bounds
func (m Model) ensureValidCursor() int {
	n := len(m.rows())
	if n == 0 || m.cursor < 0 {
		return 0
	}
	if m.cursor >= n {
		return n - 1
	}
	return m.cursor
}

// View renders the UI
func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.addMode {
		return m.renderForm()
	}

	// Calculate pane widths
	calendarWidth := calendarGridWidth + 2
	goalsWidth := m.width - calendarWidth - 4 // account for borders
	if goalsWidth < 20 {
		goalsWidth = 20
	}

	calendarView := renderMonth(m.selected, m.now(), m.firstWeekday, m.svc.Location(), m.hasGoalsOn)
	goalsView := m.renderGoals(goalsWidth)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(calendarWidth).Height(m.height-3).Render(calendarView),
		borderStyle.Width(goalsWidth).Height(m.height-3).Render(goalsView),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderHelp())
}

func (m Model) hasGoalsOn(day time.Time) bool {
	for range m.svc.GoalsOn(day) {
		return true
	}
	return false
}

// renderGoals renders the selected day's goals and their tasks
func (m Model) renderGoals(width int) string {
	var lines []string
	lines = append(lines, m.selected.In(m.svc.Location()).Format("Monday, January 2, 2006"))
	lines = append(lines, strings.Repeat("─", max(width-2, 1)))

	if len(m.dayGoals) == 0 {
		lines = append(lines, "")
		lines = append(lines, labelStyle.Render("No goals for this day"))
		lines = append(lines, labelStyle.Render("Press a to add one"))
		return strings.Join(lines, "\n")
	}

	i := 0
	for _, g := range m.dayGoals {
		lines = append(lines, "")
		mark := "○"
		if g.IsCompleted() {
			mark = completedStyle.Render("●")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", mark, g.Title,
			labelStyle.Render(fmt.Sprintf("(%d/%d)", g.CompletedCount(), len(g.Tasks)))))

		for _, t := range g.Tasks {
			box := "[ ]"
			title := t.Title
			if t.IsCompleted {
				box = completedStyle.Render("[x]")
				title = doneTaskStyle.Render(title)
			}
			due := labelStyle.Render(t.DueDate.In(m.svc.Location()).Format("Jan 2 15:04"))
			line := fmt.Sprintf("  %s %s  %s", box, title, due)
			if i == m.cursor {
				style := selectedStyle
				if t.IsCompleted {
					style = selectedStyle.Inherit(doneTaskStyle)
				}
				line = style.Render(fmt.Sprintf("  %s %s", box, t.Title)) + "  " + due
			}
			lines = append(lines, line)
			if t.Notes != nil && *t.Notes != "" {
				for _, noteLine := range wrapText(*t.Notes, width-8) {
					lines = append(lines, "      "+labelStyle.Render(noteLine))
				}
			}
			i++
		}
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help line
func (m Model) renderHelp() string {
	help := " h/l: day • H/L: week • [/]: month • t: today • j/k: task • space: toggle • a: add goal • q: quit"
	if m.status != "" {
		help = " " + errorStyle.Render(m.status)
	}
	return help
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
