package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/goals-tui/internal/goals"
)

const (
	dateLayout    = "2006-01-02"
	dueDateLayout = "2006-01-02 15:04"
)

// Form field indices
const (
	FieldTitle = iota
	FieldTarget
	FieldTaskTitle
	FieldTaskDue
	FieldTaskNotes
	FieldCount // Total number of fields
)

// goalForm collects a draft goal and its tasks before saving
type goalForm struct {
	inputs   []textinput.Model // indexed by Field*, notes excluded
	notes    textarea.Model
	focus    int
	draft    *goals.Draft
	draftSel int
	loc      *time.Location
	err      string
}

func newGoalForm() goalForm {
	inputs := make([]textinput.Model, FieldTaskNotes)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].CharLimit = 200

		switch i {
		case FieldTitle:
			inputs[i].Placeholder = "Goal title"
		case FieldTarget:
			inputs[i].Placeholder = "Target date (YYYY-MM-DD)"
		case FieldTaskTitle:
			inputs[i].Placeholder = "Task title"
		case FieldTaskDue:
			inputs[i].Placeholder = "Due (YYYY-MM-DD HH:MM, blank for now)"
		}
	}

	ta := textarea.New()
	ta.Placeholder = "Notes (optional)"
	ta.SetHeight(3)
	ta.SetWidth(40)
	ta.CharLimit = 500
	ta.ShowLineNumbers = false

	return goalForm{
		inputs: inputs,
		notes:  ta,
		draft:  goals.NewDraft(time.Now()),
		loc:    time.Local,
	}
}

// reset clears the form for a new goal targeting target
func (f *goalForm) reset(target time.Time, loc *time.Location) {
	f.loc = loc
	f.draft = goals.NewDraft(target)
	f.draftSel = 0
	f.err = ""
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.notes.Reset()
	f.inputs[FieldTarget].SetValue(target.In(loc).Format(dateLayout))
	f.setFocus(FieldTitle)
}

func (f *goalForm) setFocus(i int) {
	f.focus = (i + FieldCount) % FieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	if f.focus == FieldTaskNotes {
		f.notes.Focus()
	} else {
		f.notes.Blur()
	}
}

func (f goalForm) focusCmd() tea.Cmd {
	if f.focus == FieldTaskNotes {
		return textarea.Blink
	}
	return textinput.Blink
}

// update routes a message to the focused input
func (f goalForm) update(msg tea.Msg) (goalForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == FieldTaskNotes {
		f.notes, cmd = f.notes.Update(msg)
	} else {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return f, cmd
}

// addTask moves the task fields into the draft
func (f *goalForm) addTask(now time.Time) error {
	due := now
	if v := strings.TrimSpace(f.inputs[FieldTaskDue].Value()); v != "" {
		parsed, err := time.ParseInLocation(dueDateLayout, v, f.loc)
		if err != nil {
			return fmt.Errorf("due date must look like %s", dueDateLayout)
		}
		due = parsed
	}

	task := goals.NewTask(f.inputs[FieldTaskTitle].Value(), due, strings.TrimSpace(f.notes.Value()))
	if err := f.draft.AddTask(task); err != nil {
		return err
	}

	f.inputs[FieldTaskTitle].Reset()
	f.inputs[FieldTaskDue].Reset()
	f.notes.Reset()
	f.draftSel = len(f.draft.Tasks) - 1
	f.setFocus(FieldTaskTitle)
	return nil
}

// removeTask drops the highlighted draft task
func (f *goalForm) removeTask() error {
	if err := f.draft.RemoveTask(f.draftSel); err != nil {
		return errors.New("no task to remove")
	}
	if f.draftSel >= len(f.draft.Tasks) && f.draftSel > 0 {
		f.draftSel--
	}
	return nil
}

// commit copies the goal fields into the draft
func (f *goalForm) commit() error {
	f.draft.Title = f.inputs[FieldTitle].Value()

	target, err := time.ParseInLocation(dateLayout, strings.TrimSpace(f.inputs[FieldTarget].Value()), f.loc)
	if err != nil {
		return fmt.Errorf("target date must look like %s", dateLayout)
	}
	f.draft.TargetDate = target

	if !f.draft.CanSave() {
		return errors.New("add a title and at least one task to create a goal")
	}
	return nil
}

// updateForm handles keys while the add goal form is open
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.addMode = false
		return m, nil

	case "ctrl+c":
		m.Close()
		return m, tea.Quit

	case "tab":
		m.form.setFocus(m.form.focus + 1)
		return m, m.form.focusCmd()

	case "shift+tab":
		m.form.setFocus(m.form.focus - 1)
		return m, m.form.focusCmd()

	case "ctrl+t":
		m.form.err = ""
		if err := m.form.addTask(m.now()); err != nil {
			m.form.err = err.Error()
		}
		return m, m.form.focusCmd()

	case "ctrl+n":
		if m.form.draftSel < len(m.form.draft.Tasks)-1 {
			m.form.draftSel++
		}
		return m, nil

	case "ctrl+p":
		if m.form.draftSel > 0 {
			m.form.draftSel--
		}
		return m, nil

	case "ctrl+x":
		m.form.err = ""
		if err := m.form.removeTask(); err != nil {
			m.form.err = err.Error()
		}
		return m, nil

	case "ctrl+s":
		m.form.err = ""
		if err := m.form.commit(); err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		g, err := m.svc.SaveDraft(m.form.draft)
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.addMode = false
		m.status = ""
		m.svc.SelectDate(g.TargetDate)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// renderForm renders the add goal overlay
func (m Model) renderForm() string {
	f := m.form
	var lines []string
	lines = append(lines, "New Goal")
	lines = append(lines, "")

	labels := []string{"Title:    ", "Target:   ", "Task:     ", "Due:      "}
	for i, input := range f.inputs {
		label := labels[i]
		if i == f.focus {
			label = selectedStyle.Render(label)
		}
		lines = append(lines, label+input.View())
		if i == FieldTarget {
			lines = append(lines, "")
		}
	}

	notesLabel := "Notes:"
	if f.focus == FieldTaskNotes {
		notesLabel = selectedStyle.Render(notesLabel)
	}
	lines = append(lines, notesLabel)
	lines = append(lines, f.notes.View())
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("Tasks (%d):", len(f.draft.Tasks)))
	if len(f.draft.Tasks) == 0 {
		lines = append(lines, labelStyle.Render("  Add at least one task to create a goal"))
	}
	for i, t := range f.draft.Tasks {
		line := fmt.Sprintf("  %s  %s", t.Title, labelStyle.Render(t.DueDate.In(f.loc).Format("Jan 2 15:04")))
		if i == f.draftSel {
			line = selectedStyle.Render(fmt.Sprintf("  %s", t.Title)) + "  " + labelStyle.Render(t.DueDate.In(f.loc).Format("Jan 2 15:04"))
		}
		lines = append(lines, line)
		if n := t.NotesText(); n != "" {
			lines = append(lines, "    "+labelStyle.Render(n))
		}
	}

	if f.err != "" {
		lines = append(lines, "")
		lines = append(lines, errorStyle.Render(f.err))
	}

	lines = append(lines, "")
	lines = append(lines, labelStyle.Render("Tab: next field • Ctrl+T: add task • Ctrl+N/P: pick task • Ctrl+X: remove task • Ctrl+S: save • Esc: cancel"))

	content := strings.Join(lines, "\n")
	box := borderStyle.
		Padding(1).
		Width(min(m.width-4, 90)).
		Render(content)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}
