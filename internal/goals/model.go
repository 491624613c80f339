// Package goals holds the goal list, its persistence slot and the validated
// operations the presentation layer is allowed to call.
package goals

import (
	"time"

	"github.com/google/uuid"
)

// Task is an actionable item belonging to a goal. Once the goal is saved only
// IsCompleted changes.
type Task struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	IsCompleted bool      `json:"isCompleted" yaml:"isCompleted"`
	DueDate     time.Time `json:"dueDate" yaml:"dueDate"`
	Notes       *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewTask creates an incomplete task with a fresh id. Empty notes are stored
// as absent.
func NewTask(title string, dueDate time.Time, notes string) Task {
	t := Task{
		ID:      uuid.New(),
		Title:   title,
		DueDate: dueDate,
	}
	if notes != "" {
		t.Notes = &notes
	}
	return t
}

// NotesText returns the notes or "" when there are none.
func (t Task) NotesText() string {
	if t.Notes == nil {
		return ""
	}
	return *t.Notes
}

func (t Task) clone() Task {
	if t.Notes != nil {
		n := *t.Notes
		t.Notes = &n
	}
	return t
}

// Goal is a user-defined objective with a target date and its tasks in
// insertion order.
type Goal struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Tasks      []Task    `json:"tasks" yaml:"tasks"`
	TargetDate time.Time `json:"targetDate" yaml:"targetDate"`
}

// IsCompleted reports whether the goal has tasks and all of them are done.
func (g Goal) IsCompleted() bool {
	if len(g.Tasks) == 0 {
		return false
	}
	for _, t := range g.Tasks {
		if !t.IsCompleted {
			return false
		}
	}
	return true
}

// CompletedCount returns how many tasks are done.
func (g Goal) CompletedCount() int {
	n := 0
	for _, t := range g.Tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

func (g Goal) clone() Goal {
	if g.Tasks != nil {
		tasks := make([]Task, len(g.Tasks))
		for i, t := range g.Tasks {
			tasks[i] = t.clone()
		}
		g.Tasks = tasks
	}
	return g
}

func (g Goal) taskIndex(id uuid.UUID) int {
	for i, t := range g.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneGoals(list []Goal) []Goal {
	out := make([]Goal, len(list))
	for i, g := range list {
		out[i] = g.clone()
	}
	return out
}

func goalIndex(list []Goal, id uuid.UUID) int {
	for i, g := range list {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
