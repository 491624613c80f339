package goals

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Draft is a goal under construction. Its tasks can still be removed; once
// saved through Service.SaveDraft they become immutable except for
// completion.
type Draft struct {
	Title      string
	TargetDate time.Time
	Tasks      []Task
}

// NewDraft starts an empty draft targeting the given date.
func NewDraft(targetDate time.Time) *Draft {
	return &Draft{TargetDate: targetDate}
}

// AddTask appends a task to the draft.
func (d *Draft) AddTask(t Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "task title", Reason: "must not be empty"}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	for _, existing := range d.Tasks {
		if existing.ID == t.ID {
			return &ValidationError{Field: "task id", Reason: "duplicates another task in the draft"}
		}
	}
	d.Tasks = append(d.Tasks, t)
	return nil
}

// RemoveTask drops the task at position i.
func (d *Draft) RemoveTask(i int) error {
	if i < 0 || i >= len(d.Tasks) {
		return fmt.Errorf("task index %d out of range", i)
	}
	d.Tasks = append(d.Tasks[:i], d.Tasks[i+1:]...)
	return nil
}

// CanSave mirrors the checks AddGoal will make.
func (d *Draft) CanSave() bool {
	return strings.TrimSpace(d.Title) != "" && len(d.Tasks) > 0
}
