package goals

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service is the validated mutation API over a Store.
type Service struct {
	store *Store
	loc   *time.Location
	newID func() uuid.UUID
}

// Option configures a Service.
type Option func(*Service)

// WithLocation sets the time zone calendar days are compared in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithIDGenerator replaces uuid.New for goal and task ids.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService creates a service over store.
func NewService(store *Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		loc:   time.Local,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store, for subscriptions.
func (s *Service) Store() *Store {
	return s.store
}

// Location returns the time zone used for same-day comparisons.
func (s *Service) Location() *time.Location {
	return s.loc
}

// AddGoal validates and appends a new goal. Tasks without an id get one;
// task ids must be unique within the goal.
func (s *Service) AddGoal(title string, targetDate time.Time, tasks []Task) (Goal, error) {
	if strings.TrimSpace(title) == "" {
		return Goal{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(tasks) == 0 {
		return Goal{}, &ValidationError{Field: "tasks", Reason: "at least one task is required"}
	}

	goal := Goal{
		ID:         s.newID(),
		Title:      title,
		TargetDate: targetDate,
		Tasks:      make([]Task, 0, len(tasks)),
	}
	for i, t := range tasks {
		if strings.TrimSpace(t.Title) == "" {
			return Goal{}, &ValidationError{Field: fmt.Sprintf("tasks[%d].title", i), Reason: "must not be empty"}
		}
		t = t.clone()
		if t.ID == uuid.Nil {
			t.ID = s.newID()
		}
		if goal.taskIndex(t.ID) >= 0 {
			return Goal{}, &ValidationError{Field: fmt.Sprintf("tasks[%d].id", i), Reason: "duplicates another task in the goal"}
		}
		goal.Tasks = append(goal.Tasks, t)
	}

	list := append(s.store.Goals(), goal)
	s.store.Replace(list, Change{Op: OpGoalAdded, GoalID: goal.ID})

	slog.Info("goal_event", "event", "goal_added", "goal_id", goal.ID, "tasks", len(goal.Tasks))
	return goal.clone(), nil
}

// SaveDraft adds the draft as a goal.
func (s *Service) SaveDraft(d *Draft) (Goal, error) {
	return s.AddGoal(d.Title, d.TargetDate, d.Tasks)
}

// AddTask appends task to an existing goal.
func (s *Service) AddTask(goalID uuid.UUID, task Task) (Task, error) {
	list := s.store.Goals()
	gi := goalIndex(list, goalID)
	if gi < 0 {
		return Task{}, &NotFoundError{Kind: "goal", ID: goalID}
	}
	if strings.TrimSpace(task.Title) == "" {
		return Task{}, &ValidationError{Field: "task title", Reason: "must not be empty"}
	}

	task = task.clone()
	if task.ID == uuid.Nil {
		task.ID = s.newID()
	}
	if list[gi].taskIndex(task.ID) >= 0 {
		return Task{}, &ValidationError{Field: "task id", Reason: "duplicates another task in the goal"}
	}
	list[gi].Tasks = append(list[gi].Tasks, task)
	s.store.Replace(list, Change{Op: OpTaskAdded, GoalID: goalID, TaskID: task.ID})

	slog.Info("goal_event", "event", "task_added", "goal_id", goalID, "task_id", task.ID)
	return task.clone(), nil
}

// ToggleTaskCompletion flips a task's completion flag. Calling it twice
// restores the original value.
func (s *Service) ToggleTaskCompletion(goalID, taskID uuid.UUID) (Task, error) {
	list := s.store.Goals()
	gi := goalIndex(list, goalID)
	if gi < 0 {
		return Task{}, &NotFoundError{Kind: "goal", ID: goalID}
	}
	ti := list[gi].taskIndex(taskID)
	if ti < 0 {
		return Task{}, &NotFoundError{Kind: "task", ID: taskID}
	}

	task := &list[gi].Tasks[ti]
	task.IsCompleted = !task.IsCompleted
	s.store.Replace(list, Change{Op: OpTaskToggled, GoalID: goalID, TaskID: taskID})

	slog.Info("goal_event", "event", "task_toggled",
		"goal_id", goalID, "task_id", taskID, "completed", task.IsCompleted)
	return task.clone(), nil
}

// GoalsOn yields, in list order, the goals whose target date is on the same
// calendar day as date. The sequence reads the live list each time it is
// ranged over and never mutates it.
func (s *Service) GoalsOn(date time.Time) iter.Seq[Goal] {
	return func(yield func(Goal) bool) {
		for _, g := range s.store.goals {
			if !SameDay(g.TargetDate, date, s.loc) {
				continue
			}
			if !yield(g.clone()) {
				return
			}
		}
	}
}

// GoalsOnSelectedDate is GoalsOn for the store's selected date.
func (s *Service) GoalsOnSelectedDate() iter.Seq[Goal] {
	return s.GoalsOn(s.store.SelectedDate())
}

// SelectDate moves the selected date.
func (s *Service) SelectDate(t time.Time) {
	s.store.SetSelectedDate(t)
}
