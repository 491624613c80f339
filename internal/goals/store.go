package goals

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pdxmph/goals-tui/internal/kv"
)

// DefaultKey is the slot the goal list lives under.
const DefaultKey = "savedGoals"

// Op names the mutation behind a Change.
type Op string

const (
	OpRestore      Op = "restore"
	OpReplace      Op = "replace"
	OpGoalAdded    Op = "goal_added"
	OpTaskAdded    Op = "task_added"
	OpTaskToggled  Op = "task_toggled"
	OpDateSelected Op = "date_selected"
)

// Change is emitted to subscribers after every state transition. Goals is a
// snapshot the receiver may keep.
type Change struct {
	Op           Op
	GoalID       uuid.UUID
	TaskID       uuid.UUID
	Goals        []Goal
	SelectedDate time.Time
}

// Listener receives change events synchronously.
type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

// Store is the single owner of the goal list and the selected date. Every
// replacement of the list is written through to the slot before listeners
// run. Store is not safe for concurrent use.
type Store struct {
	slot   kv.Store
	key    string
	format Format

	goals    []Goal
	selected time.Time

	subs   []subscription
	nextID int
}

// NewStore creates a store over slot. The list starts empty until Restore is
// called; the selected date starts at now.
func NewStore(slot kv.Store, key string, format Format) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		slot:     slot,
		key:      key,
		format:   format,
		goals:    []Goal{},
		selected: time.Now(),
	}
}

// Load reads and decodes the slot. An absent slot is an empty list. Corrupt
// data yields an empty list and a *DecodeError.
func (s *Store) Load() ([]Goal, error) {
	data, err := s.slot.Get(s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []Goal{}, nil
	}
	if err != nil {
		return []Goal{}, fmt.Errorf("reading %q: %w", s.key, err)
	}

	list, err := Decode(data, s.format)
	if err != nil {
		return []Goal{}, &DecodeError{Key: s.key, Err: err}
	}
	return list, nil
}

// Restore installs whatever Load returns. Failures are logged and leave an
// empty list; they are never returned.
func (s *Store) Restore() {
	list, err := s.Load()
	if err != nil {
		log.Printf("restoring goals: %v; starting with an empty list", err)
	}
	s.goals = list
	s.notify(Change{Op: OpRestore})
}

// Save overwrites the slot with the encoded list.
func (s *Store) Save(list []Goal) error {
	data, err := Encode(list, s.format)
	if err != nil {
		return fmt.Errorf("encoding goals: %w", err)
	}
	if err := s.slot.Set(s.key, data); err != nil {
		return fmt.Errorf("writing %q: %w", s.key, err)
	}
	return nil
}

// Replace swaps the in-memory list, persists it and notifies subscribers.
// A failed write is logged; the in-memory list stays authoritative.
func (s *Store) Replace(list []Goal, c Change) {
	s.goals = cloneGoals(list)
	if err := s.Save(s.goals); err != nil {
		log.Printf("saving goals: %v", err)
	}
	if c.Op == "" {
		c.Op = OpReplace
	}
	s.notify(c)
}

// Goals returns a deep copy of the current list.
func (s *Store) Goals() []Goal {
	return cloneGoals(s.goals)
}

// SelectedDate returns the date the calendar is showing.
func (s *Store) SelectedDate() time.Time {
	return s.selected
}

// SetSelectedDate moves the calendar. It is not persisted.
func (s *Store) SetSelectedDate(t time.Time) {
	s.selected = t
	s.notify(Change{Op: OpDateSelected})
}

// Subscribe registers fn for change events and returns a func that removes it.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(c Change) {
	if len(s.subs) == 0 {
		return
	}
	c.SelectedDate = s.selected
	for _, sub := range s.subs {
		c.Goals = cloneGoals(s.goals)
		sub.fn(c)
	}
}
