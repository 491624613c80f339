package goals

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_AddAndRemove(t *testing.T) {
	d := NewDraft(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, d.CanSave())

	require.NoError(t, d.AddTask(Task{Title: "Book flight"}))
	require.NoError(t, d.AddTask(Task{Title: "Book hotel"}))
	require.NoError(t, d.AddTask(Task{Title: "Pack"}))
	assert.NotEqual(t, uuid.Nil, d.Tasks[0].ID)

	require.NoError(t, d.RemoveTask(1))
	require.Len(t, d.Tasks, 2)
	assert.Equal(t, "Book flight", d.Tasks[0].Title)
	assert.Equal(t, "Pack", d.Tasks[1].Title)

	assert.False(t, d.CanSave(), "no title yet")
	d.Title = "Plan trip"
	assert.True(t, d.CanSave())
}

func TestDraft_RejectsEmptyTaskTitle(t *testing.T) {
	d := NewDraft(time.Now())
	err := d.AddTask(Task{Title: "  "})
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Empty(t, d.Tasks)
}

func TestDraft_RemoveOutOfRange(t *testing.T) {
	d := NewDraft(time.Now())
	assert.Error(t, d.RemoveTask(0))
	assert.Error(t, d.RemoveTask(-1))
}

func TestDraft_RejectsDuplicateTaskID(t *testing.T) {
	d := NewDraft(time.Now())
	id := uuid.New()
	require.NoError(t, d.AddTask(Task{ID: id, Title: "a"}))

	err := d.AddTask(Task{ID: id, Title: "b"})
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Len(t, d.Tasks, 1)
}
