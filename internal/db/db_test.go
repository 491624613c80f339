package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmph/goals-tui/internal/goals"
	"github.com/pdxmph/goals-tui/internal/kv"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goals.db")
	require.NoError(t, Initialize(path))

	database, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpen_MissingDatabase(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	assert.ErrorContains(t, err, "goals-tui init")
}

func TestInitialize_RefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "goals.db")
	require.NoError(t, Initialize(path))
	assert.ErrorContains(t, Initialize(path), "already exists")
}

func TestDB_GetMissingKey(t *testing.T) {
	database := newTestDB(t)

	_, err := database.Get("savedGoals")
	assert.True(t, errors.Is(err, kv.ErrNotFound))
}

func TestDB_SetOverwrites(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.Set("savedGoals", []byte(`[1]`)))
	require.NoError(t, database.Set("savedGoals", []byte(`[2]`)))

	got, err := database.Get("savedGoals")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))

	settings, err := database.ListSettings()
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.True(t, settings[0].UpdatedAt.Valid)
}

func TestDB_KeysAreIndependent(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.Set("b", []byte("2")))
	require.NoError(t, database.Set("a", []byte("1")))

	settings, err := database.ListSettings()
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, "a", settings[0].Key)
	assert.Equal(t, "b", settings[1].Key)
}

func TestDB_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.db")
	require.NoError(t, Initialize(path))

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("savedGoals", []byte("data")))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get("savedGoals")
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}

func TestRunMigrations_LegacySchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")
	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = conn.Exec(`CREATE TABLE settings (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO settings (key, value) VALUES ('savedGoals', '[]')`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	s, err := database.GetSetting("savedGoals")
	require.NoError(t, err)
	assert.True(t, s.UpdatedAt.Valid)

	// Running again is a no-op.
	require.NoError(t, database.RunMigrations())
	require.NoError(t, database.Set("savedGoals", []byte("[1]")))
}

func TestRunMigrations_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	require.NoError(t, conn.Ping())
	require.NoError(t, conn.Close())

	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.Set("k", []byte("v")))
}

func TestRegisteredBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.db")
	require.NoError(t, Initialize(path))

	store, err := kv.Open("sqlite", path)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, "sqlite", store.Name())
}

func TestGoalStoreOverSQLite(t *testing.T) {
	database := newTestDB(t)
	store := goals.NewStore(database, goals.DefaultKey, goals.FormatJSON)
	store.Restore()
	svc := goals.NewService(store, goals.WithLocation(time.UTC))

	target := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	g, err := svc.AddGoal("Plan trip", target, []goals.Task{
		goals.NewTask("Book flight", time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), ""),
	})
	require.NoError(t, err)
	_, err = svc.ToggleTaskCompletion(g.ID, g.Tasks[0].ID)
	require.NoError(t, err)

	reloaded := goals.NewStore(database, goals.DefaultKey, goals.FormatJSON)
	list, err := reloaded.Load()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsCompleted())
}

func TestCreateFixturesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.db")
	require.NoError(t, CreateFixturesDatabase(path, goals.DefaultKey, goals.FormatYAML))

	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	list, err := goals.NewStore(database, goals.DefaultKey, goals.FormatYAML).Load()
	require.NoError(t, err)
	assert.Len(t, list, 4)

	completed := slices.IndexFunc(list, func(g goals.Goal) bool { return g.IsCompleted() })
	assert.GreaterOrEqual(t, completed, 0)
	for _, g := range list {
		assert.NotEmpty(t, g.Tasks)
	}
}
