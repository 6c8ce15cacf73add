package tasklog

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/redline/internal/config"
	"github.com/aleister1102/redline/internal/models"
)

func newTestStore(t *testing.T, retention int) *Store {
	t.Helper()
	cfg := config.TaskLogConfig{
		DatabasePath:   filepath.Join(t.TempDir(), "tasklog.db"),
		RetentionLimit: retention,
	}
	store, err := NewStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_AppendAndReduce(t *testing.T) {
	store := newTestStore(t, 500)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(TaskEvent{
		TaskID: "task-1", AgentID: "agent-1", ActionType: models.ActionRewrite,
		Status: StatusPending, OccurredAt: base,
	}))
	require.NoError(t, store.Append(TaskEvent{
		TaskID: "task-1", Status: StatusRunning, OccurredAt: base.Add(time.Second),
	}))
	require.NoError(t, store.Append(TaskEvent{
		TaskID: "task-1", Status: StatusCompleted, Detail: "done", OccurredAt: base.Add(2 * time.Second),
	}))

	states, err := store.Reduce()
	require.NoError(t, err)
	require.Len(t, states, 1)

	state := states[0]
	assert.Equal(t, "task-1", state.TaskID)
	assert.Equal(t, "agent-1", state.AgentID)
	assert.Equal(t, models.ActionRewrite, state.ActionType)
	assert.Equal(t, StatusCompleted, state.Status)
	assert.Equal(t, "done", state.Detail)
	assert.Equal(t, 3, state.Events)
	assert.True(t, state.CreatedAt.Equal(base))
	assert.True(t, state.UpdatedAt.Equal(base.Add(2*time.Second)))
}

func TestStore_ReduceOrdersByRecency(t *testing.T) {
	store := newTestStore(t, 500)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(TaskEvent{TaskID: "old", Status: StatusPending, OccurredAt: base}))
	require.NoError(t, store.Append(TaskEvent{TaskID: "new", Status: StatusPending, OccurredAt: base.Add(time.Minute)}))
	require.NoError(t, store.Append(TaskEvent{TaskID: "old", Status: StatusRunning, OccurredAt: base.Add(2 * time.Minute)}))

	states, err := store.Reduce()
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "old", states[0].TaskID)
	assert.Equal(t, "new", states[1].TaskID)
}

func TestStore_RetentionPrunesOldestTasks(t *testing.T) {
	store := newTestStore(t, 3)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(TaskEvent{
			TaskID: fmt.Sprintf("task-%d", i),
			Status: StatusCompleted,
		}))
	}

	states, err := store.Reduce()
	require.NoError(t, err)
	require.Len(t, states, 3)

	kept := make(map[string]bool)
	for _, state := range states {
		kept[state.TaskID] = true
	}
	assert.False(t, kept["task-0"])
	assert.False(t, kept["task-1"])
	assert.True(t, kept["task-2"])
	assert.True(t, kept["task-3"])
	assert.True(t, kept["task-4"])
}

func TestStore_RetentionKeepsAllEventsOfRetainedTasks(t *testing.T) {
	store := newTestStore(t, 2)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(TaskEvent{TaskID: id, Status: StatusPending}))
		require.NoError(t, store.Append(TaskEvent{TaskID: id, Status: StatusRunning}))
	}

	states, err := store.Reduce()
	require.NoError(t, err)
	require.Len(t, states, 2)
	for _, state := range states {
		assert.Equal(t, 2, state.Events)
	}
}

func TestStore_Active(t *testing.T) {
	store := newTestStore(t, 500)

	require.NoError(t, store.Append(TaskEvent{TaskID: "done", Status: StatusCompleted}))
	require.NoError(t, store.Append(TaskEvent{TaskID: "broken", Status: StatusFailed}))
	require.NoError(t, store.Append(TaskEvent{TaskID: "waiting", Status: StatusPending}))
	require.NoError(t, store.Append(TaskEvent{TaskID: "working", Status: StatusRunning}))

	active, err := store.Active()
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, state := range active {
		assert.False(t, state.Status.Terminal())
	}
}

func TestStore_AppendRequiresTaskID(t *testing.T) {
	store := newTestStore(t, 500)
	assert.Error(t, store.Append(TaskEvent{Status: StatusPending}))
}
