package tasklog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/aleister1102/redline/internal/config"
	"github.com/aleister1102/redline/internal/models"
)

// TaskStatus is the lifecycle status of a text action task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
)

// Terminal reports whether no further events are expected for the task.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// TaskEvent is one append-only record in the task log. Task state is never
// updated in place; every transition is a new event and current state is
// derived by Reduce.
type TaskEvent struct {
	TaskID     string
	AgentID    string
	ActionType models.ActionType
	Status     TaskStatus
	Detail     string
	OccurredAt time.Time
}

// TaskState is the folded view of all events for one task.
type TaskState struct {
	TaskID     string
	AgentID    string
	ActionType models.ActionType
	Status     TaskStatus
	Detail     string
	Events     int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store persists task events in SQLite and prunes the oldest tasks once the
// retention limit is exceeded.
type Store struct {
	db        *sql.DB
	retention int
	logger    zerolog.Logger
}

// NewStore opens the task log database and ensures the schema is set up.
func NewStore(cfg config.TaskLogConfig, logger zerolog.Logger) (*Store, error) {
	dbDir := filepath.Dir(cfg.DatabasePath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create task log directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", cfg.DatabasePath, err)
	}

	store := &Store{
		db:        dbInstance,
		retention: cfg.RetentionLimit,
		logger:    logger.With().Str("component", "TaskLogStore").Logger(),
	}

	if err := store.initSchema(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize task log schema: %w", err)
	}

	store.logger.Info().Str("db_path", cfg.DatabasePath).Int("retention", cfg.RetentionLimit).Msg("Task log initialized")
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS task_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id TEXT NOT NULL,
		agent_id TEXT NOT NULL,
		action_type TEXT NOT NULL,
		status TEXT NOT NULL,
		detail TEXT,
		occurred_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_task_events_task_id ON task_events(task_id);
	`
	if _, err := s.db.Exec(query); err != nil {
		return err
	}
	return nil
}

// Append records one task event. A zero OccurredAt is filled with the current
// time. Appending triggers retention pruning.
func (s *Store) Append(ev TaskEvent) error {
	if ev.TaskID == "" {
		return fmt.Errorf("task event requires a task ID")
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	query := `INSERT INTO task_events (task_id, agent_id, action_type, status, detail, occurred_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, ev.TaskID, ev.AgentID, string(ev.ActionType), string(ev.Status), ev.Detail, ev.OccurredAt)
	if err != nil {
		s.logger.Error().Err(err).Str("task_id", ev.TaskID).Msg("Failed to append task event")
		return fmt.Errorf("failed to append task event: %w", err)
	}

	return s.prune()
}

// prune deletes every event belonging to a task outside the most recent
// retention window. Recency is measured by the task's latest event.
func (s *Store) prune() error {
	query := `
	DELETE FROM task_events WHERE task_id NOT IN (
		SELECT task_id FROM task_events GROUP BY task_id ORDER BY MAX(id) DESC LIMIT ?
	)`
	result, err := s.db.Exec(query, s.retention)
	if err != nil {
		return fmt.Errorf("failed to prune task log: %w", err)
	}
	if removed, err := result.RowsAffected(); err == nil && removed > 0 {
		s.logger.Debug().Int64("removed_events", removed).Msg("Pruned task log")
	}
	return nil
}

// Reduce folds the event log into per-task states, most recently updated
// first. The first event for a task sets its identity and creation time;
// later events advance status and detail.
func (s *Store) Reduce() ([]TaskState, error) {
	query := `SELECT task_id, agent_id, action_type, status, detail, occurred_at FROM task_events ORDER BY id ASC`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query task events: %w", err)
	}
	defer rows.Close()

	states := make(map[string]*TaskState)
	var order []string
	for rows.Next() {
		var ev TaskEvent
		var actionType, status string
		var detail sql.NullString
		if err := rows.Scan(&ev.TaskID, &ev.AgentID, &actionType, &status, &detail, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan task event: %w", err)
		}
		ev.ActionType = models.ActionType(actionType)
		ev.Status = TaskStatus(status)
		ev.Detail = detail.String

		state, ok := states[ev.TaskID]
		if !ok {
			state = &TaskState{
				TaskID:     ev.TaskID,
				AgentID:    ev.AgentID,
				ActionType: ev.ActionType,
				CreatedAt:  ev.OccurredAt,
			}
			states[ev.TaskID] = state
			order = append(order, ev.TaskID)
		}
		state.Status = ev.Status
		if ev.Detail != "" {
			state.Detail = ev.Detail
		}
		state.UpdatedAt = ev.OccurredAt
		state.Events++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task events: %w", err)
	}

	result := make([]TaskState, 0, len(order))
	for _, id := range order {
		result = append(result, *states[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// Active returns the tasks still pending or running.
func (s *Store) Active() ([]TaskState, error) {
	all, err := s.Reduce()
	if err != nil {
		return nil, err
	}
	active := make([]TaskState, 0)
	for _, state := range all {
		if !state.Status.Terminal() {
			active = append(active, state)
		}
	}
	return active, nil
}
