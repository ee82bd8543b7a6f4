package migrations

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"task-manager/internal/logging"
)

// tasksKey is pinned here so the migration keeps working if the live key is
// ever renamed.
const tasksKey = "task_manager.tasks"

func init() {
	RegisterGoMigration(2, Up_000002_backfill_task_positions, Down_000002_backfill_task_positions)
}

// Up_000002_backfill_task_positions assigns an explicit position to every
// stored task that lacks one. Positions follow stored order and restart at
// zero for each list.
func Up_000002_backfill_task_positions(tx *sql.Tx) error {
	var raw string
	err := tx.QueryRow("SELECT value FROM kv_store WHERE key = ?", tasksKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read tasks: %w", err)
	}

	var tasks []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		// The load path resets unreadable data; nothing to backfill here.
		logging.Warnf("skipping position backfill: %v\n", err)
		return nil
	}

	next := make(map[string]int)
	changed := 0
	for _, task := range tasks {
		if task == nil {
			continue
		}
		scope := listScope(task["listId"])
		if _, ok := task["position"]; ok {
			var pos int
			if json.Unmarshal(task["position"], &pos) == nil && pos >= next[scope] {
				next[scope] = pos + 1
			}
			continue
		}
		task["position"] = json.RawMessage(fmt.Sprintf("%d", next[scope]))
		next[scope]++
		changed++
	}
	if changed == 0 {
		return nil
	}

	encoded, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if _, err := tx.Exec("UPDATE kv_store SET value = ?, updated_at = ? WHERE key = ?",
		string(encoded), time.Now().UTC().Format(time.RFC3339Nano), tasksKey); err != nil {
		return fmt.Errorf("failed to write tasks: %w", err)
	}

	logging.Debugf("backfilled positions for %d tasks\n", changed)
	return nil
}

// Down_000002_backfill_task_positions is a no-op. Positions are ignored by
// readers that predate them.
func Down_000002_backfill_task_positions(tx *sql.Tx) error {
	return nil
}

func listScope(raw json.RawMessage) string {
	var id string
	if len(raw) == 0 || json.Unmarshal(raw, &id) != nil {
		return ""
	}
	return id
}
