package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/taskbook/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists the same snapshot as JSONStore into a SQLite file.
// Every Save replaces all rows inside one transaction.
type SQLiteStore struct {
	path string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: strings.TrimSpace(path)}
}

func (s *SQLiteStore) Describe() string { return "sqlite:" + s.path }

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (State, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return EmptyState(), nil
		}
		return EmptyState(), fmt.Errorf("stat %s: %w", s.path, err)
	}
	db, err := s.open(ctx)
	if err != nil {
		return EmptyState(), err
	}
	defer db.Close()

	state := EmptyState()
	if state.Categories, err = loadNames(ctx, db, "categories"); err != nil {
		return EmptyState(), err
	}
	if state.Priorities, err = loadNames(ctx, db, "priorities"); err != nil {
		return EmptyState(), err
	}
	if state.Tasks, err = loadTasks(ctx, db); err != nil {
		return EmptyState(), err
	}
	return state, nil
}

func (s *SQLiteStore) Save(ctx context.Context, state State) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"reminders", "tasks", "categories", "priorities"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for i, name := range state.Categories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (name, position) VALUES (?, ?)`, name, i); err != nil {
			return fmt.Errorf("insert category %q: %w", name, err)
		}
	}
	for i, name := range state.Priorities {
		if _, err := tx.ExecContext(ctx, `INSERT INTO priorities (name, position) VALUES (?, ?)`, name, i); err != nil {
			return fmt.Errorf("insert priority %q: %w", name, err)
		}
	}
	for i, t := range state.Tasks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, position, title, description, category, priority, deadline, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, i, t.Title, t.Description, t.Category, t.Priority, t.Deadline.String(), string(t.Status),
		); err != nil {
			return fmt.Errorf("insert task %d: %w", t.ID, err)
		}
		for j, r := range t.Reminders {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO reminders (id, task_id, position, type, reminder_date)
				VALUES (?, ?, ?, ?, ?)`,
				r.ID, t.ID, j, string(r.Type), r.Date.String(),
			); err != nil {
				return fmt.Errorf("insert reminder %d: %w", r.ID, err)
			}
		}
	}
	return tx.Commit()
}

func loadNames(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM "+table+" ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func loadTasks(ctx context.Context, db *sql.DB) ([]model.Task, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, description, category, priority, deadline, status
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	out := make([]model.Task, 0)
	index := make(map[int]int)
	for rows.Next() {
		var t model.Task
		var deadline, status string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &deadline, &status); err != nil {
			rows.Close()
			return nil, err
		}
		if t.Deadline, err = model.ParseDate(deadline); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: task %d: %v", ErrCorrupt, t.ID, err)
		}
		t.Status = model.Status(status)
		t.Reminders = []model.Reminder{}
		index[t.ID] = len(out)
		out = append(out, t)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rrows, err := db.QueryContext(ctx, `
		SELECT id, task_id, type, reminder_date
		FROM reminders ORDER BY task_id ASC, position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	defer rrows.Close()
	for rrows.Next() {
		var r model.Reminder
		var typ, date string
		if err := rrows.Scan(&r.ID, &r.TaskID, &typ, &date); err != nil {
			return nil, err
		}
		if r.Date, err = model.ParseDate(date); err != nil {
			return nil, fmt.Errorf("%w: reminder %d: %v", ErrCorrupt, r.ID, err)
		}
		r.Type = model.ReminderType(typ)
		pos, ok := index[r.TaskID]
		if !ok {
			continue
		}
		out[pos].Reminders = append(out[pos].Reminders, r)
	}
	return out, rrows.Err()
}
