package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/taskbook/internal/model"
)

var (
	ErrCorrupt        = errors.New("storage: corrupt state")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// State is the whole persisted document. Reminders travel inside their tasks.
type State struct {
	Tasks      []model.Task `json:"tasks"`
	Categories []string     `json:"categories"`
	Priorities []string     `json:"priorities"`
}

// EmptyState has non-nil empty lists so it serializes as [] rather than null.
func EmptyState() State {
	return State{
		Tasks:      []model.Task{},
		Categories: []string{},
		Priorities: []string{},
	}
}

func (s State) normalized() State {
	if s.Tasks == nil {
		s.Tasks = []model.Task{}
	}
	if s.Categories == nil {
		s.Categories = []string{}
	}
	if s.Priorities == nil {
		s.Priorities = []string{}
	}
	tasks := make([]model.Task, len(s.Tasks))
	for i, t := range s.Tasks {
		if t.Reminders == nil {
			t.Reminders = []model.Reminder{}
		}
		tasks[i] = t
	}
	s.Tasks = tasks
	return s
}

// Gateway loads and saves full snapshots of State.
//
// Load returns an empty State and a nil error when no backing store exists
// yet. Any other failure is returned together with an empty State so the
// caller can degrade gracefully. Save overwrites the whole store and
// creates it (and its directory) on first write.
type Gateway interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
	Describe() string
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open builds the gateway for backend rooted at path.
func Open(backend, path string) (Gateway, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
