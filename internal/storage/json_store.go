package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JSONStore keeps the state in a single indented JSON document.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: strings.TrimSpace(path)}
}

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Describe() string { return "json:" + s.path }

func (s *JSONStore) Load(ctx context.Context) (State, error) {
	if err := ctx.Err(); err != nil {
		return EmptyState(), err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return EmptyState(), nil
		}
		return EmptyState(), fmt.Errorf("read %s: %w", s.path, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return EmptyState(), nil
	}
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return EmptyState(), fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return state.normalized(), nil
}

// Save writes to a sibling temp file and renames it over the target so a
// crash mid-write never leaves a truncated document behind.
func (s *JSONStore) Save(ctx context.Context, state State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	payload, err := json.MarshalIndent(state.normalized(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
