package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskbook/internal/model"
)

func sampleState() State {
	deadline := model.NewDate(2026, time.March, 31)
	return State{
		Tasks: []model.Task{
			{
				ID:          1,
				Title:       "Pay rent",
				Description: "transfer before the 1st",
				Category:    "Personal",
				Priority:    "High",
				Deadline:    deadline,
				Status:      model.StatusOpen,
				Reminders: []model.Reminder{
					{ID: 1, TaskID: 1, Type: model.ReminderOneWeek, Date: deadline.AddDays(-7)},
					{ID: 3, TaskID: 1, Type: model.ReminderOneMonth, Date: deadline.AddMonths(-1)},
				},
			},
			{
				ID:        4,
				Title:     "File taxes",
				Category:  "Other",
				Priority:  "Default",
				Deadline:  model.NewDate(2026, time.February, 1),
				Status:    model.StatusDelayed,
				Reminders: []model.Reminder{},
			},
		},
		Categories: []string{"Personal", "Other"},
		Priorities: []string{"Default", "High", "Medium", "Low"},
	}
}

func gateways(t *testing.T) map[string]Gateway {
	t.Helper()
	dir := t.TempDir()
	return map[string]Gateway{
		BackendJSON:   NewJSONStore(filepath.Join(dir, "nested", "tasks.json")),
		BackendSQLite: NewSQLiteStore(filepath.Join(dir, "nested", "tasks.db")),
	}
}

func TestGatewayRoundTrip(t *testing.T) {
	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			want := sampleState()
			if err := gw.Save(ctx, want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := gw.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
			}
		})
	}
}

func TestGatewayMissingStoreLoadsEmpty(t *testing.T) {
	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			got, err := gw.Load(t.Context())
			if err != nil {
				t.Fatalf("load missing: %v", err)
			}
			if len(got.Tasks) != 0 || len(got.Categories) != 0 || len(got.Priorities) != 0 {
				t.Fatalf("expected empty state, got %#v", got)
			}
		})
	}
}

func TestGatewaySaveOverwritesSnapshot(t *testing.T) {
	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			if err := gw.Save(ctx, sampleState()); err != nil {
				t.Fatalf("first save: %v", err)
			}
			next := sampleState()
			next.Tasks = next.Tasks[1:]
			next.Categories = []string{"Other"}
			if err := gw.Save(ctx, next); err != nil {
				t.Fatalf("second save: %v", err)
			}
			got, err := gw.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(got.Tasks) != 1 || got.Tasks[0].ID != 4 || len(got.Categories) != 1 {
				t.Fatalf("snapshot not replaced: %#v", got)
			}
		})
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := NewJSONStore(path).Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if got.Tasks == nil || len(got.Tasks) != 0 {
		t.Fatalf("expected empty state alongside error, got %#v", got)
	}
}

func TestJSONStoreDocumentShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := NewJSONStore(path).Save(t.Context(), sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, fragment := range []string{`"tasks"`, `"categories"`, `"priorities"`, `"reminderDate": "2026-03-24"`, `"taskId": 1`, `"deadline": "2026-03-31"`} {
		if !strings.Contains(string(raw), fragment) {
			t.Fatalf("document missing %s:\n%s", fragment, raw)
		}
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestOpenBackends(t *testing.T) {
	if _, err := Open("json", "x.json"); err != nil {
		t.Fatalf("json backend: %v", err)
	}
	if _, err := Open("sqlite", "x.db"); err != nil {
		t.Fatalf("sqlite backend: %v", err)
	}
	if _, err := Open("mongo", "x"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}
