package tracker

import (
	"context"

	"github.com/sandeepkv93/taskbook/internal/model"
)

// SweepOverdue moves every task whose deadline has passed to Delayed, except
// tasks already Delayed, Completed or Postponed. State is saved once, and
// only when something changed. It returns the number of tasks moved.
func (t *Tracker) SweepOverdue(ctx context.Context) int {
	today := t.Today()
	moved := 0
	for i := range t.tasks {
		if t.tasks[i].IsOverdue(today) {
			t.tasks[i].Status = model.StatusDelayed
			moved++
		}
	}
	if moved > 0 {
		t.commit(ctx, "sweep_overdue")
		t.log.WithField("tasks", moved).Info("overdue tasks marked delayed")
	}
	return moved
}
