package tracker

import (
	"context"
	"slices"

	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sirupsen/logrus"
)

// repairLoaded brings loaded tasks back in line with the reminder rules.
// Completed tasks lose their reminders. Otherwise malformed reminders are
// dropped, reminders are re-owned by the task that embeds them, and the rest
// go through realignReminders. State is saved once when any task changed.
func (t *Tracker) repairLoaded(ctx context.Context) int {
	repaired := 0
	for i := range t.tasks {
		task := &t.tasks[i]
		problem := task.Validate()
		if problem == nil {
			continue
		}
		before := slices.Clone(task.Reminders)
		if task.Status == model.StatusCompleted {
			task.Reminders = []model.Reminder{}
		} else {
			kept := make([]model.Reminder, 0, len(task.Reminders))
			for _, r := range task.Reminders {
				r.TaskID = task.ID
				if r.Validate() == nil {
					kept = append(kept, r)
				}
			}
			task.Reminders = kept
			realignReminders(task)
		}

		fields := logrus.Fields{"task": task.ID, "problem": problem}
		if err := task.Validate(); err != nil {
			t.log.WithFields(fields).WithField("error", err).Warn("loaded task is still invalid; keeping it as is")
		}
		if slices.Equal(before, task.Reminders) {
			continue
		}
		repaired++
		fields["reminders_before"] = len(before)
		fields["reminders_after"] = len(task.Reminders)
		t.log.WithFields(fields).Warn("repaired reminders on loaded task")
	}
	if repaired > 0 {
		t.commit(ctx, "repair_loaded")
	}
	return repaired
}
