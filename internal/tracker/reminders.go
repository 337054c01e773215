package tracker

import (
	"context"
	"fmt"
	"sort"

	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sirupsen/logrus"
)

// NextReminderID is one more than the largest reminder id across all tasks.
func (t *Tracker) NextReminderID() int {
	highest := 0
	for _, task := range t.tasks {
		for _, r := range task.Reminders {
			highest = max(highest, r.ID)
		}
	}
	return highest + 1
}

// AddReminder attaches a reminder of type typ to task taskID. custom is the
// date for model.ReminderCustom and ignored otherwise.
func (t *Tracker) AddReminder(ctx context.Context, taskID int, typ model.ReminderType, custom model.Date) (model.Reminder, error) {
	i := t.taskIndex(taskID)
	if i < 0 {
		return model.Reminder{}, fmt.Errorf("%w: task %d", ErrNotFound, taskID)
	}
	task := &t.tasks[i]
	if task.Status == model.StatusCompleted {
		return model.Reminder{}, fmt.Errorf("%w: task %d", ErrTaskCompleted, taskID)
	}
	date, err := model.ReminderDate(*task, typ, custom, 0)
	if err != nil {
		return model.Reminder{}, err
	}
	r := model.Reminder{
		ID:     t.NextReminderID(),
		TaskID: taskID,
		Type:   typ,
		Date:   date,
	}
	task.Reminders = append(task.Reminders, r)
	t.commit(ctx, "add_reminder")
	t.log.WithFields(logrus.Fields{"task": taskID, "reminder": r.ID, "date": date}).Info("reminder added")
	return r, nil
}

// UpdateReminder changes the type and date of reminder reminderID, wherever
// it lives. The reminder keeps its id and task.
func (t *Tracker) UpdateReminder(ctx context.Context, reminderID int, typ model.ReminderType, custom model.Date) (model.Reminder, error) {
	ti, ri := t.reminderIndex(reminderID)
	if ti < 0 {
		return model.Reminder{}, fmt.Errorf("%w: reminder %d", ErrNotFound, reminderID)
	}
	task := &t.tasks[ti]
	if task.Status == model.StatusCompleted {
		return model.Reminder{}, fmt.Errorf("%w: task %d", ErrTaskCompleted, task.ID)
	}
	date, err := model.ReminderDate(*task, typ, custom, reminderID)
	if err != nil {
		return model.Reminder{}, err
	}
	r := &task.Reminders[ri]
	r.Type = typ
	r.Date = date
	t.commit(ctx, "update_reminder")
	return *r, nil
}

func (t *Tracker) DeleteReminder(ctx context.Context, reminderID int) error {
	ti, ri := t.reminderIndex(reminderID)
	if ti < 0 {
		return fmt.Errorf("%w: reminder %d", ErrNotFound, reminderID)
	}
	task := &t.tasks[ti]
	task.Reminders = append(task.Reminders[:ri], task.Reminders[ri+1:]...)
	t.commit(ctx, "delete_reminder")
	return nil
}

// Reminders returns every reminder, grouped by task in task order.
func (t *Tracker) Reminders() []model.Reminder {
	return t.reminders(func(model.Reminder) bool { return true })
}

// RemindersFor returns the reminders of task taskID, or nil if the task
// does not exist.
func (t *Tracker) RemindersFor(taskID int) []model.Reminder {
	i := t.taskIndex(taskID)
	if i < 0 {
		return nil
	}
	return append([]model.Reminder{}, t.tasks[i].Reminders...)
}

// DueReminders returns the reminders that fire on day.
func (t *Tracker) DueReminders(day model.Date) []model.Reminder {
	return t.reminders(func(r model.Reminder) bool { return r.Date == day })
}

// RemindersFrom returns reminders on or after day, earliest first.
func (t *Tracker) RemindersFrom(day model.Date) []model.Reminder {
	out := t.reminders(func(r model.Reminder) bool { return !r.Date.Before(day) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (t *Tracker) reminders(keep func(model.Reminder) bool) []model.Reminder {
	out := make([]model.Reminder, 0)
	for _, task := range t.tasks {
		for _, r := range task.Reminders {
			if keep(r) {
				out = append(out, r)
			}
		}
	}
	return out
}

func (t *Tracker) reminderIndex(reminderID int) (int, int) {
	for i := range t.tasks {
		for j := range t.tasks[i].Reminders {
			if t.tasks[i].Reminders[j].ID == reminderID {
				return i, j
			}
		}
	}
	return -1, -1
}
