package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sirupsen/logrus"
)

// TaskInput carries the caller-editable fields of a task.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Deadline    model.Date
}

func (t *Tracker) validateInput(in TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return model.ErrBlankTitle
	}
	if in.Deadline.IsZero() {
		return model.ErrNoDeadline
	}
	if model.IndexOf(t.categories, in.Category) < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, in.Category)
	}
	if model.IndexOf(t.priorities, in.Priority) < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPriority, in.Priority)
	}
	return nil
}

// NextTaskID is one more than the largest live task id, or 1 when there are
// no tasks. Ids of deleted tasks may be handed out again.
func (t *Tracker) NextTaskID() int {
	highest := 0
	for _, task := range t.tasks {
		highest = max(highest, task.ID)
	}
	return highest + 1
}

// AddTask creates a task with a fresh id. Its status is Delayed when the
// deadline is already past and Open otherwise.
func (t *Tracker) AddTask(ctx context.Context, in TaskInput) (model.Task, error) {
	if err := t.validateInput(in); err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:          t.NextTaskID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Deadline:    in.Deadline,
		Status:      model.InitialStatus(in.Deadline, t.Today()),
		Reminders:   []model.Reminder{},
	}
	t.tasks = append(t.tasks, task)
	t.commit(ctx, "add_task")
	t.log.WithFields(logrus.Fields{"task": task.ID, "status": task.Status}).Info("task added")
	return task.Clone(), nil
}

// UpdateTask replaces every editable field and the status of task id. The
// status is stored as given; callers wanting the past-deadline rule apply
// model.StatusForEdit first.
//
// Moving to Completed drops all reminders. Changing the deadline recomputes
// rule-based reminders and drops any reminder that would no longer fall
// strictly before the deadline or would collide with another one.
func (t *Tracker) UpdateTask(ctx context.Context, id int, in TaskInput, status model.Status) (model.Task, error) {
	if err := t.validateInput(in); err != nil {
		return model.Task{}, err
	}
	if !status.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	i := t.taskIndex(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: task %d", ErrNotFound, id)
	}

	task := &t.tasks[i]
	deadlineChanged := task.Deadline != in.Deadline
	task.Title = in.Title
	task.Description = in.Description
	task.Category = in.Category
	task.Priority = in.Priority
	task.Deadline = in.Deadline
	task.Status = status

	switch {
	case status == model.StatusCompleted:
		task.Reminders = []model.Reminder{}
	case deadlineChanged:
		dropped := realignReminders(task)
		if dropped > 0 {
			t.log.WithFields(logrus.Fields{"task": id, "dropped": dropped}).Warn("reminders dropped after deadline change")
		}
	}
	t.commit(ctx, "update_task")
	return task.Clone(), nil
}

// CompleteTask marks task id Completed and clears its reminders.
func (t *Tracker) CompleteTask(ctx context.Context, id int) (model.Task, error) {
	i := t.taskIndex(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: task %d", ErrNotFound, id)
	}
	task := &t.tasks[i]
	task.Status = model.StatusCompleted
	task.Reminders = []model.Reminder{}
	t.commit(ctx, "complete_task")
	return task.Clone(), nil
}

// DeleteTask removes task id together with its reminders.
func (t *Tracker) DeleteTask(ctx context.Context, id int) error {
	i := t.taskIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: task %d", ErrNotFound, id)
	}
	t.tasks = append(t.tasks[:i], t.tasks[i+1:]...)
	t.commit(ctx, "delete_task")
	t.log.WithField("task", id).Info("task deleted")
	return nil
}

// Tasks returns copies of all tasks in insertion order.
func (t *Tracker) Tasks() []model.Task {
	return t.collect(func(model.Task) bool { return true })
}

func (t *Tracker) Task(id int) (model.Task, bool) {
	i := t.taskIndex(id)
	if i < 0 {
		return model.Task{}, false
	}
	return t.tasks[i].Clone(), true
}

func (t *Tracker) taskIndex(id int) int {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) collect(keep func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(t.tasks))
	for _, task := range t.tasks {
		if keep(task) {
			out = append(out, task.Clone())
		}
	}
	return out
}

// realignReminders recomputes rule-based reminder dates against the task's
// current deadline and removes the ones that break the reminder invariants.
// It returns how many were removed.
func realignReminders(task *model.Task) int {
	kept := make([]model.Reminder, 0, len(task.Reminders))
	check := model.Task{ID: task.ID, Deadline: task.Deadline}
	for _, r := range task.Reminders {
		date, err := model.ReminderDate(check, r.Type, r.Date, 0)
		if err != nil {
			continue
		}
		r.Date = date
		kept = append(kept, r)
		check.Reminders = kept
	}
	dropped := len(task.Reminders) - len(kept)
	task.Reminders = kept
	return dropped
}
