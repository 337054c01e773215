package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus = errors.New("model: invalid task status")
	ErrBlankTitle    = errors.New("model: task title is required")
	ErrNoDeadline    = errors.New("model: task deadline is required")
)

type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusPostponed  Status = "Postponed"
	StatusDelayed    Status = "Delayed"
	StatusCompleted  Status = "Completed"
)

var Statuses = []Status{StatusOpen, StatusInProgress, StatusPostponed, StatusDelayed, StatusCompleted}

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusPostponed, StatusDelayed, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseStatus matches raw against the known statuses ignoring case and
// surrounding space. "in-progress" and "inprogress" are accepted as well.
func ParseStatus(raw string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	if norm == "inprogress" {
		norm = "in progress"
	}
	for _, s := range Statuses {
		if strings.ToLower(string(s)) == norm {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// InitialStatus is the status a task gets at creation time.
func InitialStatus(deadline, today Date) Status {
	if deadline.Before(today) {
		return StatusDelayed
	}
	return StatusOpen
}

// StatusForEdit is the status a caller should store after editing a task.
// A past deadline forces Delayed unless the requested status is Completed or
// Postponed.
func StatusForEdit(deadline Date, requested Status, today Date) Status {
	if deadline.Before(today) && requested != StatusCompleted && requested != StatusPostponed {
		return StatusDelayed
	}
	return requested
}

// IsOverdue reports whether the overdue sweep would move t to Delayed.
func (t Task) IsOverdue(today Date) bool {
	if !t.Deadline.Before(today) {
		return false
	}
	switch t.Status {
	case StatusDelayed, StatusCompleted, StatusPostponed:
		return false
	default:
		return true
	}
}

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Deadline    Date       `json:"deadline"`
	Status      Status     `json:"status"`
	Reminders   []Reminder `json:"reminders"`
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return errors.New("model: task id must be positive")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrBlankTitle
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("model: task category is required")
	}
	if strings.TrimSpace(t.Priority) == "" {
		return errors.New("model: task priority is required")
	}
	if t.Deadline.IsZero() {
		return ErrNoDeadline
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.Status == StatusCompleted && len(t.Reminders) > 0 {
		return errors.New("model: completed task must not hold reminders")
	}
	seen := make(map[Date]bool, len(t.Reminders))
	for _, r := range t.Reminders {
		if r.TaskID != t.ID {
			return fmt.Errorf("model: reminder %d belongs to task %d, not %d", r.ID, r.TaskID, t.ID)
		}
		if !r.Date.Before(t.Deadline) {
			return fmt.Errorf("%w: reminder %d on %s", ErrReminderNotBeforeDeadline, r.ID, r.Date)
		}
		if seen[r.Date] {
			return fmt.Errorf("%w: %s", ErrDuplicateReminderDate, r.Date)
		}
		seen[r.Date] = true
	}
	return nil
}

// Clone returns a copy of t that shares no reminder storage with t.
func (t Task) Clone() Task {
	out := t
	if t.Reminders != nil {
		out.Reminders = make([]Reminder, len(t.Reminders))
		copy(out.Reminders, t.Reminders)
	}
	return out
}

func (t Task) ReminderByID(id int) (Reminder, bool) {
	for _, r := range t.Reminders {
		if r.ID == id {
			return r, true
		}
	}
	return Reminder{}, false
}

// HasReminderOn reports whether a reminder other than exceptID falls on d.
func (t Task) HasReminderOn(d Date, exceptID int) bool {
	for _, r := range t.Reminders {
		if r.ID != exceptID && r.Date == d {
			return true
		}
	}
	return false
}
