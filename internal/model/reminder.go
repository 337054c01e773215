package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidReminderType       = errors.New("model: invalid reminder type")
	ErrCustomDateRequired        = errors.New("model: custom reminder requires a date")
	ErrReminderNotBeforeDeadline = errors.New("model: reminder date must be before the deadline")
	ErrDuplicateReminderDate     = errors.New("model: reminder date already used by this task")
)

type ReminderType string

const (
	ReminderOneDay   ReminderType = "1 day"
	ReminderOneWeek  ReminderType = "1 week"
	ReminderOneMonth ReminderType = "1 month"
	ReminderCustom   ReminderType = "Custom"
)

var ReminderTypes = []ReminderType{ReminderOneDay, ReminderOneWeek, ReminderOneMonth, ReminderCustom}

func (r ReminderType) IsValid() bool {
	switch r {
	case ReminderOneDay, ReminderOneWeek, ReminderOneMonth, ReminderCustom:
		return true
	default:
		return false
	}
}

// ParseReminderType accepts the canonical names in any case plus the short
// forms day, week, month.
func ParseReminderType(raw string) (ReminderType, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	switch norm {
	case "1 day", "1day", "day":
		return ReminderOneDay, nil
	case "1 week", "1week", "week":
		return ReminderOneWeek, nil
	case "1 month", "1month", "month":
		return ReminderOneMonth, nil
	case "custom":
		return ReminderCustom, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReminderType, raw)
	}
}

// DateFor computes the reminder date for a task due on deadline. custom is
// only consulted for ReminderCustom. The result is not checked against the
// deadline; see ReminderDate for the full rule.
func (r ReminderType) DateFor(deadline Date, custom Date) (Date, error) {
	switch r {
	case ReminderOneDay:
		return deadline.AddDays(-1), nil
	case ReminderOneWeek:
		return deadline.AddDays(-7), nil
	case ReminderOneMonth:
		return deadline.AddMonths(-1), nil
	case ReminderCustom:
		if custom.IsZero() {
			return Date{}, ErrCustomDateRequired
		}
		return custom, nil
	default:
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidReminderType, r)
	}
}

// ReminderDate computes the date for a reminder of type typ on task and
// checks it lands strictly before the deadline and on a day no other
// reminder of the task (except exceptID) already uses.
func ReminderDate(task Task, typ ReminderType, custom Date, exceptID int) (Date, error) {
	date, err := typ.DateFor(task.Deadline, custom)
	if err != nil {
		return Date{}, err
	}
	if !date.Before(task.Deadline) {
		return Date{}, fmt.Errorf("%w: %s is not before %s", ErrReminderNotBeforeDeadline, date, task.Deadline)
	}
	if task.HasReminderOn(date, exceptID) {
		return Date{}, fmt.Errorf("%w: %s", ErrDuplicateReminderDate, date)
	}
	return date, nil
}

type Reminder struct {
	ID     int          `json:"id"`
	TaskID int          `json:"taskId"`
	Type   ReminderType `json:"type"`
	Date   Date         `json:"reminderDate"`
}

func (r Reminder) Validate() error {
	if r.ID <= 0 {
		return errors.New("model: reminder id must be positive")
	}
	if r.TaskID <= 0 {
		return errors.New("model: reminder task id must be positive")
	}
	if r.Date.IsZero() {
		return errors.New("model: reminder date is required")
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidReminderType, r.Type)
	}
	return nil
}

func (r Reminder) String() string {
	return fmt.Sprintf("reminder %d for task %d on %s (%s)", r.ID, r.TaskID, r.Date, r.Type)
}
