package model

import (
	"errors"
	"testing"
	"time"
)

func validTask() Task {
	return Task{
		ID:       1,
		Title:    "Write report",
		Category: "Personal",
		Priority: "High",
		Deadline: NewDate(2026, time.February, 20),
		Status:   StatusOpen,
	}
}

func TestTaskValidateSuccess(t *testing.T) {
	task := validTask()
	task.Reminders = []Reminder{{ID: 1, TaskID: 1, Type: ReminderOneDay, Date: NewDate(2026, time.February, 19)}}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBrokenInvariants(t *testing.T) {
	task := validTask()
	task.Title = "  "
	if err := task.Validate(); !errors.Is(err, ErrBlankTitle) {
		t.Fatalf("expected ErrBlankTitle, got %v", err)
	}

	task = validTask()
	task.Status = Status("Archived")
	if err := task.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	task = validTask()
	task.Reminders = []Reminder{{ID: 1, TaskID: 1, Type: ReminderCustom, Date: task.Deadline}}
	if err := task.Validate(); !errors.Is(err, ErrReminderNotBeforeDeadline) {
		t.Fatalf("expected ErrReminderNotBeforeDeadline, got %v", err)
	}

	task = validTask()
	day := NewDate(2026, time.February, 10)
	task.Reminders = []Reminder{
		{ID: 1, TaskID: 1, Type: ReminderCustom, Date: day},
		{ID: 2, TaskID: 1, Type: ReminderCustom, Date: day},
	}
	if err := task.Validate(); !errors.Is(err, ErrDuplicateReminderDate) {
		t.Fatalf("expected ErrDuplicateReminderDate, got %v", err)
	}

	task = validTask()
	task.Status = StatusCompleted
	task.Reminders = []Reminder{{ID: 1, TaskID: 1, Type: ReminderOneDay, Date: NewDate(2026, time.February, 19)}}
	if err := task.Validate(); err == nil {
		t.Fatal("expected completed task with reminders to be invalid")
	}
}

func TestInitialStatus(t *testing.T) {
	today := NewDate(2026, time.February, 9)
	if got := InitialStatus(today.AddDays(-1), today); got != StatusDelayed {
		t.Fatalf("yesterday deadline: got %q", got)
	}
	if got := InitialStatus(today, today); got != StatusOpen {
		t.Fatalf("today deadline: got %q", got)
	}
	if got := InitialStatus(today.AddDays(1), today); got != StatusOpen {
		t.Fatalf("tomorrow deadline: got %q", got)
	}
}

func TestStatusForEdit(t *testing.T) {
	today := NewDate(2026, time.February, 9)
	past := today.AddDays(-3)
	cases := []struct {
		deadline  Date
		requested Status
		want      Status
	}{
		{past, StatusOpen, StatusDelayed},
		{past, StatusInProgress, StatusDelayed},
		{past, StatusPostponed, StatusPostponed},
		{past, StatusCompleted, StatusCompleted},
		{today, StatusInProgress, StatusInProgress},
	}
	for _, tc := range cases {
		if got := StatusForEdit(tc.deadline, tc.requested, today); got != tc.want {
			t.Fatalf("StatusForEdit(%s, %q) = %q, want %q", tc.deadline, tc.requested, got, tc.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]Status{
		"open":        StatusOpen,
		"In Progress": StatusInProgress,
		"in-progress": StatusInProgress,
		"inprogress":  StatusInProgress,
		" COMPLETED ": StatusCompleted,
	} {
		got, err := ParseStatus(raw)
		if err != nil || got != want {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseStatus("done"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestTaskIsOverdue(t *testing.T) {
	today := NewDate(2026, time.February, 9)
	task := validTask()
	task.Deadline = today.AddDays(-1)
	for status, want := range map[Status]bool{
		StatusOpen:       true,
		StatusInProgress: true,
		StatusPostponed:  false,
		StatusDelayed:    false,
		StatusCompleted:  false,
	} {
		task.Status = status
		if got := task.IsOverdue(today); got != want {
			t.Fatalf("IsOverdue with status %q = %v, want %v", status, got, want)
		}
	}
	task.Status = StatusOpen
	task.Deadline = today
	if task.IsOverdue(today) {
		t.Fatal("deadline today must not count as overdue")
	}
}

func TestTaskCloneDoesNotShareReminders(t *testing.T) {
	task := validTask()
	task.Reminders = []Reminder{{ID: 1, TaskID: 1, Type: ReminderOneDay, Date: NewDate(2026, time.February, 19)}}
	clone := task.Clone()
	clone.Reminders[0].Type = ReminderCustom
	if task.Reminders[0].Type != ReminderOneDay {
		t.Fatal("clone mutated original reminders")
	}
}
