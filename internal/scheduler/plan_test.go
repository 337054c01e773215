package scheduler

import (
	"testing"
	"time"

	"github.com/sandeepkv93/taskbook/internal/model"
)

func TestPlanSkipsPastAndOrdersByTrigger(t *testing.T) {
	now := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)
	today := model.DateOf(now)
	reminders := []model.Reminder{
		{ID: 1, TaskID: 7, Type: model.ReminderOneWeek, Date: today.AddDays(3)},
		{ID: 2, TaskID: 7, Type: model.ReminderCustom, Date: today.AddDays(-1)},
		{ID: 3, TaskID: 8, Type: model.ReminderOneDay, Date: today},
	}
	titles := map[int]string{7: "Pay rent", 8: "Call mom"}

	evs := Plan(reminders, titles, 9, now)
	if len(evs) != 2 {
		t.Fatalf("events = %+v, want 2", evs)
	}
	if evs[0].ReminderID != 3 || evs[1].ReminderID != 1 {
		t.Fatalf("order = %d,%d", evs[0].ReminderID, evs[1].ReminderID)
	}
	want := time.Date(2026, time.March, 13, 9, 0, 0, 0, time.UTC)
	if !evs[1].TriggerAt.Equal(want) {
		t.Fatalf("trigger = %v, want %v", evs[1].TriggerAt, want)
	}
	if evs[1].TaskTitle != "Pay rent" || evs[0].TaskTitle != "Call mom" {
		t.Fatalf("titles = %q, %q", evs[0].TaskTitle, evs[1].TaskTitle)
	}
	if !evs[0].TriggerAt.Before(now) {
		t.Fatal("today's reminder should already be due")
	}
}
