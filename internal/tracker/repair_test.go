package tracker

import (
	"reflect"
	"testing"

	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sandeepkv93/taskbook/internal/storage"
)

func TestOpenRepairsLoadedReminders(t *testing.T) {
	deadline := testToday.AddDays(10)
	gw := &memGateway{state: storage.State{
		Tasks: []model.Task{
			{ID: 1, Title: "done", Category: "Personal", Priority: "High", Deadline: deadline, Status: model.StatusCompleted,
				Reminders: []model.Reminder{{ID: 1, TaskID: 1, Type: model.ReminderCustom, Date: deadline.AddDays(4)}}},
			{ID: 2, Title: "open", Category: "Personal", Priority: "High", Deadline: deadline, Status: model.StatusOpen,
				Reminders: []model.Reminder{
					{ID: 2, TaskID: 2, Type: model.ReminderCustom, Date: deadline.AddDays(-2)},
					{ID: 3, TaskID: 2, Type: model.ReminderCustom, Date: deadline.AddDays(1)},
					{ID: 4, TaskID: 2, Type: model.ReminderCustom, Date: deadline.AddDays(-2)},
					{ID: 5, TaskID: 9, Type: model.ReminderOneDay, Date: deadline.AddDays(-1)},
					{ID: 6, TaskID: 2, Type: "fortnight", Date: deadline.AddDays(-3)},
				}},
			{ID: 3, Title: "fine", Category: "Personal", Priority: "High", Deadline: deadline, Status: model.StatusOpen,
				Reminders: []model.Reminder{{ID: 7, TaskID: 3, Type: model.ReminderOneWeek, Date: deadline.AddDays(-7)}}},
		},
		Categories: model.DefaultCategories(),
		Priorities: model.DefaultPriorities(),
	}}
	var report LoadReport
	tr, err := Open(t.Context(), gw, Options{Now: fixedNow, OnLoaded: func(r LoadReport) { report = r }})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	for _, task := range tr.Tasks() {
		if err := task.Validate(); err != nil {
			t.Fatalf("task %d still invalid: %v", task.ID, err)
		}
	}
	if got, _ := tr.Task(1); len(got.Reminders) != 0 {
		t.Fatalf("completed task kept reminders %v", got.Reminders)
	}
	want := []model.Reminder{
		{ID: 2, TaskID: 2, Type: model.ReminderCustom, Date: deadline.AddDays(-2)},
		{ID: 5, TaskID: 2, Type: model.ReminderOneDay, Date: deadline.AddDays(-1)},
	}
	if got, _ := tr.Task(2); !reflect.DeepEqual(got.Reminders, want) {
		t.Fatalf("task 2 reminders = %v, want %v", got.Reminders, want)
	}
	if got, _ := tr.Task(3); len(got.Reminders) != 1 {
		t.Fatalf("valid task lost reminders: %v", got.Reminders)
	}
	if report.Repaired != 2 {
		t.Fatalf("report repaired = %d, want 2", report.Repaired)
	}
	if gw.saves != 1 {
		t.Fatalf("repair saved %d times, want 1", gw.saves)
	}
	if len(gw.state.Tasks[0].Reminders) != 0 {
		t.Fatal("repair was not persisted")
	}
}

func TestOpenValidStateIsNotRewritten(t *testing.T) {
	deadline := testToday.AddDays(5)
	gw := &memGateway{state: storage.State{
		Tasks: []model.Task{
			{ID: 1, Title: "fine", Category: "Personal", Priority: "High", Deadline: deadline, Status: model.StatusOpen,
				Reminders: []model.Reminder{{ID: 1, TaskID: 1, Type: model.ReminderOneDay, Date: deadline.AddDays(-1)}}},
		},
		Categories: model.DefaultCategories(),
		Priorities: model.DefaultPriorities(),
	}}
	tr := openTracker(t, gw)
	if gw.saves != 0 {
		t.Fatalf("valid state saved %d times", gw.saves)
	}
	if got := tr.Reminders(); len(got) != 1 {
		t.Fatalf("reminders = %v", got)
	}
}
