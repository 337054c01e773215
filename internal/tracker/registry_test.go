package tracker

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sandeepkv93/taskbook/internal/storage"
)

func TestCategoryAddRejectsDuplicatesAndBlanks(t *testing.T) {
	tr := openTracker(t, &memGateway{})
	ctx := t.Context()

	if err := tr.AddCategory(ctx, "Work"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tr.AddCategory(ctx, "Work"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate err = %v", err)
	}
	if err := tr.AddCategory(ctx, " "); !errors.Is(err, ErrBlankName) {
		t.Fatalf("blank err = %v", err)
	}
	if got := tr.Categories(); !reflect.DeepEqual(got, []string{"Personal", "Other", "Work"}) {
		t.Fatalf("categories = %v", got)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	gw := &memGateway{}
	tr := openTracker(t, gw)
	ctx := t.Context()

	if err := tr.AddCategory(ctx, "Work"); err != nil {
		t.Fatalf("add category: %v", err)
	}
	personal := addTask(t, tr, "groceries", testToday.AddDays(3))
	work, err := tr.AddTask(ctx, TaskInput{Title: "report", Category: "Work", Priority: "Low", Deadline: testToday.AddDays(3)})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if _, err := tr.AddReminder(ctx, work.ID, model.ReminderOneDay, model.Date{}); err != nil {
		t.Fatalf("add reminder: %v", err)
	}

	removed, err := tr.DeleteCategory(ctx, "Work")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok := tr.Task(work.ID); ok {
		t.Fatal("work task should be gone")
	}
	if _, ok := tr.Task(personal.ID); !ok {
		t.Fatal("personal task should survive")
	}
	if len(tr.Reminders()) != 0 {
		t.Fatal("reminders of deleted tasks should be gone")
	}
	if model.IndexOf(tr.Categories(), "Work") >= 0 {
		t.Fatal("category should be gone from the registry")
	}
}

func TestDeleteCategoryRefusals(t *testing.T) {
	gw := &memGateway{}
	tr := openTracker(t, gw)
	ctx := t.Context()
	addTask(t, tr, "keep", testToday.AddDays(3))
	before := tr.Snapshot()
	saves := gw.saves

	if _, err := tr.DeleteCategory(ctx, "Other"); !errors.Is(err, ErrProtected) {
		t.Fatalf("delete Other err = %v", err)
	}
	if _, err := tr.DeleteCategory(ctx, "Nowhere"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing err = %v", err)
	}
	if !reflect.DeepEqual(tr.Snapshot(), before) || gw.saves != saves {
		t.Fatal("refused deletes changed state")
	}
}

func TestRenameCategoryRetargetsTasks(t *testing.T) {
	tr := openTracker(t, &memGateway{})
	ctx := t.Context()
	a := addTask(t, tr, "a", testToday.AddDays(3))
	b := addTask(t, tr, "b", testToday.AddDays(4))

	if err := tr.RenameCategory(ctx, "Personal", "Home"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got := tr.Categories(); !reflect.DeepEqual(got, []string{"Home", "Other"}) {
		t.Fatalf("categories = %v", got)
	}
	for _, id := range []int{a.ID, b.ID} {
		task, _ := tr.Task(id)
		if task.Category != "Home" {
			t.Fatalf("task %d category = %q", id, task.Category)
		}
	}

	cases := []struct {
		name     string
		old, new string
		want     error
	}{
		{"same name", "Home", "Home", ErrSameName},
		{"protected", "Other", "Misc", ErrProtected},
		{"missing", "Work", "Job", ErrNotFound},
		{"collision", "Home", "Other", ErrDuplicateName},
		{"blank", "Home", "", ErrBlankName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tr.RenameCategory(ctx, tc.old, tc.new); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDeletePriorityReassignsToDefault(t *testing.T) {
	tr := openTracker(t, &memGateway{})
	ctx := t.Context()
	high := addTask(t, tr, "urgent", testToday.AddDays(3))
	low, err := tr.AddTask(ctx, TaskInput{Title: "later", Category: "Other", Priority: "Low", Deadline: testToday.AddDays(3)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	moved, err := tr.DeletePriority(ctx, "High")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if moved != 1 {
		t.Fatalf("moved = %d, want 1", moved)
	}
	if tr.CountTotal() != 2 {
		t.Fatalf("tasks = %d, priority delete must not remove tasks", tr.CountTotal())
	}
	if got, _ := tr.Task(high.ID); got.Priority != "Default" {
		t.Fatalf("reassigned priority = %q", got.Priority)
	}
	if got, _ := tr.Task(low.ID); got.Priority != "Low" {
		t.Fatalf("untouched priority = %q", got.Priority)
	}

	for _, name := range []string{"Default", "default", "DEFAULT"} {
		if _, err := tr.DeletePriority(ctx, name); !errors.Is(err, ErrProtected) {
			t.Fatalf("delete %q err = %v", name, err)
		}
	}
	if _, err := tr.DeletePriority(ctx, "High"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestRenamePriority(t *testing.T) {
	tr := openTracker(t, &memGateway{})
	ctx := t.Context()
	task := addTask(t, tr, "a", testToday.AddDays(3))

	if err := tr.RenamePriority(ctx, "High", "Critical"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got := tr.Priorities(); !reflect.DeepEqual(got, []string{"Default", "Critical", "Medium", "Low"}) {
		t.Fatalf("priorities = %v", got)
	}
	if got, _ := tr.Task(task.ID); got.Priority != "Critical" {
		t.Fatalf("task priority = %q", got.Priority)
	}
	if err := tr.RenamePriority(ctx, "default", "Normal"); !errors.Is(err, ErrProtected) {
		t.Fatalf("rename Default err = %v", err)
	}
	if err := tr.AddPriority(ctx, "Critical"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate add err = %v", err)
	}
}

func TestPriorityNamesIgnoreCase(t *testing.T) {
	tr := openTracker(t, &memGateway{})
	ctx := t.Context()

	if err := tr.AddPriority(ctx, "high"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("add high err = %v", err)
	}
	if err := tr.AddPriority(ctx, "default"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("add default err = %v", err)
	}
	if err := tr.RenamePriority(ctx, "Low", "MEDIUM"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("rename onto Medium err = %v", err)
	}
	if err := tr.RenamePriority(ctx, "Low", "DEFAULT"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("rename onto Default err = %v", err)
	}
	if err := tr.RenamePriority(ctx, "Low", "LOW"); err != nil {
		t.Fatalf("case-only rename: %v", err)
	}
	if got := tr.Priorities(); !reflect.DeepEqual(got, []string{"Default", "High", "Medium", "LOW"}) {
		t.Fatalf("priorities = %v", got)
	}
}

func TestRenamePriorityLeavesCaseVariantTasks(t *testing.T) {
	gw := &memGateway{state: storage.State{
		Tasks: []model.Task{
			{ID: 1, Title: "upper", Category: "Personal", Priority: "High", Deadline: testToday.AddDays(3), Status: model.StatusOpen, Reminders: []model.Reminder{}},
			{ID: 2, Title: "lower", Category: "Personal", Priority: "high", Deadline: testToday.AddDays(3), Status: model.StatusOpen, Reminders: []model.Reminder{}},
		},
		Categories: model.DefaultCategories(),
		Priorities: []string{"Default", "High", "Medium", "Low", "high"},
	}}
	tr := openTracker(t, gw)

	if err := tr.RenamePriority(t.Context(), "High", "Urgent"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got := tr.Priorities(); !reflect.DeepEqual(got, []string{"Default", "Urgent", "Medium", "Low", "high"}) {
		t.Fatalf("priorities = %v", got)
	}
	if got, _ := tr.Task(1); got.Priority != "Urgent" {
		t.Fatalf("task 1 priority = %q", got.Priority)
	}
	if got, _ := tr.Task(2); got.Priority != "high" {
		t.Fatalf("task 2 priority = %q, want it left on high", got.Priority)
	}
}
