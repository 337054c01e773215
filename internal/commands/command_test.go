package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/taskbook/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent due:tomorrow", TypeAdd},
		{"done 3", TypeDone},
		{"/delete #4", TypeDelete},
		{"/status 2 in progress", TypeStatus},
		{"/remind 2 1w", TypeRemind},
		{"/unremind 9", TypeUnremind},
		{"search rent", TypeSearch},
		{"/filter cat:Personal", TypeFilter},
		{"/category add Work", TypeCategory},
		{"/priority rename High Urgent", TypePriority},
		{"/clear", TypeClear},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddOptions(t *testing.T) {
	cmd, err := Parse("/add pay rent due:2026-04-01 cat:Personal pri:High")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := AddArgs{Title: "pay rent", Due: "2026-04-01", Category: "Personal", Priority: "High"}
	if *cmd.Add != want {
		t.Fatalf("add args = %+v, want %+v", *cmd.Add, want)
	}
}

func TestParseStatusAndRemind(t *testing.T) {
	cmd, err := Parse("/status 2 In Progress")
	if err != nil {
		t.Fatalf("parse status: %v", err)
	}
	if cmd.Status.TaskID != 2 || cmd.Status.Status != model.StatusInProgress {
		t.Fatalf("status args = %+v", *cmd.Status)
	}

	cases := []struct {
		in     string
		typ    model.ReminderType
		custom string
	}{
		{"/remind 5 1d", model.ReminderOneDay, ""},
		{"/remind 5 week", model.ReminderOneWeek, ""},
		{"/remind 5 1M", model.ReminderOneMonth, ""},
		{"/remind 5 2026-04-01", model.ReminderCustom, "2026-04-01"},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if cmd.Remind.TaskID != 5 || cmd.Remind.Type != tc.typ || cmd.Remind.Custom != tc.custom {
			t.Fatalf("parse %q = %+v", tc.in, *cmd.Remind)
		}
	}
}

func TestParseFilter(t *testing.T) {
	cmd, err := Parse("/filter cat:Other status:in progress pri:low")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := FilterArgs{Category: "Other", Priority: "low", Status: "In Progress"}
	if *cmd.Filter != want {
		t.Fatalf("filter args = %+v, want %+v", *cmd.Filter, want)
	}
}

func TestParseRejectsBadArguments(t *testing.T) {
	cases := []string{
		"/add",
		"/add due:today",
		"/done",
		"/done abc",
		"/delete 0",
		"/status 1 someday",
		"/remind 1",
		"/unremind x",
		"/search",
		"/filter colour:red",
		"/category add",
		"/category move Work",
		"/priority rename High",
	}
	for _, in := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestResolveDate(t *testing.T) {
	today := model.NewDate(2026, time.March, 10)
	cases := []struct {
		in   string
		want model.Date
	}{
		{"today", today},
		{"Tomorrow", today.AddDays(1)},
		{"+7", today.AddDays(7)},
		{"2026-12-25", model.NewDate(2026, time.December, 25)},
	}
	for _, tc := range cases {
		got, err := ResolveDate(tc.in, today)
		if err != nil {
			t.Fatalf("resolve %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("resolve %q = %s, want %s", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "+x", "-3", "next week"} {
		if _, err := ResolveDate(bad, today); err == nil {
			t.Fatalf("resolve %q: expected error", bad)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteRoutesRegistryByType(t *testing.T) {
	var got []string
	handlers := Handlers{
		Category: func(a RegistryArgs) (Result, error) {
			got = append(got, "category:"+string(a.Action)+":"+a.Name)
			return Result{}, nil
		},
		Priority: func(a RegistryArgs) (Result, error) {
			got = append(got, "priority:"+string(a.Action)+":"+a.Name+">"+a.NewName)
			return Result{}, nil
		},
	}
	for _, in := range []string{"/category delete Work", "/priority rename High Urgent"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := Execute(cmd, handlers); err != nil {
			t.Fatalf("execute %q: %v", in, err)
		}
	}
	if len(got) != 2 || got[0] != "category:delete:Work" || got[1] != "priority:rename:High>Urgent" {
		t.Fatalf("dispatch = %v", got)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("search tasks")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
