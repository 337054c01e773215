package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(ReminderEvent{ReminderID: 2, TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(ReminderEvent{ReminderID: 1, TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ReminderID != 1 || second.ReminderID != 2 {
		t.Fatalf("unexpected order: first=%d second=%d", first.ReminderID, second.ReminderID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(ReminderEvent{
			ReminderID: i + 1,
			TriggerAt:  now,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(ReminderEvent{ReminderID: 1}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestReplaceDropsPendingEvents(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(ReminderEvent{ReminderID: 1, TriggerAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	n, err := engine.Replace([]ReminderEvent{
		{ReminderID: 2, TriggerAt: now.Add(40 * time.Millisecond)},
		{ReminderID: 3},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if n != 1 || engine.Pending() != 1 {
		t.Fatalf("queued=%d pending=%d, want 1", n, engine.Pending())
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.ReminderID != 2 {
		t.Fatalf("got reminder %d, want 2", ev.ReminderID)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("replaced event still fired: %+v", extra)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestScheduleAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()

	if err := engine.Schedule(ReminderEvent{ReminderID: 1, TriggerAt: time.Now()}); !errors.Is(err, ErrStopped) {
		t.Fatalf("schedule after stop err = %v", err)
	}
	if _, err := engine.Replace(nil); !errors.Is(err, ErrStopped) {
		t.Fatalf("replace after stop err = %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan ReminderEvent, timeout time.Duration) ReminderEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return ReminderEvent{}
	}
}
