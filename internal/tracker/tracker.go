// Package tracker is the task, category, priority and reminder engine. A
// Tracker owns the in-memory state, enforces the cross-entity rules, and
// writes a full snapshot through its storage.Gateway after every successful
// mutation.
//
// A Tracker does no locking. Callers that share one between goroutines must
// serialize access themselves.
package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/taskbook/internal/logging"
	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sandeepkv93/taskbook/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound        = errors.New("tracker: not found")
	ErrBlankName       = errors.New("tracker: name is required")
	ErrDuplicateName   = errors.New("tracker: name already exists")
	ErrSameName        = errors.New("tracker: new name equals old name")
	ErrProtected       = errors.New("tracker: protected entry")
	ErrUnknownCategory = errors.New("tracker: unknown category")
	ErrUnknownPriority = errors.New("tracker: unknown priority")
	ErrTaskCompleted   = errors.New("tracker: task is completed")
	ErrNilGateway      = errors.New("tracker: nil storage gateway")
)

const DefaultUpcomingDays = 7

type Options struct {
	Logger logrus.FieldLogger
	// Now is the clock used for "today". Defaults to time.Now.
	Now func() time.Time
	// UpcomingDays bounds CountUpcoming; zero means DefaultUpcomingDays.
	UpcomingDays int
	// OnLoaded runs once after the initial load and overdue sweep.
	OnLoaded func(LoadReport)
	// OnSaveError receives every persistence failure after it is logged.
	OnSaveError func(error)
}

// LoadReport summarizes startup for callers that want to show a one-time
// notice, such as the list of delayed tasks.
type LoadReport struct {
	Source   string
	LoadErr  error
	Repaired int
	Swept    int
	Delayed  []model.Task
}

type Tracker struct {
	store        storage.Gateway
	log          logrus.FieldLogger
	now          func() time.Time
	upcomingDays int
	onSaveError  func(error)

	tasks      []model.Task
	categories []string
	priorities []string
	saveErr    error
}

// Open loads state from store, seeds the registry defaults, repairs loaded
// reminders that break the reminder rules, runs the overdue sweep, and fires
// opts.OnLoaded. A failed load is logged and the tracker
// starts empty; it is reported in LoadReport.LoadErr but not returned.
func Open(ctx context.Context, store storage.Gateway, opts Options) (*Tracker, error) {
	if store == nil {
		return nil, ErrNilGateway
	}
	t := newTracker(store, opts)

	state, err := store.Load(ctx)
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"op":    "load",
			"store": store.Describe(),
			"error": err,
		}).Error("could not load state; starting empty")
		state = storage.EmptyState()
	}
	t.tasks = state.Tasks
	t.categories = model.EnsureRegistry(state.Categories, model.DefaultCategories(), model.ProtectedCategory)
	t.priorities = model.EnsureRegistry(state.Priorities, model.DefaultPriorities(), model.ProtectedPriority)
	for i := range t.tasks {
		if t.tasks[i].Reminders == nil {
			t.tasks[i].Reminders = []model.Reminder{}
		}
	}
	t.log.WithFields(logrus.Fields{
		"store":      store.Describe(),
		"tasks":      len(t.tasks),
		"categories": len(t.categories),
		"priorities": len(t.priorities),
	}).Debug("state loaded")

	repaired := t.repairLoaded(ctx)
	swept := t.SweepOverdue(ctx)
	if opts.OnLoaded != nil {
		opts.OnLoaded(LoadReport{
			Source:   store.Describe(),
			LoadErr:  err,
			Repaired: repaired,
			Swept:    swept,
			Delayed: t.Delayed(),
		})
	}
	return t, nil
}

func newTracker(store storage.Gateway, opts Options) *Tracker {
	log := opts.Logger
	if log == nil {
		log = logging.Quiet()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	days := opts.UpcomingDays
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	return &Tracker{
		store:        store,
		log:          log,
		now:          now,
		upcomingDays: days,
		onSaveError:  opts.OnSaveError,
	}
}

// Today is the current calendar day according to the tracker's clock.
func (t *Tracker) Today() model.Date {
	return model.DateOf(t.now())
}

// SaveErr returns the error from the most recent save, or nil if it
// succeeded. In-memory state stays authoritative either way.
func (t *Tracker) SaveErr() error {
	return t.saveErr
}

// Flush writes the current state again, typically after SaveErr reported a
// failure.
func (t *Tracker) Flush(ctx context.Context) error {
	t.commit(ctx, "flush")
	return t.saveErr
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() storage.State {
	tasks := make([]model.Task, len(t.tasks))
	for i, task := range t.tasks {
		tasks[i] = task.Clone()
	}
	return storage.State{
		Tasks:      tasks,
		Categories: append([]string{}, t.categories...),
		Priorities: append([]string{}, t.priorities...),
	}
}

func (t *Tracker) commit(ctx context.Context, op string) {
	err := t.store.Save(ctx, t.Snapshot())
	t.saveErr = err
	if err == nil {
		t.log.WithField("op", op).Debug("state saved")
		return
	}
	t.log.WithFields(logrus.Fields{
		"op":    op,
		"store": t.store.Describe(),
		"error": err,
	}).Error("could not save state; keeping in-memory changes")
	if t.onSaveError != nil {
		t.onSaveError(err)
	}
}
