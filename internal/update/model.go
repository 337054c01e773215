package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/taskbook/internal/logging"
	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sandeepkv93/taskbook/internal/scheduler"
	"github.com/sandeepkv93/taskbook/internal/tracker"
	"github.com/sirupsen/logrus"
)

type View string

const (
	ViewTasks     View = "Tasks"
	ViewReminders View = "Reminders"
	ViewStats     View = "Stats"
)

type QueryMode string

const (
	QueryAll    QueryMode = "all"
	QuerySearch QueryMode = "search"
	QueryFilter QueryMode = "filter"
)

// QueryState is the active narrowing of the task list.
type QueryState struct {
	Mode    QueryMode
	Keyword string
	Filter  [3]string // category, priority, status
}

func (q QueryState) String() string {
	switch q.Mode {
	case QuerySearch:
		return fmt.Sprintf("search %q", q.Keyword)
	case QueryFilter:
		return fmt.Sprintf("filter category=%s priority=%s status=%s", orAll(q.Filter[0]), orAll(q.Filter[1]), orAll(q.Filter[2]))
	default:
		return ""
	}
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks     string
	Reminders string
	Stats     string
	Help      string
	Quit      string
}

type Model struct {
	CurrentView    View
	SelectedTaskID int
	Query          QueryState
	Tracker        *tracker.Tracker
	Scheduler      *scheduler.Engine
	NotifyHour     int
	Tasks          []model.Task
	Cursor         int
	ReminderCursor int
	ReminderLog    []scheduler.ReminderEvent
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Width          int

	ctx   context.Context
	log   logrus.FieldLogger
	now   func() time.Time
	fired map[firedKey]bool

	taskList       list.Model
	reminderTable  table.Model
	commandInput   textinput.Model
	helpModel      help.Model
	detailViewport viewport.Model
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// DayChangedMsg arrives just after local midnight so overdue tasks are
// swept while the UI stays open.
type DayChangedMsg struct {
	At time.Time
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

// Options wires a Model to its collaborators. Tracker is required.
type Options struct {
	Context        context.Context
	Tracker        *tracker.Tracker
	Scheduler      *scheduler.Engine
	Notifier       DesktopNotifier
	DesktopEnabled bool
	NotifyHour     int
	Loaded         tracker.LoadReport
	Logger         logrus.FieldLogger
	Now            func() time.Time
}

func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logging.Quiet()
	}
	m := Model{
		CurrentView:    ViewTasks,
		Query:          QueryState{Mode: QueryAll},
		Tracker:        opts.Tracker,
		Scheduler:      opts.Scheduler,
		NotifyHour:     opts.NotifyHour,
		DesktopEnabled: opts.DesktopEnabled,
		notifier:       NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Tasks:     "1",
			Reminders: "2",
			Stats:     "3",
			Help:      "?",
			Quit:      "q",
		},
		ctx:   ctx,
		log:   log,
		now:   now,
		fired: make(map[firedKey]bool),
	}
	if opts.Notifier != nil {
		m.notifier = opts.Notifier
	}
	m.initBubbleComponents()
	m.refresh()
	m.announceLoad(opts.Loaded)
	return m
}

// announceLoad surfaces the one-time startup report: a failed load or the
// tasks that are delayed.
func (m *Model) announceLoad(r tracker.LoadReport) {
	switch {
	case r.LoadErr != nil:
		m.Status = StatusBar{Text: fmt.Sprintf("could not load %s, starting empty: %v", r.Source, r.LoadErr), IsError: true}
	case len(r.Delayed) > 0:
		m.Status = StatusBar{Text: fmt.Sprintf("%d delayed task(s)", len(r.Delayed)), IsError: false}
		for _, task := range r.Delayed {
			m.notify("Delayed", fmt.Sprintf("#%d %s was due %s", task.ID, task.Title, task.Deadline), "warn")
		}
	}
	if r.Repaired > 0 {
		m.notify("Repaired", fmt.Sprintf("fixed reminders on %d loaded task(s)", r.Repaired), "warn")
	}
}

func orAll(v string) string {
	if v == "" {
		return tracker.FilterAll
	}
	return v
}
