package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sandeepkv93/taskbook/internal/scheduler"
	"github.com/sirupsen/logrus"
)

// firedKey identifies a reminder occurrence. Ids alone are not enough since
// the id of a deleted reminder can be handed out again.
type firedKey struct {
	reminderID int
	taskID     int
	date       model.Date
}

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

// reschedule replaces the engine's queue with the tracker's current
// reminders. Reminders that already fired this session are not queued again.
func (m *Model) reschedule() {
	if m.Scheduler == nil || m.Tracker == nil {
		return
	}
	pending := make([]model.Reminder, 0)
	for _, r := range m.Tracker.Reminders() {
		if !m.fired[firedKey{r.ID, r.TaskID, r.Date}] {
			pending = append(pending, r)
		}
	}
	events := scheduler.Plan(pending, m.taskTitles(), m.NotifyHour, m.now())
	n, err := m.Scheduler.Replace(events)
	if err != nil {
		m.log.WithError(err).Warn("could not reschedule reminders")
		return
	}
	m.log.WithField("queued", n).Debug("reminders rescheduled")
}

// applyReminder reports a fired reminder once, unless its task is gone or
// completed, or the reminder was removed after it was queued.
func (m *Model) applyReminder(ev scheduler.ReminderEvent) {
	key := firedKey{ev.ReminderID, ev.TaskID, ev.Date}
	if m.fired[key] {
		return
	}
	m.fired[key] = true
	task, ok := m.Tracker.Task(ev.TaskID)
	if !ok || task.Status == model.StatusCompleted {
		m.log.WithFields(logrus.Fields{"reminder": ev.ReminderID, "task": ev.TaskID}).Debug("stale reminder ignored")
		return
	}
	if _, ok := task.ReminderByID(ev.ReminderID); !ok {
		return
	}
	text := fmt.Sprintf("reminder: #%d %s is due %s (%s)", task.ID, task.Title, task.Deadline, ev.Type)
	m.Status = StatusBar{Text: text, IsError: task.Status == model.StatusDelayed}
	m.notify("Reminder", text, "warn")
}

func (m Model) taskTitles() map[int]string {
	titles := make(map[int]string)
	for _, task := range m.Tracker.Tasks() {
		titles[task.ID] = task.Title
	}
	return titles
}
