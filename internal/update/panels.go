package update

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sandeepkv93/taskbook/internal/views"
)

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 14)
	m.taskList.Title = "Tasks"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Date", Width: 11},
		{Title: "Type", Width: 7},
		{Title: "Task", Width: 28},
	}
	m.reminderTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(12))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.detailViewport = viewport.New(54, 14)
}

func (m *Model) resizeComponents() {
	width := views.PaneWidth(m.Width)
	m.taskList.SetWidth(width)
	m.detailViewport.Width = width
	m.commandInput.Width = max(20, width-8)
	m.helpModel.Width = width
}

// refresh reloads the task list for the active query and keeps the cursor
// on the selected task when it is still listed.
func (m *Model) refresh() {
	if m.Tracker == nil {
		return
	}
	switch m.Query.Mode {
	case QuerySearch:
		m.Tasks = m.Tracker.Search(m.Query.Keyword)
	case QueryFilter:
		m.Tasks = m.Tracker.Filter(m.Query.Filter[0], m.Query.Filter[1], m.Query.Filter[2])
	default:
		m.Tasks = m.Tracker.Tasks()
	}
	for i, task := range m.Tasks {
		if task.ID == m.SelectedTaskID {
			m.Cursor = i
		}
	}
	if m.Cursor >= len(m.Tasks) {
		m.Cursor = max(0, len(m.Tasks)-1)
	}
	m.syncSelectedTask()
	m.syncBubbleData()
}

func (m *Model) syncSelectedTask() {
	task, ok := m.selectedTask()
	if !ok {
		m.SelectedTaskID = 0
		return
	}
	m.SelectedTaskID = task.ID
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		items = append(items, listItem{
			title:       fmt.Sprintf("#%d %s", task.ID, task.Title),
			description: fmt.Sprintf("%s | %s | %s | due %s", task.Status, task.Category, task.Priority, task.Deadline),
		})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		m.taskList.Select(m.Cursor)
	}

	if m.Tracker != nil {
		titles := m.taskTitles()
		reminders := m.Tracker.RemindersFrom(m.Tracker.Today())
		rows := make([]table.Row, 0, len(reminders))
		for _, r := range reminders {
			rows = append(rows, table.Row{strconv.Itoa(r.ID), r.Date.String(), string(r.Type), fmt.Sprintf("#%d %s", r.TaskID, titles[r.TaskID])})
		}
		m.reminderTable.SetRows(rows)
		if m.ReminderCursor >= len(rows) {
			m.ReminderCursor = max(0, len(rows)-1)
		}
		if len(rows) > 0 {
			m.reminderTable.SetCursor(m.ReminderCursor)
		}
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if task, ok := m.selectedTask(); ok {
		m.detailViewport.SetContent(views.TaskDetail(task, m.detailViewport.Width))
	} else {
		m.detailViewport.SetContent("(no selection)")
	}
}

func (m Model) renderTasksView() string {
	return views.RenderTasksPanel(views.TasksPanelData{
		Query:    m.Query.String(),
		ListView: m.taskList.View(),
		Count:    len(m.Tasks),
	})
}

func (m Model) renderDetailPane() string {
	return "details:\n" + m.detailViewport.View()
}

func (m Model) renderRemindersView() string {
	return views.RenderRemindersPanel(views.RemindersPanelData{
		TableView: m.reminderTable.View(),
		Count:     len(m.reminderTable.Rows()),
		Today:     m.Tracker.Today().String(),
	})
}

func (m Model) renderReminderLog() string {
	if len(m.ReminderLog) == 0 {
		return "fired:\n(none yet)"
	}
	var b strings.Builder
	b.WriteString("fired:\n")
	for i := len(m.ReminderLog) - 1; i >= 0; i-- {
		ev := m.ReminderLog[i]
		b.WriteString(fmt.Sprintf("#%d %s (%s) @ %s\n", ev.ReminderID, ev.TaskTitle, ev.Type, ev.TriggerAt.Format("2006-01-02 15:04")))
	}
	return strings.TrimSpace(b.String())
}

func (m Model) renderStatsView() string {
	return views.RenderStatsPanel(views.StatsPanelData{
		Stats:      m.Tracker.Stats(),
		Categories: m.Tracker.Categories(),
		Priorities: m.Tracker.Priorities(),
		Delayed:    m.Tracker.Delayed(),
		Upcoming:   m.Tracker.Upcoming(),
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return "\n" + views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.log.WithError(err).Debug("desktop notification failed")
		}
	}
}
