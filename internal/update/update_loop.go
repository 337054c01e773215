package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskbook/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler == nil {
		return nextDayCmd(m.now())
	}
	m.reschedule()
	return tea.Batch(waitForReminderCmd(m.Scheduler.C()), nextDayCmd(m.now()))
}

func nextDayCmd(now time.Time) tea.Cmd {
	y, mo, d := now.Date()
	midnight := time.Date(y, mo, d+1, 0, 0, 1, 0, now.Location())
	return tea.Tick(midnight.Sub(now), func(t time.Time) tea.Msg {
		return DayChangedMsg{At: t}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.resizeComponents()
		return m, nil
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Reminders:
			m.CurrentView = ViewReminders
			return m, nil
		case m.Keys.Stats:
			m.CurrentView = ViewStats
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewReminders:
			return m.handleRemindersKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case DayChangedMsg:
		if moved := m.Tracker.SweepOverdue(m.ctx); moved > 0 {
			m.Status = StatusBar{Text: fmt.Sprintf("%d task(s) moved to Delayed", moved), IsError: false}
			m.notify("Delayed", m.Status.Text, "warn")
			if err := m.Tracker.SaveErr(); err != nil {
				m.reportSaveError(err)
			}
		}
		m.refresh()
		m.reschedule()
		return m, nextDayCmd(m.now())
	case ReminderDueMsg:
		m.ReminderLog = append(m.ReminderLog, typed.Event)
		if len(m.ReminderLog) > 20 {
			m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-20:]
		}
		m.applyReminder(typed.Event)
		if m.Scheduler != nil {
			return m, waitForReminderCmd(m.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "x":
		task, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			return m
		}
		m = m.runCommand(fmt.Sprintf("done %d", task.ID))
	}
	m.syncSelectedTask()
	return m
}

func (m Model) handleRemindersKey(msg tea.KeyMsg) Model {
	rows := len(m.reminderTable.Rows())
	switch msg.String() {
	case "j", "down":
		if m.ReminderCursor < rows-1 {
			m.ReminderCursor++
		}
	case "k", "up":
		if m.ReminderCursor > 0 {
			m.ReminderCursor--
		}
	}
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderDetailPane()
	case ViewReminders:
		leftPane = m.renderRemindersView()
		rightPane = m.renderReminderLog()
	case ViewStats:
		leftPane = m.renderStatsView()
	}
	rightPane += m.renderCommandPalette() + m.renderHelpIfVisible()

	selected := "-"
	if m.SelectedTaskID > 0 {
		selected = fmt.Sprintf("#%d", m.SelectedTaskID)
	}
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskbook | view: %s | selected: %s | today: %s", m.CurrentView, selected, m.Tracker.Today()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Width:        m.Width,
		Footer:       fmt.Sprintf("keys: %s tasks | %s reminders | %s stats | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Reminders, m.Keys.Stats, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewReminders, ViewStats:
		return true
	default:
		return false
	}
}
