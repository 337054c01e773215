package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sandeepkv93/taskbook/internal/tracker"
)

type TasksPanelData struct {
	Query    string
	ListView string
	Count    int
}

type RemindersPanelData struct {
	TableView string
	Count     int
	Today     string
}

type StatsPanelData struct {
	Stats      tracker.Stats
	Categories []string
	Priorities []string
	Delayed    []model.Task
	Upcoming   []model.Task
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.Query != "" {
		b.WriteString(fmt.Sprintf("showing: %s (%d)\n", data.Query, data.Count))
	}
	b.WriteString("actions: [j/k]move [x]complete [/]command\n")
	if data.Count == 0 {
		b.WriteString("(no tasks)")
		return b.String()
	}
	b.WriteString(data.ListView)
	return strings.TrimSpace(b.String())
}

func RenderRemindersPanel(data RemindersPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("reminders (today %s):\n", data.Today))
	b.WriteString("actions: [j/k]move [/]remind, /unremind\n")
	if data.Count == 0 {
		b.WriteString("(no reminders)")
		return b.String()
	}
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(StatsLine(data.Stats) + "\n")
	b.WriteString("\ncategories: " + strings.Join(data.Categories, ", ") + "\n")
	b.WriteString("priorities: " + strings.Join(data.Priorities, ", ") + "\n")
	renderTaskSection(&b, "Delayed", data.Delayed)
	renderTaskSection(&b, "Upcoming", data.Upcoming)
	return strings.TrimSpace(b.String())
}

// StatsLine is the one-line summary of the counters.
func StatsLine(s tracker.Stats) string {
	return fmt.Sprintf("total: %d | completed: %d | delayed: %d | upcoming: %d",
		s.Total, s.Completed, s.Delayed, s.Upcoming)
}

// TaskDetail renders one task with its reminders and markdown description.
func TaskDetail(task model.Task, width int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("#%d %s", task.ID, task.Title)) + "\n")
	b.WriteString(fmt.Sprintf("category: %s\npriority: %s\nstatus: %s\ndeadline: %s\n",
		task.Category, task.Priority, StatusLabel(task.Status), task.Deadline))
	if len(task.Reminders) == 0 {
		b.WriteString("reminders: (none)\n")
	} else {
		b.WriteString("reminders:\n")
		for _, r := range task.Reminders {
			b.WriteString(fmt.Sprintf("  #%d %s (%s)\n", r.ID, r.Date, r.Type))
		}
	}
	if desc := RenderMarkdown(task.Description, width); desc != "" {
		b.WriteString("\n" + desc)
	}
	return strings.TrimSpace(b.String())
}

// TaskTable renders tasks as a bordered table for the command line.
func TaskTable(tasks []model.Task) string {
	if len(tasks) == 0 {
		return mutedStyle.Render("(no tasks)")
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "CATEGORY", "PRIORITY", "DEADLINE", "STATUS", "REMINDERS").
		StyleFunc(cellStyle)
	for _, task := range tasks {
		t.Row(
			strconv.Itoa(task.ID),
			task.Title,
			task.Category,
			task.Priority,
			task.Deadline.String(),
			StatusLabel(task.Status),
			strconv.Itoa(len(task.Reminders)),
		)
	}
	return t.Render()
}

// ReminderTable renders reminders with the titles of their tasks.
func ReminderTable(reminders []model.Reminder, titles map[int]string) string {
	if len(reminders) == 0 {
		return mutedStyle.Render("(no reminders)")
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TASK", "TITLE", "TYPE", "DATE").
		StyleFunc(cellStyle)
	for _, r := range reminders {
		t.Row(strconv.Itoa(r.ID), strconv.Itoa(r.TaskID), titles[r.TaskID], string(r.Type), r.Date.String())
	}
	return t.Render()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("\nhelp:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

var cellPadding = lipgloss.NewStyle().Padding(0, 1)

func cellStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return cellPadding.Bold(true)
	}
	return cellPadding
}

func renderTaskSection(b *strings.Builder, title string, tasks []model.Task) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(tasks) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, task := range tasks {
		b.WriteString(fmt.Sprintf("  #%d %s due:%s [%s]\n", task.ID, task.Title, task.Deadline, task.Priority))
	}
}
