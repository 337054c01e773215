package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskbook/internal/commands"
	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sandeepkv93/taskbook/internal/tracker"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.runCommand(m.Palette.Input)
		m.closePalette()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

// runCommand parses and executes one palette command against the tracker,
// then refreshes the lists and the reminder schedule.
func (m Model) runCommand(raw string) Model {
	cmd, err := commands.Parse(strings.TrimSpace(raw))
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	ctx := m.ctx
	tr := m.Tracker
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			due := a.Due
			if due == "" {
				due = "tomorrow"
			}
			deadline, err := commands.ResolveDate(due, tr.Today())
			if err != nil {
				return commands.Result{}, err
			}
			task, err := tr.AddTask(ctx, tracker.TaskInput{
				Title:    a.Title,
				Category: orDefault(a.Category, model.ProtectedCategory),
				Priority: orDefault(a.Priority, model.ProtectedPriority),
				Deadline: deadline,
			})
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewTasks
			m.SelectedTaskID = task.ID
			return commands.Result{Message: fmt.Sprintf("added task #%d: %s (due %s, %s)", task.ID, task.Title, task.Deadline, task.Status)}, nil
		},
		Done: func(a commands.TaskArgs) (commands.Result, error) {
			task, err := tr.CompleteTask(ctx, a.TaskID)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("completed task #%d: %s", task.ID, task.Title)}, nil
		},
		Delete: func(a commands.TaskArgs) (commands.Result, error) {
			if err := tr.DeleteTask(ctx, a.TaskID); err != nil {
				return commands.Result{}, err
			}
			if m.SelectedTaskID == a.TaskID {
				m.SelectedTaskID = 0
			}
			return commands.Result{Message: fmt.Sprintf("deleted task #%d", a.TaskID)}, nil
		},
		Status: func(a commands.StatusArgs) (commands.Result, error) {
			task, ok := tr.Task(a.TaskID)
			if !ok {
				return commands.Result{}, fmt.Errorf("%w: task %d", tracker.ErrNotFound, a.TaskID)
			}
			task, err := tr.UpdateTask(ctx, task.ID, tracker.TaskInput{
				Title:       task.Title,
				Description: task.Description,
				Category:    task.Category,
				Priority:    task.Priority,
				Deadline:    task.Deadline,
			}, model.StatusForEdit(task.Deadline, a.Status, tr.Today()))
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("task #%d is now %s", task.ID, task.Status)}, nil
		},
		Remind: func(a commands.RemindArgs) (commands.Result, error) {
			var custom model.Date
			if a.Type == model.ReminderCustom {
				d, err := commands.ResolveDate(a.Custom, tr.Today())
				if err != nil {
					return commands.Result{}, err
				}
				custom = d
			}
			r, err := tr.AddReminder(ctx, a.TaskID, a.Type, custom)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("reminder #%d for task #%d on %s", r.ID, r.TaskID, r.Date)}, nil
		},
		Unremind: func(a commands.UnremindArgs) (commands.Result, error) {
			if err := tr.DeleteReminder(ctx, a.ReminderID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("deleted reminder #%d", a.ReminderID)}, nil
		},
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			m.Query = QueryState{Mode: QuerySearch, Keyword: a.Keyword}
			m.CurrentView = ViewTasks
			return commands.Result{Message: fmt.Sprintf("%d task(s) match %q", len(tr.Search(a.Keyword)), a.Keyword)}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.Query = QueryState{Mode: QueryFilter, Filter: [3]string{a.Category, a.Priority, a.Status}}
			m.CurrentView = ViewTasks
			return commands.Result{Message: fmt.Sprintf("%d task(s) match the filter", len(tr.Filter(a.Category, a.Priority, a.Status)))}, nil
		},
		Category: func(a commands.RegistryArgs) (commands.Result, error) {
			return applyRegistry(a, "category", registryOps{
				add:    func(name string) error { return tr.AddCategory(ctx, name) },
				rename: func(old, new string) error { return tr.RenameCategory(ctx, old, new) },
				remove: func(name string) (string, error) {
					n, err := tr.DeleteCategory(ctx, name)
					return fmt.Sprintf("%d task(s) removed", n), err
				},
			})
		},
		Priority: func(a commands.RegistryArgs) (commands.Result, error) {
			return applyRegistry(a, "priority", registryOps{
				add:    func(name string) error { return tr.AddPriority(ctx, name) },
				rename: func(old, new string) error { return tr.RenamePriority(ctx, old, new) },
				remove: func(name string) (string, error) {
					n, err := tr.DeletePriority(ctx, name)
					return fmt.Sprintf("%d task(s) moved to %s", n, model.ProtectedPriority), err
				},
			})
		},
		Clear: func() (commands.Result, error) {
			m.Query = QueryState{Mode: QueryAll}
			return commands.Result{Message: "showing all tasks"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m
	}

	m.Status = StatusBar{Text: res.Message, IsError: false}
	m.notify("Command", res.Message, "info")
	m.refresh()
	m.reschedule()
	if saveErr := tr.SaveErr(); saveErr != nil {
		m.reportSaveError(saveErr)
	}
	return m
}

type registryOps struct {
	add    func(name string) error
	rename func(old, new string) error
	remove func(name string) (string, error)
}

func applyRegistry(a commands.RegistryArgs, kind string, ops registryOps) (commands.Result, error) {
	switch a.Action {
	case commands.ActionAdd:
		if err := ops.add(a.Name); err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: fmt.Sprintf("added %s %q", kind, a.Name)}, nil
	case commands.ActionRename:
		if err := ops.rename(a.Name, a.NewName); err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: fmt.Sprintf("renamed %s %q to %q", kind, a.Name, a.NewName)}, nil
	case commands.ActionDelete:
		detail, err := ops.remove(a.Name)
		if err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: fmt.Sprintf("deleted %s %q, %s", kind, a.Name, detail)}, nil
	default:
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown %s action %q", kind, a.Action)}
	}
}

func (m *Model) reportSaveError(err error) {
	if err == nil {
		return
	}
	m.LastError = err
	m.Status = StatusBar{Text: fmt.Sprintf("changes kept in memory but not saved: %v", err), IsError: true}
	m.notify("Save Failed", err.Error(), "error")
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
