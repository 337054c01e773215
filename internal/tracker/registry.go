package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sirupsen/logrus"
)

func (t *Tracker) Categories() []string {
	return append([]string{}, t.categories...)
}

func (t *Tracker) Priorities() []string {
	return append([]string{}, t.priorities...)
}

func (t *Tracker) AddCategory(ctx context.Context, name string) error {
	if err := checkNewName(t.categories, name, model.IndexOf); err != nil {
		return err
	}
	t.categories = append(t.categories, name)
	t.commit(ctx, "add_category")
	return nil
}

// DeleteCategory removes category name and every task filed under it. It
// returns how many tasks were deleted. "Other" cannot be deleted.
func (t *Tracker) DeleteCategory(ctx context.Context, name string) (int, error) {
	if model.IsProtectedCategory(name) {
		return 0, fmt.Errorf("%w: category %q", ErrProtected, name)
	}
	i := model.IndexOf(t.categories, name)
	if i < 0 {
		return 0, fmt.Errorf("%w: category %q", ErrNotFound, name)
	}
	t.categories = append(t.categories[:i], t.categories[i+1:]...)

	kept := t.tasks[:0]
	removed := 0
	for _, task := range t.tasks {
		if task.Category == name {
			removed++
			continue
		}
		kept = append(kept, task)
	}
	t.tasks = kept
	t.commit(ctx, "delete_category")
	t.log.WithFields(logrus.Fields{"category": name, "tasks_deleted": removed}).Info("category deleted")
	return removed, nil
}

// RenameCategory renames old to new in place and retargets its tasks.
func (t *Tracker) RenameCategory(ctx context.Context, old, new string) error {
	if model.IsProtectedCategory(old) {
		return fmt.Errorf("%w: category %q", ErrProtected, old)
	}
	i, err := checkRename(t.categories, old, new, model.IndexOf, model.IndexOf)
	if err != nil {
		return fmt.Errorf("category: %w", err)
	}
	t.categories[i] = new
	for j := range t.tasks {
		if t.tasks[j].Category == old {
			t.tasks[j].Category = new
		}
	}
	t.commit(ctx, "rename_category")
	return nil
}

// AddPriority appends a priority. Names are compared ignoring case, so
// "default" is refused while "Default" exists.
func (t *Tracker) AddPriority(ctx context.Context, name string) error {
	if err := checkNewName(t.priorities, name, model.IndexOfFold); err != nil {
		return err
	}
	t.priorities = append(t.priorities, name)
	t.commit(ctx, "add_priority")
	return nil
}

// DeletePriority removes priority name and moves its tasks to "Default". It
// returns how many tasks were reassigned. "Default" cannot be deleted.
func (t *Tracker) DeletePriority(ctx context.Context, name string) (int, error) {
	if model.IsProtectedPriority(name) {
		return 0, fmt.Errorf("%w: priority %q", ErrProtected, name)
	}
	i := model.IndexOf(t.priorities, name)
	if i < 0 {
		return 0, fmt.Errorf("%w: priority %q", ErrNotFound, name)
	}
	t.priorities = append(t.priorities[:i], t.priorities[i+1:]...)

	moved := 0
	for j := range t.tasks {
		if t.tasks[j].Priority == name {
			t.tasks[j].Priority = model.ProtectedPriority
			moved++
		}
	}
	t.commit(ctx, "delete_priority")
	t.log.WithFields(logrus.Fields{"priority": name, "tasks_reassigned": moved}).Info("priority deleted")
	return moved, nil
}

// RenamePriority renames old to new in place and retargets the tasks filed
// under exactly old. new must not match another priority ignoring case, but
// may recase old itself.
func (t *Tracker) RenamePriority(ctx context.Context, old, new string) error {
	if model.IsProtectedPriority(old) {
		return fmt.Errorf("%w: priority %q", ErrProtected, old)
	}
	i, err := checkRename(t.priorities, old, new, model.IndexOf, model.IndexOfFold)
	if err != nil {
		return fmt.Errorf("priority: %w", err)
	}
	t.priorities[i] = new
	for j := range t.tasks {
		if t.tasks[j].Priority == old {
			t.tasks[j].Priority = new
		}
	}
	t.commit(ctx, "rename_priority")
	return nil
}

type indexFunc func([]string, string) int

func checkNewName(names []string, name string, dup indexFunc) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankName
	}
	if dup(names, name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	return nil
}

// checkRename locates old with find and rejects new when dup finds it at any
// other position.
func checkRename(names []string, old, new string, find, dup indexFunc) (int, error) {
	if old == new {
		return -1, fmt.Errorf("%w: %q", ErrSameName, old)
	}
	if strings.TrimSpace(new) == "" {
		return -1, ErrBlankName
	}
	i := find(names, old)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, old)
	}
	if j := dup(names, new); j >= 0 && j != i {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateName, new)
	}
	return i, nil
}
