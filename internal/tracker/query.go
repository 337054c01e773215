package tracker

import (
	"strings"

	"github.com/sandeepkv93/taskbook/internal/model"
)

// FilterAll matches every value in Filter.
const FilterAll = "All"

type Stats struct {
	Total     int
	Completed int
	Delayed   int
	Upcoming  int
}

// Criteria narrows Find. Empty fields match everything.
type Criteria struct {
	Keyword  string
	Category string
	Priority string
}

func (t *Tracker) CountTotal() int {
	return len(t.tasks)
}

func (t *Tracker) CountCompleted() int {
	return t.count(func(task model.Task) bool { return task.Status == model.StatusCompleted })
}

func (t *Tracker) CountDelayed() int {
	return t.count(func(task model.Task) bool { return task.Status == model.StatusDelayed })
}

// CountUpcoming counts unfinished tasks due after today and before today
// plus the configured window, both ends exclusive.
func (t *Tracker) CountUpcoming() int {
	return t.count(t.isUpcoming)
}

// Upcoming returns the tasks CountUpcoming counts.
func (t *Tracker) Upcoming() []model.Task {
	return t.collect(t.isUpcoming)
}

func (t *Tracker) Stats() Stats {
	return Stats{
		Total:     t.CountTotal(),
		Completed: t.CountCompleted(),
		Delayed:   t.CountDelayed(),
		Upcoming:  t.CountUpcoming(),
	}
}

// Delayed returns the tasks currently in Delayed status.
func (t *Tracker) Delayed() []model.Task {
	return t.collect(func(task model.Task) bool { return task.Status == model.StatusDelayed })
}

// Search returns tasks whose title or description contains keyword. The match
// is case-sensitive.
func (t *Tracker) Search(keyword string) []model.Task {
	return t.collect(func(task model.Task) bool {
		return strings.Contains(task.Title, keyword) || strings.Contains(task.Description, keyword)
	})
}

// Filter returns tasks matching every given criterion, ignoring case. An
// empty value or "All" leaves that criterion open.
func (t *Tracker) Filter(category, priority, status string) []model.Task {
	return t.collect(func(task model.Task) bool {
		return matchOpen(category, task.Category) &&
			matchOpen(priority, task.Priority) &&
			matchOpen(status, string(task.Status))
	})
}

// Find matches the keyword against titles ignoring case and requires exact
// category and priority when those are set.
func (t *Tracker) Find(c Criteria) []model.Task {
	keyword := strings.ToLower(c.Keyword)
	return t.collect(func(task model.Task) bool {
		if keyword != "" && !strings.Contains(strings.ToLower(task.Title), keyword) {
			return false
		}
		if c.Category != "" && task.Category != c.Category {
			return false
		}
		return c.Priority == "" || task.Priority == c.Priority
	})
}

func (t *Tracker) isUpcoming(task model.Task) bool {
	today := t.Today()
	return task.Status != model.StatusCompleted &&
		task.Deadline.After(today) &&
		task.Deadline.Before(today.AddDays(t.upcomingDays))
}

func (t *Tracker) count(keep func(model.Task) bool) int {
	n := 0
	for _, task := range t.tasks {
		if keep(task) {
			n++
		}
	}
	return n
}

func matchOpen(want, got string) bool {
	if want == "" || strings.EqualFold(want, FilterAll) {
		return true
	}
	return strings.EqualFold(want, got)
}
