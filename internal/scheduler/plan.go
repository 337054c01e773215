package scheduler

import (
	"sort"
	"time"

	"github.com/sandeepkv93/taskbook/internal/model"
)

// Plan turns reminders into events that trigger at hour o'clock, local to
// now, on each reminder date. Reminders dated before today are left out;
// today's reminders are kept even when the hour has passed so they fire
// right away. titles maps task ids to titles for display.
func Plan(reminders []model.Reminder, titles map[int]string, hour int, now time.Time) []ReminderEvent {
	today := model.DateOf(now)
	loc := now.Location()
	out := make([]ReminderEvent, 0, len(reminders))
	for _, r := range reminders {
		if r.Date.IsZero() || r.Date.Before(today) {
			continue
		}
		out = append(out, ReminderEvent{
			ReminderID: r.ID,
			TaskID:     r.TaskID,
			TaskTitle:  titles[r.TaskID],
			Type:       r.Type,
			Date:       r.Date,
			TriggerAt:  time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), hour, 0, 0, 0, loc),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TriggerAt.Before(out[j].TriggerAt) })
	return out
}
