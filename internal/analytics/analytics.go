// Package analytics computes dashboard figures from a state snapshot.
// Everything here is pure and recomputed on every call; nothing is cached.
package analytics

import (
	"time"

	"github.com/mindflowhq/mindflow/internal/model"
)

// CompletedCount is the number of tasks marked Done.
func CompletedCount(state model.AppState) int {
	count := 0
	for _, t := range state.Tasks {
		if t.Status == model.StatusDone {
			count++
		}
	}
	return count
}

// PendingTasks returns the not-Done tasks in stored order. Callers slice it
// to a small prefix for "up next" views.
func PendingTasks(state model.AppState) []model.Task {
	out := make([]model.Task, 0, len(state.Tasks))
	for _, t := range state.Tasks {
		if t.Status != model.StatusDone {
			out = append(out, t)
		}
	}
	return out
}

// CompletionRatio is completed over total with the denominator floored at 1,
// so an empty task list yields 0 rather than a division error.
func CompletionRatio(state model.AppState) float64 {
	total := len(state.Tasks)
	if total < 1 {
		total = 1
	}
	return float64(CompletedCount(state)) / float64(total)
}

type CategoryCount struct {
	Label string
	Count int
}

// CategoryDistribution buckets tasks by category in first-seen order. An
// empty task list yields a single synthetic "None" bucket so chart consumers
// always have at least one segment.
func CategoryDistribution(state model.AppState) []CategoryCount {
	if len(state.Tasks) == 0 {
		return []CategoryCount{{Label: "None", Count: 1}}
	}
	index := make(map[string]int, len(state.Tasks))
	out := make([]CategoryCount, 0, 4)
	for _, t := range state.Tasks {
		label := t.Category
		if label == "" {
			label = "None"
		}
		if i, ok := index[label]; ok {
			out[i].Count++
			continue
		}
		index[label] = len(out)
		out = append(out, CategoryCount{Label: label, Count: 1})
	}
	return out
}

// LongestHabitStreak is the maximum streak across habits, 0 when none exist.
func LongestHabitStreak(state model.AppState) int {
	longest := 0
	for _, h := range state.Habits {
		if h.Streak > longest {
			longest = h.Streak
		}
	}
	return longest
}

// HabitCompletionRate is the share of habits completed today, in [0,1].
func HabitCompletionRate(state model.AppState) float64 {
	if len(state.Habits) == 0 {
		return 0
	}
	done := 0
	for _, h := range state.Habits {
		if h.CompletedToday {
			done++
		}
	}
	return float64(done) / float64(len(state.Habits))
}

// EstimatedPendingMinutes sums the estimates of not-Done tasks.
func EstimatedPendingMinutes(state model.AppState) int {
	total := 0
	for _, t := range state.Tasks {
		if t.Status != model.StatusDone {
			total += t.EstimatedMinutes
		}
	}
	return total
}

// DaysUntil counts whole days remaining until date, rounding partial days up
// and never going negative. Used for goal countdowns.
func DaysUntil(date, now time.Time) int {
	if !date.After(now) {
		return 0
	}
	remaining := date.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// TasksOnDay returns tasks whose due date falls on the same calendar day.
func TasksOnDay(state model.AppState, day time.Time) []model.Task {
	out := make([]model.Task, 0)
	y, m, d := day.Date()
	for _, t := range state.Tasks {
		ty, tm, td := t.DueDate.Date()
		if ty == y && tm == m && td == d {
			out = append(out, t)
		}
	}
	return out
}
