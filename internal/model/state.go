package model

import (
	"errors"
	"time"
)

var ErrUnparsableDate = errors.New("model: unparsable date")

// AppState is the aggregate root and the unit of persistence. It is always
// read and written whole; collections preserve insertion order and each id
// is unique within its collection.
type AppState struct {
	Tasks             []Task  `json:"tasks"`
	Habits            []Habit `json:"habits"`
	Goals             []Goal  `json:"goals"`
	ProductivityScore int     `json:"productivityScore"`
}

// Clone returns a deep copy so snapshots handed to consumers never alias the
// engine's current state.
func (s AppState) Clone() AppState {
	out := AppState{
		Tasks:             make([]Task, len(s.Tasks)),
		Habits:            make([]Habit, len(s.Habits)),
		Goals:             make([]Goal, len(s.Goals)),
		ProductivityScore: s.ProductivityScore,
	}
	copy(out.Tasks, s.Tasks)
	for i, h := range s.Habits {
		if h.History != nil {
			history := make(map[string]bool, len(h.History))
			for k, v := range h.History {
				history[k] = v
			}
			h.History = history
		}
		out.Habits[i] = h
	}
	for i, g := range s.Goals {
		if g.Subtasks != nil {
			subtasks := make([]Subtask, len(g.Subtasks))
			copy(subtasks, g.Subtasks)
			g.Subtasks = subtasks
		}
		out.Goals[i] = g
	}
	return out
}

// DefaultState is the state the app starts from when storage is empty,
// absent, or unreadable.
func DefaultState(now time.Time) AppState {
	return AppState{
		Tasks: []Task{
			{
				ID:               "task-welcome-1",
				Title:            "Design MindFlow Landing Page",
				Description:      "Create high-fidelity mockups for the landing page.",
				Priority:         PriorityHigh,
				Status:           StatusTodo,
				DueDate:          now,
				EstimatedMinutes: 120,
				Category:         "Design",
			},
			{
				ID:               "task-welcome-2",
				Title:            "Integration Gemini API",
				Description:      "Implement task parsing and productivity suggestions.",
				Priority:         PriorityMedium,
				Status:           StatusInProgress,
				DueDate:          now,
				EstimatedMinutes: 90,
				Category:         "Engineering",
			},
		},
		Habits: []Habit{
			{ID: "habit-welcome-1", Name: "Morning Meditation", Frequency: FrequencyDaily, Streak: 12, CompletedToday: true, History: map[string]bool{}},
			{ID: "habit-welcome-2", Name: "Coding Practice", Frequency: FrequencyDaily, Streak: 5, History: map[string]bool{}},
		},
		Goals: []Goal{
			{ID: "goal-welcome-1", Title: "Learn AI App Development", TargetDate: now.AddDate(0, 6, 0), Progress: 65},
		},
		ProductivityScore: 82,
	}
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// ParseDate accepts the date shapes the app has historically persisted:
// RFC3339 with or without sub-second precision, and bare dates.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsableDate
}

// DayKey is the habit-history key for a point in time.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
