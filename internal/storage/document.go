package storage

import (
	"encoding/json"
	"time"

	"github.com/mindflowhq/mindflow/internal/model"
)

// Storage-level document shapes. Dates travel as ISO-8601 strings and are
// decoded leniently so older snapshots (date-only goal targets, missing
// keys) keep loading.

type stateDocument struct {
	Tasks             []taskDocument  `json:"tasks"`
	Habits            []habitDocument `json:"habits"`
	Goals             []goalDocument  `json:"goals"`
	ProductivityScore int             `json:"productivityScore"`
}

type taskDocument struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Priority         string `json:"priority"`
	Status           string `json:"status"`
	DueDate          string `json:"dueDate"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
	Category         string `json:"category"`
}

type habitDocument struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Frequency      string          `json:"frequency"`
	Streak         int             `json:"streak"`
	CompletedToday bool            `json:"completedToday"`
	History        map[string]bool `json:"history"`
}

type goalDocument struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	TargetDate string            `json:"targetDate"`
	Progress   int               `json:"progress"`
	Subtasks   []subtaskDocument `json:"subtasks"`
}

type subtaskDocument struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func encodeState(state model.AppState) ([]byte, error) {
	doc := stateDocument{
		Tasks:             make([]taskDocument, 0, len(state.Tasks)),
		Habits:            make([]habitDocument, 0, len(state.Habits)),
		Goals:             make([]goalDocument, 0, len(state.Goals)),
		ProductivityScore: state.ProductivityScore,
	}
	for _, t := range state.Tasks {
		doc.Tasks = append(doc.Tasks, taskDocument{
			ID:               t.ID,
			Title:            t.Title,
			Description:      t.Description,
			Priority:         string(t.Priority),
			Status:           string(t.Status),
			DueDate:          formatTime(t.DueDate),
			EstimatedMinutes: t.EstimatedMinutes,
			Category:         t.Category,
		})
	}
	for _, h := range state.Habits {
		history := h.History
		if history == nil {
			history = map[string]bool{}
		}
		doc.Habits = append(doc.Habits, habitDocument{
			ID:             h.ID,
			Name:           h.Name,
			Frequency:      string(h.Frequency),
			Streak:         h.Streak,
			CompletedToday: h.CompletedToday,
			History:        history,
		})
	}
	for _, g := range state.Goals {
		subtasks := make([]subtaskDocument, 0, len(g.Subtasks))
		for _, s := range g.Subtasks {
			subtasks = append(subtasks, subtaskDocument{ID: s.ID, Text: s.Text, Completed: s.Completed})
		}
		doc.Goals = append(doc.Goals, goalDocument{
			ID:         g.ID,
			Title:      g.Title,
			TargetDate: formatTime(g.TargetDate),
			Progress:   g.Progress,
			Subtasks:   subtasks,
		})
	}
	return json.Marshal(doc)
}

func decodeState(raw []byte) (model.AppState, error) {
	var doc stateDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.AppState{}, err
	}

	state := model.AppState{
		Tasks:             make([]model.Task, 0, len(doc.Tasks)),
		Habits:            make([]model.Habit, 0, len(doc.Habits)),
		Goals:             make([]model.Goal, 0, len(doc.Goals)),
		ProductivityScore: model.ClampProgress(doc.ProductivityScore),
	}
	for _, t := range doc.Tasks {
		state.Tasks = append(state.Tasks, model.Task{
			ID:               t.ID,
			Title:            t.Title,
			Description:      t.Description,
			Priority:         coercePriority(t.Priority),
			Status:           coerceStatus(t.Status),
			DueDate:          parseLenientTime(t.DueDate),
			EstimatedMinutes: max(0, t.EstimatedMinutes),
			Category:         t.Category,
		})
	}
	for _, h := range doc.Habits {
		history := h.History
		if history == nil {
			history = map[string]bool{}
		}
		state.Habits = append(state.Habits, model.Habit{
			ID:             h.ID,
			Name:           h.Name,
			Frequency:      coerceFrequency(h.Frequency),
			Streak:         max(0, h.Streak),
			CompletedToday: h.CompletedToday,
			History:        history,
		})
	}
	for _, g := range doc.Goals {
		subtasks := make([]model.Subtask, 0, len(g.Subtasks))
		for _, s := range g.Subtasks {
			subtasks = append(subtasks, model.Subtask{ID: s.ID, Text: s.Text, Completed: s.Completed})
		}
		state.Goals = append(state.Goals, model.Goal{
			ID:         g.ID,
			Title:      g.Title,
			TargetDate: parseLenientTime(g.TargetDate),
			Progress:   model.ClampProgress(g.Progress),
			Subtasks:   subtasks,
		})
	}
	return state, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseLenientTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := model.ParseDate(value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func coercePriority(value string) model.Priority {
	if p := model.Priority(value); p.IsValid() {
		return p
	}
	return model.PriorityMedium
}

func coerceStatus(value string) model.Status {
	if s := model.Status(value); s.IsValid() {
		return s
	}
	return model.StatusTodo
}

func coerceFrequency(value string) model.Frequency {
	if f := model.Frequency(value); f.IsValid() {
		return f
	}
	return model.FrequencyDaily
}
