package engine

import (
	"strings"
	"time"

	"github.com/mindflowhq/mindflow/internal/assist"
	"github.com/mindflowhq/mindflow/internal/model"
)

const (
	defaultCategory         = "General"
	defaultEstimatedMinutes = 30
)

// TaskFromDraft turns a parsed draft into a full task. Every missing field
// gets the quick-capture default, so even an empty draft yields a usable
// task titled after the raw input.
func TaskFromDraft(draft assist.TaskDraft, raw string, now time.Time) model.Task {
	task := model.Task{
		Title:            strings.TrimSpace(draft.Title),
		Description:      draft.Description,
		Priority:         model.Priority(draft.Priority),
		Status:           model.StatusTodo,
		Category:         draft.Category,
		EstimatedMinutes: int(draft.EstimatedMinutes),
		DueDate:          now,
	}
	if task.Title == "" {
		task.Title = strings.TrimSpace(raw)
	}
	if !task.Priority.IsValid() {
		task.Priority = model.PriorityMedium
	}
	if task.EstimatedMinutes <= 0 {
		task.EstimatedMinutes = defaultEstimatedMinutes
	}
	if task.Category == "" {
		task.Category = defaultCategory
	}
	if draft.DueDate != "" {
		if due, err := model.ParseDate(draft.DueDate); err == nil {
			task.DueDate = due
		}
	}
	return task
}
