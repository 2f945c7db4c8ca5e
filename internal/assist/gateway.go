// Package assist is the boundary to the external text-generation
// collaborator. Every call here is best-effort: callers own deterministic
// fallbacks and a gateway failure must never block a mutation or surface as
// a user-facing error.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/mindflowhq/mindflow/internal/model"
)

var (
	ErrUnavailable = errors.New("assist: gateway unavailable")
	ErrBadResponse = errors.New("assist: malformed gateway response")
)

// FallbackSuggestion is shown whenever the suggestion contract fails.
const FallbackSuggestion = "Pick your highest-priority pending task and give it 25 focused minutes."

// FallbackChatReply is shown whenever the chat contract fails.
const FallbackChatReply = "Error connecting to the assistant. Please try again later."

// TaskDraft is the partial task shape the parse contract returns. Missing
// fields are zero values; the mutation engine fills the defaults.
type TaskDraft struct {
	Title            string  `json:"title,omitempty"`
	Description      string  `json:"description,omitempty"`
	Priority         string  `json:"priority,omitempty"`
	EstimatedMinutes float64 `json:"estimatedMinutes,omitempty"`
	Category         string  `json:"category,omitempty"`
	DueDate          string  `json:"dueDate,omitempty"`
}

// Gateway is the external collaborator contract. Implementations must never
// mutate the state they are handed.
type Gateway interface {
	// ParseTask converts free text into a partial task draft.
	ParseTask(ctx context.Context, text string) (TaskDraft, error)
	// Suggest produces a short coaching message for the given snapshot.
	Suggest(ctx context.Context, tasks []model.Task, habits []model.Habit) (string, error)
	// Chat answers a free-form message given the full current state.
	Chat(ctx context.Context, message string, state model.AppState) (string, error)
}

// Disabled is the gateway used when no API key is configured. Everything
// reports ErrUnavailable so callers take their fallback paths.
type Disabled struct{}

func (Disabled) ParseTask(context.Context, string) (TaskDraft, error) {
	return TaskDraft{}, ErrUnavailable
}

func (Disabled) Suggest(context.Context, []model.Task, []model.Habit) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) Chat(context.Context, string, model.AppState) (string, error) {
	return "", ErrUnavailable
}

// DecodeDraft parses the JSON document the parse contract returns. The shape
// is never trusted blindly: anything unparsable is reported so the caller
// falls back to raw-text task creation.
func DecodeDraft(raw string) (TaskDraft, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return TaskDraft{}, ErrBadResponse
	}
	var draft TaskDraft
	if err := json.Unmarshal([]byte(trimmed), &draft); err != nil {
		return TaskDraft{}, errors.Join(ErrBadResponse, err)
	}
	return draft, nil
}
