package update

import (
	"fmt"

	"github.com/mindflowhq/mindflow/internal/assist"
	"github.com/mindflowhq/mindflow/internal/engine"
	"github.com/mindflowhq/mindflow/internal/model"
)

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

func emptyDraft() assist.TaskDraft {
	return assist.TaskDraft{}
}

func fallbackSuggestion() string {
	return assist.FallbackSuggestion
}

func fallbackChatReply() string {
	return assist.FallbackChatReply
}

func taskStatusPatch(status model.Status) engine.TaskPatch {
	return engine.TaskPatch{Status: &status}
}

func formatTimer(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}
