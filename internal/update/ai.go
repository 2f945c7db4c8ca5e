package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindflowhq/mindflow/internal/agenda"
	"github.com/mindflowhq/mindflow/internal/assist"
	"github.com/mindflowhq/mindflow/internal/model"
)

const gatewayTimeout = 20 * time.Second

// parseTaskCmd asks the gateway to structure the raw capture text. The raw
// text rides along so a failed parse still produces a task.
func parseTaskCmd(gateway assist.Gateway, seq int, raw string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
		defer cancel()
		draft, err := gateway.ParseTask(ctx, raw)
		return TaskDraftMsg{Seq: seq, Raw: raw, Draft: draft, Err: err}
	}
}

func suggestCmd(gateway assist.Gateway, seq int, tasks []model.Task, habits []model.Habit) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
		defer cancel()
		text, err := gateway.Suggest(ctx, tasks, habits)
		return SuggestionMsg{Seq: seq, Text: text, Err: err}
	}
}

func chatCmd(gateway assist.Gateway, seq int, message string, state model.AppState) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
		defer cancel()
		text, err := gateway.Chat(ctx, message, state)
		return ChatReplyMsg{Seq: seq, Text: text, Err: err}
	}
}

func waitForAlertCmd(alerts <-chan agenda.DueAlert) tea.Cmd {
	return func() tea.Msg {
		alert, ok := <-alerts
		if !ok {
			return nil
		}
		return DueAlertMsg{Alert: alert}
	}
}
