package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindflowhq/mindflow/internal/commands"
	"github.com/mindflowhq/mindflow/internal/engine"
	"github.com/mindflowhq/mindflow/internal/model"
	"github.com/mindflowhq/mindflow/internal/views"
)

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.switchView(ViewDashboard), nil
	case "enter":
		// One request in flight at a time; the submission that is pending
		// wins and a second enter is refused.
		if m.ChatPending {
			m.Status = StatusBar{Text: "still waiting for the assistant", IsError: false}
			return m, nil
		}
		text := strings.TrimSpace(m.chatInput.Value())
		m.chatInput.SetValue("")
		if text == "" {
			return m, nil
		}
		m.appendChat(ChatRoleUser, text)

		if commands.IsCommand(text) {
			result, err := m.runCommand(text)
			if err != nil {
				m.appendChat(ChatRoleSystem, err.Error())
				return m, nil
			}
			m.appendChat(ChatRoleSystem, result)
			return m, nil
		}

		m.chatSeq++
		m.ChatPending = true
		return m, tea.Batch(
			m.aiSpinner.Tick,
			chatCmd(m.Gateway, m.chatSeq, text, m.Snapshot),
		)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m *Model) appendChat(role ChatRole, body string) {
	if role == ChatRoleAssistant {
		body = views.RenderMarkdown(body)
	}
	m.ChatHistory = append(m.ChatHistory, ChatEntry{Role: role, Body: body})
	m.syncChatViewport()
}

func (m *Model) syncChatViewport() {
	var b strings.Builder
	for _, entry := range m.ChatHistory {
		b.WriteString(fmt.Sprintf("%s: %s\n", entry.Role, entry.Body))
	}
	m.chatViewport.SetContent(b.String())
	m.chatViewport.GotoBottom()
}

// runCommand wires the parsed slash command to engine mutations. Targets are
// matched by case-insensitive title prefix.
func (m *Model) runCommand(input string) (string, error) {
	cmd, err := commands.Parse(input)
	if err != nil {
		return "", err
	}
	ctx := context.Background()

	result, err := commands.Execute(cmd, commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			task := engine.TaskFromDraft(emptyDraft(), args.Text, m.now())
			snapshot, err := m.Engine.AddTask(ctx, task)
			if err != nil {
				return commands.Result{}, err
			}
			m.Snapshot = snapshot
			m.scheduleTaskAlert(snapshot.Tasks[0])
			return commands.Result{Message: fmt.Sprintf("task added: %s", snapshot.Tasks[0].Title)}, nil
		},
		Habit: func(args commands.HabitArgs) (commands.Result, error) {
			snapshot, err := m.Engine.AddHabit(ctx, args.Name)
			if err != nil {
				return commands.Result{}, err
			}
			m.Snapshot = snapshot
			return commands.Result{Message: fmt.Sprintf("habit added: %s", args.Name)}, nil
		},
		Goal: func(args commands.GoalArgs) (commands.Result, error) {
			snapshot, err := m.Engine.AddGoal(ctx, args.Title, args.TargetDate)
			if err != nil {
				return commands.Result{}, err
			}
			m.Snapshot = snapshot
			return commands.Result{Message: fmt.Sprintf("goal added: %s", args.Title)}, nil
		},
		Progress: func(args commands.ProgressArgs) (commands.Result, error) {
			goal, ok := m.findGoalByPrefix(args.Target)
			if !ok {
				return commands.Result{}, fmt.Errorf("no goal matching %q", args.Target)
			}
			m.Snapshot = m.Engine.UpdateGoalProgress(ctx, goal.ID, args.Percent)
			return commands.Result{Message: fmt.Sprintf("%s progress set", goal.Title)}, nil
		},
		Done: func(args commands.DoneArgs) (commands.Result, error) {
			task, ok := m.findTaskByPrefix(args.Target)
			if !ok {
				return commands.Result{}, fmt.Errorf("no task matching %q", args.Target)
			}
			snapshot, err := m.Engine.UpdateTask(ctx, task.ID, taskStatusPatch(model.StatusDone))
			if err != nil {
				return commands.Result{}, err
			}
			m.Snapshot = snapshot
			if m.Notifier != nil {
				m.Notifier.Cancel(task.ID)
			}
			return commands.Result{Message: fmt.Sprintf("task done: %s", task.Title)}, nil
		},
		Delete: func(args commands.DeleteArgs) (commands.Result, error) {
			task, ok := m.findTaskByPrefix(args.Target)
			if !ok {
				return commands.Result{}, fmt.Errorf("no task matching %q", args.Target)
			}
			m.Snapshot = m.Engine.DeleteTask(ctx, task.ID)
			if m.Notifier != nil {
				m.Notifier.Cancel(task.ID)
			}
			return commands.Result{Message: fmt.Sprintf("task deleted: %s", task.Title)}, nil
		},
	})
	if err != nil {
		return "", err
	}
	return result.Message, nil
}

func (m Model) findTaskByPrefix(prefix string) (model.Task, bool) {
	needle := strings.ToLower(strings.TrimSpace(prefix))
	for _, task := range m.Snapshot.Tasks {
		if strings.HasPrefix(strings.ToLower(task.Title), needle) {
			return task, true
		}
	}
	return model.Task{}, false
}

func (m Model) findGoalByPrefix(prefix string) (model.Goal, bool) {
	needle := strings.ToLower(strings.TrimSpace(prefix))
	for _, goal := range m.Snapshot.Goals {
		if strings.HasPrefix(strings.ToLower(goal.Title), needle) {
			return goal, true
		}
	}
	return model.Goal{}, false
}
