package update

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindflowhq/mindflow/internal/engine"
	"github.com/mindflowhq/mindflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Notifier != nil {
		return waitForAlertCmd(m.Notifier.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case spinner.TickMsg:
		if m.ChatPending || m.SuggestionPending {
			var cmd tea.Cmd
			m.aiSpinner, cmd = m.aiSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case TaskDraftMsg:
		return m.onTaskDraft(typed)

	case SuggestionMsg:
		if typed.Seq != m.suggestSeq {
			return m, nil
		}
		m.SuggestionPending = false
		if typed.Err != nil || typed.Text == "" {
			m.Suggestion = views.RenderMarkdown(fallbackSuggestion())
			m.Status = StatusBar{Text: "coach unavailable, showing a default tip", IsError: false}
			return m, nil
		}
		m.Suggestion = views.RenderMarkdown(typed.Text)
		m.Status = StatusBar{Text: "coach tips ready", IsError: false}
		return m, nil

	case ChatReplyMsg:
		if typed.Seq != m.chatSeq {
			return m, nil
		}
		m.ChatPending = false
		body := typed.Text
		if typed.Err != nil || body == "" {
			body = fallbackChatReply()
		}
		m.appendChat(ChatRoleAssistant, body)
		return m, nil

	case FocusTickMsg:
		return m.onFocusTick()

	case DueAlertMsg:
		m.Alerts = append(m.Alerts, typed.Alert)
		if len(m.Alerts) > 5 {
			m.Alerts = m.Alerts[len(m.Alerts)-5:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("due now: %s", typed.Alert.Title), IsError: false}
		if m.Notifier != nil {
			return m, waitForAlertCmd(m.Notifier.C())
		}
		return m, nil

	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m = m.switchView(typed.View)
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Capturing {
		return m.handleCaptureKey(msg)
	}
	if m.CurrentView == ViewChat {
		return m.handleChatKey(msg)
	}

	switch keyStr {
	case m.Keys.Dashboard:
		return m.switchView(ViewDashboard), nil
	case m.Keys.Tasks:
		return m.switchView(ViewTasks), nil
	case m.Keys.Calendar:
		return m.switchView(ViewCalendar), nil
	case m.Keys.Focus:
		return m.switchView(ViewFocus), nil
	case m.Keys.Habits:
		return m.switchView(ViewHabits), nil
	case m.Keys.Goals:
		return m.switchView(ViewGoals), nil
	case m.Keys.Stats:
		return m.switchView(ViewStats), nil
	case m.Keys.Chat:
		return m.switchView(ViewChat), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewHabits:
		return m.handleHabitsKey(msg)
	case ViewGoals:
		return m.handleGoalsKey(msg)
	case ViewStats:
		return m.handleStatsKey(msg)
	case ViewCalendar:
		return m.handleCalendarKey(msg)
	case ViewFocus:
		return m.handleFocusKey(msg)
	}
	return m, nil
}

func (m Model) switchView(view View) Model {
	m.CurrentView = view
	m.Capturing = false
	m.quickAddInput.Blur()
	if view == ViewChat {
		m.chatInput.Focus()
	} else {
		m.chatInput.Blur()
	}
	if view == ViewFocus {
		m.bootstrapFocusTask()
	}
	return m
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "s" && !m.SuggestionPending {
		m.suggestSeq++
		m.SuggestionPending = true
		m.Status = StatusBar{Text: "asking the coach...", IsError: false}
		return m, tea.Batch(
			m.aiSpinner.Tick,
			suggestCmd(m.Gateway, m.suggestSeq, m.Snapshot.Tasks, m.Snapshot.Habits),
		)
	}
	return m, nil
}

func (m Model) handleStatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "+", "=":
		m.Snapshot = m.Engine.SetProductivityScore(context.Background(), m.Snapshot.ProductivityScore+5)
		return m, nil
	case "-":
		m.Snapshot = m.Engine.SetProductivityScore(context.Background(), m.Snapshot.ProductivityScore-5)
		return m, nil
	}
	return m, nil
}

// onTaskDraft finalizes a quick capture. A failed or stale parse never loses
// the capture: the raw text becomes the task title with defaults.
func (m Model) onTaskDraft(msg TaskDraftMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.parseSeq {
		return m, nil
	}
	draft := msg.Draft
	if msg.Err != nil {
		draft = emptyDraft()
	}
	task := engine.TaskFromDraft(draft, msg.Raw, m.now())
	snapshot, err := m.Engine.AddTask(context.Background(), task)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("add task failed: %v", err), IsError: true}
		return m, nil
	}
	m.Snapshot = snapshot
	m.scheduleTaskAlert(snapshot.Tasks[0])
	m.Status = StatusBar{Text: fmt.Sprintf("task added: %s", snapshot.Tasks[0].Title), IsError: false}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("mindflow | view: %s", m.CurrentView),
		LeftPane:      m.renderLeftPane(),
		RightPane:     m.renderRightPane(),
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  m.renderAlerts(),
		Footer: fmt.Sprintf("keys: %s-%s views | %s help | %s quit",
			m.Keys.Dashboard, m.Keys.Chat, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewDashboard, ViewTasks, ViewCalendar, ViewFocus, ViewHabits, ViewGoals, ViewStats, ViewChat:
		return true
	default:
		return false
	}
}
