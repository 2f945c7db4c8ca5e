package update

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindflowhq/mindflow/internal/assist"
	"github.com/mindflowhq/mindflow/internal/engine"
	"github.com/mindflowhq/mindflow/internal/model"
)

type nullStore struct{}

func (nullStore) Load(context.Context) model.AppState        { return model.AppState{} }
func (nullStore) Save(context.Context, model.AppState) error { return nil }

type fakeGateway struct {
	draft      assist.TaskDraft
	draftErr   error
	suggestion string
	suggestErr error
	reply      string
	chatErr    error
}

func (g fakeGateway) ParseTask(context.Context, string) (assist.TaskDraft, error) {
	return g.draft, g.draftErr
}

func (g fakeGateway) Suggest(context.Context, []model.Task, []model.Habit) (string, error) {
	return g.suggestion, g.suggestErr
}

func (g fakeGateway) Chat(context.Context, string, model.AppState) (string, error) {
	return g.reply, g.chatErr
}

func newTestModel(t *testing.T, initial model.AppState, gateway assist.Gateway) Model {
	t.Helper()
	eng := engine.New(initial, nullStore{}, slog.New(slog.DiscardHandler))
	if gateway == nil {
		gateway = assist.Disabled{}
	}
	m := NewModel(eng, gateway, nil, DefaultRuntimeConfig())
	m.now = func() time.Time {
		return time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t, model.AppState{}, nil)
	if m.CurrentView != ViewDashboard {
		t.Fatalf("expected default view %q, got %q", ViewDashboard, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Focus.RemainingSec != 25*60 {
		t.Fatalf("expected 25m focus default, got %d", m.Focus.RemainingSec)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := newTestModel(t, model.AppState{}, nil)
	cases := []struct {
		key  string
		want View
	}{
		{"2", ViewTasks},
		{"3", ViewCalendar},
		{"4", ViewFocus},
		{"5", ViewHabits},
		{"6", ViewGoals},
		{"7", ViewStats},
		{"8", ViewChat},
		{"1", ViewDashboard},
	}
	for _, tc := range cases {
		updated, _ := m.Update(keyRunes(tc.key))
		m = updated.(Model)
		if m.CurrentView != tc.want {
			t.Fatalf("key %q: expected view %q, got %q", tc.key, tc.want, m.CurrentView)
		}
		// Chat captures digits into the input, so leave via esc before the
		// next switch.
		if m.CurrentView == ViewChat {
			updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
			m = updated.(Model)
		}
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := newTestModel(t, model.AppState{}, nil)
	updated, _ := m.Update(SwitchViewMsg{View: ViewGoals})
	next := updated.(Model)
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected goals view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := newTestModel(t, model.AppState{}, nil)
	updated, cmd := m.Update(keyRunes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestQuickAddUsesParsedDraft(t *testing.T) {
	gateway := fakeGateway{draft: assist.TaskDraft{
		Title:            "Buy groceries",
		Priority:         "High",
		EstimatedMinutes: 20,
		Category:         "Home",
	}}
	m := newTestModel(t, model.AppState{}, gateway)

	updated, _ := m.Update(keyRunes("2"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("a"))
	m = updated.(Model)
	if !m.Capturing {
		t.Fatal("expected capture mode after a")
	}

	updated, _ = m.Update(keyRunes("groceries tonight"))
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected parse command after enter")
	}

	msg := cmd()
	draftMsg, ok := msg.(TaskDraftMsg)
	if !ok {
		t.Fatalf("expected TaskDraftMsg, got %T", msg)
	}
	updated, _ = m.Update(draftMsg)
	m = updated.(Model)

	if len(m.Snapshot.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(m.Snapshot.Tasks))
	}
	task := m.Snapshot.Tasks[0]
	if task.Title != "Buy groceries" || task.Priority != model.PriorityHigh {
		t.Fatalf("expected parsed draft applied, got: %#v", task)
	}
	if task.Category != "Home" || task.EstimatedMinutes != 20 {
		t.Fatalf("expected parsed draft applied, got: %#v", task)
	}
}

func TestQuickAddFallsBackOnGatewayError(t *testing.T) {
	m := newTestModel(t, model.AppState{}, fakeGateway{draftErr: assist.ErrUnavailable})

	updated, _ := m.Update(keyRunes("2"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("a"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("water the plants"))
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if len(m.Snapshot.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(m.Snapshot.Tasks))
	}
	task := m.Snapshot.Tasks[0]
	if task.Title != "water the plants" {
		t.Fatalf("expected raw text title, got %q", task.Title)
	}
	if task.Priority != model.PriorityMedium || task.EstimatedMinutes != 30 || task.Category != "General" {
		t.Fatalf("expected quick-capture defaults, got: %#v", task)
	}
}

func TestStaleTaskDraftIsDropped(t *testing.T) {
	m := newTestModel(t, model.AppState{}, nil)
	m.parseSeq = 7

	updated, _ := m.Update(TaskDraftMsg{Seq: 3, Raw: "old capture"})
	m = updated.(Model)
	if len(m.Snapshot.Tasks) != 0 {
		t.Fatalf("stale draft must not add a task: %#v", m.Snapshot.Tasks)
	}
}

func TestHabitToggleKey(t *testing.T) {
	m := newTestModel(t, model.AppState{Habits: []model.Habit{
		{ID: "h1", Name: "Meditate", Frequency: model.FrequencyDaily, Streak: 2},
	}}, nil)

	updated, _ := m.Update(keyRunes("5"))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)

	habit := m.Snapshot.Habits[0]
	if !habit.CompletedToday || habit.Streak != 3 {
		t.Fatalf("expected toggled habit with streak 3, got: %#v", habit)
	}
	if !strings.Contains(m.Status.Text, "streak 3") {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
}

func TestGoalProgressKeys(t *testing.T) {
	m := newTestModel(t, model.AppState{Goals: []model.Goal{
		{ID: "g1", Title: "Marathon", TargetDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Progress: 95},
	}}, nil)

	updated, _ := m.Update(keyRunes("6"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("+"))
	m = updated.(Model)
	if got := m.Snapshot.Goals[0].Progress; got != 100 {
		t.Fatalf("expected clamped progress 100, got %d", got)
	}

	updated, _ = m.Update(keyRunes("-"))
	m = updated.(Model)
	if got := m.Snapshot.Goals[0].Progress; got != 90 {
		t.Fatalf("expected progress 90, got %d", got)
	}
}

func TestStatsScoreKeys(t *testing.T) {
	m := newTestModel(t, model.AppState{ProductivityScore: 98}, nil)

	updated, _ := m.Update(keyRunes("7"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("+"))
	m = updated.(Model)
	if got := m.Snapshot.ProductivityScore; got != 100 {
		t.Fatalf("expected clamped score 100, got %d", got)
	}
}

func TestChatCommandRunsMutation(t *testing.T) {
	m := newTestModel(t, model.AppState{}, nil)

	updated, _ := m.Update(keyRunes("8"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("/habit evening stretch"))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if len(m.Snapshot.Habits) != 1 || m.Snapshot.Habits[0].Name != "evening stretch" {
		t.Fatalf("expected habit from command, got: %#v", m.Snapshot.Habits)
	}
	last := m.ChatHistory[len(m.ChatHistory)-1]
	if last.Role != ChatRoleSystem || !strings.Contains(last.Body, "habit added") {
		t.Fatalf("expected system confirmation, got: %#v", last)
	}
}

func TestChatMessageFallsBackOnError(t *testing.T) {
	m := newTestModel(t, model.AppState{}, fakeGateway{chatErr: errors.New("boom")})

	updated, _ := m.Update(keyRunes("8"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("how is my week"))
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if !m.ChatPending {
		t.Fatal("expected pending chat request")
	}

	var reply ChatReplyMsg
	found := false
	for _, msg := range collectMsgs(cmd()) {
		if typed, ok := msg.(ChatReplyMsg); ok {
			reply = typed
			found = true
		}
	}
	if !found {
		t.Fatal("expected a chat reply message")
	}
	updated, _ = m.Update(reply)
	m = updated.(Model)

	if m.ChatPending {
		t.Fatal("expected pending flag cleared")
	}
	last := m.ChatHistory[len(m.ChatHistory)-1]
	if last.Role != ChatRoleAssistant || !strings.Contains(last.Body, "Error connecting") {
		t.Fatalf("expected fallback reply, got: %#v", last)
	}
}

func TestChatRefusesSecondSubmissionWhilePending(t *testing.T) {
	m := newTestModel(t, model.AppState{}, fakeGateway{reply: "on it"})

	updated, _ := m.Update(keyRunes("8"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("plan my morning"))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if !m.ChatPending {
		t.Fatal("expected pending chat request")
	}
	seqBefore := m.chatSeq
	historyBefore := len(m.ChatHistory)

	updated, _ = m.Update(keyRunes("and my afternoon"))
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if cmd != nil {
		t.Fatal("expected no command while a request is pending")
	}
	if m.chatSeq != seqBefore {
		t.Fatalf("expected no new request, seq %d -> %d", seqBefore, m.chatSeq)
	}
	if len(m.ChatHistory) != historyBefore {
		t.Fatalf("expected history unchanged, got %d entries", len(m.ChatHistory))
	}
	if !strings.Contains(m.Status.Text, "still waiting") {
		t.Fatalf("expected waiting status, got: %q", m.Status.Text)
	}
	if got := m.chatInput.Value(); got != "and my afternoon" {
		t.Fatalf("refused submission must keep the typed text, got: %q", got)
	}
}

func TestSuggestionFallbackOnError(t *testing.T) {
	m := newTestModel(t, model.AppState{}, fakeGateway{suggestErr: errors.New("boom")})
	m.suggestSeq = 1

	updated, _ := m.Update(SuggestionMsg{Seq: 1, Err: errors.New("boom")})
	m = updated.(Model)
	if m.SuggestionPending {
		t.Fatal("expected pending flag cleared")
	}
	if !strings.Contains(m.Suggestion, "25 focused minutes") {
		t.Fatalf("expected fallback suggestion, got: %q", m.Suggestion)
	}
}

func TestFocusTickCountsDown(t *testing.T) {
	m := newTestModel(t, model.AppState{}, nil)
	updated, _ := m.Update(keyRunes("4"))
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	if !m.Focus.Running || cmd == nil {
		t.Fatal("expected running focus timer")
	}

	before := m.Focus.RemainingSec
	updated, _ = m.Update(FocusTickMsg{})
	m = updated.(Model)
	if m.Focus.RemainingSec != before-1 {
		t.Fatalf("expected countdown by 1, got %d -> %d", before, m.Focus.RemainingSec)
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := newTestModel(t, model.AppState{ProductivityScore: 73}, nil)
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "view: Dashboard") {
		t.Fatalf("expected view text in output: %q", out)
	}
	if !strings.Contains(out, "productivity-score: 73/100") {
		t.Fatalf("expected score in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
}

// collectMsgs flattens a possibly batched command into its messages.
func collectMsgs(msg tea.Msg) []tea.Msg {
	if batch, ok := msg.(tea.BatchMsg); ok {
		out := make([]tea.Msg, 0, len(batch))
		for _, cmd := range batch {
			if cmd == nil {
				continue
			}
			out = append(out, collectMsgs(cmd())...)
		}
		return out
	}
	return []tea.Msg{msg}
}
