package update

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/mindflowhq/mindflow/internal/agenda"
	"github.com/mindflowhq/mindflow/internal/assist"
	"github.com/mindflowhq/mindflow/internal/engine"
	"github.com/mindflowhq/mindflow/internal/model"
)

type View string

const (
	ViewDashboard View = "Dashboard"
	ViewTasks     View = "Tasks"
	ViewCalendar  View = "Calendar"
	ViewFocus     View = "Focus"
	ViewHabits    View = "Habits"
	ViewGoals     View = "Goals"
	ViewStats     View = "Stats"
	ViewChat      View = "Chat"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Tasks     string
	Calendar  string
	Focus     string
	Habits    string
	Goals     string
	Stats     string
	Chat      string
	Help      string
	Quit      string
}

type ChatRole string

const (
	ChatRoleUser      ChatRole = "you"
	ChatRoleAssistant ChatRole = "mindflow"
	ChatRoleSystem    ChatRole = "system"
)

type ChatEntry struct {
	Role ChatRole
	Body string
}

type FocusPhase string

const (
	FocusPhaseWork  FocusPhase = "work"
	FocusPhaseBreak FocusPhase = "break"
)

type FocusState struct {
	TaskID             string
	TaskTitle          string
	WorkDurationSec    int
	BreakDurationSec   int
	RemainingSec       int
	Running            bool
	Phase              FocusPhase
	CompletedPomodoros int
}

type CalendarState struct {
	FocusDate time.Time
}

// Model is the single bubbletea model driving the whole app. State mutations
// all go through the engine; the model keeps the latest snapshot for
// rendering plus per-view UI state.
type Model struct {
	CurrentView View
	Snapshot    model.AppState
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool

	Engine   *engine.Engine
	Gateway  assist.Gateway
	Notifier *agenda.Notifier

	TaskCursor  int
	HabitCursor int
	GoalCursor  int

	Capturing bool
	Focus     FocusState
	Calendar  CalendarState

	ChatHistory []ChatEntry
	ChatPending bool

	Suggestion        string
	SuggestionPending bool

	Alerts []agenda.DueAlert

	// Request sequence numbers: a stale assistant reply is dropped when a
	// newer request has been issued since.
	parseSeq   int
	suggestSeq int
	chatSeq    int

	quickAddInput textinput.Model
	chatInput     textinput.Model
	chatViewport  viewport.Model
	aiSpinner     spinner.Model
	focusProgress progress.Model

	now func() time.Time
}

type TaskDraftMsg struct {
	Seq   int
	Raw   string
	Draft assist.TaskDraft
	Err   error
}

type SuggestionMsg struct {
	Seq  int
	Text string
	Err  error
}

type ChatReplyMsg struct {
	Seq  int
	Text string
	Err  error
}

type FocusTickMsg struct{}

type DueAlertMsg struct {
	Alert agenda.DueAlert
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(eng *engine.Engine, gateway assist.Gateway, notifier *agenda.Notifier, cfg RuntimeConfig) Model {
	m := Model{
		CurrentView: ViewDashboard,
		Engine:      eng,
		Gateway:     gateway,
		Notifier:    notifier,
		Keys: GlobalKeyMap{
			Dashboard: "1",
			Tasks:     "2",
			Calendar:  "3",
			Focus:     "4",
			Habits:    "5",
			Goals:     "6",
			Stats:     "7",
			Chat:      "8",
			Help:      "?",
			Quit:      "q",
		},
		Focus: FocusState{
			WorkDurationSec:  25 * 60,
			BreakDurationSec: 5 * 60,
			Phase:            FocusPhaseWork,
		},
		now: time.Now,
	}
	if cfg.FocusWorkMinutes > 0 {
		m.Focus.WorkDurationSec = cfg.FocusWorkMinutes * 60
	}
	if cfg.FocusBreakMinutes > 0 {
		m.Focus.BreakDurationSec = cfg.FocusBreakMinutes * 60
	}
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	m.Calendar.FocusDate = m.now()

	if eng != nil {
		m.Snapshot = eng.Snapshot()
	}

	quickAdd := textinput.New()
	quickAdd.Placeholder = "describe a task..."
	quickAdd.CharLimit = 200
	m.quickAddInput = quickAdd

	chat := textinput.New()
	chat.Placeholder = "message or /command..."
	chat.CharLimit = 400
	m.chatInput = chat

	m.chatViewport = viewport.New(56, 14)
	m.aiSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.focusProgress = progress.New(progress.WithDefaultGradient())
	return m
}
