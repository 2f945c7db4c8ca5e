package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID               string
	Title            string
	Priority         string
	Status           string
	Due              string
	Category         string
	EstimatedMinutes int
}

type DashboardPanelData struct {
	Score             int
	CompletedCount    int
	TotalTasks        int
	PendingMinutes    int
	TopTasks          []TaskRowData
	Suggestion        string
	SuggestionPending bool
	SpinnerView       string
}

type TasksPanelData struct {
	QuickAddView string
	Capturing    bool
	Rows         []TaskRowData
	SelectedID   string
}

type HabitRowData struct {
	ID             string
	Name           string
	Frequency      string
	Streak         int
	CompletedToday bool
}

type HabitsPanelData struct {
	Rows       []HabitRowData
	SelectedID string
}

type GoalRowData struct {
	ID           string
	Title        string
	TargetDate   string
	DaysLeft     int
	Progress     int
	ProgressView string
}

type GoalsPanelData struct {
	Rows       []GoalRowData
	SelectedID string
}

type CategoryRowData struct {
	Label string
	Count int
}

type StatsPanelData struct {
	Score          int
	CompletionPct  int
	PendingMinutes int
	LongestStreak  int
	HabitRatePct   int
	Categories     []CategoryRowData
}

type ChatPanelData struct {
	HistoryView string
	InputView   string
	Pending     bool
	SpinnerView string
}

type CalendarPanelData struct {
	MonthTitle string
	Grid       string
	DayLabel   string
	DayTasks   []TaskRowData
}

type FocusPanelData struct {
	TaskTitle          string
	Phase              string
	Timer              string
	ProgressView       string
	ProgressPct        int
	CompletedPomodoros int
	ShowEndPrompt      bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString("dashboard:\n")
	b.WriteString(fmt.Sprintf("productivity-score: %d/100\n", data.Score))
	b.WriteString(fmt.Sprintf("tasks: %d done of %d | pending work: %dm\n", data.CompletedCount, data.TotalTasks, data.PendingMinutes))
	b.WriteString("\nup next:\n")
	if len(data.TopTasks) == 0 {
		b.WriteString("  (nothing pending)\n")
	}
	for _, row := range data.TopTasks {
		b.WriteString(fmt.Sprintf("  %s %s", priorityBadge(row.Priority), row.Title))
		if row.Due != "" {
			b.WriteString(" due:" + row.Due)
		}
		b.WriteString("\n")
	}
	b.WriteString("\ncoach:\n")
	switch {
	case data.SuggestionPending:
		b.WriteString(data.SpinnerView + " thinking...\n")
	case data.Suggestion != "":
		b.WriteString(data.Suggestion + "\n")
	default:
		b.WriteString("press [s] for today's tips\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.Capturing {
		b.WriteString(data.QuickAddView + "\n")
		b.WriteString("capture: [enter]add [esc]cancel\n")
	} else {
		b.WriteString("actions: [a]add [j/k]move [space]status [d]delete\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("(no tasks)")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s [%s] %s", cursor, priorityBadge(row.Priority), row.Status, row.Title))
		if row.Category != "" {
			b.WriteString(" #" + row.Category)
		}
		if row.Due != "" {
			b.WriteString(" due:" + row.Due)
		}
		if row.EstimatedMinutes > 0 {
			b.WriteString(fmt.Sprintf(" ~%dm", row.EstimatedMinutes))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderHabitsPanel(data HabitsPanelData) string {
	var b strings.Builder
	b.WriteString("habits:\n")
	b.WriteString("actions: [a]add [j/k]move [space]toggle [d]delete\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no habits yet)")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		mark := "[ ]"
		if row.CompletedToday {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s (%s) streak:%d\n", cursor, mark, row.Name, strings.ToLower(row.Frequency), row.Streak))
	}
	return strings.TrimSpace(b.String())
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	b.WriteString("goals:\n")
	b.WriteString("actions: [j/k]move [+/-]progress [d]delete | add via /goal <title> by <date>\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no goals yet)")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, row.Title))
		b.WriteString(fmt.Sprintf("  %s %d%% | target %s (%d days left)\n", row.ProgressView, row.Progress, row.TargetDate, row.DaysLeft))
	}
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("productivity-score: %d/100\n", data.Score))
	b.WriteString(fmt.Sprintf("task-completion: %d%%\n", data.CompletionPct))
	b.WriteString(fmt.Sprintf("pending-work: %dm\n", data.PendingMinutes))
	b.WriteString(fmt.Sprintf("longest-habit-streak: %d\n", data.LongestStreak))
	b.WriteString(fmt.Sprintf("habits-done-today: %d%%\n", data.HabitRatePct))
	b.WriteString("\ncategories:\n")
	for _, row := range data.Categories {
		b.WriteString(fmt.Sprintf("  %-12s %s %d\n", row.Label, strings.Repeat("#", row.Count), row.Count))
	}
	return strings.TrimSpace(b.String())
}

func RenderChatPanel(data ChatPanelData) string {
	var b strings.Builder
	b.WriteString("chat:\n")
	b.WriteString("commands: /add /habit /goal /progress /done /delete | anything else goes to the assistant\n\n")
	if data.HistoryView != "" {
		b.WriteString(data.HistoryView + "\n")
	}
	if data.Pending {
		b.WriteString(data.SpinnerView + " waiting for reply...\n")
	}
	b.WriteString("\n" + data.InputView)
	return strings.TrimSpace(b.String())
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar:\n")
	b.WriteString("actions: [h/l]day [H/L]month [t]today\n")
	b.WriteString(data.MonthTitle + "\n")
	b.WriteString(data.Grid + "\n")
	b.WriteString(fmt.Sprintf("\n%s:\n", data.DayLabel))
	if len(data.DayTasks) == 0 {
		b.WriteString("  (nothing due)")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.DayTasks {
		b.WriteString(fmt.Sprintf("  %s [%s] %s\n", priorityBadge(row.Priority), row.Status, row.Title))
	}
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	b.WriteString(fmt.Sprintf("phase: %s\n", strings.ToUpper(data.Phase)))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("pomodoros completed: %d\n", data.CompletedPomodoros))
	b.WriteString("actions: [space]start/pause [r]reset [n]next-phase\n")
	if data.ShowEndPrompt {
		b.WriteString("prompt: session ended, press [n] to continue")
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(fmt.Sprintf("view: %s\n", strings.ToLower(data.CurrentView)))
	for _, binding := range data.Bindings {
		b.WriteString(binding + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func priorityBadge(priority string) string {
	switch priority {
	case "High":
		return "[RED]"
	case "Low":
		return "[GREEN]"
	default:
		return "[YELLOW]"
	}
}
