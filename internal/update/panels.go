package update

import (
	"fmt"
	"strings"

	"github.com/mindflowhq/mindflow/internal/analytics"
	"github.com/mindflowhq/mindflow/internal/model"
	"github.com/mindflowhq/mindflow/internal/views"
)

func (m Model) renderLeftPane() string {
	switch m.CurrentView {
	case ViewDashboard:
		return views.RenderDashboardPanel(m.dashboardData())
	case ViewTasks:
		return views.RenderTasksPanel(m.tasksData())
	case ViewHabits:
		return views.RenderHabitsPanel(m.habitsData())
	case ViewGoals:
		return views.RenderGoalsPanel(m.goalsData())
	case ViewStats:
		return views.RenderStatsPanel(m.statsData())
	case ViewChat:
		return views.RenderChatPanel(m.chatData())
	case ViewCalendar:
		return views.RenderCalendarPanel(m.calendarData())
	case ViewFocus:
		return views.RenderFocusPanel(m.focusData())
	}
	return ""
}

func (m Model) renderRightPane() string {
	if m.HelpVisible {
		return views.RenderHelpPanel(views.HelpPanelData{
			CurrentView: string(m.CurrentView),
			Bindings:    m.helpBindings(),
		})
	}
	// Stats double as the ambient context pane everywhere else.
	return views.RenderStatsPanel(m.statsData())
}

func (m Model) renderAlerts() string {
	if len(m.Alerts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.Alerts))
	for _, alert := range m.Alerts {
		lines = append(lines, views.RenderNotification("due", fmt.Sprintf("%s at %s", alert.Title, alert.DueAt.Format("15:04"))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) dashboardData() views.DashboardPanelData {
	pending := analytics.PendingTasks(m.Snapshot)
	top := pending
	if len(top) > 5 {
		top = top[:5]
	}
	return views.DashboardPanelData{
		Score:             m.Snapshot.ProductivityScore,
		CompletedCount:    analytics.CompletedCount(m.Snapshot),
		TotalTasks:        len(m.Snapshot.Tasks),
		PendingMinutes:    analytics.EstimatedPendingMinutes(m.Snapshot),
		TopTasks:          taskRows(top),
		Suggestion:        m.Suggestion,
		SuggestionPending: m.SuggestionPending,
		SpinnerView:       m.aiSpinner.View(),
	}
}

func (m Model) tasksData() views.TasksPanelData {
	selected := ""
	if task, ok := m.selectedTask(); ok {
		selected = task.ID
	}
	return views.TasksPanelData{
		QuickAddView: m.quickAddInput.View(),
		Capturing:    m.Capturing,
		Rows:         taskRows(m.Snapshot.Tasks),
		SelectedID:   selected,
	}
}

func (m Model) habitsData() views.HabitsPanelData {
	selected := ""
	if habit, ok := m.selectedHabit(); ok {
		selected = habit.ID
	}
	rows := make([]views.HabitRowData, 0, len(m.Snapshot.Habits))
	for _, habit := range m.Snapshot.Habits {
		rows = append(rows, views.HabitRowData{
			ID:             habit.ID,
			Name:           habit.Name,
			Frequency:      string(habit.Frequency),
			Streak:         habit.Streak,
			CompletedToday: habit.CompletedToday,
		})
	}
	return views.HabitsPanelData{Rows: rows, SelectedID: selected}
}

func (m Model) goalsData() views.GoalsPanelData {
	selected := ""
	if goal, ok := m.selectedGoal(); ok {
		selected = goal.ID
	}
	now := m.now()
	rows := make([]views.GoalRowData, 0, len(m.Snapshot.Goals))
	for _, goal := range m.Snapshot.Goals {
		rows = append(rows, views.GoalRowData{
			ID:           goal.ID,
			Title:        goal.Title,
			TargetDate:   goal.TargetDate.Format("2006-01-02"),
			DaysLeft:     analytics.DaysUntil(goal.TargetDate, now),
			Progress:     goal.Progress,
			ProgressView: m.focusProgress.ViewAs(float64(goal.Progress) / 100),
		})
	}
	return views.GoalsPanelData{Rows: rows, SelectedID: selected}
}

func (m Model) statsData() views.StatsPanelData {
	categories := make([]views.CategoryRowData, 0)
	for _, bucket := range analytics.CategoryDistribution(m.Snapshot) {
		categories = append(categories, views.CategoryRowData{Label: bucket.Label, Count: bucket.Count})
	}
	return views.StatsPanelData{
		Score:          m.Snapshot.ProductivityScore,
		CompletionPct:  int(analytics.CompletionRatio(m.Snapshot) * 100),
		PendingMinutes: analytics.EstimatedPendingMinutes(m.Snapshot),
		LongestStreak:  analytics.LongestHabitStreak(m.Snapshot),
		HabitRatePct:   int(analytics.HabitCompletionRate(m.Snapshot) * 100),
		Categories:     categories,
	}
}

func (m Model) chatData() views.ChatPanelData {
	return views.ChatPanelData{
		HistoryView: m.chatViewport.View(),
		InputView:   m.chatInput.View(),
		Pending:     m.ChatPending,
		SpinnerView: m.aiSpinner.View(),
	}
}

func (m Model) calendarData() views.CalendarPanelData {
	focus := m.Calendar.FocusDate
	return views.CalendarPanelData{
		MonthTitle: focus.Format("January 2006"),
		Grid:       m.renderMonthGrid(),
		DayLabel:   focus.Format("Mon Jan 2"),
		DayTasks:   taskRows(analytics.TasksOnDay(m.Snapshot, focus)),
	}
}

func (m Model) focusData() views.FocusPanelData {
	total := m.currentFocusTotal()
	pct := 0
	if total > 0 {
		pct = (total - m.Focus.RemainingSec) * 100 / total
	}
	return views.FocusPanelData{
		TaskTitle:          m.Focus.TaskTitle,
		Phase:              string(m.Focus.Phase),
		Timer:              formatTimer(m.Focus.RemainingSec),
		ProgressView:       m.focusProgress.ViewAs(float64(pct) / 100),
		ProgressPct:        pct,
		CompletedPomodoros: m.Focus.CompletedPomodoros,
		ShowEndPrompt:      !m.Focus.Running && m.Focus.RemainingSec == 0,
	}
}

func (m Model) helpBindings() []string {
	global := []string{
		"1 dashboard | 2 tasks | 3 calendar | 4 focus",
		"5 habits | 6 goals | 7 stats | 8 chat",
		"? help | q quit",
	}
	switch m.CurrentView {
	case ViewDashboard:
		return append(global, "s coach tips")
	case ViewTasks:
		return append(global, "a add | j/k move | space status | d delete")
	case ViewHabits:
		return append(global, "a add | j/k move | space toggle | d delete")
	case ViewGoals:
		return append(global, "j/k move | +/- progress | d delete")
	case ViewStats:
		return append(global, "+/- productivity score")
	case ViewCalendar:
		return append(global, "h/l day | H/L month | t today")
	case ViewFocus:
		return append(global, "space start/pause | r reset | n next phase")
	case ViewChat:
		return append(global, "enter send | esc back | /add /habit /goal /progress /done /delete")
	}
	return global
}

func taskRows(tasks []model.Task) []views.TaskRowData {
	rows := make([]views.TaskRowData, 0, len(tasks))
	for _, task := range tasks {
		due := ""
		if !task.DueDate.IsZero() {
			due = task.DueDate.Format("2006-01-02")
		}
		rows = append(rows, views.TaskRowData{
			ID:               task.ID,
			Title:            task.Title,
			Priority:         string(task.Priority),
			Status:           string(task.Status),
			Due:              due,
			Category:         task.Category,
			EstimatedMinutes: task.EstimatedMinutes,
		})
	}
	return rows
}
