package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindflowhq/mindflow/internal/model"
)

const goalProgressStep = 10

func (m Model) handleGoalsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.GoalCursor < len(m.Snapshot.Goals)-1 {
			m.GoalCursor++
		}
		return m, nil
	case "k", "up":
		if m.GoalCursor > 0 {
			m.GoalCursor--
		}
		return m, nil
	case "+", "=":
		return m.nudgeGoalProgress(goalProgressStep)
	case "-":
		return m.nudgeGoalProgress(-goalProgressStep)
	case "d":
		goal, ok := m.selectedGoal()
		if !ok {
			return m, nil
		}
		m.Snapshot = m.Engine.DeleteGoal(context.Background(), goal.ID)
		m.GoalCursor = clampCursor(m.GoalCursor, len(m.Snapshot.Goals))
		m.Status = StatusBar{Text: fmt.Sprintf("goal deleted: %s", goal.Title), IsError: false}
		return m, nil
	}
	return m, nil
}

func (m Model) nudgeGoalProgress(delta int) (tea.Model, tea.Cmd) {
	goal, ok := m.selectedGoal()
	if !ok {
		return m, nil
	}
	m.Snapshot = m.Engine.UpdateGoalProgress(context.Background(), goal.ID, goal.Progress+delta)
	updated := m.Snapshot.Goals[clampCursor(m.GoalCursor, len(m.Snapshot.Goals))]
	m.Status = StatusBar{Text: fmt.Sprintf("%s at %d%%", updated.Title, updated.Progress), IsError: false}
	return m, nil
}

func (m Model) selectedGoal() (model.Goal, bool) {
	if len(m.Snapshot.Goals) == 0 {
		return model.Goal{}, false
	}
	idx := clampCursor(m.GoalCursor, len(m.Snapshot.Goals))
	return m.Snapshot.Goals[idx], true
}
