package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindflowhq/mindflow/internal/model"
)

func (m Model) handleHabitsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		m.Capturing = true
		m.quickAddInput.SetValue("")
		m.quickAddInput.Placeholder = "habit name..."
		m.quickAddInput.Focus()
		return m, nil
	case "j", "down":
		if m.HabitCursor < len(m.Snapshot.Habits)-1 {
			m.HabitCursor++
		}
		return m, nil
	case "k", "up":
		if m.HabitCursor > 0 {
			m.HabitCursor--
		}
		return m, nil
	case " ":
		habit, ok := m.selectedHabit()
		if !ok {
			return m, nil
		}
		m.Snapshot = m.Engine.ToggleHabit(context.Background(), habit.ID)
		toggled := m.Snapshot.Habits[clampCursor(m.HabitCursor, len(m.Snapshot.Habits))]
		if toggled.CompletedToday {
			m.Status = StatusBar{Text: fmt.Sprintf("%s done, streak %d", toggled.Name, toggled.Streak), IsError: false}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("%s unchecked, streak %d", toggled.Name, toggled.Streak), IsError: false}
		}
		return m, nil
	case "d":
		habit, ok := m.selectedHabit()
		if !ok {
			return m, nil
		}
		m.Snapshot = m.Engine.DeleteHabit(context.Background(), habit.ID)
		m.HabitCursor = clampCursor(m.HabitCursor, len(m.Snapshot.Habits))
		m.Status = StatusBar{Text: fmt.Sprintf("habit deleted: %s", habit.Name), IsError: false}
		return m, nil
	}
	return m, nil
}

func (m Model) selectedHabit() (model.Habit, bool) {
	if len(m.Snapshot.Habits) == 0 {
		return model.Habit{}, false
	}
	idx := clampCursor(m.HabitCursor, len(m.Snapshot.Habits))
	return m.Snapshot.Habits[idx], true
}
