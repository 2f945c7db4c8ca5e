package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindflowhq/mindflow/internal/analytics"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, 0, -1)
		return m, nil
	case "l", "right":
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, 0, 1)
		return m, nil
	case "H":
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, -1, 0)
		return m, nil
	case "L":
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, 1, 0)
		return m, nil
	case "t":
		m.Calendar.FocusDate = m.now()
		return m, nil
	}
	return m, nil
}

// renderMonthGrid draws a plain month calendar. Days with due tasks get a
// dot marker; the focused day is bracketed.
func (m Model) renderMonthGrid() string {
	focus := m.Calendar.FocusDate
	first := time.Date(focus.Year(), focus.Month(), 1, 0, 0, 0, 0, focus.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var b strings.Builder
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	offset := int(first.Weekday())
	b.WriteString(strings.Repeat("    ", offset))

	column := offset
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(focus.Year(), focus.Month(), day, 0, 0, 0, 0, focus.Location())
		cell := fmt.Sprintf(" %2d ", day)
		if len(analytics.TasksOnDay(m.Snapshot, date)) > 0 {
			cell = fmt.Sprintf(" %2d.", day)
		}
		if day == focus.Day() {
			cell = fmt.Sprintf("[%2d]", day)
		}
		b.WriteString(cell)
		column++
		if column%7 == 0 {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
