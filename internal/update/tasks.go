package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindflowhq/mindflow/internal/agenda"
	"github.com/mindflowhq/mindflow/internal/model"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		m.Capturing = true
		m.quickAddInput.SetValue("")
		m.quickAddInput.Placeholder = "describe a task..."
		m.quickAddInput.Focus()
		return m, nil
	case "j", "down":
		if m.TaskCursor < len(m.Snapshot.Tasks)-1 {
			m.TaskCursor++
		}
		return m, nil
	case "k", "up":
		if m.TaskCursor > 0 {
			m.TaskCursor--
		}
		return m, nil
	case " ":
		return m.cycleSelectedTaskStatus()
	case "d":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.Snapshot = m.Engine.DeleteTask(context.Background(), task.ID)
		if m.Notifier != nil {
			m.Notifier.Cancel(task.ID)
		}
		m.TaskCursor = clampCursor(m.TaskCursor, len(m.Snapshot.Tasks))
		m.Status = StatusBar{Text: fmt.Sprintf("task deleted: %s", task.Title), IsError: false}
		return m, nil
	}
	return m, nil
}

// handleCaptureKey drives the quick-add input. In the tasks view the entered
// text goes through the assist parse first; in the habits view it is the
// habit name verbatim.
func (m Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Capturing = false
		m.quickAddInput.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.quickAddInput.Value())
		m.Capturing = false
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		if text == "" {
			return m, nil
		}
		if m.CurrentView == ViewHabits {
			snapshot, err := m.Engine.AddHabit(context.Background(), text)
			if err != nil {
				m.Status = StatusBar{Text: fmt.Sprintf("add habit failed: %v", err), IsError: true}
				return m, nil
			}
			m.Snapshot = snapshot
			m.Status = StatusBar{Text: fmt.Sprintf("habit added: %s", text), IsError: false}
			return m, nil
		}
		m.parseSeq++
		m.Status = StatusBar{Text: "structuring task...", IsError: false}
		return m, parseTaskCmd(m.Gateway, m.parseSeq, text)
	}

	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	return m, cmd
}

// cycleSelectedTaskStatus advances Todo -> In Progress -> Done -> Todo.
func (m Model) cycleSelectedTaskStatus() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	next := model.StatusTodo
	switch task.Status {
	case model.StatusTodo:
		next = model.StatusInProgress
	case model.StatusInProgress:
		next = model.StatusDone
	}
	snapshot, err := m.Engine.UpdateTask(context.Background(), task.ID, taskStatusPatch(next))
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("update task failed: %v", err), IsError: true}
		return m, nil
	}
	m.Snapshot = snapshot
	if next == model.StatusDone && m.Notifier != nil {
		m.Notifier.Cancel(task.ID)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s -> %s", task.Title, next), IsError: false}
	return m, nil
}

func (m Model) selectedTask() (model.Task, bool) {
	if len(m.Snapshot.Tasks) == 0 {
		return model.Task{}, false
	}
	idx := clampCursor(m.TaskCursor, len(m.Snapshot.Tasks))
	return m.Snapshot.Tasks[idx], true
}

// scheduleTaskAlert queues a due alert for a freshly added pending task.
func (m Model) scheduleTaskAlert(task model.Task) {
	if m.Notifier == nil || task.Status == model.StatusDone {
		return
	}
	if !task.DueDate.After(m.now()) {
		return
	}
	_ = m.Notifier.Schedule(agenda.DueAlert{TaskID: task.ID, Title: task.Title, DueAt: task.DueDate})
}
