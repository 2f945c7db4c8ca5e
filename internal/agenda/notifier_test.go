package agenda

import (
	"errors"
	"testing"
	"time"

	"github.com/mindflowhq/mindflow/internal/model"
)

func collectAlerts(t *testing.T, n *Notifier, count int, timeout time.Duration) []DueAlert {
	t.Helper()
	out := make([]DueAlert, 0, count)
	deadline := time.After(timeout)
	for len(out) < count {
		select {
		case alert, ok := <-n.C():
			if !ok {
				t.Fatalf("alert channel closed after %d of %d alerts", len(out), count)
			}
			out = append(out, alert)
		case <-deadline:
			t.Fatalf("timed out after %d of %d alerts", len(out), count)
		}
	}
	return out
}

func TestNotifierDeliversInDueOrder(t *testing.T) {
	n := NewNotifier(8)
	n.Start()
	defer n.Stop()

	now := time.Now().UTC()
	if err := n.Schedule(DueAlert{TaskID: "b", Title: "Second", DueAt: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := n.Schedule(DueAlert{TaskID: "a", Title: "First", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	alerts := collectAlerts(t, n, 2, 2*time.Second)
	if alerts[0].TaskID != "a" || alerts[1].TaskID != "b" {
		t.Fatalf("expected due-time order, got: %#v", alerts)
	}
}

func TestNotifierRejectsZeroDueTime(t *testing.T) {
	n := NewNotifier(1)
	if err := n.Schedule(DueAlert{TaskID: "x"}); !errors.Is(err, ErrInvalidDueTime) {
		t.Fatalf("expected ErrInvalidDueTime, got: %v", err)
	}
}

func TestNotifierCancelSuppressesAlert(t *testing.T) {
	n := NewNotifier(8)
	n.Start()
	defer n.Stop()

	now := time.Now().UTC()
	if err := n.Schedule(DueAlert{TaskID: "gone", Title: "Canceled", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := n.Schedule(DueAlert{TaskID: "kept", Title: "Kept", DueAt: now.Add(40 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	n.Cancel("gone")

	alerts := collectAlerts(t, n, 1, 2*time.Second)
	if alerts[0].TaskID != "kept" {
		t.Fatalf("expected only the kept alert, got: %#v", alerts[0])
	}

	select {
	case alert := <-n.C():
		t.Fatalf("canceled alert still delivered: %#v", alert)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNotifierRescheduleClearsCancellation(t *testing.T) {
	n := NewNotifier(8)
	n.Start()
	defer n.Stop()

	n.Cancel("t1")
	if err := n.Schedule(DueAlert{TaskID: "t1", Title: "Back on", DueAt: time.Now().UTC().Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	alerts := collectAlerts(t, n, 1, 2*time.Second)
	if alerts[0].TaskID != "t1" {
		t.Fatalf("expected rescheduled alert, got: %#v", alerts[0])
	}
}

func TestSyncStateSkipsDoneAndOverdueTasks(t *testing.T) {
	n := NewNotifier(8)
	n.Start()
	defer n.Stop()

	now := time.Now().UTC()
	state := model.AppState{Tasks: []model.Task{
		{ID: "done", Title: "Finished", Status: model.StatusDone, DueDate: now.Add(20 * time.Millisecond)},
		{ID: "past", Title: "Overdue", Status: model.StatusTodo, DueDate: now.Add(-time.Hour)},
		{ID: "soon", Title: "Upcoming", Status: model.StatusTodo, DueDate: now.Add(30 * time.Millisecond)},
	}}
	n.SyncState(state, now)

	alerts := collectAlerts(t, n, 1, 2*time.Second)
	if alerts[0].TaskID != "soon" {
		t.Fatalf("expected only the upcoming task, got: %#v", alerts[0])
	}

	select {
	case alert := <-n.C():
		t.Fatalf("unexpected extra alert: %#v", alert)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNotifierStopClosesChannelAndRejectsSchedule(t *testing.T) {
	n := NewNotifier(1)
	n.Start()
	n.Stop()

	if _, ok := <-n.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
	if err := n.Schedule(DueAlert{TaskID: "x", DueAt: time.Now().Add(time.Minute)}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got: %v", err)
	}
	n.Stop()
}
