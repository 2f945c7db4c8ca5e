// Package agenda turns task due dates into timed alerts. The notifier keeps
// a min-heap of upcoming alerts and emits each one on its channel when the
// due time arrives.
package agenda

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mindflowhq/mindflow/internal/model"
)

var (
	ErrInvalidDueTime = errors.New("agenda: invalid due time")
	ErrStopped        = errors.New("agenda: notifier stopped")
)

// DueAlert is emitted when a task's due date arrives.
type DueAlert struct {
	TaskID string
	Title  string
	DueAt  time.Time
}

type alertItem struct {
	alert DueAlert
}

type alertQueue []alertItem

func (q alertQueue) Len() int { return len(q) }

func (q alertQueue) Less(i, j int) bool {
	return q[i].alert.DueAt.Before(q[j].alert.DueAt)
}

func (q alertQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *alertQueue) Push(x any) {
	*q = append(*q, x.(alertItem))
}

func (q *alertQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Notifier delivers DueAlerts in due-time order. Alerts for canceled task
// ids stay in the heap and are skipped on pop; a slow consumer drops alerts
// instead of blocking the timer loop.
type Notifier struct {
	mu       sync.Mutex
	queue    alertQueue
	canceled map[string]struct{}
	out      chan DueAlert
	wakeup   chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
	dropped  uint64
}

func NewNotifier(bufferSize int) *Notifier {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Notifier{
		queue:    make(alertQueue, 0),
		canceled: make(map[string]struct{}),
		out:      make(chan DueAlert, bufferSize),
		wakeup:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// C is the alert delivery channel. It closes when the notifier stops.
func (n *Notifier) C() <-chan DueAlert {
	return n.out
}

func (n *Notifier) Start() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.started {
		return
	}
	n.started = true
	heap.Init(&n.queue)
	go n.loop()
}

func (n *Notifier) Stop() {
	n.mu.Lock()
	if !n.started || n.stopped {
		n.mu.Unlock()
		return
	}
	n.stopped = true
	close(n.stopCh)
	n.mu.Unlock()
	<-n.doneCh
}

// Schedule queues one alert. Re-scheduling a task id clears any earlier
// cancellation for it.
func (n *Notifier) Schedule(alert DueAlert) error {
	if alert.DueAt.IsZero() {
		return ErrInvalidDueTime
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return ErrStopped
	}

	delete(n.canceled, alert.TaskID)
	heap.Push(&n.queue, alertItem{alert: alert})
	n.signalWakeup()
	return nil
}

// Cancel suppresses any queued alerts for the task id. Unknown ids are fine.
func (n *Notifier) Cancel(taskID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return
	}
	n.canceled[taskID] = struct{}{}
	n.signalWakeup()
}

// SyncState schedules alerts for every pending task whose due date is still
// ahead of now. Done tasks never alert.
func (n *Notifier) SyncState(state model.AppState, now time.Time) {
	for _, task := range state.Tasks {
		if task.Status == model.StatusDone {
			continue
		}
		if !task.DueDate.After(now) {
			continue
		}
		_ = n.Schedule(DueAlert{TaskID: task.ID, Title: task.Title, DueAt: task.DueDate})
	}
}

// Dropped counts alerts discarded because the consumer was not keeping up.
func (n *Notifier) Dropped() uint64 {
	return atomic.LoadUint64(&n.dropped)
}

func (n *Notifier) loop() {
	defer close(n.doneCh)
	defer close(n.out)

	var timer *time.Timer
	for {
		next, hasNext := n.peek()
		if !hasNext {
			select {
			case <-n.wakeup:
				continue
			case <-n.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := n.popDue(time.Now().UTC())
			for _, alert := range due {
				select {
				case n.out <- alert:
				default:
					atomic.AddUint64(&n.dropped, 1)
				}
			}
		case <-n.wakeup:
			continue
		case <-n.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (n *Notifier) signalWakeup() {
	select {
	case n.wakeup <- struct{}{}:
	default:
	}
}

func (n *Notifier) peek() (DueAlert, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for len(n.queue) > 0 {
		next := n.queue[0].alert
		if _, gone := n.canceled[next.TaskID]; !gone {
			return next, true
		}
		heap.Pop(&n.queue)
	}
	return DueAlert{}, false
}

func (n *Notifier) popDue(now time.Time) []DueAlert {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]DueAlert, 0)
	for len(n.queue) > 0 {
		next := n.queue[0].alert
		if next.DueAt.After(now) {
			break
		}
		item := heap.Pop(&n.queue).(alertItem)
		if _, gone := n.canceled[item.alert.TaskID]; gone {
			continue
		}
		out = append(out, item.alert)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
