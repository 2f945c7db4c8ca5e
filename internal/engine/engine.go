// Package engine is the only component allowed to transform AppState. Every
// accepted mutation builds a new snapshot, commits it, and persists the
// whole state; a rejected mutation leaves the state untouched.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow/internal/model"
	"github.com/mindflowhq/mindflow/internal/storage"
)

// ErrValidation marks a rejected mutation: a required field was missing or a
// supplied value could not be interpreted. State is unchanged when returned.
var ErrValidation = errors.New("engine: validation failed")

// Engine owns the live AppState. Callers only ever see snapshots; mutations
// are serialized by the single-threaded update loop that drives them.
type Engine struct {
	state  model.AppState
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

func New(initial model.AppState, store storage.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		state:  initial.Clone(),
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Snapshot returns an immutable copy of the current state.
func (e *Engine) Snapshot() model.AppState {
	return e.state.Clone()
}

// commit installs the next state and persists it. A write failure is logged,
// not propagated: the in-memory mutation stands and the snapshot on disk
// catches up on the next successful save.
func (e *Engine) commit(ctx context.Context, next model.AppState) model.AppState {
	e.state = next
	if err := e.store.Save(ctx, next); err != nil {
		e.logger.Error("snapshot save failed, in-memory state retained", "error", err)
	}
	return e.state.Clone()
}

// AddTask prepends the task. A missing id is assigned; empty priority and
// status fall back to Medium/Todo. An empty title rejects the mutation.
func (e *Engine) AddTask(ctx context.Context, task model.Task) (model.AppState, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return e.state.Clone(), fmt.Errorf("%w: task title is required", ErrValidation)
	}
	if task.ID == "" {
		task.ID = e.newID()
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.Status == "" {
		task.Status = model.StatusTodo
	}
	if task.DueDate.IsZero() {
		task.DueDate = e.now()
	}
	if err := task.Validate(); err != nil {
		return e.state.Clone(), fmt.Errorf("%w: %v", ErrValidation, err)
	}

	next := e.state.Clone()
	next.Tasks = append([]model.Task{task}, next.Tasks...)
	return e.commit(ctx, next), nil
}

// TaskPatch carries the fields of a partial task update. Nil means "leave
// unchanged".
type TaskPatch struct {
	Title            *string
	Description      *string
	Priority         *model.Priority
	Status           *model.Status
	DueDate          *time.Time
	EstimatedMinutes *int
	Category         *string
}

func (p TaskPatch) apply(task model.Task) (model.Task, error) {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return task, fmt.Errorf("%w: task title is required", ErrValidation)
		}
		task.Title = title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Priority != nil {
		if !p.Priority.IsValid() {
			return task, fmt.Errorf("%w: %v", ErrValidation, fmt.Errorf("%w: %q", model.ErrInvalidPriority, *p.Priority))
		}
		task.Priority = *p.Priority
	}
	if p.Status != nil {
		if !p.Status.IsValid() {
			return task, fmt.Errorf("%w: %v", ErrValidation, fmt.Errorf("%w: %q", model.ErrInvalidStatus, *p.Status))
		}
		task.Status = *p.Status
	}
	if p.DueDate != nil {
		task.DueDate = *p.DueDate
	}
	if p.EstimatedMinutes != nil {
		if *p.EstimatedMinutes < 0 {
			return task, fmt.Errorf("%w: estimated minutes must not be negative", ErrValidation)
		}
		task.EstimatedMinutes = *p.EstimatedMinutes
	}
	if p.Category != nil {
		task.Category = *p.Category
	}
	return task, nil
}

// UpdateTask merges the patch into the matching task. An unknown id is a
// silent no-op: nothing found, state unchanged.
func (e *Engine) UpdateTask(ctx context.Context, id string, patch TaskPatch) (model.AppState, error) {
	for i, t := range e.state.Tasks {
		if t.ID != id {
			continue
		}
		updated, err := patch.apply(t)
		if err != nil {
			return e.state.Clone(), err
		}
		next := e.state.Clone()
		next.Tasks[i] = updated
		return e.commit(ctx, next), nil
	}
	return e.state.Clone(), nil
}

// DeleteTask removes the matching task; unknown ids are a silent no-op.
func (e *Engine) DeleteTask(ctx context.Context, id string) model.AppState {
	for i, t := range e.state.Tasks {
		if t.ID != id {
			continue
		}
		next := e.state.Clone()
		next.Tasks = append(next.Tasks[:i], next.Tasks[i+1:]...)
		return e.commit(ctx, next)
	}
	return e.state.Clone()
}

// AddGoal creates a goal with zero progress and prepends it. The target date
// accepts the same shapes persisted snapshots use.
func (e *Engine) AddGoal(ctx context.Context, title, targetDate string) (model.AppState, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return e.state.Clone(), fmt.Errorf("%w: goal title is required", ErrValidation)
	}
	target, err := model.ParseDate(strings.TrimSpace(targetDate))
	if err != nil {
		return e.state.Clone(), fmt.Errorf("%w: %v", ErrValidation, err)
	}

	goal := model.Goal{
		ID:         e.newID(),
		Title:      title,
		TargetDate: target,
		Progress:   0,
	}
	next := e.state.Clone()
	next.Goals = append([]model.Goal{goal}, next.Goals...)
	return e.commit(ctx, next), nil
}

// DeleteGoal removes the matching goal; unknown ids are a silent no-op.
func (e *Engine) DeleteGoal(ctx context.Context, id string) model.AppState {
	for i, g := range e.state.Goals {
		if g.ID != id {
			continue
		}
		next := e.state.Clone()
		next.Goals = append(next.Goals[:i], next.Goals[i+1:]...)
		return e.commit(ctx, next)
	}
	return e.state.Clone()
}

// UpdateGoalProgress stores the clamped progress value. Out-of-range input
// is corrected, not rejected; unknown ids are a silent no-op.
func (e *Engine) UpdateGoalProgress(ctx context.Context, id string, progress int) model.AppState {
	for i, g := range e.state.Goals {
		if g.ID != id {
			continue
		}
		next := e.state.Clone()
		next.Goals[i].Progress = model.ClampProgress(progress)
		return e.commit(ctx, next)
	}
	return e.state.Clone()
}

// AddHabit appends a habit with streak 0 and completedToday false.
func (e *Engine) AddHabit(ctx context.Context, name string) (model.AppState, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return e.state.Clone(), fmt.Errorf("%w: habit name is required", ErrValidation)
	}

	habit := model.Habit{
		ID:        e.newID(),
		Name:      name,
		Frequency: model.FrequencyDaily,
		History:   map[string]bool{},
	}
	next := e.state.Clone()
	next.Habits = append(next.Habits, habit)
	return e.commit(ctx, next), nil
}

// DeleteHabit removes the matching habit; unknown ids are a silent no-op.
func (e *Engine) DeleteHabit(ctx context.Context, id string) model.AppState {
	for i, h := range e.state.Habits {
		if h.ID != id {
			continue
		}
		next := e.state.Clone()
		next.Habits = append(next.Habits[:i], next.Habits[i+1:]...)
		return e.commit(ctx, next)
	}
	return e.state.Clone()
}

// ToggleHabit flips the habit's completion for today. Completing increments
// the streak; undoing rolls back exactly that increment, floored at zero so
// the streak never goes negative. Unknown ids are a silent no-op.
func (e *Engine) ToggleHabit(ctx context.Context, id string) model.AppState {
	for i, h := range e.state.Habits {
		if h.ID != id {
			continue
		}
		next := e.state.Clone()
		habit := next.Habits[i]
		if habit.CompletedToday {
			habit.CompletedToday = false
			if habit.Streak > 0 {
				habit.Streak--
			}
		} else {
			habit.CompletedToday = true
			habit.Streak++
		}
		if habit.History == nil {
			habit.History = map[string]bool{}
		}
		habit.History[model.DayKey(e.now())] = habit.CompletedToday
		next.Habits[i] = habit
		return e.commit(ctx, next)
	}
	return e.state.Clone()
}

// SetProductivityScore stores the externally supplied score, clamped to
// [0,100]. The engine does not derive this value.
func (e *Engine) SetProductivityScore(ctx context.Context, score int) model.AppState {
	next := e.state.Clone()
	next.ProductivityScore = model.ClampProgress(score)
	return e.commit(ctx, next)
}
