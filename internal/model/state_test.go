package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rfc3339", "2026-03-01T09:30:00Z", "2026-03-01"},
		{"rfc3339 nano", "2026-03-01T09:30:00.123456789Z", "2026-03-01"},
		{"bare date", "2026-12-31", "2026-12-31"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if err != nil {
				t.Fatalf("parse date: %v", err)
			}
			if got.Format("2006-01-02") != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got.Format("2006-01-02"))
			}
		})
	}

	if _, err := ParseDate("next tuesday"); !errors.Is(err, ErrUnparsableDate) {
		t.Fatalf("expected ErrUnparsableDate, got: %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	state := DefaultState(now)
	state.Habits[0].History[DayKey(now)] = true
	state.Goals[0].Subtasks = []Subtask{{ID: "s1", Text: "outline", Completed: false}}

	clone := state.Clone()
	clone.Tasks[0].Title = "changed"
	clone.Habits[0].History[DayKey(now)] = false
	clone.Goals[0].Subtasks[0].Completed = true

	if state.Tasks[0].Title == "changed" {
		t.Fatal("expected task slice to be copied")
	}
	if !state.Habits[0].History[DayKey(now)] {
		t.Fatal("expected habit history map to be copied")
	}
	if state.Goals[0].Subtasks[0].Completed {
		t.Fatal("expected goal subtasks to be copied")
	}
}

func TestDefaultStateSeed(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	state := DefaultState(now)

	if len(state.Tasks) != 2 || state.Tasks[0].Title != "Design MindFlow Landing Page" {
		t.Fatalf("unexpected seeded tasks: %#v", state.Tasks)
	}
	if len(state.Habits) != 2 {
		t.Fatalf("expected two seeded habits, got: %#v", state.Habits)
	}
	if state.Habits[0].Streak != 12 || !state.Habits[0].CompletedToday {
		t.Fatalf("unexpected first habit seed: %#v", state.Habits[0])
	}
	if state.Habits[1].Streak != 5 || state.Habits[1].CompletedToday {
		t.Fatalf("unexpected second habit seed: %#v", state.Habits[1])
	}
	if len(state.Goals) != 1 || state.Goals[0].Progress != 65 {
		t.Fatalf("unexpected seeded goals: %#v", state.Goals)
	}
	if !state.Goals[0].TargetDate.After(now) {
		t.Fatalf("expected seeded goal target in the future, got %v", state.Goals[0].TargetDate)
	}
	if state.ProductivityScore != 82 {
		t.Fatalf("expected seeded score 82, got %d", state.ProductivityScore)
	}
}

func TestClampProgress(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-10, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{150, 100},
	}
	for _, tc := range tests {
		if got := ClampProgress(tc.in); got != tc.want {
			t.Fatalf("ClampProgress(%d): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestHabitValidate(t *testing.T) {
	habit := Habit{ID: "h1", Name: "Read", Frequency: FrequencyDaily}
	if err := habit.Validate(); err != nil {
		t.Fatalf("expected valid habit, got: %v", err)
	}

	habit.Frequency = "Monthly"
	if err := habit.Validate(); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got: %v", err)
	}

	habit.Frequency = FrequencyWeekly
	habit.Streak = -1
	if err := habit.Validate(); err == nil {
		t.Fatal("expected error for negative streak")
	}
}

func TestGoalValidate(t *testing.T) {
	goal := Goal{ID: "g1", Title: "Learn Go", TargetDate: time.Now(), Progress: 50}
	if err := goal.Validate(); err != nil {
		t.Fatalf("expected valid goal, got: %v", err)
	}
	goal.Progress = 101
	if err := goal.Validate(); err == nil {
		t.Fatal("expected error for out-of-range progress")
	}
}
