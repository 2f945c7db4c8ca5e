package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFrequency = errors.New("model: invalid habit frequency")

type Frequency string

const (
	FrequencyDaily  Frequency = "Daily"
	FrequencyWeekly Frequency = "Weekly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly:
		return true
	default:
		return false
	}
}

// Habit tracks a recurring practice. Streak counts consecutive completions
// and never goes negative. History keys are date strings (2006-01-02);
// resetting CompletedToday at period rollover is the caller's job.
type Habit struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Frequency      Frequency       `json:"frequency"`
	Streak         int             `json:"streak"`
	CompletedToday bool            `json:"completedToday"`
	History        map[string]bool `json:"history"`
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("model: habit id is required")
	}
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("model: habit name is required")
	}
	if !h.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, h.Frequency)
	}
	if h.Streak < 0 {
		return errors.New("model: habit streak must not be negative")
	}
	return nil
}
