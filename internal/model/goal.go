package model

import (
	"errors"
	"strings"
	"time"
)

type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Goal progress is always within [0,100]. Subtasks are carried through
// persistence but no operation mutates them yet.
type Goal struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	TargetDate time.Time `json:"targetDate"`
	Progress   int       `json:"progress"`
	Subtasks   []Subtask `json:"subtasks"`
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: goal id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("model: goal title is required")
	}
	if g.Progress < 0 || g.Progress > 100 {
		return errors.New("model: goal progress must be within [0,100]")
	}
	return nil
}

// ClampProgress corrects out-of-range progress values instead of rejecting them.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
