// Package commands parses the slash commands typed into the chat and quick
// entry inputs and dispatches them to configured handlers.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeHabit    Type = "habit"
	TypeGoal     Type = "goal"
	TypeProgress Type = "progress"
	TypeDone     Type = "done"
	TypeDelete   Type = "delete"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

type HabitArgs struct {
	Name string
}

type GoalArgs struct {
	Title      string
	TargetDate string
}

type ProgressArgs struct {
	Target  string
	Percent int
}

type DoneArgs struct {
	Target string
}

type DeleteArgs struct {
	Target string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Habit    *HabitArgs
	Goal     *GoalArgs
	Progress *ProgressArgs
	Done     *DoneArgs
	Delete   *DeleteArgs
}

// IsCommand reports whether the input looks like a slash command rather than
// a chat message.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeHabit:
		return parseHabit(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeProgress:
		return parseProgress(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task description"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseHabit(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "habit requires a name"}
	}
	return Command{Type: TypeHabit, Raw: raw, Habit: &HabitArgs{Name: name}}, nil
}

// parseGoal splits "<title> by <date>" on the last "by" so titles containing
// the word still parse.
func parseGoal(raw string, args []string) (Command, error) {
	if len(args) < 3 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a title and a target date, e.g. goal run 10k by 2026-06-01"}
	}
	byIndex := -1
	for i := len(args) - 1; i >= 0; i-- {
		if strings.EqualFold(args[i], "by") {
			byIndex = i
			break
		}
	}
	if byIndex <= 0 || byIndex == len(args)-1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires the form: goal <title> by <date>"}
	}
	title := strings.TrimSpace(strings.Join(args[:byIndex], " "))
	date := strings.TrimSpace(strings.Join(args[byIndex+1:], " "))
	if title == "" || date == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires the form: goal <title> by <date>"}
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Title: title, TargetDate: date}}, nil
}

func parseProgress(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "progress requires a goal and a percentage"}
	}
	percent, err := strconv.Atoi(strings.TrimSuffix(args[len(args)-1], "%"))
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("progress percentage is not a number: %s", args[len(args)-1])}
	}
	target := strings.TrimSpace(strings.Join(args[:len(args)-1], " "))
	if target == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "progress requires a goal"}
	}
	return Command{Type: TypeProgress, Raw: raw, Progress: &ProgressArgs{Target: target, Percent: percent}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	target := strings.TrimSpace(strings.Join(args, " "))
	if target == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: target}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	target := strings.TrimSpace(strings.Join(args, " "))
	if target == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a task"}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Target: target}}, nil
}
