package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/taskbook/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeDelete   Type = "delete"
	TypeStatus   Type = "status"
	TypeRemind   Type = "remind"
	TypeUnremind Type = "unremind"
	TypeSearch   Type = "search"
	TypeFilter   Type = "filter"
	TypeCategory Type = "category"
	TypePriority Type = "priority"
	TypeClear    Type = "clear"
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

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs holds "/add <title> [due:<date>] [cat:<name>] [pri:<name>]".
// Due is kept unresolved; see ResolveDate.
type AddArgs struct {
	Title    string
	Due      string
	Category string
	Priority string
}

type TaskArgs struct {
	TaskID int
}

type StatusArgs struct {
	TaskID int
	Status model.Status
}

// RemindArgs holds "/remind <task> <1d|1w|1m|date>". Custom is set only for
// model.ReminderCustom.
type RemindArgs struct {
	TaskID int
	Type   model.ReminderType
	Custom string
}

type UnremindArgs struct {
	ReminderID int
}

type SearchArgs struct {
	Keyword string
}

// FilterArgs leaves unset criteria empty, which matches everything.
type FilterArgs struct {
	Category string
	Priority string
	Status   string
}

type RegistryAction string

const (
	ActionAdd    RegistryAction = "add"
	ActionDelete RegistryAction = "delete"
	ActionRename RegistryAction = "rename"
)

// RegistryArgs holds "/category|/priority <add|delete|rename> <name> [new]".
type RegistryArgs struct {
	Action  RegistryAction
	Name    string
	NewName string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Task     *TaskArgs
	Status   *StatusArgs
	Remind   *RemindArgs
	Unremind *UnremindArgs
	Search   *SearchArgs
	Filter   *FilterArgs
	Registry *RegistryArgs
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
	case TypeDone, TypeDelete:
		return parseTask(input, Type(head), args)
	case TypeStatus:
		return parseStatus(input, args)
	case TypeRemind:
		return parseRemind(input, args)
	case TypeUnremind:
		return parseUnremind(input, args)
	case TypeSearch:
		return parseSearch(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeCategory, TypePriority:
		return parseRegistry(input, Type(head), args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	add := &AddArgs{}
	title := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := option(arg)
		switch {
		case ok && key == "due":
			add.Due = value
		case ok && key == "cat":
			add.Category = value
		case ok && key == "pri":
			add.Priority = value
		default:
			title = append(title, arg)
		}
	}
	add.Title = strings.TrimSpace(strings.Join(title, " "))
	if add.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: add}, nil
}

func parseTask(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires a task id", typ)
	}
	id, err := parseID(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Task: &TaskArgs{TaskID: id}}, nil
}

func parseStatus(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("status requires a task id and a status")
	}
	id, err := parseID(args[0])
	if err != nil {
		return Command{}, err
	}
	status, err := model.ParseStatus(strings.Join(args[1:], " "))
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	return Command{Type: TypeStatus, Raw: raw, Status: &StatusArgs{TaskID: id, Status: status}}, nil
}

func parseRemind(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("remind requires a task id and 1d, 1w, 1m or a date")
	}
	id, err := parseID(args[0])
	if err != nil {
		return Command{}, err
	}
	remind := &RemindArgs{TaskID: id}
	switch strings.ToLower(args[1]) {
	case "1d":
		remind.Type = model.ReminderOneDay
	case "1w":
		remind.Type = model.ReminderOneWeek
	case "1m":
		remind.Type = model.ReminderOneMonth
	default:
		if typ, err := model.ParseReminderType(args[1]); err == nil && typ != model.ReminderCustom {
			remind.Type = typ
			break
		}
		remind.Type = model.ReminderCustom
		remind.Custom = args[1]
	}
	return Command{Type: TypeRemind, Raw: raw, Remind: remind}, nil
}

func parseUnremind(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("unremind requires a reminder id")
	}
	id, err := parseID(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeUnremind, Raw: raw, Unremind: &UnremindArgs{ReminderID: id}}, nil
}

func parseSearch(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("search requires a keyword")
	}
	return Command{Type: TypeSearch, Raw: raw, Search: &SearchArgs{Keyword: strings.Join(args, " ")}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	filter := &FilterArgs{}
	for i := 0; i < len(args); i++ {
		key, value, ok := option(args[i])
		if !ok {
			return Command{}, invalid("unexpected filter argument %q", args[i])
		}
		switch key {
		case "cat":
			filter.Category = value
		case "pri":
			filter.Priority = value
		case "status":
			// "status:in progress" spills into the next token.
			if strings.EqualFold(value, "in") && i+1 < len(args) && strings.EqualFold(args[i+1], "progress") {
				value = string(model.StatusInProgress)
				i++
			}
			filter.Status = value
		default:
			return Command{}, invalid("unknown filter key %q", key)
		}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: filter}, nil
}

func parseRegistry(raw string, typ Type, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("%s requires add, delete or rename and a name", typ)
	}
	reg := &RegistryArgs{Action: RegistryAction(strings.ToLower(args[0])), Name: args[1]}
	switch reg.Action {
	case ActionAdd, ActionDelete:
		if len(args) != 2 {
			return Command{}, invalid("%s %s takes exactly one name", typ, reg.Action)
		}
	case ActionRename:
		if len(args) != 3 {
			return Command{}, invalid("%s rename requires the old and the new name", typ)
		}
		reg.NewName = args[2]
	default:
		return Command{}, invalid("unknown %s action %q", typ, args[0])
	}
	return Command{Type: typ, Raw: raw, Registry: reg}, nil
}

func option(arg string) (string, string, bool) {
	key, value, ok := strings.Cut(arg, ":")
	if !ok || value == "" {
		return "", "", false
	}
	key = strings.ToLower(key)
	switch key {
	case "due", "cat", "pri", "status":
		return key, value, true
	default:
		return "", "", false
	}
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil || id <= 0 {
		return 0, invalid("%q is not a valid id", raw)
	}
	return id, nil
}

// ResolveDate turns a due or reminder spec into a date. It accepts
// YYYY-MM-DD, "today", "tomorrow" and "+N" for N days from today.
func ResolveDate(spec string, today model.Date) (model.Date, error) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	switch {
	case spec == "today":
		return today, nil
	case spec == "tomorrow":
		return today.AddDays(1), nil
	case strings.HasPrefix(spec, "+"):
		n, err := strconv.Atoi(spec[1:])
		if err != nil || n < 0 {
			return model.Date{}, invalid("%q is not a valid day offset", spec)
		}
		return today.AddDays(n), nil
	default:
		d, err := model.ParseDate(spec)
		if err != nil {
			return model.Date{}, invalid("%q is not a date (use YYYY-MM-DD, today, tomorrow or +N)", spec)
		}
		return d, nil
	}
}
