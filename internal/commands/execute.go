package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Done     func(TaskArgs) (Result, error)
	Delete   func(TaskArgs) (Result, error)
	Status   func(StatusArgs) (Result, error)
	Remind   func(RemindArgs) (Result, error)
	Unremind func(UnremindArgs) (Result, error)
	Search   func(SearchArgs) (Result, error)
	Filter   func(FilterArgs) (Result, error)
	Category func(RegistryArgs) (Result, error)
	Priority func(RegistryArgs) (Result, error)
	Clear    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		return call(handlers.Add, cmd.Add, cmd.Type)
	case TypeDone:
		return call(handlers.Done, cmd.Task, cmd.Type)
	case TypeDelete:
		return call(handlers.Delete, cmd.Task, cmd.Type)
	case TypeStatus:
		return call(handlers.Status, cmd.Status, cmd.Type)
	case TypeRemind:
		return call(handlers.Remind, cmd.Remind, cmd.Type)
	case TypeUnremind:
		return call(handlers.Unremind, cmd.Unremind, cmd.Type)
	case TypeSearch:
		return call(handlers.Search, cmd.Search, cmd.Type)
	case TypeFilter:
		return call(handlers.Filter, cmd.Filter, cmd.Type)
	case TypeCategory:
		return call(handlers.Category, cmd.Registry, cmd.Type)
	case TypePriority:
		return call(handlers.Priority, cmd.Registry, cmd.Type)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func call[A any](handler func(A) (Result, error), args *A, typ Type) (Result, error) {
	if handler == nil {
		return Result{}, missing(typ)
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s command has no arguments", typ)}
	}
	return handler(*args)
}

func missing(typ Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", typ)}
}
