package config

import "fmt"

// StatusKind selects the active variant of a Status.
type StatusKind uint8

const (
	// StatusOK means the step succeeded and merging continues.
	StatusOK StatusKind = iota

	// StatusError means the step failed; Message and Func describe why.
	StatusError

	// StatusExit means the command line asked for a clean termination
	// (help or version output) with Code as the process exit code.
	StatusExit
)

// String returns the string representation of a StatusKind.
func (k StatusKind) String() string {
	switch k {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusExit:
		return "exit"
	default:
		return "unknown"
	}
}

// ErrorClass groups configuration errors; each class has its own exit code.
type ErrorClass uint8

const (
	ClassNone ErrorClass = iota
	ClassArgument
	ClassEncoding
	ClassEnvironment
	ClassConflict
)

// String returns the string representation of an ErrorClass.
func (c ErrorClass) String() string {
	switch c {
	case ClassArgument:
		return "argument"
	case ClassEncoding:
		return "encoding"
	case ClassEnvironment:
		return "environment"
	case ClassConflict:
		return "conflict"
	default:
		return "none"
	}
}

// ExitCode returns the process exit code reported for errors of this class.
func (c ErrorClass) ExitCode() int {
	switch c {
	case ClassArgument:
		return 2
	case ClassEncoding:
		return 3
	case ClassEnvironment:
		return 4
	case ClassConflict:
		return 5
	default:
		return 1
	}
}

// Status is the tagged result of a configuration step. Error and Exit
// statuses stop the merge; callers must not apply further layers after
// receiving one.
//
// A non-OK Status satisfies the error interface, so it can be returned
// through ordinary error paths once the merge is over.
type Status struct {
	Kind    StatusKind
	Class   ErrorClass
	Func    string // operation that produced the error
	Message string
	Code    int // exit code for StatusExit
}

// OK returns the success status.
func OK() Status { return Status{Kind: StatusOK} }

// Errorf returns an error status raised by fn.
func Errorf(class ErrorClass, fn, format string, args ...any) Status {
	return Status{
		Kind:    StatusError,
		Class:   class,
		Func:    fn,
		Message: fmt.Sprintf(format, args...),
	}
}

// Exit returns a status requesting process termination with code.
func Exit(code int) Status {
	return Status{Kind: StatusExit, Code: code}
}

func (s Status) IsOK() bool    { return s.Kind == StatusOK }
func (s Status) IsError() bool { return s.Kind == StatusError }
func (s Status) IsExit() bool  { return s.Kind == StatusExit }

// IsException reports whether the status stops the merge.
func (s Status) IsException() bool { return s.Kind != StatusOK }

// ExitCode returns the exit code a process should use for this status.
func (s Status) ExitCode() int {
	switch s.Kind {
	case StatusExit:
		return s.Code
	case StatusError:
		return s.Class.ExitCode()
	default:
		return 0
	}
}

func (s Status) Error() string {
	switch s.Kind {
	case StatusError:
		if s.Func == "" {
			return s.Message
		}
		return s.Func + ": " + s.Message
	case StatusExit:
		return fmt.Sprintf("exit status %d", s.Code)
	default:
		return "ok"
	}
}

// Err returns nil for an OK status and the status itself otherwise.
func (s Status) Err() error {
	if s.IsOK() {
		return nil
	}
	return s
}
