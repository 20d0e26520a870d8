package resolver

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a resolution failed.
type ErrorKind int

const (
	// KindInvalidInput means the ISBN was rejected before any I/O.
	KindInvalidInput ErrorKind = iota + 1
	// KindNotFound means no primary provider had usable data.
	KindNotFound
	// KindProvider means a primary provider failed and none succeeded.
	KindProvider
	// KindCacheWrite means the record was resolved but could not be cached.
	KindCacheWrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindProvider:
		return "provider"
	case KindCacheWrite:
		return "cache_write"
	default:
		return "unknown"
	}
}

const (
	stepValidate   = "validating isbn"
	stepCacheWrite = "attempting to write resolution to query cache"
)

func stepQuery(name string) string {
	return "attempting to query " + name
}

// Error is returned by Resolve. Step names the pipeline step that failed.
type Error struct {
	Kind ErrorKind
	Step string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Step
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a resolver error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a not-found resolution.
func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}

// StepOf returns the failing step of a resolver error, or "" for other errors.
func StepOf(err error) string {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Step
	}
	return ""
}
