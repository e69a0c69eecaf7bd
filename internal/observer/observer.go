package observer

import (
	"errors"
	"fmt"

	"github.com/jlibgo/jlib/internal/utils"
)

var (
	ErrObserverFailed = errors.New("value observer failed")
)

// A ValueObserver is notified before and after a mutation involving a value. Returning an error from a hook
// aborts the remaining notifications, observers cannot alter the value.
type ValueObserver[T any] interface {
	HandleBefore(value T) error
	HandleAfterSuccess(value T) error
	HandleAfterFailure(value T, cause error) error
}

type Phase int

const (
	BeforePhase Phase = iota + 1
	AfterSuccessPhase
	AfterFailurePhase
)

func (p Phase) String() string {
	switch p {
	case BeforePhase:
		return "before"
	case AfterSuccessPhase:
		return "after-success"
	case AfterFailurePhase:
		return "after-failure"
	default:
		return "unknown-phase"
	}
}

// An ObserverError is returned when a hook fails. It matches ErrObserverFailed and unwraps to both the
// hook's error and the error of the operation (if the operation failed), so the operation's
// classification is still available through errors.Is.
type ObserverError struct {
	Phase        Phase
	Err          error
	OperationErr error
}

func (err ObserverError) Error() string {
	if err.OperationErr != nil {
		return fmt.Sprintf("%s (%s): %s; operation failed: %s", ErrObserverFailed, err.Phase, err.Err, err.OperationErr)
	}
	return fmt.Sprintf("%s (%s): %s", ErrObserverFailed, err.Phase, err.Err)
}

func (err ObserverError) Is(target error) bool {
	return target == ErrObserverFailed
}

func (err ObserverError) Unwrap() []error {
	if err.OperationErr != nil {
		return []error{err.Err, err.OperationErr}
	}
	return []error{err.Err}
}

// MutationApplied reports whether the operation took place before the observer failed.
func (err ObserverError) MutationApplied() bool {
	return err.Phase == AfterSuccessPhase
}

// Operate calls the HandleBefore hook of every observer in order, performs the operation, then calls the
// HandleAfterSuccess hooks or, if the operation failed, the HandleAfterFailure hooks. The error of a failed
// operation is returned as is unless an after-failure hook fails too.
// If a before hook fails the operation is not performed.
func Operate[T any](value T, operation func() error, observers ...ValueObserver[T]) error {
	for _, observer := range observers {
		if err := callHook(func() error { return observer.HandleBefore(value) }); err != nil {
			return ObserverError{Phase: BeforePhase, Err: err}
		}
	}

	opErr := operation()

	if opErr != nil {
		for _, observer := range observers {
			if err := callHook(func() error { return observer.HandleAfterFailure(value, opErr) }); err != nil {
				return ObserverError{Phase: AfterFailurePhase, Err: err, OperationErr: opErr}
			}
		}
		return opErr
	}

	for _, observer := range observers {
		if err := callHook(func() error { return observer.HandleAfterSuccess(value) }); err != nil {
			return ObserverError{Phase: AfterSuccessPhase, Err: err}
		}
	}
	return nil
}

// callHook turns a panic in a hook into an error.
func callHook(hook func() error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = utils.ConvertPanicValueToError(e)
		}
	}()
	return hook()
}

// Funcs adapts functions to the ValueObserver interface, nil functions are no-ops.
type Funcs[T any] struct {
	Before       func(value T) error
	AfterSuccess func(value T) error
	AfterFailure func(value T, cause error) error
}

func (f Funcs[T]) HandleBefore(value T) error {
	if f.Before == nil {
		return nil
	}
	return f.Before(value)
}

func (f Funcs[T]) HandleAfterSuccess(value T) error {
	if f.AfterSuccess == nil {
		return nil
	}
	return f.AfterSuccess(value)
}

func (f Funcs[T]) HandleAfterFailure(value T, cause error) error {
	if f.AfterFailure == nil {
		return nil
	}
	return f.AfterFailure(value, cause)
}
