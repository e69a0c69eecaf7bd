package sequence

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfBounds     = errors.New("index out of bounds")
	ErrInvalidIndexRange    = errors.New("invalid index range")
	ErrNoSuchElement        = errors.New("no such element")
	ErrItemNotAccessible    = errors.New("item not accessible")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrViewInvalidated      = errors.New("sub-sequence view invalidated")
	ErrInvalidConfig        = errors.New("invalid sequence configuration")
)

// An IndexError is returned when an index is outside of [FirstIndex, LastIndex], it matches ErrIndexOutOfBounds.
type IndexError struct {
	Index      int
	FirstIndex int
	LastIndex  int
}

func (err IndexError) Error() string {
	if err.LastIndex < err.FirstIndex {
		return fmt.Sprintf("%s: index %d, the sequence is empty", ErrIndexOutOfBounds, err.Index)
	}
	return fmt.Sprintf("%s: index %d is not in [%d, %d]", ErrIndexOutOfBounds, err.Index, err.FirstIndex, err.LastIndex)
}

func (err IndexError) Is(target error) bool {
	return target == ErrIndexOutOfBounds
}

func (err IndexError) BelowFirst() bool {
	return err.Index < err.FirstIndex
}

func (err IndexError) AboveLast() bool {
	return err.Index > err.LastIndex
}

// A RangeError is returned when the lower bound of an index range is greater than its upper bound,
// it matches ErrInvalidIndexRange.
type RangeError struct {
	From int
	To   int
}

func (err RangeError) Error() string {
	return fmt.Sprintf("%s: from (%d) is greater than to (%d)", ErrInvalidIndexRange, err.From, err.To)
}

func (err RangeError) Is(target error) bool {
	return target == ErrInvalidIndexRange
}

// A TraverserStateError is returned when a traverser operation is called outside of the state that
// allows it, it matches ErrItemNotAccessible.
type TraverserStateError struct {
	Operation string
	State     CursorState
	Reason    string
}

func (err TraverserStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s in state %s: %s", ErrItemNotAccessible, err.Operation, err.State, err.Reason)
}

func (err TraverserStateError) Is(target error) bool {
	return target == ErrItemNotAccessible
}
