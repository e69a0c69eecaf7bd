package sequence

import (
	"errors"
	"fmt"

	"github.com/jlibgo/jlib/internal/observer"
)

type StateKind int

const (
	BeforeFirst StateKind = iota + 1
	// the cursor is on the item at Index, the item has just been returned by Next or Previous.
	Positioned
	// the cursor is in the gap before the item at Index: Next returns the item at Index and
	// Previous the item at Index - 1.
	Between
	AfterLast
)

func (k StateKind) String() string {
	switch k {
	case BeforeFirst:
		return "before-first"
	case Positioned:
		return "positioned"
	case Between:
		return "between"
	case AfterLast:
		return "after-last"
	default:
		return "unknown-state"
	}
}

type CursorState struct {
	Kind  StateKind
	Index int

	//only meaningful for the Positioned state.
	forward bool
}

func (s CursorState) String() string {
	switch s.Kind {
	case Positioned, Between:
		return fmt.Sprintf("%s(%d)", s.Kind, s.Index)
	default:
		return s.Kind.String()
	}
}

// gap returns the index of the item following the gap the cursor is in (or next to).
func (s CursorState) gap() int {
	if s.Kind == Positioned && s.forward {
		return s.Index + 1
	}
	return s.Index
}

// forward returns the state following state when moving towards LastIndex(), an error is returned
// if there is no next item.
func forward(state CursorState, first, last int) (CursorState, error) {
	var target int

	switch state.Kind {
	case BeforeFirst:
		target = first
	case Positioned:
		target = state.Index + 1
	case Between:
		target = state.Index
	case AfterLast:
		return state, ErrNoSuchElement
	default:
		return state, fmt.Errorf("invalid cursor state: %s", state)
	}

	if target > last {
		return CursorState{Kind: AfterLast}, ErrNoSuchElement
	}
	return CursorState{Kind: Positioned, Index: target, forward: true}, nil
}

// backward is the counterpart of forward.
func backward(state CursorState, first, last int) (CursorState, error) {
	var target int

	switch state.Kind {
	case AfterLast:
		target = last
	case Positioned:
		target = state.Index - 1
	case Between:
		target = state.Index - 1
	case BeforeFirst:
		return state, ErrNoSuchElement
	default:
		return state, fmt.Errorf("invalid cursor state: %s", state)
	}

	if target < first {
		return CursorState{Kind: BeforeFirst}, ErrNoSuchElement
	}
	return CursorState{Kind: Positioned, Index: target, forward: false}, nil
}

// A Traverser moves a cursor in both directions over an IndexSequence and can modify the sequence at the cursor.
// Replace, Remove and Insert are only allowed right after a successful call to Next or Previous, they consume
// the item: the cursor is then in the gap left by the operation.
//
// If the sequence implements Versioned, any insertion or removal performed by other code paths invalidates the
// traverser: all subsequent calls fail with an error matching ErrItemNotAccessible.
//
// A Traverser is not safe for concurrent use.
type Traverser[T any] struct {
	sequence  IndexSequence[T]
	state     CursorState
	version   uint64
	observers *observer.Observers[T]
}

// NewTraverser returns a traverser positioned before the first item of seq.
func NewTraverser[T any](seq IndexSequence[T]) *Traverser[T] {
	version, _ := structureVersion(seq)

	return &Traverser[T]{
		sequence:  seq,
		state:     CursorState{Kind: BeforeFirst},
		version:   version,
		observers: observer.NewObservers[T](),
	}
}

// NewTraverserAt returns a traverser whose first call to Next returns the item at index.
func NewTraverserAt[T any](seq IndexSequence[T], index int) (*Traverser[T], error) {
	if err := AssertIndexValid(seq, index); err != nil {
		return nil, err
	}

	t := NewTraverser(seq)
	t.state = CursorState{Kind: Between, Index: index}
	return t, nil
}

func (t *Traverser[T]) State() CursorState {
	return t.state
}

// Observers returns the registry of the observers notified of every mutation performed through the traverser,
// they are notified before the observers passed to the mutating methods.
func (t *Traverser[T]) Observers() *observer.Observers[T] {
	return t.observers
}

func (t *Traverser[T]) checkVersion(operation string) error {
	version, ok := structureVersion(t.sequence)
	if ok && version != t.version {
		return TraverserStateError{
			Operation: operation,
			State:     t.state,
			Reason:    "the sequence has been structurally modified outside of the traverser",
		}
	}
	return nil
}

func (t *Traverser[T]) HasNext() bool {
	if t.checkVersion("next") != nil {
		return false
	}
	_, err := forward(t.state, t.sequence.FirstIndex(), t.sequence.LastIndex())
	return err == nil
}

func (t *Traverser[T]) HasPrevious() bool {
	if t.checkVersion("previous") != nil {
		return false
	}
	_, err := backward(t.state, t.sequence.FirstIndex(), t.sequence.LastIndex())
	return err == nil
}

// Next moves the cursor to the next item and returns it, ErrNoSuchElement is returned if there is no such item.
func (t *Traverser[T]) Next() (T, error) {
	return t.move("next", forward)
}

// Previous moves the cursor to the previous item and returns it, ErrNoSuchElement is returned if there is no such item.
func (t *Traverser[T]) Previous() (T, error) {
	return t.move("previous", backward)
}

func (t *Traverser[T]) move(operation string, transition func(CursorState, int, int) (CursorState, error)) (T, error) {
	var zero T

	if err := t.checkVersion(operation); err != nil {
		return zero, err
	}

	state, err := transition(t.state, t.sequence.FirstIndex(), t.sequence.LastIndex())
	t.state = state
	if err != nil {
		return zero, err
	}

	return t.sequence.Get(state.Index)
}

func (t *Traverser[T]) checkPositioned(operation string) error {
	if err := t.checkVersion(operation); err != nil {
		return err
	}
	if t.state.Kind != Positioned {
		return TraverserStateError{
			Operation: operation,
			State:     t.state,
			Reason:    "no item has been returned by next or previous since the creation or the last modification",
		}
	}
	return nil
}

// Replace replaces the last item returned by Next or Previous.
func (t *Traverser[T]) Replace(item T, observers ...observer.ValueObserver[T]) error {
	if err := t.checkPositioned("replace"); err != nil {
		return err
	}

	seq, ok := t.sequence.(ReplaceIndexSequence[T])
	if !ok {
		return fmt.Errorf("%w: the sequence does not support replacement", ErrUnsupportedOperation)
	}

	err := seq.Replace(t.state.Index, item, t.observers.List(observers...)...)
	if err == nil || mutationApplied(err) {
		t.state = CursorState{Kind: Between, Index: t.state.gap()}
	}
	return err
}

// Remove removes the last item returned by Next or Previous, the next call to Next returns the item that was
// following the removed item.
func (t *Traverser[T]) Remove(observers ...observer.ValueObserver[T]) (T, error) {
	var zero T
	if err := t.checkPositioned("remove"); err != nil {
		return zero, err
	}

	seq, ok := t.sequence.(RemoveIndexSequence[T])
	if !ok {
		return zero, fmt.Errorf("%w: the sequence does not support removal", ErrUnsupportedOperation)
	}

	index := t.state.Index
	lenBefore := seq.Len()
	item, err := seq.Remove(index, t.observers.List(observers...)...)
	t.resync()

	if seq.Len() < lenBefore {
		t.state = CursorState{Kind: Between, Index: index}
	}
	return item, err
}

// Insert inserts items in the gap next to the last item returned by Next or Previous: after it if the cursor
// moved forward, before it otherwise. The next call to Next returns the item following the inserted items.
func (t *Traverser[T]) Insert(items []T, observers ...observer.ValueObserver[T]) error {
	if err := t.checkPositioned("insert"); err != nil {
		return err
	}

	seq, ok := t.sequence.(InsertIndexSequence[T])
	if !ok {
		return fmt.Errorf("%w: the sequence does not support insertion", ErrUnsupportedOperation)
	}

	gap := t.state.gap()
	lenBefore := seq.Len()
	allObservers := t.observers.List(observers...)

	var err error
	if gap > seq.LastIndex() {
		err = seq.Append(items, allObservers...)
	} else {
		err = seq.Insert(gap, items, allObservers...)
	}
	t.resync()

	inserted := seq.Len() - lenBefore
	if err != nil && inserted == 0 {
		return err
	}

	t.state = CursorState{Kind: Between, Index: gap + inserted}
	return err
}

// resync records the current structure version of the sequence, it is called after the traverser
// modified the sequence.
func (t *Traverser[T]) resync() {
	t.version, _ = structureVersion(t.sequence)
}

func mutationApplied(err error) bool {
	var observerErr observer.ObserverError
	return errors.As(err, &observerErr) && observerErr.MutationApplied()
}
