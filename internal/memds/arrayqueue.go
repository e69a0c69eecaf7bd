package memds

import (
	"iter"
	"slices"

	"github.com/jlibgo/jlib/internal/storage"
	"github.com/jlibgo/jlib/internal/utils"
)

// ArrayQueue is a FIFO queue stored in a LinearIndexStorage: dequeuing only moves the start of the live region,
// the freed slots are reused when the queue is compacted. ArrayQueue is not safe for concurrent use.
type ArrayQueue[T any] struct {
	elements *storage.LinearIndexStorage[T]
}

func NewArrayQueue[T any]() *ArrayQueue[T] {
	return utils.Must(NewArrayQueueWithConfig[T](storage.DefaultConfig()))
}

func NewArrayQueueWithConfig[T any](config storage.Config) (*ArrayQueue[T], error) {
	elements, err := storage.NewLinearIndexStorage[T](0, config)
	if err != nil {
		return nil, err
	}
	return &ArrayQueue[T]{elements: elements}, nil
}

// Enqueue adds a value to the end of the queue.
func (q *ArrayQueue[T]) Enqueue(value T) {
	utils.PanicIfErr(q.elements.Append(value))
}

// Dequeue removes the first element of the queue and returns it.
// The second result is false if the queue was empty.
func (q *ArrayQueue[T]) Dequeue() (value T, ok bool) {
	if q.elements.Len() == 0 {
		return
	}
	value, err := q.elements.Remove(0)
	return value, err == nil
}

// Peek returns the first element of the queue without removing it.
// The second result is false if the queue is empty.
func (q *ArrayQueue[T]) Peek() (value T, ok bool) {
	if q.elements.Len() == 0 {
		return
	}
	value, err := q.elements.Get(0)
	return value, err == nil
}

func (q *ArrayQueue[T]) Empty() bool {
	return q.elements.Len() == 0
}

func (q *ArrayQueue[T]) Size() int {
	return q.elements.Len()
}

// Clear removes all elements from the queue.
func (q *ArrayQueue[T]) Clear() {
	q.elements.Clear()
}

// Values returns all elements in the queue (FIFO order).
func (q *ArrayQueue[T]) Values() []T {
	return q.elements.Values()
}

func (q *ArrayQueue[T]) ForEachElem(fn func(i int, e T) error) error {
	return q.elements.ForEach(fn)
}

// All returns an iterator over a snapshot of the queue in FIFO order, the first element has index 0.
func (q *ArrayQueue[T]) All() iter.Seq2[int, T] {
	return slices.All(q.elements.Values())
}
