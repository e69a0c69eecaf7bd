package storage

import "fmt"

type StrategyKind string

const (
	TailCapacity  StrategyKind = "tail"
	HeadCapacity  StrategyKind = "head"
	SplitCapacity StrategyKind = "split"
)

// A CapacityStrategy decides where the free slots of a buffer go when the live region is laid out again
// (reallocation or relocation). Appending is cheap when there is slack at the tail, prepending
// when there is slack at the head.
type CapacityStrategy interface {
	Kind() StrategyKind

	// HeadSlack returns the number of free slots to leave before the first item in a buffer
	// of the given capacity holding occupied items.
	HeadSlack(capacity, occupied int) int
}

func NewCapacityStrategy(kind StrategyKind) (CapacityStrategy, error) {
	switch kind {
	case TailCapacity, "":
		return tailCapacityStrategy{}, nil
	case HeadCapacity:
		return headCapacityStrategy{}, nil
	case SplitCapacity:
		return splitCapacityStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown capacity strategy %q", ErrInvalidConfig, kind)
	}
}

type tailCapacityStrategy struct{}

func (tailCapacityStrategy) Kind() StrategyKind { return TailCapacity }

func (tailCapacityStrategy) HeadSlack(capacity, occupied int) int {
	return 0
}

type headCapacityStrategy struct{}

func (headCapacityStrategy) Kind() StrategyKind { return HeadCapacity }

func (headCapacityStrategy) HeadSlack(capacity, occupied int) int {
	return capacity - occupied
}

type splitCapacityStrategy struct{}

func (splitCapacityStrategy) Kind() StrategyKind { return SplitCapacity }

func (splitCapacityStrategy) HeadSlack(capacity, occupied int) int {
	return (capacity - occupied) / 2
}
