package storage

import (
	"slices"

	"github.com/rs/zerolog"
)

// LinearIndexStorage is a growable buffer holding a contiguous live region of items. Items are addressed by
// effective indices: the first item has the effective index passed at creation and the following items
// have consecutive indices. The live region can have free slots before it (head) and after it (tail),
// this makes prepending and appending cheap.
//
// LinearIndexStorage is not safe for concurrent use.
type LinearIndexStorage[T any] struct {
	slots []T
	head  int //array index of the first item
	count int

	firstEffectiveIndex int

	config   Config
	strategy CapacityStrategy
	logger   zerolog.Logger
}

func NewLinearIndexStorage[T any](firstEffectiveIndex int, config Config) (*LinearIndexStorage[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.withDefaults()

	strategy, err := NewCapacityStrategy(config.Strategy)
	if err != nil {
		return nil, err
	}

	return &LinearIndexStorage[T]{
		firstEffectiveIndex: firstEffectiveIndex,
		config:              config,
		strategy:            strategy,
		logger:              zerolog.Nop(),
	}, nil
}

func (s *LinearIndexStorage[T]) SetLogger(logger zerolog.Logger) {
	s.logger = logger
}

func (s *LinearIndexStorage[T]) Config() Config {
	return s.config
}

// Len returns the number of occupied slots.
func (s *LinearIndexStorage[T]) Len() int {
	return s.count
}

func (s *LinearIndexStorage[T]) Capacity() int {
	return len(s.slots)
}

// HeadCapacity returns the number of free slots before the first item.
func (s *LinearIndexStorage[T]) HeadCapacity() int {
	return s.head
}

// TailCapacity returns the number of free slots after the last item.
func (s *LinearIndexStorage[T]) TailCapacity() int {
	return len(s.slots) - s.head - s.count
}

func (s *LinearIndexStorage[T]) FirstEffectiveIndex() int {
	return s.firstEffectiveIndex
}

// LastEffectiveIndex returns the effective index of the last item, FirstEffectiveIndex() - 1 if the storage is empty.
func (s *LinearIndexStorage[T]) LastEffectiveIndex() int {
	return s.firstEffectiveIndex + s.count - 1
}

// ArrayIndex returns the index of the slot holding the item at effectiveIndex.
func (s *LinearIndexStorage[T]) ArrayIndex(effectiveIndex int) (int, error) {
	if err := s.checkEffectiveIndex(effectiveIndex); err != nil {
		return -1, err
	}
	return s.head + effectiveIndex - s.firstEffectiveIndex, nil
}

func (s *LinearIndexStorage[T]) checkEffectiveIndex(effectiveIndex int) error {
	if effectiveIndex < s.firstEffectiveIndex || effectiveIndex > s.LastEffectiveIndex() {
		return EffectiveIndexError{
			Index: effectiveIndex,
			First: s.firstEffectiveIndex,
			Last:  s.LastEffectiveIndex(),
		}
	}
	return nil
}

func (s *LinearIndexStorage[T]) Get(effectiveIndex int) (T, error) {
	i, err := s.ArrayIndex(effectiveIndex)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.slots[i], nil
}

// Set replaces the item at effectiveIndex and returns the previous one.
func (s *LinearIndexStorage[T]) Set(effectiveIndex int, item T) (T, error) {
	i, err := s.ArrayIndex(effectiveIndex)
	if err != nil {
		var zero T
		return zero, err
	}
	prev := s.slots[i]
	s.slots[i] = item
	return prev, nil
}

// EnsureCapacity grows the buffer if it has less than requiredCount slots. The order of the items and their
// effective indices are preserved.
func (s *LinearIndexStorage[T]) EnsureCapacity(requiredCount int) error {
	if requiredCount < 0 {
		return CapacityError{
			ExpectedCapacity: requiredCount,
			Occupied:         s.count,
			reason:           "negative required capacity",
		}
	}

	if len(s.slots) >= requiredCount {
		return nil
	}

	s.relocate(s.grownCapacity(requiredCount), s.count, 0)
	return nil
}

// EnsureCapacityWithHole makes sure the buffer has at least expectedCapacity slots and opens holeSize zeroed
// slots at holeIndex: the items at and after holeIndex get their effective index increased by holeSize.
// holeIndex can be equal to LastEffectiveIndex() + 1 (hole at the end). The call fails with a CapacityError
// if occupied + holeSize > expectedCapacity. On failure the storage is left untouched.
func (s *LinearIndexStorage[T]) EnsureCapacityWithHole(expectedCapacity, holeIndex, holeSize int) error {
	switch {
	case expectedCapacity < 0:
		return CapacityError{ExpectedCapacity: expectedCapacity, Occupied: s.count, HoleSize: holeSize, reason: "negative expected capacity"}
	case holeSize < 0:
		return CapacityError{ExpectedCapacity: expectedCapacity, Occupied: s.count, HoleSize: holeSize, reason: "negative hole size"}
	case s.count+holeSize > expectedCapacity:
		return CapacityError{ExpectedCapacity: expectedCapacity, Occupied: s.count, HoleSize: holeSize}
	}

	if holeIndex < s.firstEffectiveIndex || holeIndex > s.LastEffectiveIndex()+1 {
		return EffectiveIndexError{
			Index: holeIndex,
			First: s.firstEffectiveIndex,
			Last:  s.LastEffectiveIndex() + 1,
		}
	}

	if holeSize == 0 {
		return s.EnsureCapacity(expectedCapacity)
	}

	before := holeIndex - s.firstEffectiveIndex //number of items before the hole
	after := s.count - before
	needed := s.count + holeSize

	fitsInPlace := expectedCapacity <= len(s.slots)
	canShiftTail := fitsInPlace && s.TailCapacity() >= holeSize
	canShiftHead := fitsInPlace && s.head >= holeSize

	//only the shorter side is ever shifted.
	switch {
	case canShiftTail && after <= before:
		start := s.head + before
		copy(s.slots[start+holeSize:], s.slots[start:start+after])
		clear(s.slots[start : start+holeSize])
	case canShiftHead && before <= after:
		newHead := s.head - holeSize
		copy(s.slots[newHead:], s.slots[s.head:s.head+before])
		clear(s.slots[newHead+before : newHead+before+holeSize])
		s.head = newHead
	case fitsInPlace && len(s.slots)-needed >= needed/2:
		//enough free slots but on the wrong side.
		s.relayout(before, holeSize)
	default:
		s.relocate(s.grownCapacity(max(expectedCapacity, needed, len(s.slots)+1)), before, holeSize)
	}

	s.count += holeSize

	s.logger.Debug().
		Int("holeIndex", holeIndex).
		Int("holeSize", holeSize).
		Int("capacity", len(s.slots)).
		Msg("hole opened")
	return nil
}

// Insert inserts items before the item at effectiveIndex, effectiveIndex can be LastEffectiveIndex() + 1.
func (s *LinearIndexStorage[T]) Insert(effectiveIndex int, items ...T) error {
	if err := s.EnsureCapacityWithHole(s.count+len(items), effectiveIndex, len(items)); err != nil {
		return err
	}
	start := s.head + effectiveIndex - s.firstEffectiveIndex
	copy(s.slots[start:], items)
	return nil
}

func (s *LinearIndexStorage[T]) Append(items ...T) error {
	return s.Insert(s.LastEffectiveIndex()+1, items...)
}

// Prepend inserts items before the first item, the effective index of the first item does not change.
func (s *LinearIndexStorage[T]) Prepend(items ...T) error {
	return s.Insert(s.firstEffectiveIndex, items...)
}

// Remove removes the item at effectiveIndex and returns it, the following items have their effective index decreased by one.
func (s *LinearIndexStorage[T]) Remove(effectiveIndex int) (T, error) {
	i, err := s.ArrayIndex(effectiveIndex)
	if err != nil {
		var zero T
		return zero, err
	}
	item := s.slots[i]
	s.removeSlots(effectiveIndex-s.firstEffectiveIndex, 1)
	return item, nil
}

// RemoveRange removes the items in the inclusive effective index range [from, to].
func (s *LinearIndexStorage[T]) RemoveRange(from, to int) error {
	if err := s.checkEffectiveIndex(from); err != nil {
		return err
	}
	if err := s.checkEffectiveIndex(to); err != nil {
		return err
	}
	if from > to {
		return EffectiveIndexError{Index: to, First: from, Last: s.LastEffectiveIndex()}
	}

	s.removeSlots(from-s.firstEffectiveIndex, to-from+1)

	s.logger.Debug().Int("from", from).Int("to", to).Msg("range removed")
	return nil
}

// removeSlots removes n items starting at the given offset in the live region, the shorter side is shifted.
func (s *LinearIndexStorage[T]) removeSlots(offset, n int) {
	before := offset
	after := s.count - offset - n

	if before < after {
		copy(s.slots[s.head+n:], s.slots[s.head:s.head+before])
		clear(s.slots[s.head : s.head+n])
		s.head += n
	} else {
		start := s.head + offset
		copy(s.slots[start:], s.slots[start+n:s.head+s.count])
		clear(s.slots[s.head+s.count-n : s.head+s.count])
	}
	s.count -= n

	s.shrinkIfWastedCapacity()
}

// Clear removes all items, the buffer is kept.
func (s *LinearIndexStorage[T]) Clear() {
	clear(s.slots)
	s.count = 0
	s.head = s.strategy.HeadSlack(len(s.slots), 0)
}

// Values returns a copy of the items.
func (s *LinearIndexStorage[T]) Values() []T {
	return slices.Clone(s.slots[s.head : s.head+s.count])
}

// ForEach calls fn for each item in effective index order, iteration stops at the first error.
func (s *LinearIndexStorage[T]) ForEach(fn func(effectiveIndex int, item T) error) error {
	for i := 0; i < s.count; i++ {
		if err := fn(s.firstEffectiveIndex+i, s.slots[s.head+i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *LinearIndexStorage[T]) grownCapacity(minCapacity int) int {
	capacity := max(len(s.slots), s.config.InitialCapacity, 1)

	for capacity < minCapacity {
		next := int(float64(capacity) * s.config.GrowthFactor)
		if next <= capacity {
			next = capacity + 1
		}
		capacity = next
	}
	return capacity
}

// relocate copies the items in a new buffer, leaving holeSize slots after the first holeOffset items.
// The current buffer is only replaced once the new one is complete.
func (s *LinearIndexStorage[T]) relocate(capacity, holeOffset, holeSize int) {
	occupied := s.count + holeSize
	head := s.strategy.HeadSlack(capacity, occupied)

	slots := make([]T, capacity)
	copy(slots[head:], s.slots[s.head:s.head+holeOffset])
	copy(slots[head+holeOffset+holeSize:], s.slots[s.head+holeOffset:s.head+s.count])

	s.logger.Debug().
		Int("oldCapacity", len(s.slots)).
		Int("newCapacity", capacity).
		Int("head", head).
		Str("strategy", string(s.strategy.Kind())).
		Msg("storage relocated")

	s.slots = slots
	s.head = head
}

// relayout moves the items inside the current buffer, leaving holeSize slots after the first holeOffset items.
// The free slots are split between the head and the tail whatever the strategy.
func (s *LinearIndexStorage[T]) relayout(holeOffset, holeSize int) {
	occupied := s.count + holeSize
	oldHead := s.head
	head := (len(s.slots) - occupied) / 2

	movePrefix := func() {
		copy(s.slots[head:], s.slots[oldHead:oldHead+holeOffset])
	}
	moveSuffix := func() {
		copy(s.slots[head+holeOffset+holeSize:], s.slots[oldHead+holeOffset:oldHead+s.count])
	}

	//the segment whose source could be overwritten by the other one is moved first.
	if head <= oldHead {
		movePrefix()
		moveSuffix()
	} else {
		moveSuffix()
		movePrefix()
	}

	clear(s.slots[:head])
	clear(s.slots[head+holeOffset : head+holeOffset+holeSize])
	clear(s.slots[head+occupied:])

	s.logger.Debug().
		Int("oldHead", oldHead).
		Int("head", head).
		Int("capacity", len(s.slots)).
		Msg("storage laid out again")

	s.head = head
}

func (s *LinearIndexStorage[T]) shrinkIfWastedCapacity() {
	divider := s.config.ShrinkDivider
	if divider <= 0 || len(s.slots) < s.config.MinShrinkableCapacity || s.count*divider >= len(s.slots) {
		return
	}

	capacity := max(int(float64(s.count)*s.config.GrowthFactor), s.config.InitialCapacity)
	if capacity >= len(s.slots) {
		return
	}
	s.relocate(capacity, s.count, 0)
}
