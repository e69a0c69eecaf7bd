package sequence

import (
	"iter"

	"github.com/goccy/go-json"
	"github.com/jlibgo/jlib/internal/observer"
	"github.com/jlibgo/jlib/internal/storage"
	"github.com/jlibgo/jlib/internal/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

var (
	_ = MutableIndexSequence[int]((*ArraySequence[int])(nil))
	_ = Versioned((*ArraySequence[int])(nil))
)

// ArraySequence is a MutableIndexSequence storing its items in a LinearIndexStorage: indexing, appending and
// prepending are O(1), insertion and removal shift the shorter side of the sequence.
// Use NewArraySequence or NewArraySequenceWithConfig to create one.
//
// ArraySequence is not safe for concurrent use.
type ArraySequence[T any] struct {
	id      ulid.ULID
	storage *storage.LinearIndexStorage[T]
	version uint64
	logger  zerolog.Logger
}

// NewArraySequence creates a sequence containing items, the first item has index 0.
func NewArraySequence[T any](items ...T) *ArraySequence[T] {
	s, err := NewArraySequenceWithConfig(DefaultConfig(), items...)
	if err != nil {
		//the default configuration is valid
		panic(err)
	}
	return s
}

func NewArraySequenceWithConfig[T any](config Config, items ...T) (*ArraySequence[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	st, err := storage.NewLinearIndexStorage[T](config.FirstIndex, config.Storage)
	if err != nil {
		return nil, err
	}

	s := &ArraySequence[T]{
		id:      ulid.Make(),
		storage: st,
	}
	s.SetLogger(zerolog.Nop())

	if len(items) > 0 {
		if err := st.EnsureCapacity(len(items)); err != nil {
			return nil, err
		}
		if err := st.Append(items...); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ID returns the identifier of the sequence, it is added to every log entry as the "sequence" field.
func (s *ArraySequence[T]) ID() ulid.ULID {
	return s.id
}

func (s *ArraySequence[T]) SetLogger(logger zerolog.Logger) {
	s.logger = logger.With().Str("sequence", s.id.String()).Logger()
	s.storage.SetLogger(s.logger)
}

func (s *ArraySequence[T]) FirstIndex() int {
	return s.storage.FirstEffectiveIndex()
}

func (s *ArraySequence[T]) LastIndex() int {
	return s.storage.LastEffectiveIndex()
}

func (s *ArraySequence[T]) Len() int {
	return s.storage.Len()
}

func (s *ArraySequence[T]) IsEmpty() bool {
	return s.storage.Len() == 0
}

func (s *ArraySequence[T]) StructureVersion() uint64 {
	return s.version
}

func (s *ArraySequence[T]) Get(index int) (T, error) {
	if err := AssertIndexValid(s, index); err != nil {
		var zero T
		return zero, err
	}
	return s.storage.Get(index)
}

func (s *ArraySequence[T]) Replace(index int, item T, observers ...observer.ValueObserver[T]) error {
	if err := AssertIndexValid(s, index); err != nil {
		return err
	}

	return observer.Operate(item, func() error {
		_, err := s.storage.Set(index, item)
		return err
	}, observers...)
}

func (s *ArraySequence[T]) Insert(index int, items []T, observers ...observer.ValueObserver[T]) error {
	if err := AssertIndexValid(s, index); err != nil {
		return err
	}
	return s.insert(index, items, observers)
}

func (s *ArraySequence[T]) Append(items []T, observers ...observer.ValueObserver[T]) error {
	return s.insert(s.LastIndex()+1, items, observers)
}

// Prepend inserts items before the first item, the first index does not change.
func (s *ArraySequence[T]) Prepend(items []T, observers ...observer.ValueObserver[T]) error {
	return s.insert(s.FirstIndex(), items, observers)
}

// insert inserts the items at index, index can be LastIndex() + 1. When there are observers the items are
// inserted one by one: if an observer vetoes an insertion the previously inserted items are kept.
func (s *ArraySequence[T]) insert(index int, items []T, observers []observer.ValueObserver[T]) error {
	if len(items) == 0 {
		return nil
	}

	if len(observers) == 0 {
		if err := s.storage.Insert(index, items...); err != nil {
			return err
		}
		s.version++
		return nil
	}

	for i, item := range items {
		err := observer.Operate(item, func() error {
			if err := s.storage.Insert(index+i, item); err != nil {
				return err
			}
			s.version++
			return nil
		}, observers...)

		if err != nil {
			return err
		}
	}
	return nil
}

func (s *ArraySequence[T]) Remove(index int, observers ...observer.ValueObserver[T]) (T, error) {
	item, err := s.Get(index)
	if err != nil {
		return item, err
	}

	err = observer.Operate(item, func() error {
		if _, err := s.storage.Remove(index); err != nil {
			return err
		}
		s.version++
		return nil
	}, observers...)

	return item, err
}

// RemoveRange removes the items in the inclusive range [from, to]. When there are observers the items are
// removed one by one in index order.
func (s *ArraySequence[T]) RemoveRange(from, to int, observers ...observer.ValueObserver[T]) error {
	if err := AssertIndexRangeValid(s, from, to); err != nil {
		return err
	}

	if len(observers) == 0 {
		if err := s.storage.RemoveRange(from, to); err != nil {
			return err
		}
		s.version++
		return nil
	}

	for range to - from + 1 {
		if _, err := s.Remove(from, observers...); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll removes every item, the first index does not change.
func (s *ArraySequence[T]) RemoveAll(observers ...observer.ValueObserver[T]) error {
	if s.IsEmpty() {
		return nil
	}

	if len(observers) == 0 {
		s.storage.Clear()
		s.version++
		s.logger.Debug().Msg("all items removed")
		return nil
	}
	return s.RemoveRange(s.FirstIndex(), s.LastIndex(), observers...)
}

// Values returns a copy of the items in index order.
func (s *ArraySequence[T]) Values() []T {
	return s.storage.Values()
}

// All returns an iterator over the index-item pairs, the sequence should not be structurally modified during
// the iteration.
func (s *ArraySequence[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := s.FirstIndex(); i <= s.LastIndex(); i++ {
			item, err := s.storage.Get(i)
			if err != nil || !yield(i, item) {
				return
			}
		}
	}
}

// ForEach calls fn for each item in index order, the iteration stops at the first error.
func (s *ArraySequence[T]) ForEach(fn func(index int, item T) error) error {
	return s.storage.ForEach(fn)
}

func (s *ArraySequence[T]) Equal(other IndexSequence[T], eq func(a, b T) bool) bool {
	return Equal[T](s, other, eq)
}

// SubsequenceView returns a view of the items in [from, to], see SubSequence.
func (s *ArraySequence[T]) SubsequenceView(from, to int) (*SubSequence[T], error) {
	view, err := NewSubsequenceView[T](s, from, to)
	if err != nil {
		return nil, err
	}
	view.SetLogger(s.logger)
	return view, nil
}

// CreateTraverser returns a traverser positioned before the first item.
func (s *ArraySequence[T]) CreateTraverser() *Traverser[T] {
	return NewTraverser[T](s)
}

// CreateTraverserAt returns a traverser whose first call to Next returns the item at index.
func (s *ArraySequence[T]) CreateTraverserAt(index int) (*Traverser[T], error) {
	return NewTraverserAt[T](s, index)
}

type arraySequenceJSON[T any] struct {
	FirstIndex int `json:"firstIndex"`
	Items      []T `json:"items"`
}

func (s *ArraySequence[T]) MarshalJSON() ([]byte, error) {
	return utils.MarshalJsonNoHTMLEspace(arraySequenceJSON[T]{
		FirstIndex: s.FirstIndex(),
		Items:      s.Values(),
	})
}

// UnmarshalJSON replaces the content of the sequence, the storage configuration of the sequence is kept.
func (s *ArraySequence[T]) UnmarshalJSON(data []byte) error {
	var decoded arraySequenceJSON[T]
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	config := storage.DefaultConfig()
	if s.storage != nil {
		config = s.storage.Config()
	}

	st, err := storage.NewLinearIndexStorage[T](decoded.FirstIndex, config)
	if err != nil {
		return err
	}
	if err := st.Append(decoded.Items...); err != nil {
		return err
	}

	if s.storage == nil {
		s.id = ulid.Make()
		s.logger = zerolog.Nop().With().Str("sequence", s.id.String()).Logger()
	}
	st.SetLogger(s.logger)

	s.storage = st
	s.version++
	return nil
}
