package container

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jlibgo/jlib/internal/observer"
	"github.com/jlibgo/jlib/internal/sequence"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGodContainerUnconfigured(t *testing.T) {
	buf := bytes.NewBuffer(nil)

	c := New(Delegates[int]{})
	c.SetLogger(zerolog.New(buf))

	for capability := range capabilityNames {
		assert.False(t, c.Configured(capability), capability.String())
	}

	_, err := c.Count()
	assert.ErrorIs(t, err, ErrCapabilityNotConfigured)
	assert.Equal(t, CapabilityError{Capability: CountCapability}, err)

	_, err = c.IsEmpty()
	assert.ErrorIs(t, err, ErrCapabilityNotConfigured)
	_, err = c.Contains(1)
	assert.ErrorIs(t, err, ErrCapabilityNotConfigured)
	_, err = c.ContainsAll([]int{1})
	assert.ErrorIs(t, err, ErrCapabilityNotConfigured)
	assert.ErrorIs(t, c.Remove(1), ErrCapabilityNotConfigured)
	assert.ErrorIs(t, c.RemoveItems([]int{1}), ErrCapabilityNotConfigured)
	assert.ErrorIs(t, c.RemoveAll(), ErrCapabilityNotConfigured)
	assert.ErrorIs(t, c.Retain([]int{1}), ErrCapabilityNotConfigured)
	_, err = c.ToSlice()
	assert.ErrorIs(t, err, ErrCapabilityNotConfigured)
	assert.ErrorIs(t, c.ForEach(func(item int) error { return nil }), ErrCapabilityNotConfigured)
	_, err = c.ContainsEqualItems(nil)
	assert.ErrorIs(t, err, ErrCapabilityNotConfigured)
	_, err = c.CreateTraverser()
	assert.ErrorIs(t, err, ErrCapabilityNotConfigured)
	set, err := c.ToSet()
	assert.ErrorIs(t, err, ErrCapabilityNotConfigured)
	assert.Nil(t, set)

	assert.Contains(t, buf.String(), `"capability":"remove-items"`)
	assert.Contains(t, buf.String(), "unconfigured capability invoked")
}

type fixedCounter int

func (c fixedCounter) Count() (int, error) {
	return int(c), nil
}

func TestGodContainerSetters(t *testing.T) {
	c := New(Delegates[int]{})

	c.SetCounter(fixedCounter(3))
	assert.True(t, c.Configured(CountCapability))
	assert.False(t, c.Configured(EmptinessCapability))

	count, err := c.Count()
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	c.SetEmptinessChecker(IsEmptyFromCount(fixedCounter(0)))
	empty, err := c.IsEmpty()
	assert.NoError(t, err)
	assert.True(t, empty)

	//unconfiguring
	c.SetCounter(nil)
	assert.False(t, c.Configured(CountCapability))
	_, err = c.Count()
	assert.ErrorIs(t, err, ErrCapabilityNotConfigured)

	assert.False(t, c.Configured(Capability(100)))
	assert.Equal(t, "capability(100)", Capability(100).String())
}

func TestFromSequence(t *testing.T) {

	t.Run("queries", func(t *testing.T) {
		c := FromSequence[int](sequence.NewArraySequence(1, 2, 3), ComparableEquality[int])

		for capability := range capabilityNames {
			assert.Equal(t, capability != ToSetCapability, c.Configured(capability), capability.String())
		}

		count, err := c.Count()
		assert.NoError(t, err)
		assert.Equal(t, 3, count)

		empty, err := c.IsEmpty()
		assert.NoError(t, err)
		assert.False(t, empty)

		contains, err := c.Contains(2)
		assert.NoError(t, err)
		assert.True(t, contains)

		contains, err = c.Contains(4)
		assert.NoError(t, err)
		assert.False(t, contains)

		contains, err = c.ContainsAll([]int{3, 1})
		assert.NoError(t, err)
		assert.True(t, contains)

		contains, err = c.ContainsAll([]int{3, 4})
		assert.NoError(t, err)
		assert.False(t, contains)

		equal, err := c.ContainsEqualItems([]int{1, 2, 3})
		assert.NoError(t, err)
		assert.True(t, equal)

		equal, err = c.ContainsEqualItems([]int{1, 2})
		assert.NoError(t, err)
		assert.False(t, equal)

		items, err := c.ToSlice()
		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, items)

		traverser, err := c.CreateTraverser()
		require.NoError(t, err)
		item, err := traverser.Next()
		assert.NoError(t, err)
		assert.Equal(t, 1, item)
	})

	t.Run("remove", func(t *testing.T) {
		seq := sequence.NewArraySequence(1, 2, 3, 2)
		c := FromSequence[int](seq, ComparableEquality[int])

		assert.NoError(t, c.Remove(2))
		assert.Equal(t, []int{1, 3, 2}, seq.Values())

		err := c.Remove(5)
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.Equal(t, []int{1, 3, 2}, seq.Values())
	})

	t.Run("remove items", func(t *testing.T) {
		seq := sequence.NewArraySequence(1, 2, 3, 2, 4, 5)
		c := FromSequence[int](seq, ComparableEquality[int])

		assert.NoError(t, c.RemoveItems([]int{2, 2, 5}))
		assert.Equal(t, []int{1, 3, 4}, seq.Values())
	})

	t.Run("remove items with a missing item", func(t *testing.T) {
		seq := sequence.NewArraySequence(1, 2, 3)
		c := FromSequence[int](seq, ComparableEquality[int])

		//3 is contained once
		err := c.RemoveItems([]int{1, 3, 3})
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.Equal(t, []int{1, 2, 3}, seq.Values())
	})

	t.Run("retain", func(t *testing.T) {
		seq := sequence.NewArraySequence(1, 2, 3, 4, 5, 6)
		c := FromComparableSequence[int](seq)

		var removed []int
		err := c.Retain([]int{2, 3, 6}, observer.Funcs[int]{
			AfterSuccess: func(value int) error {
				removed = append(removed, value)
				return nil
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, []int{2, 3, 6}, seq.Values())
		assert.ElementsMatch(t, []int{1, 4, 5}, removed)
	})

	t.Run("retain with an equality", func(t *testing.T) {
		seq := sequence.NewArraySequence("a", "B", "c")
		c := FromSequence[string](seq, func(a, b string) bool {
			return bytes.EqualFold([]byte(a), []byte(b))
		})

		assert.NoError(t, c.Retain([]string{"b", "C"}))
		assert.Equal(t, []string{"B", "c"}, seq.Values())
	})

	t.Run("to set", func(t *testing.T) {
		seq := sequence.NewArraySequence(3, 1, 3, 2, 1)
		c := FromComparableSequence[int](seq)
		assert.True(t, c.Configured(ToSetCapability))

		set, err := c.ToSet()
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 3, set.Size())
		assert.True(t, set.Contains(1, 2, 3))
		assert.False(t, set.Contains(4))

		//the set is a copy
		require.NoError(t, seq.RemoveAll())
		assert.Equal(t, 3, set.Size())

		set, err = c.ToSet()
		assert.NoError(t, err)
		assert.True(t, set.Empty())
	})

	t.Run("remove all", func(t *testing.T) {
		seq := sequence.NewArraySequence(1, 2)
		c := FromComparableSequence[int](seq)

		assert.NoError(t, c.RemoveAll())

		empty, err := c.IsEmpty()
		assert.NoError(t, err)
		assert.True(t, empty)

		items, err := c.ToSlice()
		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("observer veto", func(t *testing.T) {
		seq := sequence.NewArraySequence(1, 2)
		c := FromComparableSequence[int](seq)

		err := c.Remove(1, observer.Funcs[int]{
			Before: func(value int) error { return errors.New("veto") },
		})
		assert.ErrorIs(t, err, observer.ErrObserverFailed)
		assert.Equal(t, []int{1, 2}, seq.Values())
	})
}

func TestStrategies(t *testing.T) {
	seq := sequence.NewArraySequence(1, 2, 3)
	traversable := NewSequenceDelegate[int](seq, ComparableEquality[int])

	c := New(Delegates[int]{
		Counter:          CountFromTraversable[int](traversable),
		EmptinessChecker: IsEmptyFromTraversable[int](traversable),
		ItemContainer:    ContainsComparable[int](traversable),
		ItemsContainer:   ContainsByEquality[int](traversable, ComparableEquality[int]),
		SliceConverter:   ToSliceFromTraversable[int](traversable),
		SetConverter:     ToSetFromTraversable[int](traversable),
		EqualItems:       ContainsEqualItemsFromTraversable[int](traversable, ComparableEquality[int]),
	})

	count, err := c.Count()
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	empty, err := c.IsEmpty()
	assert.NoError(t, err)
	assert.False(t, empty)

	contains, err := c.Contains(3)
	assert.NoError(t, err)
	assert.True(t, contains)

	contains, err = c.ContainsAll([]int{1, 3})
	assert.NoError(t, err)
	assert.True(t, contains)

	contains, err = ContainsComparable[int](traversable).ContainsAll([]int{1, 7})
	assert.NoError(t, err)
	assert.False(t, contains)

	items, err := c.ToSlice()
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, items)

	set, err := c.ToSet()
	assert.NoError(t, err)
	assert.ElementsMatch(t, []any{1, 2, 3}, set.Values())

	equal, err := c.ContainsEqualItems([]int{1, 2, 3, 4})
	assert.NoError(t, err)
	assert.False(t, equal)

	assert.False(t, c.Configured(RemoveItemCapability))

	require.NoError(t, seq.RemoveAll())

	empty, err = c.IsEmpty()
	assert.NoError(t, err)
	assert.True(t, empty)

	items, err = c.ToSlice()
	assert.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
