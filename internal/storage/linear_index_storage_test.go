package storage

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T, first int, config Config, items ...int) *LinearIndexStorage[int] {
	t.Helper()
	s, err := NewLinearIndexStorage[int](first, config)
	require.NoError(t, err)
	require.NoError(t, s.Append(items...))
	return s
}

func TestLinearIndexStorage(t *testing.T) {

	t.Run("empty", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig())

		assert.Zero(t, s.Len())
		assert.Zero(t, s.Capacity())
		assert.Equal(t, 0, s.FirstEffectiveIndex())
		assert.Equal(t, -1, s.LastEffectiveIndex())
		assert.Equal(t, []int{}, s.Values())

		_, err := s.Get(0)
		assert.ErrorIs(t, err, ErrInvalidEffectiveIndex)
	})

	t.Run("append preserves order", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig())

		for i := 0; i < 100; i++ {
			if !assert.NoError(t, s.Append(i)) {
				return
			}
		}

		assert.Equal(t, 100, s.Len())
		assert.Equal(t, 99, s.LastEffectiveIndex())
		for i := 0; i < 100; i++ {
			v, err := s.Get(i)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, i, v)
		}
	})

	t.Run("appends are amortized", func(t *testing.T) {
		logs := bytes.NewBuffer(nil)
		s := newStorage(t, 0, DefaultConfig())
		s.SetLogger(zerolog.New(logs).Level(zerolog.DebugLevel))

		relocations := 0
		prevCapacity := s.Capacity()
		for i := 0; i < 1000; i++ {
			s.Append(i)
			if s.Capacity() != prevCapacity {
				relocations++
				prevCapacity = s.Capacity()
			}
		}

		//8, 16, 32, ..., 1024
		assert.Equal(t, 8, relocations)
		assert.Equal(t, 8, bytes.Count(logs.Bytes(), []byte("storage relocated")))
	})

	t.Run("appends and prepends are amortized with every strategy", func(t *testing.T) {
		for _, kind := range []StrategyKind{TailCapacity, HeadCapacity, SplitCapacity} {
			t.Run(string(kind), func(t *testing.T) {
				logs := bytes.NewBuffer(nil)
				appended := newStorage(t, 0, Config{Strategy: kind})
				appended.SetLogger(zerolog.New(logs).Level(zerolog.DebugLevel))

				expected := make([]int, 4096)
				for i := range 4096 {
					require.NoError(t, appended.Append(i))
					expected[i] = i
				}
				assert.Equal(t, expected, appended.Values())
				assert.LessOrEqual(t, bytes.Count(logs.Bytes(), []byte("storage relocated")), 11)
				assert.LessOrEqual(t, bytes.Count(logs.Bytes(), []byte("storage laid out again")), 11)

				logs.Reset()
				prepended := newStorage(t, 0, Config{Strategy: kind})
				prepended.SetLogger(zerolog.New(logs).Level(zerolog.DebugLevel))

				for i := range 4096 {
					require.NoError(t, prepended.Prepend(4095 - i))
				}
				assert.Equal(t, expected, prepended.Values())
				assert.LessOrEqual(t, bytes.Count(logs.Bytes(), []byte("storage relocated")), 11)
				assert.LessOrEqual(t, bytes.Count(logs.Bytes(), []byte("storage laid out again")), 11)
			})
		}
	})

	t.Run("non-zero first effective index", func(t *testing.T) {
		s := newStorage(t, 5, DefaultConfig(), 10, 20, 30)

		assert.Equal(t, 5, s.FirstEffectiveIndex())
		assert.Equal(t, 7, s.LastEffectiveIndex())

		v, err := s.Get(6)
		assert.NoError(t, err)
		assert.Equal(t, 20, v)

		_, err = s.Get(4)
		var indexErr EffectiveIndexError
		if !assert.ErrorAs(t, err, &indexErr) {
			return
		}
		assert.True(t, indexErr.BelowFirst())
		assert.False(t, indexErr.AboveLast())

		_, err = s.Get(8)
		if !assert.ErrorAs(t, err, &indexErr) {
			return
		}
		assert.True(t, indexErr.AboveLast())
		assert.Equal(t, 8, indexErr.Index)
		assert.Equal(t, 5, indexErr.First)
		assert.Equal(t, 7, indexErr.Last)
	})

	t.Run("ArrayIndex", func(t *testing.T) {
		s := newStorage(t, 1, Config{Strategy: SplitCapacity, InitialCapacity: 10}, 1, 2)

		i, err := s.ArrayIndex(1)
		assert.NoError(t, err)
		assert.Equal(t, s.HeadCapacity(), i)

		i, err = s.ArrayIndex(2)
		assert.NoError(t, err)
		assert.Equal(t, s.HeadCapacity()+1, i)

		_, err = s.ArrayIndex(3)
		assert.ErrorIs(t, err, ErrInvalidEffectiveIndex)
	})

	t.Run("Set", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig(), 1, 2, 3)

		prev, err := s.Set(1, 20)
		assert.NoError(t, err)
		assert.Equal(t, 2, prev)
		assert.Equal(t, []int{1, 20, 3}, s.Values())

		_, err = s.Set(3, 0)
		assert.ErrorIs(t, err, ErrInvalidEffectiveIndex)
	})
}

func TestLinearIndexStorageEnsureCapacity(t *testing.T) {
	t.Run("grows and keeps items", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig(), 1, 2, 3)

		assert.NoError(t, s.EnsureCapacity(100))
		assert.GreaterOrEqual(t, s.Capacity(), 100)
		assert.Equal(t, []int{1, 2, 3}, s.Values())
		assert.Equal(t, 2, s.LastEffectiveIndex())
	})

	t.Run("no-op if large enough", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig(), 1, 2, 3)
		capacity := s.Capacity()

		assert.NoError(t, s.EnsureCapacity(2))
		assert.Equal(t, capacity, s.Capacity())
	})

	t.Run("negative", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig())
		assert.ErrorIs(t, s.EnsureCapacity(-1), ErrInvalidCapacity)
	})
}

func TestLinearIndexStorageEnsureCapacityWithHole(t *testing.T) {

	t.Run("hole in the middle", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig(), 1, 2, 3, 4)

		err := s.EnsureCapacityWithHole(10, 2, 2)
		if !assert.NoError(t, err) {
			return
		}
		assert.GreaterOrEqual(t, s.Capacity(), 10)
		assert.Equal(t, []int{1, 2, 0, 0, 3, 4}, s.Values())
		assert.Equal(t, 5, s.LastEffectiveIndex())
	})

	t.Run("hole at the end", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig(), 1, 2)

		assert.NoError(t, s.EnsureCapacityWithHole(3, 2, 1))
		assert.Equal(t, []int{1, 2, 0}, s.Values())
	})

	t.Run("hole at the start uses the head slack", func(t *testing.T) {
		s := newStorage(t, 0, Config{Strategy: HeadCapacity, InitialCapacity: 8}, 1, 2)
		if !assert.Equal(t, 6, s.HeadCapacity()) {
			return
		}
		capacity := s.Capacity()

		assert.NoError(t, s.EnsureCapacityWithHole(3, 0, 1))
		assert.Equal(t, []int{0, 1, 2}, s.Values())
		assert.Equal(t, 5, s.HeadCapacity())
		assert.Equal(t, capacity, s.Capacity())
	})

	t.Run("free slots on the wrong side are moved without reallocating", func(t *testing.T) {
		s := newStorage(t, 0, Config{Strategy: HeadCapacity, InitialCapacity: 8}, 1, 2)
		capacity := s.Capacity()

		assert.NoError(t, s.EnsureCapacityWithHole(3, 2, 1))
		assert.Equal(t, []int{1, 2, 0}, s.Values())
		assert.Equal(t, capacity, s.Capacity())
		assert.Equal(t, 2, s.HeadCapacity())
		assert.Equal(t, 3, s.TailCapacity())

		for _, v := range s.slots[:s.head] {
			assert.Zero(t, v)
		}
		for _, v := range s.slots[s.head+s.count:] {
			assert.Zero(t, v)
		}
	})

	t.Run("hole larger than the expected capacity allows", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig(), 1, 2, 3)
		capacity := s.Capacity()

		err := s.EnsureCapacityWithHole(4, 1, 2)

		var capacityErr CapacityError
		if !assert.ErrorAs(t, err, &capacityErr) {
			return
		}
		assert.ErrorIs(t, err, ErrInvalidCapacity)
		assert.Equal(t, 4, capacityErr.ExpectedCapacity)
		assert.Equal(t, 3, capacityErr.Occupied)
		assert.Equal(t, 2, capacityErr.HoleSize)

		//nothing changed
		assert.Equal(t, []int{1, 2, 3}, s.Values())
		assert.Equal(t, capacity, s.Capacity())
	})

	t.Run("invalid hole index", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig(), 1, 2, 3)

		err := s.EnsureCapacityWithHole(10, 4, 1)
		assert.ErrorIs(t, err, ErrInvalidEffectiveIndex)
		assert.Equal(t, []int{1, 2, 3}, s.Values())

		err = s.EnsureCapacityWithHole(10, -1, 1)
		assert.ErrorIs(t, err, ErrInvalidEffectiveIndex)
	})

	t.Run("negative hole size", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig(), 1)
		assert.ErrorIs(t, s.EnsureCapacityWithHole(10, 0, -1), ErrInvalidCapacity)
	})
}

func TestLinearIndexStorageInsertRemove(t *testing.T) {
	configs := map[string]Config{
		"tail":  {Strategy: TailCapacity},
		"head":  {Strategy: HeadCapacity},
		"split": {Strategy: SplitCapacity},
	}

	for name, config := range configs {
		t.Run(name, func(t *testing.T) {
			s := newStorage(t, 0, config, 10, 20, 30)

			assert.NoError(t, s.Insert(1, 15))
			assert.Equal(t, []int{10, 15, 20, 30}, s.Values())

			assert.NoError(t, s.Prepend(1, 2))
			assert.Equal(t, []int{1, 2, 10, 15, 20, 30}, s.Values())

			assert.NoError(t, s.Append(40))
			assert.Equal(t, []int{1, 2, 10, 15, 20, 30, 40}, s.Values())

			item, err := s.Remove(0)
			assert.NoError(t, err)
			assert.Equal(t, 1, item)

			item, err = s.Remove(5)
			assert.NoError(t, err)
			assert.Equal(t, 40, item)

			item, err = s.Remove(2)
			assert.NoError(t, err)
			assert.Equal(t, 15, item)

			assert.Equal(t, []int{2, 10, 20, 30}, s.Values())
			assert.Equal(t, 0, s.FirstEffectiveIndex())
			assert.Equal(t, 3, s.LastEffectiveIndex())

			assert.NoError(t, s.RemoveRange(1, 2))
			assert.Equal(t, []int{2, 30}, s.Values())

			_, err = s.Remove(2)
			assert.ErrorIs(t, err, ErrInvalidEffectiveIndex)
		})
	}

	t.Run("invalid range", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig(), 1, 2, 3)

		assert.ErrorIs(t, s.RemoveRange(2, 1), ErrInvalidEffectiveIndex)
		assert.ErrorIs(t, s.RemoveRange(0, 3), ErrInvalidEffectiveIndex)
		assert.Equal(t, []int{1, 2, 3}, s.Values())
	})

	t.Run("removed slots are zeroed", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig(), 1, 2, 3, 4)

		_, err := s.Remove(3)
		assert.NoError(t, err)
		_, err = s.Remove(0)
		assert.NoError(t, err)

		for _, v := range s.slots[:s.head] {
			assert.Zero(t, v)
		}
		for _, v := range s.slots[s.head+s.count:] {
			assert.Zero(t, v)
		}
	})

	t.Run("queue-like usage does not grow the buffer forever", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig())

		for i := 0; i < 10_000; i++ {
			s.Append(i)
			if i >= 3 {
				_, err := s.Remove(0)
				if !assert.NoError(t, err) {
					return
				}
			}
		}

		assert.Equal(t, 3, s.Len())
		assert.LessOrEqual(t, s.Capacity(), 16)
		assert.Equal(t, []int{9997, 9998, 9999}, s.Values())
	})

	t.Run("shrink", func(t *testing.T) {
		s := newStorage(t, 0, DefaultConfig())
		for i := 0; i < 256; i++ {
			s.Append(i)
		}
		assert.Equal(t, 256, s.Capacity())

		assert.NoError(t, s.RemoveRange(0, 249))
		assert.Less(t, s.Capacity(), 256)
		assert.Equal(t, []int{250, 251, 252, 253, 254, 255}, s.Values())
	})

	t.Run("shrinking disabled", func(t *testing.T) {
		s := newStorage(t, 0, Config{ShrinkDivider: -1})
		for i := 0; i < 256; i++ {
			s.Append(i)
		}

		assert.NoError(t, s.RemoveRange(0, 249))
		assert.Equal(t, 256, s.Capacity())
	})

	t.Run("Clear", func(t *testing.T) {
		s := newStorage(t, 2, DefaultConfig(), 1, 2, 3)
		s.Clear()

		assert.Zero(t, s.Len())
		assert.Equal(t, 1, s.LastEffectiveIndex())
		assert.NoError(t, s.Append(4))
		assert.Equal(t, []int{4}, s.Values())
	})

	t.Run("ForEach", func(t *testing.T) {
		s := newStorage(t, 3, DefaultConfig(), 1, 2, 3)

		var indexes []int
		stop := errors.New("stop")
		err := s.ForEach(func(effectiveIndex int, item int) error {
			indexes = append(indexes, effectiveIndex)
			if item == 2 {
				return stop
			}
			return nil
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, []int{3, 4}, indexes)
	})
}

func TestConfig(t *testing.T) {
	t.Run("LoadConfig", func(t *testing.T) {
		config, err := LoadConfig([]byte("strategy: split\ninitial-capacity: 32\n"))
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, SplitCapacity, config.Strategy)
		assert.Equal(t, 32, config.InitialCapacity)
		assert.Equal(t, DEFAULT_GROWTH_FACTOR, config.GrowthFactor)
	})

	t.Run("LoadConfig: unknown strategy", func(t *testing.T) {
		_, err := LoadConfig([]byte("strategy: middle\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("LoadConfig: malformed document", func(t *testing.T) {
		_, err := LoadConfig([]byte("initial-capacity: [\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Validate", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
		assert.NoError(t, Config{}.Validate())
		assert.ErrorIs(t, Config{InitialCapacity: -1}.Validate(), ErrInvalidConfig)
		assert.ErrorIs(t, Config{GrowthFactor: 1}.Validate(), ErrInvalidConfig)
		assert.ErrorIs(t, Config{ShrinkDivider: 2}.Validate(), ErrInvalidConfig)

		_, err := NewLinearIndexStorage[int](0, Config{GrowthFactor: 0.5})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
