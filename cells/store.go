package cells

import "fmt"

type Store[T Cell] struct {
	Data []T
	Min  T
	Max  T
}

// minimum tape length of the classic machine
const initialCapacity = 30000

// MaxIndex is the highest addressable cell.
const MaxIndex = 1<<20 - 1

func ValidIndex(i int) bool {
	return i >= 0 && i <= MaxIndex
}

func NewStore[T Cell]() *Store[T] {
	return &Store[T]{
		Data: make([]T, 0, initialCapacity),
		Min:  0,
		Max:  MaxValue[T](),
	}
}

func (s *Store[T]) Len() int {
	return len(s.Data)
}

// Get returns cell i, growing the store. i must satisfy ValidIndex.
func (s *Store[T]) Get(i int) *T {
	if !ValidIndex(i) {
		panic(fmt.Errorf("cell index out of range: %d", i))
	}
	if i >= len(s.Data) {
		s.Data = append(s.Data, make([]T, i+1-len(s.Data))...)
	}
	return &s.Data[i]
}

func (s *Store[T]) Read(i int) T {
	if i < 0 || i >= len(s.Data) {
		return 0
	}
	return s.Data[i]
}

func (s *Store[T]) Set(i int, value T) {
	*s.Get(i) = value
}

func (s *Store[T]) Increment(i int) {
	cell := s.Get(i)
	if *cell >= s.Max {
		*cell = s.Min
	} else {
		*cell++
	}
}

func (s *Store[T]) Decrement(i int) {
	cell := s.Get(i)
	if *cell <= s.Min {
		*cell = s.Max
	} else {
		*cell--
	}
}

// Clamp moves cell i into [Min, Max] by whole multiples of Max-Min.
func (s *Store[T]) Clamp(i int) {
	cell := s.Get(i)
	*cell = s.clamp(*cell)
}

func (s *Store[T]) clamp(v T) T {
	width := s.Max - s.Min
	if width == 0 {
		return s.Min
	}
	if v > s.Max {
		excess := v - s.Max
		n := excess / width
		if excess%width != 0 {
			n++
		}
		return v - n*width
	}
	if v < s.Min {
		deficit := s.Min - v
		n := deficit / width
		if deficit%width != 0 {
			n++
		}
		return v + n*width
	}
	return v
}

// SetBounds installs a new band and clamps every stored cell into it.
func (s *Store[T]) SetBounds(min, max T) {
	if min > max {
		min, max = max, min
	}
	s.Min = min
	s.Max = max
	for i, v := range s.Data {
		s.Data[i] = s.clamp(v)
	}
}
