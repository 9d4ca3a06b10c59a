package bfvm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/reusee/tapebf/cells"
)

// StreamIO feeds AcceptData from a byte stream and writes OutputData as big-endian cells.
type StreamIO[T cells.Cell] struct {
	r   *bufio.Reader
	w   *bufio.Writer
	err error
}

func NewStreamIO[T cells.Cell](r io.Reader, w io.Writer) *StreamIO[T] {
	return &StreamIO[T]{
		r: bufio.NewReader(r),
		w: bufio.NewWriter(w),
	}
}

// Read returns 0 at end of input.
func (s *StreamIO[T]) Read() T {
	b, err := s.r.ReadByte()
	if err != nil {
		if !errors.Is(err, io.EOF) && s.err == nil {
			s.err = err
		}
		return 0
	}
	return T(b)
}

func (s *StreamIO[T]) Write(value T) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	n := cells.Width[T]() / 8
	if _, err := s.w.Write(buf[len(buf)-n:]); err != nil && s.err == nil {
		s.err = err
	}
}

func (s *StreamIO[T]) Flush() error {
	if err := s.w.Flush(); err != nil && s.err == nil {
		s.err = err
	}
	return s.err
}

func (s *StreamIO[T]) Err() error {
	return s.err
}

func (s *StreamIO[T]) Attach(e *Engine[T]) {
	e.Read = s.Read
	e.Write = s.Write
}
