package bfvm

import (
	"context"
	"errors"

	"github.com/reusee/tapebf/cells"
)

var (
	ErrPointerUnderflow = errors.New("data pointer underflow")
	ErrPointerOverflow  = errors.New("data pointer overflow")
)

type UnderflowPolicy uint8

const (
	// UnderflowFail rejects the instruction and leaves the machine untouched
	UnderflowFail UnderflowPolicy = iota
	// UnderflowSaturate keeps the data pointer at zero or cells.MaxIndex
	UnderflowSaturate
)

type Engine[T cells.Cell] struct {
	Cells       *cells.Store[T]
	DataPointer int
	Underflow   UnderflowPolicy

	Read    func() T
	Write   func(T)
	Refresh func(*Program, *Engine[T])
}

func NewEngine[T cells.Cell](read func() T, write func(T)) *Engine[T] {
	return &Engine[T]{
		Cells: cells.NewStore[T](),
		Read:  read,
		Write: write,
	}
}

func (e *Engine[T]) Current() T {
	return e.Cells.Read(e.DataPointer)
}

func (e *Engine[T]) refresh(p *Program) {
	if e.Refresh != nil {
		e.Refresh(p, e)
	}
}

func (e *Engine[T]) Step(p *Program) error {
	inst, ok := p.Current()
	if !ok {
		return nil
	}

	// the pointer may have been set from outside
	switch {
	case e.DataPointer < 0:
		return ErrPointerUnderflow
	case e.DataPointer > cells.MaxIndex:
		return ErrPointerOverflow
	}

	advance := true
	switch inst {

	case IncrementDataPointer:
		if e.DataPointer >= cells.MaxIndex {
			if e.Underflow == UnderflowFail {
				return ErrPointerOverflow
			}
			e.DataPointer = cells.MaxIndex
		} else {
			e.DataPointer++
		}

	case DecrementDataPointer:
		if e.DataPointer <= 0 {
			if e.Underflow == UnderflowFail {
				return ErrPointerUnderflow
			}
			e.DataPointer = 0
		} else {
			e.DataPointer--
		}

	case IncrementData:
		e.Cells.Increment(e.DataPointer)

	case DecrementData:
		e.Cells.Decrement(e.DataPointer)

	case OutputData:
		if e.Write != nil {
			e.Write(e.Current())
		}

	case AcceptData:
		var value T
		if e.Read != nil {
			value = e.Read()
		}
		e.Cells.Set(e.DataPointer, value)

	case JumpForwardsIfZero:
		if e.Current() == 0 {
			e.jumpForwards(p)
			advance = false
		}

	case JumpBackwardsIfNonzero:
		if e.Current() != 0 {
			e.jumpBackwards(p)
			advance = false
		}

	}

	if advance {
		p.IP++
	}
	e.refresh(p)
	p.Cycles++
	return nil
}

// jumpForwards leaves IP just past the matching ], or at len(p.Instructions) if there is none.
func (e *Engine[T]) jumpForwards(p *Program) bool {
	depth := 0
	for p.IP < len(p.Instructions) {
		p.IP++
		e.refresh(p)
		inst, ok := p.Current()
		if !ok {
			break
		}
		switch inst {
		case JumpBackwardsIfNonzero:
			if depth == 0 {
				p.IP++
				e.refresh(p)
				return true
			}
			depth--
		case JumpForwardsIfZero:
			depth++
		}
	}
	return false
}

// jumpBackwards leaves IP just past the matching [, or at 0 if there is none.
func (e *Engine[T]) jumpBackwards(p *Program) bool {
	depth := 0
	for p.IP > 0 {
		p.IP--
		e.refresh(p)
		inst, ok := p.Current()
		if !ok {
			break
		}
		switch inst {
		case JumpForwardsIfZero:
			if depth == 0 {
				p.IP++
				e.refresh(p)
				return true
			}
			depth--
		case JumpBackwardsIfNonzero:
			depth++
		}
	}
	return false
}

func (e *Engine[T]) Run(ctx context.Context, p *Program) error {
	for p.HasRemainingInstructions() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.Step(p); err != nil {
			return err
		}
	}
	return nil
}
