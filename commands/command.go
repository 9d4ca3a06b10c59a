package commands

import (
	"time"

	"github.com/reusee/tapebf/cells"
)

type Command interface {
	isCommand()
}

type Start struct{}

type Pause struct{}

type Quit struct{}

type Step struct {
	Count int
}

type SetInstructionPointer struct {
	Index int
}

type SetDataPointer struct {
	Index int
}

type SetData[T cells.Cell] struct {
	// Index is meaningful only when HasIndex is set, the data pointer is used otherwise
	Index    int
	HasIndex bool
	Value    T
}

type SetSpeed struct {
	Speed time.Duration
}

type SetBounds[T cells.Cell] struct {
	Lower T
	Upper T
}

type Load struct {
	Path string
}

func (Start) isCommand()                 {}
func (Pause) isCommand()                 {}
func (Quit) isCommand()                  {}
func (Step) isCommand()                  {}
func (SetInstructionPointer) isCommand() {}
func (SetDataPointer) isCommand()        {}
func (SetData[T]) isCommand()            {}
func (SetSpeed) isCommand()              {}
func (SetBounds[T]) isCommand()          {}
func (Load) isCommand()                  {}
