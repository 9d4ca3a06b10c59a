package debugs

import (
	"github.com/reusee/tapebf/bfvm"
	"github.com/reusee/tapebf/cells"
)

// MachineGlobals exposes program and engine state, the functions read live state.
func MachineGlobals[T cells.Cell](p *bfvm.Program, e *bfvm.Engine[T]) map[string]any {
	return map[string]any{
		"source": p.Source,
		"ip": func() int {
			return p.IP
		},
		"dp": func() int {
			return e.DataPointer
		},
		"cycles": func() int {
			return p.Cycles
		},
		"cell": func(i int) uint64 {
			return uint64(e.Cells.Read(i))
		},
		"length": func() int {
			return e.Cells.Len()
		},
		"min_cell": func() uint64 {
			return uint64(e.Cells.Min)
		},
		"max_cell": func() uint64 {
			return uint64(e.Cells.Max)
		},
		"trace": func() string {
			return bfvm.Trace(p, e)
		},
		"step": func() error {
			return e.Step(p)
		},
		"halted": func() bool {
			return !p.HasRemainingInstructions()
		},
	}
}
