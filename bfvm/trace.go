package bfvm

import (
	"fmt"

	"github.com/reusee/tapebf/cells"
)

func Trace[T cells.Cell](p *Program, e *Engine[T]) string {
	var instruction string
	if inst, ok := p.Current(); ok {
		instruction = inst.String()
	} else {
		instruction = fmt.Sprintf("<end+%d>", p.IP-len(p.Instructions))
	}
	return fmt.Sprintf(
		"%d: data(*%d=%d) instr(*%d=%s)",
		p.Cycles,
		e.DataPointer,
		e.Current(),
		p.IP,
		instruction,
	)
}
