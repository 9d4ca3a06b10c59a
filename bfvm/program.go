package bfvm

type Program struct {
	Source       string
	Instructions []LoadedInstruction
	IP           int
	Cycles       int
}

func Load(source string) *Program {
	program := &Program{
		Source: source,
	}
	offset := 0
	for _, r := range source {
		if inst, ok := InstructionFromRune(r); ok {
			program.Instructions = append(program.Instructions, LoadedInstruction{
				Instruction: inst,
				Offset:      offset,
			})
		}
		offset++
	}
	return program
}

func (p *Program) Current() (Instruction, bool) {
	loaded, ok := p.CurrentLoaded()
	return loaded.Instruction, ok
}

func (p *Program) CurrentLoaded() (LoadedInstruction, bool) {
	if p.IP < 0 || p.IP >= len(p.Instructions) {
		return LoadedInstruction{}, false
	}
	return p.Instructions[p.IP], true
}

func (p *Program) HasRemainingInstructions() bool {
	return p.IP >= 0 && p.IP < len(p.Instructions)
}

func (p *Program) Len() int {
	return len(p.Instructions)
}
