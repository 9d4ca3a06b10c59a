package bfvm

import "fmt"

type Instruction uint8

const (
	InvalidInstruction Instruction = iota
	IncrementDataPointer
	DecrementDataPointer
	IncrementData
	DecrementData
	OutputData
	AcceptData
	JumpForwardsIfZero
	JumpBackwardsIfNonzero
)

func InstructionFromRune(r rune) (Instruction, bool) {
	switch r {
	case '>':
		return IncrementDataPointer, true
	case '<':
		return DecrementDataPointer, true
	case '+':
		return IncrementData, true
	case '-':
		return DecrementData, true
	case '.':
		return OutputData, true
	case ',':
		return AcceptData, true
	case '[':
		return JumpForwardsIfZero, true
	case ']':
		return JumpBackwardsIfNonzero, true
	}
	return InvalidInstruction, false
}

func (i Instruction) Rune() rune {
	switch i {
	case IncrementDataPointer:
		return '>'
	case DecrementDataPointer:
		return '<'
	case IncrementData:
		return '+'
	case DecrementData:
		return '-'
	case OutputData:
		return '.'
	case AcceptData:
		return ','
	case JumpForwardsIfZero:
		return '['
	case JumpBackwardsIfNonzero:
		return ']'
	}
	return 0
}

func (i Instruction) String() string {
	switch i {
	case IncrementDataPointer:
		return "IncrementDataPointer"
	case DecrementDataPointer:
		return "DecrementDataPointer"
	case IncrementData:
		return "IncrementData"
	case DecrementData:
		return "DecrementData"
	case OutputData:
		return "OutputData"
	case AcceptData:
		return "AcceptData"
	case JumpForwardsIfZero:
		return "JumpForwardsIfZero"
	case JumpBackwardsIfNonzero:
		return "JumpBackwardsIfNonzero"
	}
	return fmt.Sprintf("Instruction(%d)", uint8(i))
}

type LoadedInstruction struct {
	Instruction Instruction
	// rune index into Program.Source
	Offset int
}
