package bfvm

import "testing"

func TestTrace(t *testing.T) {
	program := Load("+>")
	engine := NewEngine[uint8](nil, nil)
	var lines []string
	engine.Refresh = func(p *Program, e *Engine[uint8]) {
		lines = append(lines, Trace(p, e))
	}
	run(t, program, engine)
	if len(lines) != 2 {
		t.Fatalf("got %v", lines)
	}
	if lines[0] != "0: data(*0=1) instr(*1=IncrementDataPointer)" {
		t.Fatalf("got %s", lines[0])
	}
	if lines[1] != "1: data(*1=0) instr(*2=<end+0>)" {
		t.Fatalf("got %s", lines[1])
	}
}
