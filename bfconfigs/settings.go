package bfconfigs

import (
	"fmt"
	"math"
	"time"

	"github.com/reusee/tapebf/bfvm"
	"github.com/reusee/tapebf/cmds"
	"github.com/reusee/tapebf/configs"
	"github.com/reusee/tapebf/durations"
	"github.com/reusee/tapebf/vars"
)

var (
	speedFlag     = cmds.Var[time.Duration]("-speed")
	cellBitsFlag  = cmds.Var[int]("-cell-bits")
	minCellFlag   = cmds.Var[*uint64]("-min-cell")
	maxCellFlag   = cmds.Var[*uint64]("-max-cell")
	underflowFlag = cmds.Var[string]("-underflow")
	modeFlag      = cmds.Var[string]("-mode")
)

// Speed is the interval between paced cycles.
type Speed time.Duration

const DefaultSpeed = Speed(100 * time.Millisecond)

func (Module) Speed(
	loader configs.Loader,
) Speed {
	if *speedFlag > 0 {
		return Speed(*speedFlag)
	}
	if str := configs.First[string](loader, "speed"); str != "" {
		d, err := durations.Parse(str)
		if err != nil {
			panic(fmt.Errorf("config speed: %w", err))
		}
		if d < 0 {
			panic(fmt.Errorf("config speed: negative duration %v", d))
		}
		return Speed(d)
	}
	return DefaultSpeed
}

// CellBits is the width of one cell.
type CellBits int

func (Module) CellBits(
	loader configs.Loader,
) CellBits {
	bits := vars.FirstNonZero(
		*cellBitsFlag,
		configs.First[int](loader, "cell_bits"),
		8,
	)
	switch bits {
	case 8, 16, 32, 64:
	default:
		panic(fmt.Errorf("unsupported cell width: %d", bits))
	}
	return CellBits(bits)
}

func (c CellBits) MaxValue() uint64 {
	if c >= 64 {
		return math.MaxUint64
	}
	return 1<<c - 1
}

// Bounds is the band cells wrap within.
type Bounds struct {
	Min uint64
	Max uint64
}

func (Module) Bounds(
	loader configs.Loader,
	bits CellBits,
) Bounds {
	ret := Bounds{
		Min: 0,
		Max: bits.MaxValue(),
	}
	if v := vars.FirstNonZero(*minCellFlag, configs.First[*uint64](loader, "min_cell")); v != nil {
		ret.Min = *v
	}
	if v := vars.FirstNonZero(*maxCellFlag, configs.First[*uint64](loader, "max_cell")); v != nil {
		ret.Max = *v
	}
	if ret.Max > bits.MaxValue() {
		panic(fmt.Errorf("max cell %d exceeds %d bits", ret.Max, bits))
	}
	if ret.Min > ret.Max {
		panic(fmt.Errorf("min cell %d above max cell %d", ret.Min, ret.Max))
	}
	return ret
}

func (Module) Underflow(
	loader configs.Loader,
) bfvm.UnderflowPolicy {
	str := vars.FirstNonZero(
		*underflowFlag,
		configs.First[string](loader, "underflow"),
		"fail",
	)
	switch str {
	case "fail":
		return bfvm.UnderflowFail
	case "saturate":
		return bfvm.UnderflowSaturate
	}
	panic(fmt.Errorf("unknown underflow policy: %s", str))
}

// RunMode selects what the host does with the loaded program.
type RunMode string

const (
	RunDefault     RunMode = "default"
	RunDump        RunMode = "dump"
	RunDebug       RunMode = "debug"
	RunInteractive RunMode = "interactive"
)

func (Module) RunMode(
	loader configs.Loader,
) RunMode {
	mode := RunMode(vars.FirstNonZero(
		*modeFlag,
		configs.First[string](loader, "mode"),
		string(RunDefault),
	))
	switch mode {
	case RunDefault, RunDump, RunDebug, RunInteractive:
		return mode
	}
	panic(fmt.Errorf("unknown mode: %s", mode))
}
