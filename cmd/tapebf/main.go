package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/tapebf/bfconfigs"
	"github.com/reusee/tapebf/bfvm"
	"github.com/reusee/tapebf/cells"
	"github.com/reusee/tapebf/cmds"
	"github.com/reusee/tapebf/debugs"
	"github.com/reusee/tapebf/logs"
	"github.com/reusee/tapebf/modes"
	"golang.org/x/term"
)

var (
	codeFlag  = cmds.Var[string]("-code")
	fileFlag  = cmds.Var[string]("-file")
	stdinFlag = cmds.Switch("-stdin")
	tapFlag   = cmds.Switch("-tap")
	inputFlag = cmds.Collect[string]("-input")
)

func ce(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		mode bfconfigs.RunMode,
		bits bfconfigs.CellBits,
		logger logs.Logger,
		newRun logs.NewRun,
	) {
		ctx, _ = newRun(ctx, string(mode))

		if mode == bfconfigs.RunInteractive {
			source, err := readSource(nil)
			ce(err)
			ce(interactive(ctx, scope, source))
			return
		}

		stdin := bufio.NewReader(os.Stdin)
		source, err := readSource(stdin)
		ce(err)
		logger.DebugContext(ctx, "source", "len", len(source))

		switch bits {
		case 8:
			err = batch[uint8](ctx, scope, source, stdin)
		case 16:
			err = batch[uint16](ctx, scope, source, stdin)
		case 32:
			err = batch[uint32](ctx, scope, source, stdin)
		default:
			err = batch[uint64](ctx, scope, source, stdin)
		}
		if err != nil {
			logger.ErrorContext(ctx, "run", "error", err)
			os.Exit(1)
		}
	})
}

// readSource picks -code, then -file, then stdin. In interactive mode stdin is nil and the source may be empty.
func readSource(stdin *bufio.Reader) (string, error) {
	if *codeFlag != "" {
		return *codeFlag, nil
	}
	if *fileFlag != "" {
		content, err := os.ReadFile(*fileFlag)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	if stdin == nil {
		return "", nil
	}
	if *stdinFlag {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	// one line of code, the rest of stdin is program input
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "code: ")
	}
	line, err := stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func batch[T cells.Cell](
	ctx context.Context,
	scope dscope.Scope,
	source string,
	input io.Reader,
) (err error) {
	scope.Call(func(
		mode bfconfigs.RunMode,
		bounds bfconfigs.Bounds,
		underflow bfvm.UnderflowPolicy,
		tap debugs.Tap,
	) {
		program := bfvm.Load(source)
		engine := bfvm.NewEngine[T](nil, nil)
		engine.Underflow = underflow
		engine.Cells.SetBounds(T(bounds.Min), T(bounds.Max))

		stream := bfvm.NewStreamIO[T](input, os.Stdout)
		stream.Attach(engine)

		if mode == bfconfigs.RunDebug {
			engine.Refresh = func(p *bfvm.Program, e *bfvm.Engine[T]) {
				fmt.Fprintln(os.Stderr, bfvm.Trace(p, e))
			}
		}

		err = engine.Run(ctx, program)
		if flushErr := stream.Flush(); err == nil {
			err = flushErr
		}

		if mode == bfconfigs.RunDump || mode == bfconfigs.RunDebug {
			fmt.Printf("\n============\n--- DATA ---\n%v\n", engine.Cells.Data)
		}

		if *tapFlag {
			tap(ctx, "halted", debugs.MachineGlobals(program, engine))
		}
	})
	return logs.WrapRun(ctx, err)
}
