package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/reusee/dscope"
	"github.com/reusee/tapebf/bfconfigs"
	"github.com/reusee/tapebf/bfvm"
	"github.com/reusee/tapebf/commands"
	"github.com/reusee/tapebf/logs"
	"github.com/reusee/tapebf/sessions"
)

const tickInterval = 10 * time.Millisecond

type console struct {
	mu      sync.Mutex
	session *sessions.Session[uint64]
	out     io.Writer
	rl      *readline.Instance
}

func interactive(ctx context.Context, scope dscope.Scope, source string) (err error) {
	scope.Call(func(
		logger logs.Logger,
		speed bfconfigs.Speed,
		bounds bfconfigs.Bounds,
		underflow bfvm.UnderflowPolicy,
	) {
		session := sessions.New[uint64](bfvm.Load(source), logger)
		session.Speed = time.Duration(speed)
		session.Engine.Underflow = underflow
		session.Engine.Cells.SetBounds(bounds.Min, bounds.Max)
		for _, input := range *inputFlag {
			for _, b := range []byte(input) {
				session.Input = append(session.Input, uint64(b))
			}
		}

		c := &console{
			session: session,
		}

		var historyFile string
		if home, err := os.UserHomeDir(); err == nil {
			historyFile = filepath.Join(home, ".tapebf_history")
		}
		rl, e := readline.NewEx(&readline.Config{
			Prompt:       "> ",
			HistoryFile:  historyFile,
			AutoComplete: c,
			Listener:     readline.FuncListener(c.onChange),
		})
		if e != nil {
			err = e
			return
		}
		defer rl.Close()
		c.out = rl.Stdout()
		c.rl = rl

		fmt.Fprintln(c.out, "commands: start, pause, step [n], set <ip|dp|data|speed|bound> = ..., load <file>, quit")
		c.status()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go c.pace(ctx)

		for {
			line, e := rl.Readline()
			if e != nil {
				// interrupted or end of input
				return
			}
			c.mu.Lock()
			if line == "" {
				c.status()
			} else {
				c.session.Submit(line)
				c.flush()
				c.status()
			}
			quit := c.session.Quit
			c.mu.Unlock()
			if quit {
				return
			}
		}
	})
	return
}

func (c *console) pace(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.mu.Lock()
			if c.session.Tick(now) {
				c.flush()
			}
			c.mu.Unlock()
		}
	}
}

// flush prints pending program output and notices, c.mu must be held.
func (c *console) flush() {
	if output := c.session.TakeOutput(); len(output) > 0 {
		bs := make([]byte, len(output))
		for i, v := range output {
			bs[i] = byte(v)
		}
		fmt.Fprintf(c.out, "output: %q\n", bs)
	}
	for _, notice := range c.session.TakeNotices() {
		fmt.Fprintln(c.out, notice.String())
	}
}

// status prints the machine state, c.mu must be held.
func (c *console) status() {
	s := c.session
	state := "running"
	if s.Paused {
		state = "paused"
	}
	if !s.Program.HasRemainingInstructions() {
		state = "halted"
	}
	line := fmt.Sprintf("[%s, %v] %s", state, s.Speed, bfvm.Trace(s.Program, s.Engine))
	if s.HasLastExecuted {
		line += fmt.Sprintf(" last(%s@%d)", s.LastExecuted.Instruction, s.LastExecuted.Offset)
	}
	fmt.Fprintln(c.out, line)
}

var _ readline.AutoCompleter = new(console)

// Do offers the untyped part of the suggestion for the text before the cursor.
func (c *console) Do(line []rune, pos int) ([][]rune, int) {
	c.mu.Lock()
	parser := c.session.Parser
	c.mu.Unlock()
	res := parser.Parse(string(line[:pos]), true)
	seg, ok := res.Completion()
	if !ok {
		return nil, 0
	}
	suffix := seg.SuggestionSuffix()
	if suffix == "" {
		return nil, 0
	}
	return [][]rune{[]rune(suffix)}, 0
}

// onChange reflects the live parse in the prompt.
func (c *console) onChange(line []rune, pos int, key rune) ([]rune, int, bool) {
	c.mu.Lock()
	parser := c.session.Parser
	c.mu.Unlock()
	prompt := "> "
	if len(line) > 0 {
		switch parser.Parse(string(line), false).Kind {
		case commands.Parsed:
			prompt = "> "
		case commands.CannotContinue:
			prompt = "! "
		case commands.TooShort:
			prompt = ": "
		}
	}
	if c.rl != nil {
		c.rl.SetPrompt(prompt)
		c.rl.Refresh()
	}
	return nil, 0, false
}
