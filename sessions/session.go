package sessions

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/reusee/tapebf/bfvm"
	"github.com/reusee/tapebf/cells"
	"github.com/reusee/tapebf/commands"
	"github.com/reusee/tapebf/logs"
)

const DefaultSpeed = 100 * time.Millisecond

// Session is the operator-facing state around one engine.
type Session[T cells.Cell] struct {
	Program *bfvm.Program
	Engine  *bfvm.Engine[T]

	Paused    bool
	Quit      bool
	Speed     time.Duration
	LastCycle time.Time

	LastExecuted    bfvm.LoadedInstruction
	HasLastExecuted bool

	// pending values for AcceptData, 0 is read when empty
	Input  []T
	Output []T

	ReadFile func(path string) ([]byte, error)
	Parser   commands.Parser[T]
	Logger   logs.Logger

	notices []Notice
}

func New[T cells.Cell](
	program *bfvm.Program,
	logger logs.Logger,
) *Session[T] {
	s := &Session[T]{
		Program:  program,
		Paused:   true,
		Speed:    DefaultSpeed,
		ReadFile: os.ReadFile,
		Parser:   commands.NewParser[T](),
		Logger:   logger,
	}
	s.Engine = bfvm.NewEngine(s.read, s.write)
	return s
}

func (s *Session[T]) read() T {
	if len(s.Input) == 0 {
		return 0
	}
	v := s.Input[0]
	s.Input = s.Input[1:]
	return v
}

func (s *Session[T]) write(v T) {
	s.Output = append(s.Output, v)
}

func (s *Session[T]) info(format string, args ...any) {
	s.notices = append(s.notices, Notice{
		Kind:    Info,
		Message: fmt.Sprintf(format, args...),
	})
}

func (s *Session[T]) fail(format string, args ...any) {
	s.notices = append(s.notices, Notice{
		Kind:    Error,
		Message: fmt.Sprintf(format, args...),
	})
}

// TakeNotices returns and clears the pending notices.
func (s *Session[T]) TakeNotices() []Notice {
	ret := s.notices
	s.notices = nil
	return ret
}

// TakeOutput returns and clears the values written by the program.
func (s *Session[T]) TakeOutput() []T {
	ret := s.Output
	s.Output = nil
	return ret
}

// Execute runs one instruction if any remains.
func (s *Session[T]) Execute() bool {
	loaded, ok := s.Program.CurrentLoaded()
	if !ok {
		return false
	}
	if err := s.Engine.Step(s.Program); err != nil {
		s.Paused = true
		s.fail("%v at instruction %d", err, s.Program.IP)
		s.Logger.Warn("execute", "error", err, "ip", s.Program.IP)
		return false
	}
	s.LastExecuted = loaded
	s.HasLastExecuted = true
	s.LastCycle = time.Now()
	return true
}

// Tick executes one instruction when running and the pacing interval has elapsed.
func (s *Session[T]) Tick(now time.Time) bool {
	if s.Paused {
		return false
	}
	if now.Sub(s.LastCycle) < s.Speed {
		return false
	}
	if !s.Execute() {
		return false
	}
	s.LastCycle = now
	return true
}

func (s *Session[T]) Apply(command commands.Command) {
	s.Logger.Debug("apply command", "command", fmt.Sprintf("%#v", command))

	switch command := command.(type) {

	case commands.Start:
		s.Paused = false

	case commands.Pause:
		s.Paused = true

	case commands.Quit:
		s.Quit = true

	case commands.Step:
		for range command.Count {
			if !s.Execute() {
				break
			}
		}

	case commands.SetInstructionPointer:
		s.Program.IP = command.Index

	case commands.SetDataPointer:
		if !cells.ValidIndex(command.Index) {
			s.fail("index out of range: %d", command.Index)
			return
		}
		s.Engine.DataPointer = command.Index

	case commands.SetData[T]:
		idx := s.Engine.DataPointer
		if command.HasIndex {
			idx = command.Index
		}
		if !cells.ValidIndex(idx) {
			s.fail("index out of range: %d", idx)
			return
		}
		s.Engine.Cells.Set(idx, command.Value)
		s.Engine.Cells.Clamp(idx)

	case commands.SetSpeed:
		s.Speed = command.Speed
		s.info("Set speed to %v", command.Speed)

	case commands.SetBounds[T]:
		s.Engine.Cells.SetBounds(command.Lower, command.Upper)

	case commands.Load:
		content, err := s.ReadFile(command.Path)
		if err != nil {
			s.fail("%v", err)
			return
		}
		s.Program = bfvm.Load(string(content))
		s.HasLastExecuted = false
		s.info("Loaded file %s", command.Path)
		s.Logger.Info("load program",
			"path", command.Path,
			"instructions", s.Program.Len(),
		)

	default:
		s.fail("unsupported command %T", command)

	}
}

// Submit parses a confirmed input line and dispatches it.
func (s *Session[T]) Submit(line string) {
	res := s.Parser.Parse(line, false)
	switch res.Kind {
	case commands.Parsed:
		s.Apply(res.Command)
	case commands.CannotContinue:
		s.fail("could not parse command (%s)", strings.Join(res.Reasons(), ", "))
	case commands.TooShort:
		s.fail("command is not complete (and maybe has errors)")
	}
}
