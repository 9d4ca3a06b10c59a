package commands

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func testParser() Parser[uint64] {
	return Parser[uint64]{
		FS: FS{
			FS: fstest.MapFS{
				"hello.bf":          {Data: []byte("+.")},
				"examples/loop.bf":  {Data: []byte("[-]")},
				"examples/print.bf": {Data: []byte(".")},
				"extra.txt":         {Data: []byte("")},
			},
		},
	}
}

func TestParseCommands(t *testing.T) {
	parser := testParser()
	for _, c := range []struct {
		text    string
		command Command
	}{
		{"start", Start{}},
		{"  START  ", Start{}},
		{"pause", Pause{}},
		{"quit", Quit{}},
		{"step", Step{Count: 1}},
		{"step 10", Step{Count: 10}},
		{"set ip = 3", SetInstructionPointer{Index: 3}},
		{"set instruction pointer = 0x10", SetInstructionPointer{Index: 16}},
		{"set dp = 0b11", SetDataPointer{Index: 3}},
		{"set Data Pointer = 7", SetDataPointer{Index: 7}},
		{"set data = 65", SetData[uint64]{Value: 65}},
		{"set d = 41h", SetData[uint64]{Value: 65}},
		{"set data 2 = 1", SetData[uint64]{Index: 2, HasIndex: true, Value: 1}},
		{"set data 1048575 = 1", SetData[uint64]{Index: 1048575, HasIndex: true, Value: 1}},
		{"set ip = 0x100000", SetInstructionPointer{Index: 1 << 20}},
		{"set data(5) = 0x1F", SetData[uint64]{Index: 5, HasIndex: true, Value: 31}},
		{"set d ( 0o17 ) = 1", SetData[uint64]{Index: 15, HasIndex: true, Value: 1}},
		{"set speed = 100ms", SetSpeed{Speed: 100 * time.Millisecond}},
		{"set speed = 1 m 30 s", SetSpeed{Speed: 90 * time.Second}},
		{"set speed = 0s", SetSpeed{}},
		{"set speed = 2sec", SetSpeed{Speed: 2 * time.Second}},
		{"set speed = 1min", SetSpeed{Speed: time.Minute}},
		{"set speed = 1 second", SetSpeed{Speed: time.Second}},
		{"set speed = 1day", SetSpeed{Speed: 24 * time.Hour}},
		{"set speed = 1 minute 30 seconds", SetSpeed{Speed: 90 * time.Second}},
		{"set speed = 20 msec", SetSpeed{Speed: 20 * time.Millisecond}},
		{"set bound = 0 255", SetBounds[uint64]{Lower: 0, Upper: 255}},
		{"set bound = 10 10", SetBounds[uint64]{Lower: 10, Upper: 10}},
		{"load hello.bf", Load{Path: "hello.bf"}},
		{"load examples/loop.bf  ", Load{Path: "examples/loop.bf"}},
	} {
		t.Run(c.text, func(t *testing.T) {
			res := parser.Parse(c.text, false)
			if res.Kind != Parsed {
				t.Fatalf("got %v %v %q", res.Kind, res.Reasons(), res.Message)
			}
			if fmt.Sprintf("%#v", res.Command) != fmt.Sprintf("%#v", c.command) {
				t.Fatalf("got %#v", res.Command)
			}
		})
	}
}

func TestParseTooShort(t *testing.T) {
	parser := testParser()
	for _, c := range []struct {
		text    string
		message string
	}{
		{"", ""},
		{"   ", ""},
		{"set", "variable name required"},
		{"set ", "variable name required"},
		{"set data", "expecting index or ="},
		{"set data 3", "expecting ="},
		{"set data =", "expecting value"},
		{"set data(", "expecting index"},
		{"set data(3", "expecting ')'"},
		{"set ip", "expecting ="},
		{"set speed =", "expecting value"},
		{"set bound = 1", "expecting upper bound"},
		{"load", "expected file name"},
		{"load ", "expected file name"},
	} {
		t.Run(c.text, func(t *testing.T) {
			res := parser.Parse(c.text, false)
			if res.Kind != TooShort {
				t.Fatalf("got %v", res.Kind)
			}
			if res.Message != c.message {
				t.Fatalf("got %q", res.Message)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	res := Parse[uint8]("", false)
	if res.Kind != TooShort {
		t.Fatal()
	}
	if len(res.Segments) != 0 {
		t.Fatal()
	}
	res = Parse[uint8]("  ", false)
	if len(res.Segments) != 1 || res.Segments[0].Kind != SegmentIgnored {
		t.Fatalf("got %v", res.Segments)
	}
}

func TestParseCannotContinue(t *testing.T) {
	parser := testParser()
	for _, c := range []struct {
		text   string
		reason string
	}{
		{"bogus", "unrecognised command 'bogus'"},
		{"step 0", "count must be positive"},
		{"step x", "not a valid number"},
		{"start now", "unexpected 'now'"},
		{"set foo = 1", "unknown variable 'foo'"},
		{"set instruction = 1", "unknown variable 'instruction'"},
		{"set ip == 1", "expected '=', got '=='"},
		{"set ip = -1", "not a valid number"},
		{"set data = 1 2", "unexpected '2'"},
		{"set data(x) = 1", "not a valid number"},
		{"set data(1048576) = 1", "index out of range"},
		{"set data(0x7fffffffffffffff) = 1", "index out of range"},
		{"set dp = 0x100000", "index out of range"},
		{"set ip = 0x8000000000000000", "index out of range"},
		{"set data(1 ]", "expected ')', got ']'"},
		{"set data()", "expecting index"},
		{"set speed = fast", "not a valid duration 'fast'"},
		{"set speed = -1s", "speed must not be negative"},
		{"set speed = -2 sec", "speed must not be negative"},
		{"set speed = 1 fortnight", "not a valid duration '1 fortnight'"},
		{"set bound = 5 4", "upper bound below lower bound"},
		{"set bound = 0 zz", "not a valid number"},
		{"load missing.bf", "file not found"},
		{"load examples", "path does not refer to a file"},
	} {
		t.Run(c.text, func(t *testing.T) {
			res := parser.Parse(c.text, false)
			if res.Kind != CannotContinue {
				t.Fatalf("got %v", res.Kind)
			}
			reasons := res.Reasons()
			if len(reasons) != 1 {
				t.Fatalf("got %v", reasons)
			}
			if !strings.HasPrefix(reasons[0], c.reason) {
				t.Fatalf("got %q", reasons[0])
			}
		})
	}
}

func TestParseCellRange(t *testing.T) {
	res := Parse[uint8]("set data = 256", false)
	if res.Kind != CannotContinue {
		t.Fatalf("got %v", res.Kind)
	}
	res = Parse[uint8]("set data = 255", false)
	if res.Kind != Parsed {
		t.Fatalf("got %v", res.Kind)
	}
	if res.Command.(SetData[uint8]).Value != 255 {
		t.Fatal()
	}
	res = Parse[uint8]("set bound = 0 0x100", false)
	if res.Kind != CannotContinue {
		t.Fatalf("got %v", res.Kind)
	}
}

func TestParseDidYouMean(t *testing.T) {
	res := Parse[uint8]("strat", false)
	reasons := res.Reasons()
	if len(reasons) != 1 {
		t.Fatalf("got %v", reasons)
	}
	if reasons[0] != "unrecognised command 'strat'" {
		// fuzzy matching needs the letters in order
		t.Fatalf("got %q", reasons[0])
	}
	res = Parse[uint8]("stp", false)
	reasons = res.Reasons()
	if reasons[0] != "unrecognised command 'stp' (did you mean 'step'?)" {
		t.Fatalf("got %q", reasons[0])
	}
}

func TestParseSegments(t *testing.T) {
	res := Parse[uint64]("set data(5) = 0x1F", false)
	var parts []string
	for _, seg := range res.Segments {
		parts = append(parts, fmt.Sprintf("%s:%q", seg.Kind, seg.Content()))
	}
	got := strings.Join(parts, " ")
	expected := `ok:"set" ignored:" " ok:"data" ignored:"(" ok:"5" ignored:")" ignored:" " ok:"=" ignored:" " ok:"0x1F"`
	if got != expected {
		t.Fatalf("got %s", got)
	}
	end := 0
	for _, seg := range res.Segments {
		if seg.Start != end {
			t.Fatalf("gap at %d", seg.Start)
		}
		end = seg.End
	}
	if end != len("set data(5) = 0x1F") {
		t.Fatal()
	}
}

func TestParseAutocomplete(t *testing.T) {
	parser := testParser()
	for _, c := range []struct {
		text       string
		suggestion string
		completed  string
	}{
		{"sta", "start", "start"},
		{"s", "start", "start"},
		{"lo", "load", "load"},
		{"set spee", "speed", "set speed"},
		{"set i", "instruction pointer", "set instruction pointer"},
		{"set instruction", "instruction pointer", "set instruction pointer"},
		{"set data poi", "data pointer", "set data pointer"},
		{"set da", "data pointer", "set data pointer"},
		{"set in", "instruction pointer", "set instruction pointer"},
		{"set b", "bound", "set bound"},
		{"load hel", "hello.bf", "load hello.bf"},
		{"load exa", "examples", "load examples"},
		{"load examples", "examples/", "load examples/"},
		{"load examples/l", "examples/loop.bf", "load examples/loop.bf"},
		{"load examples/", "examples/loop.bf", "load examples/loop.bf"},
	} {
		t.Run(c.text, func(t *testing.T) {
			res := parser.Parse(c.text, true)
			seg, ok := res.Completion()
			if !ok {
				t.Fatalf("no completion: %v %v", res.Kind, res.Reasons())
			}
			if seg.Kind != SegmentAutocomplete {
				t.Fatal()
			}
			if seg.Suggestion != c.suggestion {
				t.Fatalf("got %q", seg.Suggestion)
			}
			completed, ok := res.Complete(c.text)
			if !ok {
				t.Fatal()
			}
			if completed != c.completed {
				t.Fatalf("got %q", completed)
			}
			if c.text+seg.SuggestionSuffix() != c.completed {
				t.Fatalf("got suffix %q", seg.SuggestionSuffix())
			}
		})
	}
}

func TestParseNoAutocomplete(t *testing.T) {
	parser := testParser()
	for _, text := range []string{
		"set spee",
		"load hel",
		"bogus",
	} {
		res := parser.Parse(text, false)
		if _, ok := res.Completion(); ok {
			t.Fatalf("unexpected completion for %q", text)
		}
	}
	for _, text := range []string{
		"bogus",
		"set zzz",
		"load hello.bf",
	} {
		res := parser.Parse(text, true)
		if _, ok := res.Completion(); ok {
			t.Fatalf("unexpected completion for %q", text)
		}
	}
}
