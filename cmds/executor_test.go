package cmds

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var a int
	executor.Define("+a", Func(func() {
		a = 42
	}))
	executor.Define("a", Func(func(i int) {
		a = i
	}))

	if err := executor.Execute([]string{
		"+a",
	}); err != nil {
		t.Fatal(err)
	}
	if a != 42 {
		t.Fatal()
	}

	if err := executor.Execute([]string{
		"a", "1",
	}); err != nil {
		t.Fatal(err)
	}
	if a != 1 {
		t.Fatal()
	}

	err := executor.Execute([]string{
		"foo",
	})
	if !strings.Contains(err.Error(), "unknown command: foo") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{
		"a",
	})
	if !strings.Contains(err.Error(), "a: expecting argument") {
		t.Fatalf("got %v", err)
	}
}

func TestDuplicatedCommand(t *testing.T) {
	executor := NewExecutor()
	func() {
		defer func() {
			if p := recover(); p == nil {
				t.Fatal("should panic")
			}
		}()
		executor.Define("help", Func(func() {}))
	}()
}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var bar, baz int
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
			bar = 1
		}),
		"baz": Func(func(i int) {
			baz = i
		}),
	}))

	if err := executor.Execute([]string{
		"foo",
		"bar",
		"baz", "42",
	}); err != nil {
		t.Fatal(err)
	}
	if bar != 1 {
		t.Fatal()
	}
	if baz != 42 {
		t.Fatal()
	}
}

func TestDuplicatedSubCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"a": nil,
	}))
	executor.Define("bar", Sub(map[string]*Command{
		"a": nil,
	}))
	err := executor.Execute([]string{"foo", "bar"})
	if !strings.Contains(err.Error(), "duplicated sub command: bar a") {
		t.Fatalf("got %v", err)
	}
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n int
	var s string
	executor.Define("foo", Func(func(arg *int, arg2 *string) {
		n = *arg
		s = *arg2
	}))

	err := executor.Execute([]string{"foo", "42", "foo"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatal()
	}
	if s != "foo" {
		t.Fatal()
	}

	err = executor.Execute([]string{"foo", "99"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 99 {
		t.Fatal()
	}
	if s != "" {
		t.Fatal()
	}

	err = executor.Execute([]string{"foo"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal()
	}
}

func TestArgumentTypes(t *testing.T) {
	executor := NewExecutor()
	var (
		d  time.Duration
		u8 uint8
		u  uint64
		b  bool
		f  float64
	)
	executor.Define("d", Func(func(v time.Duration) {
		d = v
	}))
	executor.Define("u8", Func(func(v uint8) {
		u8 = v
	}))
	executor.Define("u", Func(func(v uint64) {
		u = v
	}))
	executor.Define("b", Func(func(v bool) {
		b = v
	}))
	executor.Define("f", Func(func(v float64) {
		f = v
	}))

	if err := executor.Execute([]string{
		"d", "250ms",
		"u8", "0xff",
		"u", "10h",
		"b", "yes",
		"f", "0.5",
	}); err != nil {
		t.Fatal(err)
	}
	if d != 250*time.Millisecond {
		t.Fatalf("got %v", d)
	}

	if err := executor.Execute([]string{"d", "2min"}); err != nil {
		t.Fatal(err)
	}
	if d != 2*time.Minute {
		t.Fatalf("got %v", d)
	}
	if u8 != 255 {
		t.Fatalf("got %v", u8)
	}
	if u != 16 {
		t.Fatalf("got %v", u)
	}
	if !b {
		t.Fatal()
	}
	if f != 0.5 {
		t.Fatalf("got %v", f)
	}

	for _, args := range [][]string{
		{"d", "soon"},
		{"u8", "256"},
		{"u", "-1"},
		{"f", "half"},
	} {
		if err := executor.Execute(args); err == nil {
			t.Fatalf("should fail: %v", args)
		}
	}
}

func TestFuncError(t *testing.T) {
	executor := NewExecutor()
	fooErr := errors.New("foo")
	executor.Define("foo", Func(func() error {
		return fooErr
	}))
	executor.Define("ok", Func(func() error {
		return nil
	}))
	if err := executor.Execute([]string{"ok"}); err != nil {
		t.Fatal(err)
	}
	if err := executor.Execute([]string{"foo"}); !errors.Is(err, fooErr) {
		t.Fatalf("got %v", err)
	}
}

func TestBadFunc(t *testing.T) {
	for _, fn := range []any{
		42,
		func() int { return 0 },
		func() (error, error) { return nil, nil },
	} {
		func() {
			defer func() {
				if p := recover(); p == nil {
					t.Fatalf("should panic: %T", fn)
				}
			}()
			Func(fn)
		}()
	}
}
