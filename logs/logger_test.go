package logs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tapebf/modes"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
}

func TestDevelopmentLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Debug("foo")
		if !strings.Contains(buf.String(), "msg=foo") {
			t.Fatalf("got %v", buf.String())
		}
	})
}

func TestNewRun(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		newRun NewRun,
		logger Logger,
	) {
		ctx := context.Background()
		ctx1, run1 := newRun(ctx, "first")
		ctx2, run2 := newRun(ctx1, "second")
		logger.InfoContext(ctx2, "step")

		lines := strings.Split(buf.String(), "\n")
		if !strings.Contains(lines[0], "run="+string(run1)) {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[1], "run="+string(run2)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[1], "parent="+string(run1)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[2], "run="+string(run2)) {
			t.Fatalf("got %v", lines[2])
		}

		err := WrapRun(ctx2, errors.New("foo"))
		if !strings.Contains(err.Error(), "run: "+string(run2)) {
			t.Fatalf("got %v", err)
		}
		if WrapRun(ctx2, nil) != nil {
			t.Fatal()
		}
	})
}

func TestJournalKey(t *testing.T) {
	if key := toJournalKey("run.id-1"); key != "RUN_ID_1" {
		t.Fatalf("got %v", key)
	}
}
