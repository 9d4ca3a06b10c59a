package logs

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
)

// Run identifies one execution of a program.
type Run string

type runKey struct{}

var RunKey runKey

type NewRun func(ctx context.Context, what string) (context.Context, Run)

func (Module) NewRun(
	logger Logger,
) NewRun {
	return func(ctx context.Context, what string) (context.Context, Run) {
		var args []any
		if v := ctx.Value(RunKey); v != nil {
			args = append(args, "parent", v.(Run))
		}
		run := Run(rand.Text())
		ctx = context.WithValue(ctx, RunKey, run)
		logger.InfoContext(ctx, "new run: "+what, args...)
		return ctx, run
	}
}

// WrapRun annotates err with the run stored in ctx.
func WrapRun(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	v := ctx.Value(RunKey)
	if v == nil {
		return err
	}
	return errors.Join(err, fmt.Errorf("run: %s", v.(Run)))
}
