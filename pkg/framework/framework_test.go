package framework

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestAggregatedError(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")

	var errs AggregatedError
	require.NoError(t, errs.Add(nil, nil).Aggregate())

	errs.Add(errA)
	require.Equal(t, "a", errs.Aggregate().Error())

	errs.Add(nil, &RunnerError{Name: "b", Err: errB})
	err := errs.Aggregate()
	require.Error(t, err)
	require.Len(t, errs.Errors, 2)
	require.Equal(t, "multiple errors:\n  a\n  b: b", err.Error())
	require.True(t, errors.Is(err, errA))
	require.True(t, errors.Is(err, errB))
	require.False(t, errors.Is(err, context.Canceled))
}

func TestRunner(t *testing.T) {
	errFail := errors.New("fail")
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunnerWith(ctx)
	r.Go(
		NamedRun("blocking", RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})),
		NamedRun("failing", RunFunc(func(context.Context) error {
			cancel()
			return errFail
		})),
		RunFunc(func(context.Context) error { return nil }),
	)
	require.Len(t, r.Runners, 3)
	err := r.Wait()
	require.Error(t, err)
	require.True(t, errors.Is(err, errFail))

	var agg *AggregatedError
	require.True(t, errors.As(err, &agg))
	require.Len(t, agg.Errors, 1)
	var re *RunnerError
	require.True(t, errors.As(agg.Errors[0], &re))
	require.Equal(t, "failing", re.Name)
}

func TestNameOf(t *testing.T) {
	fn := RunFunc(func(context.Context) error { return nil })
	require.Equal(t, "x", NameOf(fn, "x"))
	require.Equal(t, "named", NameOf(NamedRun("named", fn), "x"))
}

func TestRunWithContextCloser(t *testing.T) {
	t.Run("exit", func(t *testing.T) {
		closed := 0
		err := RunWithContextCloser(context.Background(), closerFunc(func() error {
			closed++
			return nil
		}), func() error { return nil })
		require.NoError(t, err)
		require.Equal(t, 1, closed)
	})

	t.Run("cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		unblock := make(chan struct{})
		closed := 0
		started := make(chan struct{})
		go func() {
			<-started
			cancel()
		}()
		err := RunWithContextCloser(ctx, closerFunc(func() error {
			closed++
			close(unblock)
			return nil
		}), func() error {
			close(started)
			<-unblock
			return errors.New("closed")
		})
		require.Equal(t, context.Canceled, err)
		require.Equal(t, 1, closed)
	})
}
