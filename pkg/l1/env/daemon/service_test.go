package daemon

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/collar.go/pkg/framework"
)

func TestProgram(t *testing.T) {
	started := make(chan struct{})
	prg := &Program{Runnable: fx.RunFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})}
	require.Nil(t, prg.Done())
	require.NoError(t, prg.Stop(nil))

	require.NoError(t, prg.Start(nil))
	require.Error(t, prg.Start(nil))
	<-started
	done := prg.Done()
	require.NotNil(t, done)
	require.NoError(t, prg.Stop(nil))
	<-done
	require.Nil(t, prg.Done())
}

func TestProgramError(t *testing.T) {
	errFail := errors.New("fail")
	prg := &Program{Runnable: fx.RunFunc(func(context.Context) error {
		return errFail
	})}
	require.NoError(t, prg.Start(nil))
	<-prg.Done()
	require.Equal(t, errFail, prg.Stop(nil))
}

func TestIsServiceAction(t *testing.T) {
	for _, a := range []string{"install", "uninstall", "start", "stop", "restart"} {
		require.True(t, IsServiceAction(a), a)
	}
	require.False(t, IsServiceAction("run"))
}
