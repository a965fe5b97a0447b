package stream

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/collar.go/pkg/l0/packet"
	"github.com/robotalks/collar.go/pkg/l0/pulse"
	"github.com/robotalks/collar.go/pkg/l0/tx"
)

var testPulses = pulse.MustNewMap(pulse.DefaultTickHz, pulse.DefaultTiming)

type syncBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) bytes() []byte {
	b.lock.Lock()
	defer b.lock.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken")
}

func TestEncode(t *testing.T) {
	train := pulse.Train{
		{{Level: pulse.High, Ticks: 11200}, {Level: pulse.Low, Ticks: 6400}},
		{{Level: pulse.High, Ticks: 2400}, {Level: pulse.Low, Ticks: 6400}},
	}
	buf, err := Encode(train)
	require.NoError(t, err)
	require.Equal(t, []byte{
		4, 0,
		0xc0, 0xab, // 11200 | 0x8000
		0x00, 0x19, // 6400
		0x60, 0x89, // 2400 | 0x8000
		0x00, 0x19,
	}, buf)

	decoded, err := Decode(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, train, decoded)

	_, err = Encode(pulse.Train{{{Level: pulse.High, Ticks: pulse.MaxTicks + 1}, {}}})
	require.Equal(t, pulse.ErrTicksOutOfRange, err)

	_, err = Decode(bytes.NewReader([]byte{3, 0, 1, 0, 2, 0, 3, 0}))
	require.Error(t, err)
}

func TestEmitterDrivesQueue(t *testing.T) {
	var out syncBuffer
	e := New(&out, pulse.DefaultTickHz)
	e.Hold = false
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx)

	q := tx.New(e, testPulses)
	cmd := packet.Command{ID: 0x2cbe, Action: packet.ActionVibrate, Intensity: 50}
	q.EnqueueCommand(cmd, 3)

	waitCtx, waitCancel := context.WithTimeout(ctx, time.Second)
	defer waitCancel()
	require.NoError(t, q.Wait(waitCtx))

	r := bytes.NewReader(out.bytes())
	for i := 0; i < 3; i++ {
		train, err := Decode(r)
		require.NoError(t, err)
		require.Equal(t, testPulses.ToSignal(cmd.Bits()), train)
	}
	require.Equal(t, 0, r.Len())
	require.False(t, e.Busy())
	require.NoError(t, e.Err())
}

func TestEmitterWriteError(t *testing.T) {
	e := New(failWriter{}, pulse.DefaultTickHz)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx)

	done := make(chan struct{}, 1)
	e.OnComplete(func() { done <- struct{}{} })
	e.Emit(testPulses.ToSignal(packet.Encode(packet.Command{Action: packet.ActionBeep})))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("completion timeout")
	}
	require.Error(t, e.Err())
}
