package service

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/collar.go/pkg/framework"
	"github.com/robotalks/collar.go/pkg/l0/emitter/sim"
	"github.com/robotalks/collar.go/pkg/l0/packet"
	"github.com/robotalks/collar.go/pkg/l0/pulse"
	"github.com/robotalks/collar.go/pkg/l0/tx"
	"github.com/robotalks/collar.go/pkg/l1/comm"
	"github.com/robotalks/collar.go/pkg/l1/comm/stream"
	"github.com/robotalks/collar.go/pkg/l1/control"
	"github.com/robotalks/collar.go/pkg/l1/msgs"
	pb "github.com/robotalks/collar.go/pkg/proto/collar/v1"
)

type serviceTestEnv struct {
	t       *testing.T
	emitter *sim.Emitter
	queue   *tx.Queue
	handler *Handler
}

func newServiceTestEnv(t *testing.T) *serviceTestEnv {
	e := sim.New(pulse.DefaultTickHz)
	e.Speed = 20
	e.History = 16
	q := tx.New(e, pulse.MustNewMap(pulse.DefaultTickHz, pulse.DefaultTiming))
	c, err := control.New(q, &control.MemStore{})
	require.NoError(t, err)
	return &serviceTestEnv{t: t, emitter: e, queue: q, handler: New(c)}
}

func (e *serviceTestEnv) do(msg fx.Message) fx.Message {
	reply, err := e.handler.HandleCommand(context.Background(), msg)
	require.NoError(e.t, err)
	return reply
}

func (e *serviceTestEnv) wait() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(e.t, e.queue.Wait(ctx))
}

func TestHandleCommand(t *testing.T) {
	env := newServiceTestEnv(t)
	require.Nil(t, env.do(&msgs.SetIDRequest{SetIDRequest: pb.SetIDRequest{Id: 0x2cbe}}))
	require.Nil(t, env.do(&msgs.SetActionRequest{SetActionRequest: pb.SetActionRequest{
		Action: uint32(packet.ActionVibrate), HasIntensity: true, Intensity: 50,
	}}))

	reply := env.do(&msgs.TransmitRequest{TransmitRequest: pb.TransmitRequest{Count: -1}})
	require.Equal(t, TransmitReply(packet.Command{ID: 0x2cbe, Action: packet.ActionVibrate, Intensity: 50}, 4), reply)
	env.wait()

	bits := packet.MustParseBits("00101100 10111110 00000010 00110010 00011110 000")
	pulses := pulse.MustNewMap(pulse.DefaultTickHz, pulse.DefaultTiming)
	trains := env.emitter.Trains()
	require.Len(t, trains, 4)
	for _, train := range trains {
		require.Equal(t, pulses.ToSignal(bits), train)
	}

	status := env.do(&msgs.StatusQuery{}).(*msgs.QueueStatus)
	require.Equal(t, uint32(0x2cbe), status.Id)
	require.False(t, status.Transmitting)
	require.Equal(t, uint64(4), status.Completed)

	// slow down so the aborted frames are still pending
	env.emitter.Speed = 1
	reply = env.do(&msgs.LightToggleRequest{})
	require.Equal(t, uint32(97), reply.(*msgs.TransmitReply).Intensity)
	require.Equal(t, uint32(4), reply.(*msgs.TransmitReply).Count)
	dropped := env.do(&msgs.AbortRequest{}).(*msgs.AbortReply).Dropped
	require.Equal(t, uint32(3), dropped)
	env.wait()
}

func TestHandleCommandErrors(t *testing.T) {
	env := newServiceTestEnv(t)
	testCases := []struct {
		name string
		msg  fx.Message
	}{
		{"id", &msgs.SetIDRequest{SetIDRequest: pb.SetIDRequest{Id: 70000}}},
		{"channel", &msgs.SetChannelRequest{SetChannelRequest: pb.SetChannelRequest{Channel: 3}}},
		{"intensity", &msgs.SetIntensityRequest{SetIntensityRequest: pb.SetIntensityRequest{Intensity: 100}}},
		{"action", &msgs.SetActionRequest{SetActionRequest: pb.SetActionRequest{Action: 5}}},
		{"send channel", &msgs.SendRequest{SendRequest: pb.SendRequest{Channel: 260, Action: 1, Count: 1}}},
		{"send action", &msgs.SendRequest{SendRequest: pb.SendRequest{Action: 0, Count: 1}}},
		{"count", &msgs.TransmitRequest{TransmitRequest: pb.TransmitRequest{Count: 70000}}},
		{"negative count", &msgs.TransmitRequest{TransmitRequest: pb.TransmitRequest{Count: -2}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.handler.HandleCommand(context.Background(), tc.msg)
			require.Error(t, err)
			_, ok := err.(*control.RangeError)
			require.True(t, ok)
		})
	}
	_, err := env.handler.HandleCommand(context.Background(), &msgs.QueueStatus{})
	require.Equal(t, msgs.ErrUnsupportedCommand, err)
	require.Equal(t, 0, env.queue.Len())
}

func TestRemoteSession(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverConn, clientConn := net.Pipe()
	reg := comm.NewRegistrar(stream.New(serverConn), env.handler)
	NotifyIdle(ctx, env.queue, reg)
	go reg.Run(ctx)

	conn := comm.NewControllerConn(stream.New(clientConn))
	conn.Start(ctx)
	defer conn.Close()

	reply, err := comm.Do(ctx, conn, &msgs.SendRequest{SendRequest: pb.SendRequest{
		Id: 0xf550, Channel: 0, Action: uint32(packet.ActionShock), Intensity: 0xaa, Count: 2,
	}})
	require.NoError(t, err)
	require.Equal(t, uint32(2), reply.(*msgs.TransmitReply).Count)

	select {
	case event := <-conn.Events():
		require.Equal(t, uint64(2), event.(*msgs.QueueIdle).Completed)
	case <-time.After(2 * time.Second):
		t.Fatal("QueueIdle timeout")
	}

	_, err = comm.Do(ctx, conn, &msgs.SetChannelRequest{SetChannelRequest: pb.SetChannelRequest{Channel: 7}})
	require.Error(t, err)
	_, ok := err.(*msgs.CommandErr)
	require.True(t, ok)

	reply, err = comm.Do(ctx, conn, &msgs.StatusQuery{})
	require.NoError(t, err)
	require.Equal(t, uint64(2), reply.(*msgs.QueueStatus).Enqueued)
}
