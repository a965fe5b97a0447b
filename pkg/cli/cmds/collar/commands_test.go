package collar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/collar.go/pkg/cli/sh"
	"github.com/robotalks/collar.go/pkg/l0/emitter/sim"
	"github.com/robotalks/collar.go/pkg/l0/packet"
	"github.com/robotalks/collar.go/pkg/l0/pulse"
	"github.com/robotalks/collar.go/pkg/l0/tx"
	"github.com/robotalks/collar.go/pkg/l1/control"
	env "github.com/robotalks/collar.go/pkg/l1/env/connector"
	"github.com/robotalks/collar.go/pkg/l1/msgs"
	"github.com/robotalks/collar.go/pkg/l1/service"
	pb "github.com/robotalks/collar.go/pkg/proto/collar/v1"
)

func TestDecodeBits(t *testing.T) {
	cmd, err := DecodeBits([]string{"00101100", "10111110", "00000010", "00110010", "00011110"})
	require.NoError(t, err)
	require.Equal(t, packet.Command{ID: 0x2cbe, Channel: packet.ChannelZero, Action: packet.ActionVibrate, Intensity: 0x32}, cmd)

	_, err = DecodeBits([]string{"0010"})
	require.Equal(t, packet.ErrShortFrame, err)
	_, err = DecodeBits([]string{"0012"})
	require.Error(t, err)
}

func TestWaitIdleLocal(t *testing.T) {
	e := sim.New(pulse.DefaultTickHz)
	e.Speed = 20
	q := tx.New(e, pulse.MustNewMap(pulse.DefaultTickHz, pulse.DefaultTiming))
	c, err := control.New(q, &control.MemStore{})
	require.NoError(t, err)
	s := sh.New(env.NewConfig()).WithLocal(service.New(c))

	reply, err := s.Do(&msgs.SetIntensityRequest{SetIntensityRequest: pb.SetIntensityRequest{Intensity: 5}})
	require.NoError(t, err)
	require.Equal(t, "OK", s.Format(reply))

	_, err = s.Do(&msgs.TransmitRequest{TransmitRequest: pb.TransmitRequest{Count: 3}})
	require.NoError(t, err)
	status, err := WaitIdle(s, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, uint64(3), status.Completed)
	require.Equal(t, uint32(5), status.Intensity)
	require.Equal(t, uint64(3), e.Emitted())
}
