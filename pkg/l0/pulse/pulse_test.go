package pulse

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/collar.go/pkg/l0/packet"
)

func TestDefaultMap(t *testing.T) {
	m := MustNewMap(DefaultTickHz, DefaultTiming)
	require.Equal(t, Pair{{High, 11200}, {Low, 6400}}, m.Sync())
	require.Equal(t, Pair{{High, 6400}, {Low, 2400}}, m.One())
	require.Equal(t, Pair{{High, 2400}, {Low, 6400}}, m.Zero())
	require.Equal(t, time.Duration(0), m.Tolerance())
}

func TestSyncDistinguishable(t *testing.T) {
	m := MustNewMap(DefaultTickHz, DefaultTiming)
	require.NotEqual(t, m.Sync(), m.One())
	require.NotEqual(t, m.Sync(), m.Zero())
	require.True(t, m.Sync()[0].Ticks > m.One()[0].Ticks)
	require.True(t, m.Sync()[1].Ticks > m.One()[1].Ticks)
}

func TestToSignal(t *testing.T) {
	m := MustNewMap(DefaultTickHz, DefaultTiming)
	bits := packet.Encode(packet.Command{ID: 0x2cbe, Channel: packet.ChannelZero, Action: packet.ActionVibrate, Intensity: 50})
	train := m.ToSignal(bits)
	require.Len(t, train, 1+packet.FrameBits)
	require.Equal(t, m.Sync(), train[0])
	for i, bit := range bits {
		if bit {
			require.Equalf(t, m.One(), train[i+1], "bit %d", i)
		} else {
			require.Equalf(t, m.Zero(), train[i+1], "bit %d", i)
		}
	}
	require.Len(t, m.ToSignal(nil), 1)
}

func TestTrainDuration(t *testing.T) {
	m := MustNewMap(DefaultTickHz, DefaultTiming)
	train := m.ToSignal(packet.Bits{true, false})
	require.Equal(t, (1400+800+800+300+300+800)*time.Microsecond, train.Duration(DefaultTickHz))
	require.Equal(t, time.Duration(0), train.Duration(0))
}

func TestRounding(t *testing.T) {
	const tickHz = 32768
	m := MustNewMap(tickHz, DefaultTiming)
	// 300us * 32768Hz = 9.83 ticks
	require.Equal(t, uint16(10), m.Zero()[0].Ticks)
	// 1400us * 32768Hz = 45.87 ticks
	require.Equal(t, uint16(46), m.Sync()[0].Ticks)
	halfTick := time.Second / tickHz / 2
	require.True(t, m.Tolerance() > 0)
	require.True(t, m.Tolerance() <= halfTick, "tolerance %v exceeds %v", m.Tolerance(), halfTick)
}

func TestNewMapErrors(t *testing.T) {
	testCases := []struct {
		name   string
		tickHz uint32
		timing Timing
	}{
		{"zero tick rate", 0, DefaultTiming},
		{"too slow", 1000, DefaultTiming},
		{"too fast", 80000000, DefaultTiming},
		{"zero duration", DefaultTickHz, Timing{SyncHigh: 1400 * time.Microsecond}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMap(tc.tickHz, tc.timing)
			require.True(t, errors.Is(err, ErrTicksOutOfRange), "%v", err)
		})
	}
	require.Panics(t, func() { MustNewMap(0, DefaultTiming) })
}
