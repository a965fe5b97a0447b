package control

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/collar.go/pkg/l0/packet"
	"github.com/robotalks/collar.go/pkg/l0/tx"
)

type enqueued struct {
	cmd packet.Command
	n   int
}

type fakeTransmitter struct {
	enqueued []enqueued
	pending  int
}

func (t *fakeTransmitter) EnqueueCommand(cmd packet.Command, n int) uint32 {
	t.enqueued = append(t.enqueued, enqueued{cmd: cmd, n: n})
	t.pending += n
	return uint32(len(t.enqueued))
}

func (t *fakeTransmitter) Abort() int {
	if t.pending == 0 {
		return 0
	}
	n := t.pending - 1
	t.pending = 1
	return n
}

func (t *fakeTransmitter) State() tx.State {
	if t.pending > 0 {
		return tx.StateTransmitting
	}
	return tx.StateIdle
}

func (t *fakeTransmitter) Len() int        { return t.pending }
func (t *fakeTransmitter) Stats() tx.Stats { return tx.Stats{} }

type failStore struct {
	MemStore
	err error
}

func (s *failStore) Save(Settings) error { return s.err }

func newTestController(t *testing.T) (*Controller, *fakeTransmitter, *MemStore) {
	q := &fakeTransmitter{}
	store := &MemStore{}
	c, err := New(q, store)
	require.NoError(t, err)
	return c, q, store
}

func intp(v int) *int { return &v }

func TestDefaults(t *testing.T) {
	c, _, _ := newTestController(t)
	require.Equal(t, DefaultSettings, c.Settings())
	require.Equal(t, Settings{Action: packet.ActionShock, Intensity: 1}, c.Settings())
}

func TestLoadStored(t *testing.T) {
	store := &MemStore{}
	stored := Settings{ID: 0x2cbe, Channel: packet.ChannelOne, Action: packet.ActionVibrate, Intensity: 50}
	require.NoError(t, store.Save(stored))
	c, err := New(&fakeTransmitter{}, store)
	require.NoError(t, err)
	require.Equal(t, stored, c.Settings())

	require.NoError(t, store.Save(Settings{Channel: 3, Action: packet.ActionBeep}))
	c, err = New(&fakeTransmitter{}, store)
	require.NoError(t, err)
	require.Equal(t, DefaultSettings, c.Settings())
}

func TestSetters(t *testing.T) {
	testCases := []struct {
		name   string
		set    func(*Controller) error
		expect Settings
		errOn  string
	}{
		{"id", func(c *Controller) error { return c.SetID(0xf550) }, Settings{ID: 0xf550, Action: packet.ActionShock, Intensity: 1}, ""},
		{"id too large", func(c *Controller) error { return c.SetID(65536) }, DefaultSettings, "id"},
		{"id negative", func(c *Controller) error { return c.SetID(-1) }, DefaultSettings, "id"},
		{"channel", func(c *Controller) error { return c.SetChannel(2) }, Settings{Channel: packet.ChannelTwo, Action: packet.ActionShock, Intensity: 1}, ""},
		{"channel invalid", func(c *Controller) error { return c.SetChannel(3) }, DefaultSettings, "channel"},
		{"intensity", func(c *Controller) error { return c.SetIntensity(99) }, Settings{Action: packet.ActionShock, Intensity: 99}, ""},
		{"intensity too large", func(c *Controller) error { return c.SetIntensity(100) }, DefaultSettings, "intensity"},
		{"vibrate", func(c *Controller) error { return c.SetAction(packet.ActionVibrate, nil) }, Settings{Action: packet.ActionVibrate, Intensity: 1}, ""},
		{"shock with intensity", func(c *Controller) error { return c.SetAction(packet.ActionShock, intp(40)) }, Settings{Action: packet.ActionShock, Intensity: 40}, ""},
		{"vibrate invalid intensity", func(c *Controller) error { return c.SetAction(packet.ActionVibrate, intp(120)) }, DefaultSettings, "intensity"},
		{"beep", func(c *Controller) error { return c.SetAction(packet.ActionBeep, nil) }, Settings{Action: packet.ActionBeep, Intensity: 1}, ""},
		{"invalid action", func(c *Controller) error { return c.SetAction(packet.Action(0), nil) }, DefaultSettings, "action"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _, store := newTestController(t)
			err := tc.set(c)
			require.Equal(t, tc.expect, c.Settings())
			if tc.errOn == "" {
				require.NoError(t, err)
				stored, err := store.Load()
				require.NoError(t, err)
				require.Equal(t, tc.expect, stored)
				return
			}
			var rangeErr *RangeError
			require.True(t, errors.As(err, &rangeErr))
			require.Equal(t, tc.errOn, rangeErr.Name)
			_, err = store.Load()
			require.Equal(t, ErrNotStored, err)
		})
	}
}

func TestSaveFailureKeepsSettings(t *testing.T) {
	storeErr := errors.New("flash worn out")
	c, err := New(&fakeTransmitter{}, &failStore{err: storeErr})
	require.NoError(t, err)
	require.Equal(t, storeErr, c.SetID(7))
	require.Equal(t, DefaultSettings, c.Settings())
}

func TestTransmit(t *testing.T) {
	c, q, _ := newTestController(t)
	require.NoError(t, c.SetID(0x2cbe))
	require.NoError(t, c.SetAction(packet.ActionVibrate, intp(50)))

	cmd, err := c.Transmit(-1)
	require.NoError(t, err)
	expected := packet.Command{ID: 0x2cbe, Channel: packet.ChannelZero, Action: packet.ActionVibrate, Intensity: 50}
	require.Equal(t, expected, cmd)
	require.Equal(t, []enqueued{{cmd: expected, n: DefaultTransmitCount}}, q.enqueued)

	_, err = c.Transmit(0)
	require.NoError(t, err)
	require.Len(t, q.enqueued, 1)

	_, err = c.Transmit(MaxTransmitCount + 1)
	require.Error(t, err)
	require.Len(t, q.enqueued, 1)

	_, err = c.Transmit(-2)
	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	require.Equal(t, -2, rangeErr.Value)
	require.Len(t, q.enqueued, 1)

	_, err = c.Transmit(2)
	require.NoError(t, err)
	require.Equal(t, 2, q.enqueued[1].n)
	require.Equal(t, DefaultTransmitCount+2, c.Status().Pending)
	require.Equal(t, DefaultTransmitCount+1, c.Abort())
	require.Equal(t, tx.StateTransmitting, c.Status().State)
}

func TestSend(t *testing.T) {
	c, q, _ := newTestController(t)
	cmd := packet.Command{ID: 9, Channel: packet.ChannelOne, Action: packet.ActionBeep}
	require.NoError(t, c.Send(cmd, 3))
	require.Equal(t, []enqueued{{cmd: cmd, n: 3}}, q.enqueued)
	require.Error(t, c.Send(packet.Command{Channel: 5, Action: packet.ActionBeep}, 1))
	require.Error(t, c.Send(packet.Command{Action: 9}, 1))
	require.Error(t, c.Send(cmd, -1))
	require.Equal(t, DefaultSettings, c.Settings())
}

func TestToggleLight(t *testing.T) {
	c, q, _ := newTestController(t)
	require.NoError(t, c.SetID(12))
	require.NoError(t, c.SetChannel(1))
	require.NoError(t, c.SetAction(packet.ActionShock, intp(30)))

	on := c.ToggleLight()
	off := c.ToggleLight()
	again := c.ToggleLight()
	require.Equal(t, packet.Command{ID: 12, Channel: packet.ChannelOne, Action: packet.ActionLight, Intensity: 97}, on)
	require.Equal(t, uint8(96), off.Intensity)
	require.Equal(t, uint8(97), again.Intensity)
	require.Len(t, q.enqueued, 3)
	for _, e := range q.enqueued {
		require.Equal(t, LightToggleCount, e.n)
	}
	// toggling doesn't change stored action
	require.Equal(t, packet.ActionShock, c.Settings().Action)
	require.Equal(t, uint8(30), c.Settings().Intensity)
}
