package daemon

import (
	"context"
	"errors"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/collar.go/pkg/l0/emitter/sim"
	"github.com/robotalks/collar.go/pkg/l0/emitter/stream"
	"github.com/robotalks/collar.go/pkg/l0/packet"
	"github.com/robotalks/collar.go/pkg/l0/pulse"
	"github.com/robotalks/collar.go/pkg/l1/control"
)

func testConfig() *Config {
	conf := NewConfig()
	conf.MQTTBrokerURL = ""
	conf.WebSocketAddr = "127.0.0.1:0"
	conf.Info.Ref.ID = "test"
	return conf
}

func TestNewEnvValidation(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"no transport", func(c *Config) { c.WebSocketAddr = "" }},
		{"no id", func(c *Config) { c.Info.Ref.ID = "" }},
		{"tick rate", func(c *Config) { c.TickHz = 0 }},
		{"tick rate too low", func(c *Config) { c.TickHz = 1000 }},
		{"channel", func(c *Config) { c.Settings.Channel = 3 }},
		{"output", func(c *Config) { c.Output = filepath.Join(os.TempDir(), "no-such-dir", "dev") }},
		{"baud", func(c *Config) { c.Baud = -1 }},
		{"serial output", func(c *Config) {
			c.Output = filepath.Join(os.TempDir(), "no-such-dir", "tty")
			c.Baud = 115200
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := testConfig()
			tc.modify(conf)
			_, err := conf.NewEnv()
			require.Error(t, err)
		})
	}
}

type failingStore struct{ control.MemStore }

var errStoreFull = errors.New("store full")

func (s *failingStore) Save(control.Settings) error {
	return errStoreFull
}

func TestNewEnvStore(t *testing.T) {
	conf := testConfig()
	conf.Settings.ID = 0x1234
	store := &control.MemStore{}
	conf.Store = store
	e, err := conf.NewEnv()
	require.NoError(t, err)
	stored, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), stored.ID)
	require.Equal(t, uint16(0x1234), e.Controller.Settings().ID)

	conf = testConfig()
	conf.Store = &failingStore{}
	_, err = conf.NewEnv()
	require.Error(t, err)
	require.Contains(t, err.Error(), errStoreFull.Error())
}

func TestNewEnvSim(t *testing.T) {
	conf := testConfig()
	conf.SimSpeed = 50
	conf.Settings.ID = 0x2cbe
	e, err := conf.NewEnv()
	require.NoError(t, err)
	em, ok := e.Emitter.(*sim.Emitter)
	require.True(t, ok)
	require.Equal(t, float64(50), em.Speed)

	_, err = e.Controller.Transmit(2)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Queue.Wait(ctx))
	require.Equal(t, uint64(2), em.Emitted())
}

func TestNewEnvStreamOutput(t *testing.T) {
	dir, err := ioutil.TempDir("", "collar")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	out := filepath.Join(dir, "out")
	require.NoError(t, ioutil.WriteFile(out, nil, 0644))

	conf := testConfig()
	conf.Output = out
	e, err := conf.NewEnv()
	require.NoError(t, err)
	_, ok := e.Emitter.(*stream.Emitter)
	require.True(t, ok)
	require.Len(t, e.runners, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.runners[0].Run(ctx) }()
	require.NoError(t, e.Controller.Send(packet.Command{ID: 1, Action: packet.ActionBeep}, 1))
	waitCtx, waitCancel := context.WithTimeout(ctx, time.Second)
	defer waitCancel()
	require.NoError(t, e.Queue.Wait(waitCtx))
	cancel()
	<-done

	data, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, data, 2+4*(1+packet.FrameBits))
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	train, err := stream.Decode(f)
	require.NoError(t, err)
	require.Equal(t, e.Pulses.ToSignal(packet.Encode(packet.Command{ID: 1, Action: packet.ActionBeep})), train)
	require.Equal(t, pulse.DefaultTickHz, uint32(conf.TickHz))
}

func TestFlagValues(t *testing.T) {
	var id uint16
	var ch packet.Channel
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(uint16Value{&id}, "collar-id", "")
	fs.Var(channelValue{&ch}, "channel", "")
	require.NoError(t, fs.Parse([]string{"-collar-id", "0x2cbe", "-channel", "2"}))
	require.Equal(t, uint16(0x2cbe), id)
	require.Equal(t, packet.ChannelTwo, ch)
	require.Error(t, channelValue{&ch}.Set("3"))
	require.Error(t, uint16Value{&id}.Set("65536"))
}
