// Package daemon sets up the transmitter daemon from flags and environment.
package daemon

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/tarm/serial"

	fx "github.com/robotalks/collar.go/pkg/framework"
	"github.com/robotalks/collar.go/pkg/l0/emitter/sim"
	"github.com/robotalks/collar.go/pkg/l0/emitter/stream"
	"github.com/robotalks/collar.go/pkg/l0/packet"
	"github.com/robotalks/collar.go/pkg/l0/pulse"
	"github.com/robotalks/collar.go/pkg/l0/tx"
	"github.com/robotalks/collar.go/pkg/l1"
	"github.com/robotalks/collar.go/pkg/l1/comm"
	"github.com/robotalks/collar.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/collar.go/pkg/l1/comm/websocket"
	"github.com/robotalks/collar.go/pkg/l1/control"
	"github.com/robotalks/collar.go/pkg/l1/env"
	"github.com/robotalks/collar.go/pkg/l1/service"
)

// OutputSim selects the software emitter.
const OutputSim = "sim"

// Config provides options to setup the daemon.
type Config struct {
	Info l1.ControllerInfo

	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix/
	MQTTBrokerURL string
	// WebSocketAddr is the listen address of websocket endpoint.
	WebSocketAddr string
	// Output is either OutputSim or the path of the device receiving
	// encoded pulse trains.
	Output string
	// Baud opens Output as a serial port when not zero.
	Baud int
	// TickHz is the tick rate of the output.
	TickHz uint
	// SimSpeed scales time of the software emitter.
	SimSpeed float64
	// Settings are used until changed by commands.
	Settings control.Settings
	// Store keeps settings, a MemStore when nil. It is seeded
	// with Settings.
	Store control.Store
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/collar/",
	Output:        OutputSim,
	TickHz:        uint(pulse.DefaultTickHz),
	SimSpeed:      1,
	Settings:      control.DefaultSettings,
}

func init() {
	defaultConfig.Info.Ref.Type = l1.ControllerType
	defaultConfig.Info.Ref.ID = env.MachineID()
	defaultConfig.Info.Meta.Description = "collar transmitter"
	if val := os.Getenv("COLLAR_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("COLLAR_WS_ADDR"); val != "" {
		defaultConfig.WebSocketAddr = val
	}
	if val := os.Getenv("COLLAR_OUTPUT"); val != "" {
		defaultConfig.Output = val
	}
	if val := os.Getenv("COLLAR_CONTROLLER_ID"); val != "" {
		defaultConfig.Info.Ref.ID = val
	}
	if val, err := strconv.Atoi(os.Getenv("COLLAR_BAUD")); err == nil {
		defaultConfig.Baud = val
	}
	if val, err := strconv.ParseUint(os.Getenv("COLLAR_TICK_HZ"), 10, 32); err == nil {
		defaultConfig.TickHz = uint(val)
	}
	if val, err := strconv.ParseUint(os.Getenv("COLLAR_ID"), 0, 16); err == nil {
		defaultConfig.Settings.ID = uint16(val)
	}
	if val, err := strconv.ParseUint(os.Getenv("COLLAR_CHANNEL"), 10, 8); err == nil {
		defaultConfig.Settings.Channel = packet.Channel(val)
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Info.Ref.ID, "controller-id", defaultConfig.Info.Ref.ID, "Controller ID")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable")
	flag.StringVar(&defaultConfig.WebSocketAddr, "ws", defaultConfig.WebSocketAddr, "Websocket listen address, empty to disable")
	flag.StringVar(&defaultConfig.Output, "output", defaultConfig.Output, "Pulse output: sim or device path")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate of output device, 0 for plain file")
	flag.UintVar(&defaultConfig.TickHz, "tick-hz", defaultConfig.TickHz, "Output tick rate")
	flag.Float64Var(&defaultConfig.SimSpeed, "sim-speed", defaultConfig.SimSpeed, "Time scale of sim output")
	flag.Var(uint16Value{&defaultConfig.Settings.ID}, "collar-id", "Initial receiver ID")
	flag.Var(channelValue{&defaultConfig.Settings.Channel}, "channel", "Initial channel (0-2)")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Env is the assembled daemon.
type Env struct {
	Config     *Config
	Pulses     *pulse.Map
	Emitter    tx.Emitter
	Queue      *tx.Queue
	Controller *control.Controller
	Handler    *service.Handler
	Registrar  *comm.RegistrarMux

	runners []fx.Runnable
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("controller id must be specified")
	}
	if err := c.Settings.Validate(); err != nil {
		return nil, err
	}
	if c.Baud < 0 {
		return nil, fmt.Errorf("invalid baud rate %d", c.Baud)
	}
	if c.TickHz == 0 || c.TickHz > 0xffffffff {
		return nil, fmt.Errorf("invalid tick rate %d", c.TickHz)
	}
	pulses, err := pulse.NewMap(uint32(c.TickHz), pulse.DefaultTiming)
	if err != nil {
		return nil, err
	}
	e := &Env{Config: c, Pulses: pulses, Registrar: &comm.RegistrarMux{}}
	if err = e.setupEmitter(); err != nil {
		return nil, err
	}
	e.Queue = tx.New(e.Emitter, pulses)
	store := c.Store
	if store == nil {
		store = &control.MemStore{}
	}
	if err = store.Save(c.Settings); err != nil {
		return nil, fmt.Errorf("seed settings error: %v", err)
	}
	if e.Controller, err = control.New(e.Queue, store); err != nil {
		return nil, err
	}
	e.Handler = service.New(e.Controller)

	if c.MQTTBrokerURL != "" {
		reg, err := mqtt.NewRegistrar(c.MQTTBrokerURL, c.Info, e.Handler)
		if err != nil {
			return nil, fmt.Errorf("create MQTT registrar error: %v", err)
		}
		e.Registrar.Add(reg)
	}
	if c.MQTTBrokerURL == "" && c.WebSocketAddr == "" {
		return nil, fmt.Errorf("at least one of MQTT or websocket is required")
	}
	return e, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	e, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return e
}

func (e *Env) setupEmitter() error {
	tickHz := uint32(e.Config.TickHz)
	if e.Config.Output == OutputSim {
		em := sim.New(tickHz)
		em.Speed = e.Config.SimSpeed
		e.Emitter = em
		return nil
	}
	f, err := e.openOutput()
	if err != nil {
		return fmt.Errorf("open output %q error: %v", e.Config.Output, err)
	}
	em := stream.New(f, tickHz)
	e.Emitter = em
	e.runners = append(e.runners, fx.NamedRun("output", fx.RunFunc(func(ctx context.Context) error {
		defer f.Close()
		return em.Run(ctx)
	})))
	return nil
}

func (e *Env) openOutput() (io.WriteCloser, error) {
	if e.Config.Baud > 0 {
		return serial.OpenPort(&serial.Config{Name: e.Config.Output, Baud: e.Config.Baud})
	}
	return os.OpenFile(e.Config.Output, os.O_WRONLY, 0)
}

// Run runs the daemon until ctx is done.
func (e *Env) Run(ctx context.Context) error {
	runner := fx.NewRunnerWith(ctx)
	service.NotifyIdle(ctx, e.Queue, e.Registrar)
	runner.Go(e.runners...)
	if e.Registrar.Len() > 0 {
		// websocket clients join the mux later and are run by the http server
		runner.Go(fx.NamedRun("registrars", e.Registrar))
	}
	if addr := e.Config.WebSocketAddr; addr != "" {
		runner.Go(fx.NamedRun("websocket", fx.RunFunc(func(ctx context.Context) error {
			return e.serveWebSocket(ctx, addr)
		})))
	}
	glog.Infof("controller %s running", e.Config.Info.Ref.Name())
	return runner.Wait()
}

func (e *Env) serveWebSocket(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/collar", websocket.Handler(ctx, e.Handler, e.Registrar))
	server := &http.Server{Addr: addr, Handler: mux}
	glog.Infof("websocket listening on %s/collar", addr)
	return fx.RunWithContextCancel(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}, func() error {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

type uint16Value struct{ v *uint16 }

func (f uint16Value) String() string {
	if f.v == nil {
		return "0"
	}
	return strconv.Itoa(int(*f.v))
}

func (f uint16Value) Set(s string) error {
	val, err := strconv.ParseUint(s, 0, 16)
	if err == nil {
		*f.v = uint16(val)
	}
	return err
}

type channelValue struct{ v *packet.Channel }

func (f channelValue) String() string {
	if f.v == nil {
		return "0"
	}
	return strconv.Itoa(int(*f.v))
}

func (f channelValue) Set(s string) error {
	val, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return err
	}
	if ch := packet.Channel(val); !ch.IsValid() {
		return fmt.Errorf("channel must be between 0 and 2")
	}
	*f.v = packet.Channel(val)
	return nil
}
