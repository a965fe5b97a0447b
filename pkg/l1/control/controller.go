// Package control holds the user facing state of the transmitter and
// turns user commands into queued frames.
package control

import (
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/collar.go/pkg/l0/packet"
	"github.com/robotalks/collar.go/pkg/l0/tx"
)

// Limits of user input.
const (
	MaxIntensity     = 99
	MaxTransmitCount = 65535
	// DefaultTransmitCount is used when the count is CountDefault.
	DefaultTransmitCount = 4
	// CountDefault asks Transmit for DefaultTransmitCount frames.
	CountDefault = -1
	// LightToggleCount is the number of frames sent for a light toggle.
	LightToggleCount = 4
)

// Intensities alternated by light toggles.
const (
	lightOnIntensity  = 97
	lightOffIntensity = 96
)

// Transmitter is the queue the Controller feeds.
type Transmitter interface {
	EnqueueCommand(cmd packet.Command, n int) uint32
	Abort() int
	State() tx.State
	Len() int
	Stats() tx.Stats
}

// Status is a snapshot of the controller.
type Status struct {
	Settings
	State   tx.State
	Pending int
	Stats   tx.Stats
}

// Controller applies user commands.
type Controller struct {
	queue    Transmitter
	store    Store
	settings Settings
	lightOn  bool
	lock     sync.Mutex
}

// New creates a Controller with settings loaded from store.
func New(queue Transmitter, store Store) (*Controller, error) {
	settings, err := store.Load()
	switch {
	case err == ErrNotStored:
		settings = DefaultSettings
	case err != nil:
		return nil, err
	default:
		if err = settings.Validate(); err != nil {
			glog.Warningf("stored settings invalid (%v), reset to defaults", err)
			settings = DefaultSettings
		}
	}
	return &Controller{queue: queue, store: store, settings: settings}, nil
}

// Settings returns current settings.
func (c *Controller) Settings() Settings {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.settings
}

// SetID sets the receiver id.
func (c *Controller) SetID(id int) error {
	if id < 0 || id > 0xffff {
		return &RangeError{Name: "id", Value: id, Min: 0, Max: 0xffff}
	}
	return c.update(func(s *Settings) { s.ID = uint16(id) })
}

// SetChannel sets the channel.
func (c *Controller) SetChannel(ch int) error {
	if ch < 0 || ch > int(packet.ChannelTwo) {
		return &RangeError{Name: "channel", Value: ch, Min: 0, Max: int(packet.ChannelTwo)}
	}
	return c.update(func(s *Settings) { s.Channel = packet.Channel(ch) })
}

// SetIntensity sets the intensity.
func (c *Controller) SetIntensity(intensity int) error {
	if err := checkIntensity(intensity); err != nil {
		return err
	}
	return c.update(func(s *Settings) { s.Intensity = uint8(intensity) })
}

// SetAction selects the action and optionally the intensity.
func (c *Controller) SetAction(action packet.Action, intensity *int) error {
	if !action.IsValid() {
		return &RangeError{Name: "action", Value: int(action), Min: int(packet.ActionShock), Max: int(packet.ActionLight)}
	}
	if intensity != nil {
		if err := checkIntensity(*intensity); err != nil {
			return err
		}
	}
	return c.update(func(s *Settings) {
		s.Action = action
		if intensity != nil {
			s.Intensity = uint8(*intensity)
		}
	})
}

// Transmit enqueues count frames built from current settings.
// A negative count means DefaultTransmitCount.
func (c *Controller) Transmit(count int) (packet.Command, error) {
	if count == CountDefault {
		count = DefaultTransmitCount
	}
	if count < 0 || count > MaxTransmitCount {
		return packet.Command{}, &RangeError{Name: "count", Value: count, Min: 0, Max: MaxTransmitCount}
	}
	cmd := c.Settings().Command()
	if count > 0 {
		c.queue.EnqueueCommand(cmd, count)
	}
	glog.V(2).Infof("transmit %s x%d", cmd, count)
	return cmd, nil
}

// Send enqueues count frames of an explicit command without
// touching settings.
func (c *Controller) Send(cmd packet.Command, count int) error {
	if count < 0 || count > MaxTransmitCount {
		return &RangeError{Name: "count", Value: count, Min: 0, Max: MaxTransmitCount}
	}
	if !cmd.Channel.IsValid() {
		return &RangeError{Name: "channel", Value: int(cmd.Channel), Min: 0, Max: int(packet.ChannelTwo)}
	}
	if !cmd.Action.IsValid() {
		return &RangeError{Name: "action", Value: int(cmd.Action), Min: int(packet.ActionShock), Max: int(packet.ActionLight)}
	}
	if count > 0 {
		c.queue.EnqueueCommand(cmd, count)
	}
	glog.V(2).Infof("send %s x%d", cmd, count)
	return nil
}

// ToggleLight sends a light toggle using current id and channel.
func (c *Controller) ToggleLight() packet.Command {
	c.lock.Lock()
	cmd := packet.Command{
		ID:        c.settings.ID,
		Channel:   c.settings.Channel,
		Action:    packet.ActionLight,
		Intensity: lightOnIntensity,
	}
	if c.lightOn {
		cmd.Intensity = lightOffIntensity
	}
	c.lightOn = !c.lightOn
	c.lock.Unlock()
	c.queue.EnqueueCommand(cmd, LightToggleCount)
	glog.V(2).Infof("light toggle %s", cmd)
	return cmd
}

// Abort drops pending frames and returns the number dropped.
func (c *Controller) Abort() int {
	n := c.queue.Abort()
	glog.V(2).Infof("aborted %d frame(s)", n)
	return n
}

// Status returns a snapshot.
func (c *Controller) Status() Status {
	return Status{
		Settings: c.Settings(),
		State:    c.queue.State(),
		Pending:  c.queue.Len(),
		Stats:    c.queue.Stats(),
	}
}

func (c *Controller) update(fn func(*Settings)) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	settings := c.settings
	fn(&settings)
	if err := c.store.Save(settings); err != nil {
		return err
	}
	c.settings = settings
	return nil
}

func checkIntensity(intensity int) error {
	if intensity < 0 || intensity > MaxIntensity {
		return &RangeError{Name: "intensity", Value: intensity, Min: 0, Max: MaxIntensity}
	}
	return nil
}
