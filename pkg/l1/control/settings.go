package control

import (
	"errors"
	"sync"

	"github.com/robotalks/collar.go/pkg/l0/packet"
)

// Settings is the persisted controller configuration.
type Settings struct {
	ID        uint16         `json:"id"`
	Channel   packet.Channel `json:"channel"`
	Action    packet.Action  `json:"action"`
	Intensity uint8          `json:"intensity"`
}

// DefaultSettings is used when nothing is stored.
var DefaultSettings = Settings{
	ID:        0,
	Channel:   packet.ChannelZero,
	Action:    packet.ActionShock,
	Intensity: 1,
}

// Command builds the command to transmit from settings.
func (s Settings) Command() packet.Command {
	return packet.Command{
		ID:        s.ID,
		Channel:   s.Channel,
		Action:    s.Action,
		Intensity: s.Intensity,
	}
}

// Validate checks the stored values are usable.
func (s Settings) Validate() error {
	if !s.Channel.IsValid() {
		return &RangeError{Name: "channel", Value: int(s.Channel), Min: 0, Max: int(packet.ChannelTwo)}
	}
	if !s.Action.IsValid() {
		return &RangeError{Name: "action", Value: int(s.Action), Min: int(packet.ActionShock), Max: int(packet.ActionLight)}
	}
	if s.Intensity > MaxIntensity {
		return &RangeError{Name: "intensity", Value: int(s.Intensity), Min: 0, Max: MaxIntensity}
	}
	return nil
}

// ErrNotStored indicates the Store has no settings yet.
var ErrNotStored = errors.New("settings not stored")

// Store persists Settings.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// MemStore is a Store in memory.
type MemStore struct {
	settings *Settings
	lock     sync.Mutex
}

// Load implements Store.
func (s *MemStore) Load() (Settings, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.settings == nil {
		return Settings{}, ErrNotStored
	}
	return *s.settings, nil
}

// Save implements Store.
func (s *MemStore) Save(settings Settings) error {
	s.lock.Lock()
	s.settings = &settings
	s.lock.Unlock()
	return nil
}
