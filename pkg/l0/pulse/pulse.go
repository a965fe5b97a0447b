// Package pulse maps packet bits onto timed pulses for the output peripheral.
package pulse

import (
	"errors"
	"fmt"
	"time"

	"github.com/robotalks/collar.go/pkg/l0/packet"
)

// Level is the output line level.
type Level bool

// Levels.
const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "H"
	}
	return "L"
}

// MaxTicks is the largest duration a single peripheral item can hold (15 bits).
const MaxTicks = 1<<15 - 1

// DefaultTickHz is the peripheral counter clock: 80MHz APB clock with divider 10.
const DefaultTickHz uint32 = 8000000

// ErrTicksOutOfRange indicates a duration can't be represented in ticks.
var ErrTicksOutOfRange = errors.New("ticks out of range")

// Pulse is a level held for a number of ticks.
type Pulse struct {
	Level Level
	Ticks uint16
}

// Duration converts ticks to time using the tick rate.
func (p Pulse) Duration(tickHz uint32) time.Duration {
	return ticksToDuration(uint64(p.Ticks), tickHz)
}

func (p Pulse) String() string {
	return fmt.Sprintf("%s%d", p.Level, p.Ticks)
}

// Pair is a high pulse followed by a low pulse.
type Pair [2]Pulse

// Ticks is the total ticks of the pair.
func (p Pair) Ticks() uint64 {
	return uint64(p[0].Ticks) + uint64(p[1].Ticks)
}

// Train is the sequence of pairs emitted for one frame.
type Train []Pair

// Ticks is the total ticks of the train.
func (t Train) Ticks() (n uint64) {
	for _, p := range t {
		n += p.Ticks()
	}
	return
}

// Duration is the time needed to emit the train.
func (t Train) Duration(tickHz uint32) time.Duration {
	return ticksToDuration(t.Ticks(), tickHz)
}

func ticksToDuration(ticks uint64, tickHz uint32) time.Duration {
	if tickHz == 0 {
		return 0
	}
	return time.Duration(ticks * uint64(time.Second) / uint64(tickHz))
}

func durationToTicks(d time.Duration, tickHz uint32) (uint16, error) {
	ticks := (d.Nanoseconds()*int64(tickHz) + int64(time.Second)/2) / int64(time.Second)
	if ticks <= 0 || ticks > MaxTicks {
		return 0, fmt.Errorf("%v at %dHz: %w", d, tickHz, ErrTicksOutOfRange)
	}
	return uint16(ticks), nil
}

// Timing defines the protocol pulse widths.
type Timing struct {
	SyncHigh time.Duration
	SyncLow  time.Duration
	OneHigh  time.Duration
	OneLow   time.Duration
	ZeroHigh time.Duration
	ZeroLow  time.Duration
}

// DefaultTiming is the pulse timing the receivers are known to accept.
// The sync pair is distinguished by its long high pulse.
var DefaultTiming = Timing{
	SyncHigh: 1400 * time.Microsecond,
	SyncLow:  800 * time.Microsecond,
	OneHigh:  800 * time.Microsecond,
	OneLow:   300 * time.Microsecond,
	ZeroHigh: 300 * time.Microsecond,
	ZeroLow:  800 * time.Microsecond,
}

// Map converts frames to pulse trains for a fixed tick rate.
type Map struct {
	TickHz uint32
	Timing Timing

	sync, one, zero Pair
}

// NewMap computes the pulse pairs once for the tick rate.
// Durations are rounded to the nearest tick.
func NewMap(tickHz uint32, timing Timing) (*Map, error) {
	if tickHz == 0 {
		return nil, fmt.Errorf("tick rate is zero: %w", ErrTicksOutOfRange)
	}
	m := &Map{TickHz: tickHz, Timing: timing}
	pairs := []struct {
		pair      *Pair
		high, low time.Duration
	}{
		{&m.sync, timing.SyncHigh, timing.SyncLow},
		{&m.one, timing.OneHigh, timing.OneLow},
		{&m.zero, timing.ZeroHigh, timing.ZeroLow},
	}
	for _, p := range pairs {
		high, err := durationToTicks(p.high, tickHz)
		if err != nil {
			return nil, err
		}
		low, err := durationToTicks(p.low, tickHz)
		if err != nil {
			return nil, err
		}
		*p.pair = Pair{{Level: High, Ticks: high}, {Level: Low, Ticks: low}}
	}
	return m, nil
}

// MustNewMap is NewMap which panics on error.
func MustNewMap(tickHz uint32, timing Timing) *Map {
	m, err := NewMap(tickHz, timing)
	if err != nil {
		panic(err)
	}
	return m
}

// Sync returns the sync marker pair.
func (m *Map) Sync() Pair { return m.sync }

// One returns the pair for a 1 bit.
func (m *Map) One() Pair { return m.one }

// Zero returns the pair for a 0 bit.
func (m *Map) Zero() Pair { return m.zero }

// ToSignal maps bits to a train: the sync pair followed by one pair per bit.
func (m *Map) ToSignal(bits packet.Bits) Train {
	train := make(Train, 1, 1+len(bits))
	train[0] = m.sync
	for _, bit := range bits {
		if bit {
			train = append(train, m.one)
		} else {
			train = append(train, m.zero)
		}
	}
	return train
}

// Tolerance is the largest difference between a configured duration and
// the emitted one. It never exceeds half a tick, and receivers decode
// with thresholds far wider than that.
func (m *Map) Tolerance() time.Duration {
	var worst time.Duration
	check := func(want time.Duration, p Pulse) {
		diff := p.Duration(m.TickHz) - want
		if diff < 0 {
			diff = -diff
		}
		if diff > worst {
			worst = diff
		}
	}
	t := m.Timing
	check(t.SyncHigh, m.sync[0])
	check(t.SyncLow, m.sync[1])
	check(t.OneHigh, m.one[0])
	check(t.OneLow, m.one[1])
	check(t.ZeroHigh, m.zero[0])
	check(t.ZeroLow, m.zero[1])
	return worst
}
