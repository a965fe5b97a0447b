package packet

import (
	"fmt"
	"strings"
)

// Frame sizing in bits.
const (
	IDBits         = 16
	NibbleBits     = 4
	IntensityBits  = 8
	PayloadBits    = IDBits + 2*NibbleBits + IntensityBits // 32
	ChecksumBits   = 8
	TerminatorBits = 3
	MinDecodeBits  = PayloadBits + ChecksumBits                  // 40
	FrameBits      = PayloadBits + ChecksumBits + TerminatorBits // 43
)

// Channel is the logical sub-channel of a device.
type Channel uint8

// Channels.
const (
	ChannelZero Channel = iota
	ChannelOne
	ChannelTwo
)

// IsValid checks if it's a known channel.
func (c Channel) IsValid() bool {
	return c <= ChannelTwo
}

func (c Channel) String() string {
	switch c {
	case ChannelZero:
		return "Zero"
	case ChannelOne:
		return "One"
	case ChannelTwo:
		return "Two"
	}
	return fmt.Sprintf("Channel(%d)", uint8(c))
}

// Action is the effect requested from the device.
type Action uint8

// Actions.
const (
	ActionShock   Action = 1
	ActionVibrate Action = 2
	ActionBeep    Action = 3
	ActionLight   Action = 4
)

var actionNames = map[Action]string{
	ActionShock:   "shock",
	ActionVibrate: "vibrate",
	ActionBeep:    "beep",
	ActionLight:   "light",
}

// IsValid checks if it's a known action.
func (a Action) IsValid() bool {
	return a >= ActionShock && a <= ActionLight
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction parses an action by name, case insensitive.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(name)
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Command is a single instruction for a device.
type Command struct {
	ID        uint16
	Channel   Channel
	Action    Action
	Intensity uint8
}

func (c Command) String() string {
	return fmt.Sprintf("%s(%d) id=%d channel=%s", c.Action, c.Intensity, c.ID, c.Channel)
}

// Bits encodes the command into a frame.
func (c Command) Bits() Bits {
	return Encode(c)
}

// Encode encodes a command into a frame of FrameBits bits.
// Channel and Action must be valid.
func Encode(c Command) Bits {
	if !c.Channel.IsValid() {
		panic(fmt.Sprintf("encode: %v", c.Channel))
	}
	if !c.Action.IsValid() {
		panic(fmt.Sprintf("encode: %v", c.Action))
	}
	b := make(Bits, 0, FrameBits)
	b = b.append(uint32(c.ID), IDBits)
	b = b.append(uint32(c.Channel), NibbleBits)
	b = b.append(uint32(c.Action), NibbleBits)
	b = b.append(uint32(c.Intensity), IntensityBits)
	b = b.append(uint32(Checksum(b)), ChecksumBits)
	return b.append(0, TerminatorBits)
}

// Checksum calculates the checksum over the first PayloadBits bits:
// the sum of the four payload bytes, modulo 256.
func Checksum(b Bits) byte {
	var sum byte
	for off := 0; off < PayloadBits; off += 8 {
		sum += byte(b.value(off, 8))
	}
	return sum
}
