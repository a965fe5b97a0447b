package packet

// Decode decodes a frame into a command.
// At least MinDecodeBits bits are required, the terminator is not checked.
func Decode(b Bits) (Command, error) {
	var c Command
	if len(b) < MinDecodeBits {
		return c, ErrShortFrame
	}
	off := 0
	field := func(n int) uint32 {
		v := b.value(off, n)
		off += n
		return v
	}
	c.ID = uint16(field(IDBits))
	channel, action := byte(field(NibbleBits)), byte(field(NibbleBits))
	c.Intensity = uint8(field(IntensityBits))
	checksum := byte(field(ChecksumBits))

	if c.Channel = Channel(channel); !c.Channel.IsValid() {
		return Command{}, &ChannelError{Nibble: channel}
	}
	if c.Action = Action(action); !c.Action.IsValid() {
		return Command{}, &ActionError{Nibble: action}
	}
	if want := Checksum(b); want != checksum {
		return Command{}, &ChecksumError{Want: want, Got: checksum}
	}
	return c, nil
}
