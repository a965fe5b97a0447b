// Package packet provides the L0 radio packet codec.
package packet

// A packet is what the receiver sees on air after the pulse train is demodulated.
// It carries one command for one device and is protected by an 8-bit additive
// checksum, which catches every single-bit error in the payload but not every
// multi-bit error.
//
// Frame layout, MSB first:
//
//	[id:16][channel:4][action:4][intensity:8][checksum:8][terminator:3]
//
// The terminator is three zero bits used only for wire framing; decoding
// needs the first 40 bits.
