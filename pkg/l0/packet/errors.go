package packet

import (
	"errors"
	"fmt"
)

var (
	// ErrShortFrame indicates fewer bits than required for decoding.
	ErrShortFrame = errors.New("short frame")
	// ErrInvalidChannel indicates the channel nibble is not a known channel.
	ErrInvalidChannel = errors.New("invalid channel")
	// ErrInvalidAction indicates the action nibble is not a known action.
	ErrInvalidAction = errors.New("invalid action")
	// ErrChecksumMismatch indicates the checksum doesn't match the payload.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// ChannelError wraps the invalid channel nibble.
type ChannelError struct {
	Nibble byte
}

// Error implements error.
func (e *ChannelError) Error() string {
	return fmt.Sprintf("invalid channel %04b", e.Nibble)
}

// Unwrap returns ErrInvalidChannel.
func (e *ChannelError) Unwrap() error { return ErrInvalidChannel }

// ActionError wraps the invalid action nibble.
type ActionError struct {
	Nibble byte
}

// Error implements error.
func (e *ActionError) Error() string {
	return fmt.Sprintf("invalid action %04b", e.Nibble)
}

// Unwrap returns ErrInvalidAction.
func (e *ActionError) Unwrap() error { return ErrInvalidAction }

// ChecksumError reports the computed and received checksums.
type ChecksumError struct {
	Want byte
	Got  byte
}

// Error implements error.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: want %08b, got %08b", e.Want, e.Got)
}

// Unwrap returns ErrChecksumMismatch.
func (e *ChecksumError) Unwrap() error { return ErrChecksumMismatch }
