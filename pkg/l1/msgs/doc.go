// Package msgs provides the remote protocol of the collar transmitter.
package msgs

// The protocol is exchanged between the transmitter daemon and remote
// clients (shell, monitors), over any packet transport.
//
// Each packet is a Typed envelope carrying a type id, the serialized
// message and a sequence number. Replies to a command carry the sequence
// of the command. Events carry no sequence.
//
// Producer: clients send commands, the daemon sends replies and events.
