// Package tx serializes pulse train transmissions on a single output line.
package tx

// Frames are appended by any number of producers and handed to the Emitter
// one at a time. The Emitter reports completion asynchronously, possibly from
// an interrupt-like context, and the queue starts the next pending frame from
// that notification, which must not run inside Emit itself since Emit is
// called with the queue lock held. The queue is the only owner of the Emitter: both the
// producers and the completion path reach it through the queue lock.
//
// States:
//
//	Idle         --Enqueue-->      Transmitting (front frame started)
//	Transmitting --Enqueue-->      Transmitting (frame appended)
//	Transmitting --TransmitDone--> Idle (list drained) | Transmitting (next started)
//
// Abort drops pending frames only, the in-flight frame always runs to completion.
