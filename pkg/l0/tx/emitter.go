package tx

import "github.com/robotalks/collar.go/pkg/l0/pulse"

// Emitter is the pulse output capability.
type Emitter interface {
	// Emit starts emitting the train and returns immediately.
	// It is called with the queue lock held.
	Emit(pulse.Train)
	// OnComplete registers the callback invoked once for each
	// completed Emit. It may be invoked from any goroutine except
	// the one calling Emit, and never from inside Emit: the callback
	// takes the queue lock Emit is called under.
	OnComplete(func())
}

// BusyReporter is optionally implemented by an Emitter which knows
// whether it's still emitting. Completion notifications received while
// busy are treated as duplicates.
type BusyReporter interface {
	Busy() bool
}
