// Package sim provides a software pulse emitter without hardware.
package sim

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/collar.go/pkg/l0/pulse"
)

// Emitter pretends to emit pulse trains by waiting for their duration.
type Emitter struct {
	// TickHz is the tick rate of the trains.
	TickHz uint32
	// Speed scales time, 2 completes twice as fast, 0 means 1.
	Speed float64
	// History keeps the last N emitted trains, 0 keeps nothing.
	History int

	lock     sync.Mutex
	busy     bool
	complete func()
	trains   []pulse.Train
	emitted  uint64
}

// New creates an Emitter.
func New(tickHz uint32) *Emitter {
	return &Emitter{TickHz: tickHz, Speed: 1}
}

// Emit implements tx.Emitter.
func (e *Emitter) Emit(train pulse.Train) {
	d := train.Duration(e.TickHz)
	if e.Speed > 0 {
		d = time.Duration(float64(d) / e.Speed)
	}
	e.lock.Lock()
	e.busy = true
	e.emitted++
	if e.History > 0 {
		e.trains = append(e.trains, train)
		if over := len(e.trains) - e.History; over > 0 {
			e.trains = append(e.trains[:0], e.trains[over:]...)
		}
	}
	e.lock.Unlock()
	if glog.V(2) {
		glog.Infof("sim: emitting %d pairs for %s", len(train), d)
	}
	time.AfterFunc(d, e.done)
}

// OnComplete implements tx.Emitter. fn is called from a timer
// goroutine, never from inside Emit.
func (e *Emitter) OnComplete(fn func()) {
	e.lock.Lock()
	e.complete = fn
	e.lock.Unlock()
}

// Busy implements tx.BusyReporter.
func (e *Emitter) Busy() bool {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.busy
}

// Emitted returns the number of trains emitted.
func (e *Emitter) Emitted() uint64 {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.emitted
}

// Trains returns the recent trains kept according to History.
func (e *Emitter) Trains() []pulse.Train {
	e.lock.Lock()
	defer e.lock.Unlock()
	return append([]pulse.Train(nil), e.trains...)
}

func (e *Emitter) done() {
	e.lock.Lock()
	e.busy = false
	fn := e.complete
	e.lock.Unlock()
	if fn != nil {
		fn()
	}
}
