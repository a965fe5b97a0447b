// Package stream emits pulse trains as encoded items on a byte stream,
// e.g. a serial link to a microcontroller driving the output pin.
package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/collar.go/pkg/l0/pulse"
)

// Wire format of one train, all little-endian:
//
//	[count:16] then count items of [level:1|ticks:15]
//
// count is the number of items (two per pair). An item has the same
// layout as a half word of the output peripheral memory.

// ErrBusy indicates Emit is called before the previous train completes.
var ErrBusy = errors.New("emitter busy")

const levelBit = 1 << 15

// Emitter writes trains to a Writer. Run must be running to deliver them.
type Emitter struct {
	// TickHz is the tick rate of the trains, used to hold the
	// completion until the train would have been emitted.
	TickHz uint32
	// Hold disables waiting for the train duration when false.
	Hold bool

	w        io.Writer
	trainCh  chan pulse.Train
	lock     sync.Mutex
	busy     bool
	complete func()
	err      error
}

// New creates an Emitter.
func New(w io.Writer, tickHz uint32) *Emitter {
	return &Emitter{
		TickHz:  tickHz,
		Hold:    true,
		w:       w,
		trainCh: make(chan pulse.Train, 1),
	}
}

// Encode encodes a train in wire format.
func Encode(train pulse.Train) ([]byte, error) {
	items := len(train) * 2
	if items > 0xffff {
		return nil, fmt.Errorf("train too long: %d pairs", len(train))
	}
	buf := make([]byte, 2+items*2)
	binary.LittleEndian.PutUint16(buf, uint16(items))
	off := 2
	for _, pair := range train {
		for _, p := range pair {
			if p.Ticks > pulse.MaxTicks {
				return nil, pulse.ErrTicksOutOfRange
			}
			v := p.Ticks
			if p.Level == pulse.High {
				v |= levelBit
			}
			binary.LittleEndian.PutUint16(buf[off:], v)
			off += 2
		}
	}
	return buf, nil
}

// Decode decodes a train in wire format from r.
func Decode(r io.Reader) (pulse.Train, error) {
	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if count%2 != 0 {
		return nil, fmt.Errorf("odd item count %d", count)
	}
	items := make([]uint16, count)
	if err := binary.Read(r, binary.LittleEndian, items); err != nil {
		return nil, err
	}
	train := make(pulse.Train, count/2)
	for i, v := range items {
		train[i/2][i%2] = pulse.Pulse{Level: pulse.Level(v&levelBit != 0), Ticks: v &^ levelBit}
	}
	return train, nil
}

// Emit implements tx.Emitter.
func (e *Emitter) Emit(train pulse.Train) {
	e.lock.Lock()
	if e.busy {
		e.lock.Unlock()
		glog.Errorf("stream: %v, train dropped", ErrBusy)
		return
	}
	e.busy = true
	e.lock.Unlock()
	e.trainCh <- train
}

// OnComplete implements tx.Emitter. fn is called from the Run
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

// Err returns the last write error.
func (e *Emitter) Err() error {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.err
}

// Run implements framework.Runnable.
func (e *Emitter) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case train := <-e.trainCh:
			start := time.Now()
			err := e.write(train)
			if err != nil {
				glog.Errorf("stream: write error: %v", err)
			} else if e.Hold {
				wait := train.Duration(e.TickHz) - time.Since(start)
				if wait > 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(wait):
					}
				}
			}
			e.lock.Lock()
			e.busy, e.err = false, err
			fn := e.complete
			e.lock.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

func (e *Emitter) write(train pulse.Train) error {
	buf, err := Encode(train)
	if err != nil {
		return err
	}
	_, err = e.w.Write(buf)
	return err
}
