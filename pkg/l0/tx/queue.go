package tx

import (
	"context"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/collar.go/pkg/l0/packet"
	"github.com/robotalks/collar.go/pkg/l0/pulse"
)

// State is the transmission state of the queue.
type State int

const (
	// StateIdle means nothing is pending and the line is silent.
	StateIdle State = iota
	// StateTransmitting means the front frame is being emitted.
	StateTransmitting
)

func (s State) String() string {
	if s == StateTransmitting {
		return "transmitting"
	}
	return "idle"
}

// Frame is a queued frame with its pulse train.
type Frame struct {
	Seq   uint32
	Bits  packet.Bits
	Train pulse.Train

	next *Frame
}

// Stats counts queue events.
type Stats struct {
	Enqueued  uint64
	Started   uint64
	Completed uint64
	Aborted   uint64
	Spurious  uint64
}

// Queue serializes transmissions on an Emitter.
type Queue struct {
	emitter Emitter
	pulses  *pulse.Map

	head   *Frame
	tail   *Frame
	length int
	active bool
	seq    uint32
	stats  Stats
	idleCh chan struct{}
	onIdle func(Stats)
	lock   sync.Mutex
}

// New creates a Queue which takes over the emitter and registers
// TransmitDone as its completion callback.
func New(emitter Emitter, pulses *pulse.Map) *Queue {
	q := &Queue{emitter: emitter, pulses: pulses}
	emitter.OnComplete(q.TransmitDone)
	return q
}

// Enqueue appends a frame and returns its sequence number.
// It starts the transmission immediately if the queue is idle.
func (q *Queue) Enqueue(bits packet.Bits) uint32 {
	return q.EnqueueN(bits, 1)
}

// EnqueueCommand encodes the command and enqueues n identical frames.
func (q *Queue) EnqueueCommand(cmd packet.Command, n int) uint32 {
	return q.EnqueueN(packet.Encode(cmd), n)
}

// EnqueueN appends n identical frames and returns the sequence number
// of the last one. Nothing is enqueued if n <= 0.
func (q *Queue) EnqueueN(bits packet.Bits, n int) (seq uint32) {
	if n <= 0 {
		return 0
	}
	train := q.pulses.ToSignal(bits)
	frames := make([]Frame, n)
	q.lock.Lock()
	for i := range frames {
		f := &frames[i]
		q.seq++
		f.Seq, f.Bits, f.Train = q.seq, bits, train
		q.push(f)
	}
	seq = q.seq
	q.stats.Enqueued += uint64(n)
	started := !q.active
	if started {
		q.idleCh = make(chan struct{})
		q.start()
	}
	q.check()
	q.lock.Unlock()

	if glog.V(4) {
		glog.Infof("enqueued %d frame(s) up to #%d started=%v: %s", n, seq, started, bits)
	}
	return
}

// TransmitDone notifies the front frame has been emitted.
// It removes the frame and starts the next pending one.
// It never blocks beyond the queue lock.
func (q *Queue) TransmitDone() {
	q.lock.Lock()
	if !q.active {
		q.stats.Spurious++
		q.lock.Unlock()
		glog.Warning("completion notified while idle, ignored")
		return
	}
	if b, ok := q.emitter.(BusyReporter); ok && b.Busy() {
		q.stats.Spurious++
		q.lock.Unlock()
		glog.Warning("completion notified while emitter busy, ignored")
		return
	}
	done := q.pop()
	q.stats.Completed++
	var next *Frame
	var onIdle func(Stats)
	if q.head == nil {
		q.active = false
		close(q.idleCh)
		q.idleCh = nil
		onIdle = q.onIdle
	} else {
		next = q.head
		q.start()
	}
	q.check()
	stats := q.stats
	q.lock.Unlock()

	if onIdle != nil {
		onIdle(stats)
	}

	if glog.V(4) {
		if next != nil {
			glog.Infof("frame #%d done, started #%d", done.Seq, next.Seq)
		} else {
			glog.Infof("frame #%d done, idle", done.Seq)
		}
	}
}

// OnIdle registers fn invoked each time the queue drains.
// fn is invoked outside of the queue lock from the completion path
// and must not block.
func (q *Queue) OnIdle(fn func(Stats)) {
	q.lock.Lock()
	q.onIdle = fn
	q.lock.Unlock()
}

// Abort drops all pending frames except the one in flight.
// It returns the number of frames dropped.
func (q *Queue) Abort() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.head == nil {
		return 0
	}
	dropped := q.length - 1
	for f := q.head.next; f != nil; {
		next := f.next
		f.next = nil
		f = next
	}
	q.head.next, q.tail, q.length = nil, q.head, 1
	q.stats.Aborted += uint64(dropped)
	q.check()
	return dropped
}

// State gets the current state.
func (q *Queue) State() State {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.active {
		return StateTransmitting
	}
	return StateIdle
}

// Len returns the number of frames including the one in flight.
func (q *Queue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.length
}

// Stats returns a snapshot of counters.
func (q *Queue) Stats() Stats {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.stats
}

// Wait blocks until the queue becomes idle or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	q.lock.Lock()
	idleCh := q.idleCh
	q.lock.Unlock()
	if idleCh == nil {
		return nil
	}
	select {
	case <-idleCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) push(f *Frame) {
	if q.head == nil {
		q.head = f
	} else {
		q.tail.next = f
	}
	q.tail = f
	q.length++
}

func (q *Queue) pop() *Frame {
	f := q.head
	if q.head = f.next; q.head == nil {
		q.tail = nil
	}
	f.next = nil
	q.length--
	return f
}

// start must be called with lock held and a non-empty list.
// The emitter must not complete synchronously inside Emit.
func (q *Queue) start() {
	q.active = true
	q.stats.Started++
	q.emitter.Emit(q.head.Train)
}

func (q *Queue) check() {
	if q.active != (q.head != nil) || (q.length == 0) != (q.head == nil) {
		panic(&InvariantError{Active: q.active, Len: q.length, Head: q.head != nil})
	}
}
