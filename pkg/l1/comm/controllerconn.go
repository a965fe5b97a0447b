package comm

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/collar.go/pkg/framework"
	"github.com/robotalks/collar.go/pkg/l1"
	"github.com/robotalks/collar.go/pkg/l1/msgs"
)

// ControllerConn implements l1.ControllerConn using Pipe.
type ControllerConn struct {
	Expiration time.Duration

	pipe     Pipe
	seq      uint32
	commands list.List
	seqMap   map[uint32]*commandFuture
	eventCh  chan fx.Message
	cancel   func()
	doneCh   chan struct{}
	lock     sync.Mutex
}

// DefaultCommandExpiration is the default expiration expecting a result.
const DefaultCommandExpiration = 1 * time.Second

// eventBacklog is the number of events buffered for a slow reader.
const eventBacklog = 16

// NewControllerConn creates a ControllerConn.
func NewControllerConn(rw PacketReadWriter) *ControllerConn {
	c := &ControllerConn{}
	c.Init(rw)
	return c
}

// Init initializes ControllerConn with defaults.
func (c *ControllerConn) Init(rw PacketReadWriter) {
	c.Expiration = DefaultCommandExpiration
	c.pipe.ReadWriter = rw
	c.pipe.Handler = msgs.HandleTypedMsgFunc(c.handleTypedMsg)
	c.seqMap = make(map[uint32]*commandFuture)
	c.eventCh = make(chan fx.Message, eventBacklog)
}

// Start runs the connection in background until Close.
func (c *ControllerConn) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.doneCh = make(chan struct{})
	go func() {
		defer close(c.doneCh)
		if err := c.Run(ctx); err != nil && err != context.Canceled {
			glog.Errorf("connection stopped: %v", err)
		}
	}()
}

// Run receives replies and events, and expires pending commands.
func (c *ControllerConn) Run(ctx context.Context) error {
	interval := c.Expiration / 4
	if interval <= 0 {
		interval = DefaultCommandExpiration / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	errCh := make(chan error, 1)
	go func() { errCh <- c.pipe.Run(ctx) }()
	for {
		select {
		case err := <-errCh:
			c.expire(time.Time{}, err)
			return err
		case now := <-ticker.C:
			c.expire(now, context.DeadlineExceeded)
		}
	}
}

// DoCommand implements l1.ControllerConn.
func (c *ControllerConn) DoCommand(msg fx.Message) l1.CommandFuture {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.seq++
	if c.seq == 0 {
		c.seq++
	}
	f := &commandFuture{
		seq:      c.seq,
		expireAt: time.Now().Add(c.Expiration),
		result:   make(chan l1.Result, 1),
	}
	if err := c.pipe.SendCommandMsg(msg, f.seq); err != nil {
		f.result <- l1.Result{Err: err}
		close(f.result)
		return f
	}
	f.elem = c.commands.PushBack(f)
	c.seqMap[f.seq] = f
	return f
}

// Events implements l1.ControllerConn.
func (c *ControllerConn) Events() <-chan fx.Message {
	return c.eventCh
}

// Close implements l1.ControllerConn.
func (c *ControllerConn) Close() error {
	if c.cancel != nil {
		c.cancel()
		<-c.doneCh
		return nil
	}
	return c.pipe.Close()
}

func (c *ControllerConn) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if typed.IsEvent() {
		select {
		case c.eventCh <- msg:
		default:
			glog.Warningf("event %s dropped", msgs.NameOf(msg))
		}
		return nil
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	f := c.seqMap[typed.Sequence]
	if f == nil {
		return nil
	}
	c.commands.Remove(f.elem)
	delete(c.seqMap, typed.Sequence)
	result := l1.Result{Msg: msg}
	if cmdErr, ok := msg.(*msgs.CommandErr); ok {
		result.Err = cmdErr
	}
	f.result <- result
	close(f.result)
	return nil
}

// expire fails commands expiring before now, or all if now is zero.
func (c *ControllerConn) expire(now time.Time, err error) {
	if err == nil {
		err = context.Canceled
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	for c.commands.Len() > 0 {
		elem := c.commands.Front()
		f := elem.Value.(*commandFuture)
		if !now.IsZero() && f.expireAt.After(now) {
			break
		}
		c.commands.Remove(elem)
		delete(c.seqMap, f.seq)
		f.result <- l1.Result{Err: err}
		close(f.result)
	}
}

type commandFuture struct {
	seq      uint32
	expireAt time.Time
	elem     *list.Element
	result   chan l1.Result
}

func (c *commandFuture) ResultChan() <-chan l1.Result {
	return c.result
}

// Do sends a command and waits for the result.
func Do(ctx context.Context, conn l1.ControllerConn, msg fx.Message) (fx.Message, error) {
	select {
	case res := <-conn.DoCommand(msg).ResultChan():
		return res.Msg, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
