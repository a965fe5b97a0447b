package comm

import (
	"context"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/collar.go/pkg/framework"
	"github.com/robotalks/collar.go/pkg/l1"
	"github.com/robotalks/collar.go/pkg/l1/msgs"
)

// Registrar serves commands received from a Pipe and sends events.
type Registrar struct {
	pipe    Pipe
	handler l1.CommandHandler
}

// NewRegistrar creates a Registrar.
func NewRegistrar(rw PacketReadWriter, handler l1.CommandHandler) *Registrar {
	r := &Registrar{}
	r.Init(rw, handler)
	return r
}

// Init initializes the Registrar.
func (r *Registrar) Init(rw PacketReadWriter, handler l1.CommandHandler) {
	r.handler = handler
	r.pipe.ReadWriter = rw
	r.pipe.Handler = msgs.HandleTypedMsgFunc(r.handleTypedMsg)
}

// SendEvent implements l1.Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.pipe.SendEventMsg(msg)
}

// Run implements l1.Registrar.
func (r *Registrar) Run(ctx context.Context) error {
	return r.pipe.Run(ctx)
}

func (r *Registrar) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if !typed.IsCommand() || typed.IsReply() {
		glog.V(2).Infof("ignore %s", msgs.NameOf(msg))
		return nil
	}
	reply, err := r.handler.HandleCommand(ctx, msg)
	if err != nil {
		reply = msgs.NewCommandErr(err)
	} else if reply == nil {
		reply = msgs.NewCommandOK()
	}
	return r.pipe.SendCommandMsg(reply, typed.Sequence)
}

// RegistrarMux sends events to multiple Registrars.
type RegistrarMux struct {
	registrars []l1.Registrar
	lock       sync.RWMutex
}

// Add adds more registrars.
func (r *RegistrarMux) Add(regs ...l1.Registrar) {
	r.lock.Lock()
	r.registrars = append(r.registrars, regs...)
	r.lock.Unlock()
}

// Remove removes a registrar.
func (r *RegistrarMux) Remove(reg l1.Registrar) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for i, item := range r.registrars {
		if item == reg {
			r.registrars = append(r.registrars[:i], r.registrars[i+1:]...)
			return
		}
	}
}

// Len returns the number of registrars.
func (r *RegistrarMux) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.registrars)
}

// SendEvent implements l1.Registrar.
func (r *RegistrarMux) SendEvent(ctx context.Context, msg fx.Message) error {
	r.lock.RLock()
	regs := append([]l1.Registrar(nil), r.registrars...)
	r.lock.RUnlock()
	var errs fx.AggregatedError
	for _, reg := range regs {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// Run implements l1.Registrar by running all registrars added so far.
func (r *RegistrarMux) Run(ctx context.Context) error {
	r.lock.RLock()
	runner := fx.NewRunnerWith(ctx)
	for _, reg := range r.registrars {
		runner.Go(reg)
	}
	r.lock.RUnlock()
	return runner.Wait()
}
