package daemon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/kardianos/service"

	fx "github.com/robotalks/collar.go/pkg/framework"
)

// StopTimeout bounds how long Stop waits for the daemon to return.
var StopTimeout = 5 * time.Second

// ServiceActions are the accepted arguments of Control.
var ServiceActions = service.ControlAction

// Program adapts a Runnable to the system service manager.
type Program struct {
	Runnable fx.Runnable

	lock   sync.Mutex
	cancel context.CancelFunc
	doneCh chan struct{}
	err    error
}

// Start implements service.Interface. It must not block.
func (p *Program) Start(s service.Service) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.doneCh != nil {
		return errors.New("already started")
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel, p.doneCh = cancel, make(chan struct{})
	go func(doneCh chan struct{}) {
		err := p.Runnable.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			glog.Errorf("daemon stopped: %v", err)
		}
		p.lock.Lock()
		p.err = err
		p.lock.Unlock()
		close(doneCh)
	}(p.doneCh)
	return nil
}

// Stop implements service.Interface.
func (p *Program) Stop(s service.Service) error {
	p.lock.Lock()
	cancel, doneCh := p.cancel, p.doneCh
	p.lock.Unlock()
	if doneCh == nil {
		return nil
	}
	cancel()
	select {
	case <-doneCh:
	case <-time.After(StopTimeout):
		return fmt.Errorf("daemon not stopped in %v", StopTimeout)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.cancel, p.doneCh = nil, nil
	if errors.Is(p.err, context.Canceled) {
		return nil
	}
	return p.err
}

// Done is closed when the Runnable returns. Nil before Start.
func (p *Program) Done() <-chan struct{} {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.doneCh
}

// NewService creates the system service running r.
// args are passed to the installed binary.
func NewService(r fx.Runnable, args []string) (service.Service, *Program, error) {
	prg := &Program{Runnable: r}
	s, err := service.New(prg, &service.Config{
		Name:        "collard",
		DisplayName: "Collar Transmitter",
		Description: "Encodes collar commands and transmits them as pulse trains.",
		Arguments:   args,
	})
	if err != nil {
		return nil, nil, err
	}
	return s, prg, nil
}

// IsServiceAction tells if arg is a service control action.
func IsServiceAction(arg string) bool {
	for _, a := range ServiceActions {
		if a == arg {
			return true
		}
	}
	return false
}
