// Package service serves the remote protocol with a Controller.
package service

import (
	"context"

	"github.com/golang/glog"

	fx "github.com/robotalks/collar.go/pkg/framework"
	"github.com/robotalks/collar.go/pkg/l0/packet"
	"github.com/robotalks/collar.go/pkg/l0/tx"
	"github.com/robotalks/collar.go/pkg/l1"
	"github.com/robotalks/collar.go/pkg/l1/control"
	"github.com/robotalks/collar.go/pkg/l1/msgs"
	pb "github.com/robotalks/collar.go/pkg/proto/collar/v1"
)

// Handler implements l1.CommandHandler.
type Handler struct {
	Controller *control.Controller
}

// New creates a Handler.
func New(c *control.Controller) *Handler {
	return &Handler{Controller: c}
}

// HandleCommand implements l1.CommandHandler.
func (h *Handler) HandleCommand(ctx context.Context, msg fx.Message) (fx.Message, error) {
	c := h.Controller
	glog.V(2).Infof("command %s", msgs.NameOf(msg))
	switch m := msg.(type) {
	case *msgs.SetIDRequest:
		return nil, c.SetID(int(m.Id))
	case *msgs.SetChannelRequest:
		return nil, c.SetChannel(int(m.Channel))
	case *msgs.SetIntensityRequest:
		return nil, c.SetIntensity(int(m.Intensity))
	case *msgs.SetActionRequest:
		var intensity *int
		if m.HasIntensity {
			v := int(m.Intensity)
			intensity = &v
		}
		return nil, c.SetAction(packet.Action(m.Action), intensity)
	case *msgs.TransmitRequest:
		count := int(m.Count)
		cmd, err := c.Transmit(count)
		if err != nil {
			return nil, err
		}
		if count == control.CountDefault {
			count = control.DefaultTransmitCount
		}
		return TransmitReply(cmd, count), nil
	case *msgs.SendRequest:
		if err := checkSendRequest(m); err != nil {
			return nil, err
		}
		cmd := packet.Command{
			ID:        uint16(m.Id),
			Channel:   packet.Channel(m.Channel),
			Action:    packet.Action(m.Action),
			Intensity: uint8(m.Intensity),
		}
		if err := c.Send(cmd, int(m.Count)); err != nil {
			return nil, err
		}
		return TransmitReply(cmd, int(m.Count)), nil
	case *msgs.LightToggleRequest:
		return TransmitReply(c.ToggleLight(), control.LightToggleCount), nil
	case *msgs.AbortRequest:
		return &msgs.AbortReply{AbortReply: pb.AbortReply{Dropped: uint32(c.Abort())}}, nil
	case *msgs.StatusQuery:
		return StatusReply(c.Status()), nil
	}
	return nil, msgs.ErrUnsupportedCommand
}

func checkSendRequest(m *msgs.SendRequest) error {
	fields := []struct {
		name  string
		value uint32
		max   uint32
	}{
		{"id", m.Id, 0xffff},
		{"channel", m.Channel, uint32(packet.ChannelTwo)},
		{"action", m.Action, uint32(packet.ActionLight)},
		{"intensity", m.Intensity, 0xff},
	}
	for _, f := range fields {
		if f.value > f.max {
			return &control.RangeError{Name: f.name, Value: int(f.value), Min: 0, Max: int(f.max)}
		}
	}
	return nil
}

// TransmitReply builds the reply of a queued command.
func TransmitReply(cmd packet.Command, count int) *msgs.TransmitReply {
	return &msgs.TransmitReply{TransmitReply: pb.TransmitReply{
		Id:        uint32(cmd.ID),
		Channel:   uint32(cmd.Channel),
		Action:    uint32(cmd.Action),
		Intensity: uint32(cmd.Intensity),
		Count:     uint32(count),
	}}
}

// StatusReply converts a controller Status.
func StatusReply(s control.Status) *msgs.QueueStatus {
	return &msgs.QueueStatus{QueueStatus: pb.QueueStatus{
		Id:           uint32(s.ID),
		Channel:      uint32(s.Channel),
		Action:       uint32(s.Action),
		Intensity:    uint32(s.Intensity),
		Transmitting: s.State == tx.StateTransmitting,
		Pending:      uint32(s.Pending),
		Enqueued:     s.Stats.Enqueued,
		Started:      s.Stats.Started,
		Completed:    s.Stats.Completed,
		Aborted:      s.Stats.Aborted,
		Spurious:     s.Stats.Spurious,
	}}
}

// IdleNotifier reports the queue draining.
type IdleNotifier interface {
	OnIdle(func(tx.Stats))
}

// NotifyIdle sends a QueueIdle event through reg each time the queue drains.
func NotifyIdle(ctx context.Context, q IdleNotifier, reg l1.Registrar) {
	q.OnIdle(func(stats tx.Stats) {
		event := &msgs.QueueIdle{QueueIdle: pb.QueueIdle{
			Completed: stats.Completed,
			Aborted:   stats.Aborted,
		}}
		go func() {
			if err := reg.SendEvent(ctx, event); err != nil {
				glog.Warningf("send QueueIdle failed: %v", err)
			}
		}()
	})
}
