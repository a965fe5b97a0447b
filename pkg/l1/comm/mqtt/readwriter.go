package mqtt

import (
	"context"
	"io"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/collar.go/pkg/l1"
)

// Topic suffixes under a controller name.
const (
	TopicCmd  = "/cmd"
	TopicMsg  = "/msg"
	TopicMeta = "/meta"
)

// ReadWriter implements PacketReadWriter over a pair of topics.
type ReadWriter struct {
	PubSub   *PubSub
	SubTopic string
	PubTopic string

	packetCh chan []byte
	doneCh   chan struct{}
	once     sync.Once
}

// packetBacklog is the number of received packets buffered.
const packetBacklog = 8

// NewPacketReadWriter creates the ReadWriter.
func NewPacketReadWriter(q *PubSub) *ReadWriter {
	return &ReadWriter{
		PubSub:   q,
		packetCh: make(chan []byte, packetBacklog),
		doneCh:   make(chan struct{}),
	}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForConnector sets topics using default convention for clients:
// SubTopic = name/msg
// PubTopic = name/cmd
func (p *ReadWriter) ForConnector(ref l1.ControllerRef) *ReadWriter {
	name := ref.Name()
	return p.WithTopics(name+TopicMsg, name+TopicCmd)
}

// ForController sets topics using default convention for controllers:
// SubTopic = name/cmd
// PubTopic = name/msg
func (p *ReadWriter) ForController(ref l1.ControllerRef) *ReadWriter {
	name := ref.Name()
	return p.WithTopics(name+TopicCmd, name+TopicMsg)
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.packetCh:
		return pkt, nil
	case <-p.doneCh:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.PubSub.Pub(p.PubTopic, pkt)
	token.Wait()
	return token.Error()
}

// Close implements io.Closer. ReadPacket returns io.EOF afterwards.
func (p *ReadWriter) Close() error {
	p.once.Do(func() { close(p.doneCh) })
	return nil
}

// Run subscribes SubTopic until ctx is done.
func (p *ReadWriter) Run(ctx context.Context) error {
	sub := p.PubSub.Sub(p.SubTopic, Handler(p.handleMsg))
	defer sub.Close()
	defer p.Close()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.doneCh:
		return nil
	}
}

func (p *ReadWriter) handleMsg(_ string, payload []byte) {
	select {
	case p.packetCh <- payload:
	case <-p.doneCh:
	default:
		glog.Warningf("MQTT %q backlog full, packet dropped", p.SubTopic)
	}
}
