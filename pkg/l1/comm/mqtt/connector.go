package mqtt

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/collar.go/pkg/framework"
	"github.com/robotalks/collar.go/pkg/l1"
	"github.com/robotalks/collar.go/pkg/l1/comm"
)

// Connector implements l1.Connector using MQTT.
type Connector struct {
	DiscoverTimeout time.Duration

	brokerURL string
}

// DefaultDiscoverTimeout defines the default timeout value of discovery.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// NewConnector creates a Connector.
func NewConnector(brokerURL string) (*Connector, error) {
	if _, _, err := ClientOptionsFromURL(brokerURL); err != nil {
		return nil, err
	}
	return &Connector{
		DiscoverTimeout: DefaultDiscoverTimeout,
		brokerURL:       brokerURL,
	}, nil
}

// ParseMetaTopic extracts the controller info from a meta topic
// and its retained payload.
func ParseMetaTopic(topic string, payload []byte) (info l1.ControllerInfo, ok bool) {
	items := strings.Split(topic, "/")
	if len(items) != 3 || "/"+items[2] != TopicMeta || len(payload) == 0 {
		return
	}
	info.Ref = l1.ControllerRef{Type: items[0], ID: items[1]}
	if err := json.Unmarshal(payload, &info.Meta); err != nil {
		glog.Warningf("invalid meta of %s: %v", info.Ref.Name(), err)
	}
	return info, true
}

// Discover implements l1.Connector.
func (c *Connector) Discover(ctx context.Context) (res []l1.ControllerInfo, err error) {
	q, err := NewPubSubFromURL(c.brokerURL)
	if err != nil {
		return nil, err
	}
	token := q.Connect()
	token.Wait()
	if err = token.Error(); err != nil {
		return nil, err
	}
	defer q.Close()

	resCh := make(chan l1.ControllerInfo, 16)
	sub := q.Sub("+/+"+TopicMeta, Handler(func(topic string, payload []byte) {
		if info, ok := ParseMetaTopic(topic, payload); ok {
			select {
			case resCh <- info:
			case <-ctx.Done():
			}
		}
	}))
	defer sub.Close()

	dur := c.DiscoverTimeout
	if dur == 0 {
		dur = DefaultDiscoverTimeout
	}
	timeout := time.After(dur)
	for {
		select {
		case info := <-resCh:
			res = append(res, info)
		case <-timeout:
			return
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
	}
}

// Connect implements l1.Connector.
func (c *Connector) Connect(ctx context.Context, ref l1.ControllerRef) (l1.ControllerConn, error) {
	q, err := NewPubSubFromURL(c.brokerURL)
	if err != nil {
		return nil, err
	}
	token := q.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}
	rw := NewPacketReadWriter(q).ForConnector(ref)
	conn := &ControllerConn{PubSub: q}
	conn.Init(rw)
	runCtx, cancel := context.WithCancel(ctx)
	conn.cancel = cancel
	conn.doneCh = make(chan struct{})
	go func() {
		defer close(conn.doneCh)
		fx.NewRunnerWith(runCtx).Go(rw, &conn.ControllerConn).Wait()
	}()
	return conn, nil
}

// ControllerConn implements l1.ControllerConn using MQTT.
type ControllerConn struct {
	comm.ControllerConn
	PubSub *PubSub

	cancel func()
	doneCh chan struct{}
}

// Close implements l1.ControllerConn.
func (c *ControllerConn) Close() error {
	c.cancel()
	<-c.doneCh
	return c.PubSub.Close()
}
