package mqtt

import (
	"context"
	"encoding/json"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	fx "github.com/robotalks/collar.go/pkg/framework"
	"github.com/robotalks/collar.go/pkg/l1"
	"github.com/robotalks/collar.go/pkg/l1/comm"
)

// Registrar implements l1.Registrar using MQTT.
// The controller meta is published retained on name/meta while
// connected and cleared by the will message.
type Registrar struct {
	PubSub *PubSub
	Info   l1.ControllerInfo

	meta      []byte
	rw        *ReadWriter
	registrar comm.Registrar
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL string, info l1.ControllerInfo, handler l1.CommandHandler) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+info.Ref.Name()+TopicMeta, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("collar:" + info.Ref.Name())
	}
	r := &Registrar{
		PubSub: NewPubSub(opts, topicPrefix),
		Info:   info,
		meta:   meta,
	}
	r.PubSub.QoS = QoSFromURL(brokerURL)
	r.PubSub.OnConnect = func(*PubSub) { r.publishMeta(r.meta) }
	r.rw = NewPacketReadWriter(r.PubSub).ForController(info.Ref)
	r.registrar.Init(r.rw, handler)
	return r, nil
}

// Name implements fx.Named.
func (r *Registrar) Name() string {
	return "mqtt:" + r.Info.Ref.Name()
}

// SendEvent implements l1.Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.registrar.SendEvent(ctx, msg)
}

// Run implements l1.Registrar.
func (r *Registrar) Run(ctx context.Context) error {
	token := r.PubSub.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	glog.Infof("registered %s", r.Info.Ref.Name())
	err := fx.NewRunnerWith(ctx).Go(r.rw, &r.registrar).Wait()
	r.publishMeta(nil).Wait()
	r.PubSub.Close()
	return err
}

func (r *Registrar) publishMeta(meta []byte) paho.Token {
	return r.PubSub.PubWith(r.Info.Ref.Name()+TopicMeta, meta, 1, true)
}
