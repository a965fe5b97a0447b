package websocket

import (
	"context"
	"net/http"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/collar.go/pkg/l1"
	"github.com/robotalks/collar.go/pkg/l1/comm"
)

// ReadWriter implements PacketReadWriter.
type ReadWriter websocket.Conn

// New wraps websocket.Conn.
func New(conn *websocket.Conn) *ReadWriter {
	return (*ReadWriter)(conn)
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() (pkt []byte, err error) {
	err = websocket.Message.Receive((*websocket.Conn)(p), &pkt)
	return
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	return websocket.Message.Send((*websocket.Conn)(p), pkt)
}

// Close implements io.Closer.
func (p *ReadWriter) Close() error {
	return (*websocket.Conn)(p).Close()
}

// Dial connects to a controller served at url, e.g. ws://host:port/collar.
func Dial(ctx context.Context, url string) (*comm.ControllerConn, error) {
	conn, err := websocket.Dial(url, "", "http://localhost/")
	if err != nil {
		return nil, err
	}
	c := comm.NewControllerConn(New(conn))
	c.Start(ctx)
	return c, nil
}

// Handler serves each websocket client with a Registrar.
// Registrars are added to mux while the client is connected
// so events reach every client.
func Handler(ctx context.Context, handler l1.CommandHandler, mux *comm.RegistrarMux) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		reg := comm.NewRegistrar(New(conn), handler)
		mux.Add(reg)
		defer mux.Remove(reg)
		glog.Infof("websocket client %s connected", conn.Request().RemoteAddr)
		if err := reg.Run(ctx); err != nil && err != context.Canceled {
			glog.Warningf("websocket client %s: %v", conn.Request().RemoteAddr, err)
		}
		glog.Infof("websocket client %s disconnected", conn.Request().RemoteAddr)
	})
}

// Connector implements l1.Connector for a single websocket endpoint.
type Connector struct {
	URL string
}

// Discover implements l1.Connector. The endpoint serves exactly one controller.
func (c *Connector) Discover(ctx context.Context) ([]l1.ControllerInfo, error) {
	return []l1.ControllerInfo{{Ref: c.Ref()}}, nil
}

// Connect implements l1.Connector.
func (c *Connector) Connect(ctx context.Context, ref l1.ControllerRef) (l1.ControllerConn, error) {
	return Dial(ctx, c.URL)
}

// Ref returns the reference of the controller behind the endpoint.
func (c *Connector) Ref() l1.ControllerRef {
	return l1.ControllerRef{Type: l1.ControllerType, ID: c.URL}
}
