package l1

import (
	"context"

	fx "github.com/robotalks/collar.go/pkg/framework"
)

// ControllerType is the type of every transmitter controller.
const ControllerType = "collar"

// CommandHandler processes a received command and returns the reply.
type CommandHandler interface {
	HandleCommand(context.Context, fx.Message) (fx.Message, error)
}

// HandleCommandFunc is the func form of CommandHandler.
type HandleCommandFunc func(context.Context, fx.Message) (fx.Message, error)

// HandleCommand implements CommandHandler.
func (f HandleCommandFunc) HandleCommand(ctx context.Context, msg fx.Message) (fx.Message, error) {
	return f(ctx, msg)
}

// Registrar publishes a controller to remote clients.
type Registrar interface {
	fx.Runnable
	// SendEvent sends an event to clients.
	SendEvent(context.Context, fx.Message) error
}

// ControllerRef is a reference to a controller.
type ControllerRef struct {
	// Type is controller type.
	Type string
	// ID is unique ID of the device.
	ID string
}

// Name retrieves the name from ref.
func (r ControllerRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates ControllerRef is valid.
func (r ControllerRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// ControllerMeta provides metadata for a controller.
type ControllerMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// ControllerInfo provides information of a controller.
type ControllerInfo struct {
	Ref  ControllerRef
	Meta ControllerMeta
}

// Connector is used by clients to connect to a controller.
type Connector interface {
	// Discover enumerates registered controllers.
	Discover(context.Context) ([]ControllerInfo, error)
	// Connect connects to the specified controller.
	Connect(context.Context, ControllerRef) (ControllerConn, error)
}

// ControllerConn is the connection to a controller.
type ControllerConn interface {
	// DoCommand executes a command.
	DoCommand(fx.Message) CommandFuture
	// Events receives events sent by the controller.
	Events() <-chan fx.Message
	// Close disconnects.
	Close() error
}

// Result represents result of a command.
type Result struct {
	Msg fx.Message
	Err error
}

// CommandFuture is the future of sent command.
type CommandFuture interface {
	ResultChan() <-chan Result
}
