package msgs

import (
	"errors"

	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/collar.go/pkg/framework"
	pb "github.com/robotalks/collar.go/pkg/proto/collar/v1"
)

// NewCommandOK creates a CommandOK.
func NewCommandOK() *CommandOK {
	return &CommandOK{}
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return &CommandErr{CommandErr: pb.CommandErr{Message: err.Error()}}
}

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// CommandOK is the generic reply indicating success for commands.
type CommandOK struct {
	pb.CommandOK
}

// NewMessage implements Message.
func (m *CommandOK) NewMessage() fx.Message { return &CommandOK{} }

// TypeID implements SerializableMessage.
func (m *CommandOK) TypeID() uint32 { return CommandOKTypeID }

// Serializable implements SerializableMessage.
func (m *CommandOK) Serializable() proto.Message { return &m.CommandOK }

// CommandErr is the generic reply representing command error.
type CommandErr struct {
	pb.CommandErr
}

// NewMessage implements Message.
func (m *CommandErr) NewMessage() fx.Message { return &CommandErr{} }

// TypeID implements SerializableMessage.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// Serializable implements SerializableMessage.
func (m *CommandErr) Serializable() proto.Message { return &m.CommandErr }

// SetIDRequest sets the receiver id.
type SetIDRequest struct {
	pb.SetIDRequest
}

// NewMessage implements Message.
func (m *SetIDRequest) NewMessage() fx.Message { return &SetIDRequest{} }

// TypeID implements SerializableMessage.
func (m *SetIDRequest) TypeID() uint32 { return SetIDRequestTypeID }

// Serializable implements SerializableMessage.
func (m *SetIDRequest) Serializable() proto.Message { return &m.SetIDRequest }

// SetChannelRequest sets the channel.
type SetChannelRequest struct {
	pb.SetChannelRequest
}

// NewMessage implements Message.
func (m *SetChannelRequest) NewMessage() fx.Message { return &SetChannelRequest{} }

// TypeID implements SerializableMessage.
func (m *SetChannelRequest) TypeID() uint32 { return SetChannelRequestTypeID }

// Serializable implements SerializableMessage.
func (m *SetChannelRequest) Serializable() proto.Message { return &m.SetChannelRequest }

// SetIntensityRequest sets the intensity.
type SetIntensityRequest struct {
	pb.SetIntensityRequest
}

// NewMessage implements Message.
func (m *SetIntensityRequest) NewMessage() fx.Message { return &SetIntensityRequest{} }

// TypeID implements SerializableMessage.
func (m *SetIntensityRequest) TypeID() uint32 { return SetIntensityRequestTypeID }

// Serializable implements SerializableMessage.
func (m *SetIntensityRequest) Serializable() proto.Message { return &m.SetIntensityRequest }

// SetActionRequest selects the action and optionally the intensity.
type SetActionRequest struct {
	pb.SetActionRequest
}

// NewMessage implements Message.
func (m *SetActionRequest) NewMessage() fx.Message { return &SetActionRequest{} }

// TypeID implements SerializableMessage.
func (m *SetActionRequest) TypeID() uint32 { return SetActionRequestTypeID }

// Serializable implements SerializableMessage.
func (m *SetActionRequest) Serializable() proto.Message { return &m.SetActionRequest }

// TransmitRequest transmits frames built from settings.
type TransmitRequest struct {
	pb.TransmitRequest
}

// NewMessage implements Message.
func (m *TransmitRequest) NewMessage() fx.Message { return &TransmitRequest{} }

// TypeID implements SerializableMessage.
func (m *TransmitRequest) TypeID() uint32 { return TransmitRequestTypeID }

// Serializable implements SerializableMessage.
func (m *TransmitRequest) Serializable() proto.Message { return &m.TransmitRequest }

// SendRequest transmits frames of an explicit command.
type SendRequest struct {
	pb.SendRequest
}

// NewMessage implements Message.
func (m *SendRequest) NewMessage() fx.Message { return &SendRequest{} }

// TypeID implements SerializableMessage.
func (m *SendRequest) TypeID() uint32 { return SendRequestTypeID }

// Serializable implements SerializableMessage.
func (m *SendRequest) Serializable() proto.Message { return &m.SendRequest }

// LightToggleRequest toggles the light.
type LightToggleRequest struct {
	pb.LightToggleRequest
}

// NewMessage implements Message.
func (m *LightToggleRequest) NewMessage() fx.Message { return &LightToggleRequest{} }

// TypeID implements SerializableMessage.
func (m *LightToggleRequest) TypeID() uint32 { return LightToggleRequestTypeID }

// Serializable implements SerializableMessage.
func (m *LightToggleRequest) Serializable() proto.Message { return &m.LightToggleRequest }

// TransmitReply reports the command queued by a transmit request.
type TransmitReply struct {
	pb.TransmitReply
}

// NewMessage implements Message.
func (m *TransmitReply) NewMessage() fx.Message { return &TransmitReply{} }

// TypeID implements SerializableMessage.
func (m *TransmitReply) TypeID() uint32 { return TransmitReplyTypeID }

// Serializable implements SerializableMessage.
func (m *TransmitReply) Serializable() proto.Message { return &m.TransmitReply }

// AbortRequest drops pending frames.
type AbortRequest struct {
	pb.AbortRequest
}

// NewMessage implements Message.
func (m *AbortRequest) NewMessage() fx.Message { return &AbortRequest{} }

// TypeID implements SerializableMessage.
func (m *AbortRequest) TypeID() uint32 { return AbortRequestTypeID }

// Serializable implements SerializableMessage.
func (m *AbortRequest) Serializable() proto.Message { return &m.AbortRequest }

// AbortReply reports the number of frames dropped.
type AbortReply struct {
	pb.AbortReply
}

// NewMessage implements Message.
func (m *AbortReply) NewMessage() fx.Message { return &AbortReply{} }

// TypeID implements SerializableMessage.
func (m *AbortReply) TypeID() uint32 { return AbortReplyTypeID }

// Serializable implements SerializableMessage.
func (m *AbortReply) Serializable() proto.Message { return &m.AbortReply }

// StatusQuery queries settings and queue status.
type StatusQuery struct {
	pb.StatusQuery
}

// NewMessage implements Message.
func (m *StatusQuery) NewMessage() fx.Message { return &StatusQuery{} }

// TypeID implements SerializableMessage.
func (m *StatusQuery) TypeID() uint32 { return StatusQueryTypeID }

// Serializable implements SerializableMessage.
func (m *StatusQuery) Serializable() proto.Message { return &m.StatusQuery }

// QueueStatus is the reply of StatusQuery.
type QueueStatus struct {
	pb.QueueStatus
}

// NewMessage implements Message.
func (m *QueueStatus) NewMessage() fx.Message { return &QueueStatus{} }

// TypeID implements SerializableMessage.
func (m *QueueStatus) TypeID() uint32 { return QueueStatusTypeID }

// Serializable implements SerializableMessage.
func (m *QueueStatus) Serializable() proto.Message { return &m.QueueStatus }

// QueueIdle is emitted when the queue drains.
type QueueIdle struct {
	pb.QueueIdle
}

// NewMessage implements Message.
func (m *QueueIdle) NewMessage() fx.Message { return &QueueIdle{} }

// TypeID implements SerializableMessage.
func (m *QueueIdle) TypeID() uint32 { return QueueIdleTypeID }

// Serializable implements SerializableMessage.
func (m *QueueIdle) Serializable() proto.Message { return &m.QueueIdle }

// TypeID Groups
const (
	GroupCommand  uint32 = 0x00000000
	GroupSettings uint32 = 0x00010000
	GroupTransmit uint32 = 0x00020000
	GroupStatus   uint32 = 0x00030000
)

// TypeIDs
const (
	CommandOKTypeID           uint32 = GroupCommand | TypeIDMaskReply | 0x0000
	CommandErrTypeID          uint32 = GroupCommand | TypeIDMaskReply | 0x0001
	SetIDRequestTypeID        uint32 = GroupSettings | 0x0000
	SetChannelRequestTypeID   uint32 = GroupSettings | 0x0001
	SetIntensityRequestTypeID uint32 = GroupSettings | 0x0002
	SetActionRequestTypeID    uint32 = GroupSettings | 0x0003
	TransmitRequestTypeID     uint32 = GroupTransmit | 0x0000
	SendRequestTypeID         uint32 = GroupTransmit | 0x0001
	LightToggleRequestTypeID  uint32 = GroupTransmit | 0x0002
	TransmitReplyTypeID       uint32 = GroupTransmit | TypeIDMaskReply | 0x0000
	AbortRequestTypeID        uint32 = GroupTransmit | 0x0003
	AbortReplyTypeID          uint32 = AbortRequestTypeID | TypeIDMaskReply
	StatusQueryTypeID         uint32 = GroupStatus | 0x0000
	QueueStatusTypeID         uint32 = StatusQueryTypeID | TypeIDMaskReply
	QueueIdleTypeID           uint32 = TypeIDKindEvent | GroupStatus | 0x0001
)

// MessageTypes are predefined mapping of type ID to messages.
var MessageTypes = map[uint32]SerializableMessage{
	CommandOKTypeID:           (*CommandOK)(nil),
	CommandErrTypeID:          (*CommandErr)(nil),
	SetIDRequestTypeID:        (*SetIDRequest)(nil),
	SetChannelRequestTypeID:   (*SetChannelRequest)(nil),
	SetIntensityRequestTypeID: (*SetIntensityRequest)(nil),
	SetActionRequestTypeID:    (*SetActionRequest)(nil),
	TransmitRequestTypeID:     (*TransmitRequest)(nil),
	SendRequestTypeID:         (*SendRequest)(nil),
	LightToggleRequestTypeID:  (*LightToggleRequest)(nil),
	TransmitReplyTypeID:       (*TransmitReply)(nil),
	AbortRequestTypeID:        (*AbortRequest)(nil),
	AbortReplyTypeID:          (*AbortReply)(nil),
	StatusQueryTypeID:         (*StatusQuery)(nil),
	QueueStatusTypeID:         (*QueueStatus)(nil),
	QueueIdleTypeID:           (*QueueIdle)(nil),
}

var typeNames = map[uint32]string{
	CommandOKTypeID:           "CommandOK",
	CommandErrTypeID:          "CommandErr",
	SetIDRequestTypeID:        "SetIDRequest",
	SetChannelRequestTypeID:   "SetChannelRequest",
	SetIntensityRequestTypeID: "SetIntensityRequest",
	SetActionRequestTypeID:    "SetActionRequest",
	TransmitRequestTypeID:     "TransmitRequest",
	SendRequestTypeID:         "SendRequest",
	LightToggleRequestTypeID:  "LightToggleRequest",
	TransmitReplyTypeID:       "TransmitReply",
	AbortRequestTypeID:        "AbortRequest",
	AbortReplyTypeID:          "AbortReply",
	StatusQueryTypeID:         "StatusQuery",
	QueueStatusTypeID:         "QueueStatus",
	QueueIdleTypeID:           "QueueIdle",
}

// ErrUnsupportedCommand indicates the command is unsupported.
var ErrUnsupportedCommand = errors.New("unsupported command")
