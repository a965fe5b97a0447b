// Package v1 defines the wire messages of the collar remote protocol.
//
// Messages mirror collar.proto and are serialized with github.com/golang/protobuf.
package v1

import "github.com/golang/protobuf/proto"

type Typed struct {
	TypeId   uint32 `protobuf:"varint,1,opt,name=type_id,proto3" json:"type_id,omitempty"`
	Message  []byte `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
	Sequence uint32 `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *Typed) Reset()         { *m = Typed{} }
func (m *Typed) String() string { return proto.CompactTextString(m) }
func (*Typed) ProtoMessage()    {}

func (m *Typed) GetTypeId() uint32 {
	if m != nil {
		return m.TypeId
	}
	return 0
}

func (m *Typed) GetMessage() []byte {
	if m != nil {
		return m.Message
	}
	return nil
}

func (m *Typed) GetSequence() uint32 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

type CommandOK struct {
}

func (m *CommandOK) Reset()         { *m = CommandOK{} }
func (m *CommandOK) String() string { return proto.CompactTextString(m) }
func (*CommandOK) ProtoMessage()    {}

type CommandErr struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *CommandErr) Reset()         { *m = CommandErr{} }
func (m *CommandErr) String() string { return proto.CompactTextString(m) }
func (*CommandErr) ProtoMessage()    {}

func (m *CommandErr) GetMessage() string {
	if m != nil {
		return m.Message
	}
	return ""
}

type SetIDRequest struct {
	Id uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
}

func (m *SetIDRequest) Reset()         { *m = SetIDRequest{} }
func (m *SetIDRequest) String() string { return proto.CompactTextString(m) }
func (*SetIDRequest) ProtoMessage()    {}

func (m *SetIDRequest) GetId() uint32 {
	if m != nil {
		return m.Id
	}
	return 0
}

type SetChannelRequest struct {
	Channel uint32 `protobuf:"varint,1,opt,name=channel,proto3" json:"channel,omitempty"`
}

func (m *SetChannelRequest) Reset()         { *m = SetChannelRequest{} }
func (m *SetChannelRequest) String() string { return proto.CompactTextString(m) }
func (*SetChannelRequest) ProtoMessage()    {}

func (m *SetChannelRequest) GetChannel() uint32 {
	if m != nil {
		return m.Channel
	}
	return 0
}

type SetIntensityRequest struct {
	Intensity uint32 `protobuf:"varint,1,opt,name=intensity,proto3" json:"intensity,omitempty"`
}

func (m *SetIntensityRequest) Reset()         { *m = SetIntensityRequest{} }
func (m *SetIntensityRequest) String() string { return proto.CompactTextString(m) }
func (*SetIntensityRequest) ProtoMessage()    {}

func (m *SetIntensityRequest) GetIntensity() uint32 {
	if m != nil {
		return m.Intensity
	}
	return 0
}

type SetActionRequest struct {
	Action       uint32 `protobuf:"varint,1,opt,name=action,proto3" json:"action,omitempty"`
	HasIntensity bool   `protobuf:"varint,2,opt,name=has_intensity,proto3" json:"has_intensity,omitempty"`
	Intensity    uint32 `protobuf:"varint,3,opt,name=intensity,proto3" json:"intensity,omitempty"`
}

func (m *SetActionRequest) Reset()         { *m = SetActionRequest{} }
func (m *SetActionRequest) String() string { return proto.CompactTextString(m) }
func (*SetActionRequest) ProtoMessage()    {}

func (m *SetActionRequest) GetAction() uint32 {
	if m != nil {
		return m.Action
	}
	return 0
}

func (m *SetActionRequest) GetHasIntensity() bool {
	if m != nil {
		return m.HasIntensity
	}
	return false
}

func (m *SetActionRequest) GetIntensity() uint32 {
	if m != nil {
		return m.Intensity
	}
	return 0
}

type TransmitRequest struct {
	Count int32 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *TransmitRequest) Reset()         { *m = TransmitRequest{} }
func (m *TransmitRequest) String() string { return proto.CompactTextString(m) }
func (*TransmitRequest) ProtoMessage()    {}

func (m *TransmitRequest) GetCount() int32 {
	if m != nil {
		return m.Count
	}
	return 0
}

type SendRequest struct {
	Id        uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Channel   uint32 `protobuf:"varint,2,opt,name=channel,proto3" json:"channel,omitempty"`
	Action    uint32 `protobuf:"varint,3,opt,name=action,proto3" json:"action,omitempty"`
	Intensity uint32 `protobuf:"varint,4,opt,name=intensity,proto3" json:"intensity,omitempty"`
	Count     uint32 `protobuf:"varint,5,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *SendRequest) Reset()         { *m = SendRequest{} }
func (m *SendRequest) String() string { return proto.CompactTextString(m) }
func (*SendRequest) ProtoMessage()    {}

func (m *SendRequest) GetId() uint32 {
	if m != nil {
		return m.Id
	}
	return 0
}

func (m *SendRequest) GetChannel() uint32 {
	if m != nil {
		return m.Channel
	}
	return 0
}

func (m *SendRequest) GetAction() uint32 {
	if m != nil {
		return m.Action
	}
	return 0
}

func (m *SendRequest) GetIntensity() uint32 {
	if m != nil {
		return m.Intensity
	}
	return 0
}

func (m *SendRequest) GetCount() uint32 {
	if m != nil {
		return m.Count
	}
	return 0
}

type LightToggleRequest struct {
}

func (m *LightToggleRequest) Reset()         { *m = LightToggleRequest{} }
func (m *LightToggleRequest) String() string { return proto.CompactTextString(m) }
func (*LightToggleRequest) ProtoMessage()    {}

type TransmitReply struct {
	Id        uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Channel   uint32 `protobuf:"varint,2,opt,name=channel,proto3" json:"channel,omitempty"`
	Action    uint32 `protobuf:"varint,3,opt,name=action,proto3" json:"action,omitempty"`
	Intensity uint32 `protobuf:"varint,4,opt,name=intensity,proto3" json:"intensity,omitempty"`
	Count     uint32 `protobuf:"varint,5,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *TransmitReply) Reset()         { *m = TransmitReply{} }
func (m *TransmitReply) String() string { return proto.CompactTextString(m) }
func (*TransmitReply) ProtoMessage()    {}

func (m *TransmitReply) GetId() uint32 {
	if m != nil {
		return m.Id
	}
	return 0
}

func (m *TransmitReply) GetChannel() uint32 {
	if m != nil {
		return m.Channel
	}
	return 0
}

func (m *TransmitReply) GetAction() uint32 {
	if m != nil {
		return m.Action
	}
	return 0
}

func (m *TransmitReply) GetIntensity() uint32 {
	if m != nil {
		return m.Intensity
	}
	return 0
}

func (m *TransmitReply) GetCount() uint32 {
	if m != nil {
		return m.Count
	}
	return 0
}

type AbortRequest struct {
}

func (m *AbortRequest) Reset()         { *m = AbortRequest{} }
func (m *AbortRequest) String() string { return proto.CompactTextString(m) }
func (*AbortRequest) ProtoMessage()    {}

type AbortReply struct {
	Dropped uint32 `protobuf:"varint,1,opt,name=dropped,proto3" json:"dropped,omitempty"`
}

func (m *AbortReply) Reset()         { *m = AbortReply{} }
func (m *AbortReply) String() string { return proto.CompactTextString(m) }
func (*AbortReply) ProtoMessage()    {}

func (m *AbortReply) GetDropped() uint32 {
	if m != nil {
		return m.Dropped
	}
	return 0
}

type StatusQuery struct {
}

func (m *StatusQuery) Reset()         { *m = StatusQuery{} }
func (m *StatusQuery) String() string { return proto.CompactTextString(m) }
func (*StatusQuery) ProtoMessage()    {}

type QueueStatus struct {
	Id           uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Channel      uint32 `protobuf:"varint,2,opt,name=channel,proto3" json:"channel,omitempty"`
	Action       uint32 `protobuf:"varint,3,opt,name=action,proto3" json:"action,omitempty"`
	Intensity    uint32 `protobuf:"varint,4,opt,name=intensity,proto3" json:"intensity,omitempty"`
	Transmitting bool   `protobuf:"varint,5,opt,name=transmitting,proto3" json:"transmitting,omitempty"`
	Pending      uint32 `protobuf:"varint,6,opt,name=pending,proto3" json:"pending,omitempty"`
	Enqueued     uint64 `protobuf:"varint,7,opt,name=enqueued,proto3" json:"enqueued,omitempty"`
	Started      uint64 `protobuf:"varint,8,opt,name=started,proto3" json:"started,omitempty"`
	Completed    uint64 `protobuf:"varint,9,opt,name=completed,proto3" json:"completed,omitempty"`
	Aborted      uint64 `protobuf:"varint,10,opt,name=aborted,proto3" json:"aborted,omitempty"`
	Spurious     uint64 `protobuf:"varint,11,opt,name=spurious,proto3" json:"spurious,omitempty"`
}

func (m *QueueStatus) Reset()         { *m = QueueStatus{} }
func (m *QueueStatus) String() string { return proto.CompactTextString(m) }
func (*QueueStatus) ProtoMessage()    {}

func (m *QueueStatus) GetId() uint32 {
	if m != nil {
		return m.Id
	}
	return 0
}

func (m *QueueStatus) GetChannel() uint32 {
	if m != nil {
		return m.Channel
	}
	return 0
}

func (m *QueueStatus) GetAction() uint32 {
	if m != nil {
		return m.Action
	}
	return 0
}

func (m *QueueStatus) GetIntensity() uint32 {
	if m != nil {
		return m.Intensity
	}
	return 0
}

func (m *QueueStatus) GetTransmitting() bool {
	if m != nil {
		return m.Transmitting
	}
	return false
}

func (m *QueueStatus) GetPending() uint32 {
	if m != nil {
		return m.Pending
	}
	return 0
}

func (m *QueueStatus) GetEnqueued() uint64 {
	if m != nil {
		return m.Enqueued
	}
	return 0
}

func (m *QueueStatus) GetStarted() uint64 {
	if m != nil {
		return m.Started
	}
	return 0
}

func (m *QueueStatus) GetCompleted() uint64 {
	if m != nil {
		return m.Completed
	}
	return 0
}

func (m *QueueStatus) GetAborted() uint64 {
	if m != nil {
		return m.Aborted
	}
	return 0
}

func (m *QueueStatus) GetSpurious() uint64 {
	if m != nil {
		return m.Spurious
	}
	return 0
}

type QueueIdle struct {
	Completed uint64 `protobuf:"varint,1,opt,name=completed,proto3" json:"completed,omitempty"`
	Aborted   uint64 `protobuf:"varint,2,opt,name=aborted,proto3" json:"aborted,omitempty"`
}

func (m *QueueIdle) Reset()         { *m = QueueIdle{} }
func (m *QueueIdle) String() string { return proto.CompactTextString(m) }
func (*QueueIdle) ProtoMessage()    {}

func (m *QueueIdle) GetCompleted() uint64 {
	if m != nil {
		return m.Completed
	}
	return 0
}

func (m *QueueIdle) GetAborted() uint64 {
	if m != nil {
		return m.Aborted
	}
	return 0
}

func init() {
	proto.RegisterType((*Typed)(nil), "collar.v1.Typed")
	proto.RegisterType((*CommandOK)(nil), "collar.v1.CommandOK")
	proto.RegisterType((*CommandErr)(nil), "collar.v1.CommandErr")
	proto.RegisterType((*SetIDRequest)(nil), "collar.v1.SetIDRequest")
	proto.RegisterType((*SetChannelRequest)(nil), "collar.v1.SetChannelRequest")
	proto.RegisterType((*SetIntensityRequest)(nil), "collar.v1.SetIntensityRequest")
	proto.RegisterType((*SetActionRequest)(nil), "collar.v1.SetActionRequest")
	proto.RegisterType((*TransmitRequest)(nil), "collar.v1.TransmitRequest")
	proto.RegisterType((*SendRequest)(nil), "collar.v1.SendRequest")
	proto.RegisterType((*LightToggleRequest)(nil), "collar.v1.LightToggleRequest")
	proto.RegisterType((*TransmitReply)(nil), "collar.v1.TransmitReply")
	proto.RegisterType((*AbortRequest)(nil), "collar.v1.AbortRequest")
	proto.RegisterType((*AbortReply)(nil), "collar.v1.AbortReply")
	proto.RegisterType((*StatusQuery)(nil), "collar.v1.StatusQuery")
	proto.RegisterType((*QueueStatus)(nil), "collar.v1.QueueStatus")
	proto.RegisterType((*QueueIdle)(nil), "collar.v1.QueueIdle")
}
