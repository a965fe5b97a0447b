package msgs

import (
	"testing"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/collar.go/pkg/framework"
	pb "github.com/robotalks/collar.go/pkg/proto/collar/v1"
)

func TestTypedEncodeDecode(t *testing.T) {
	testCases := []struct {
		msg     fx.Message
		command bool
		reply   bool
	}{
		{&TransmitRequest{TransmitRequest: pb.TransmitRequest{Count: -1}}, true, false},
		{&SetActionRequest{SetActionRequest: pb.SetActionRequest{Action: 2, HasIntensity: true, Intensity: 50}}, true, false},
		{&SendRequest{SendRequest: pb.SendRequest{Id: 0x2cbe, Channel: 1, Action: 3, Count: 4}}, true, false},
		{&QueueStatus{QueueStatus: pb.QueueStatus{Id: 7, Transmitting: true, Pending: 3, Enqueued: 10}}, true, true},
		{NewCommandErr(ErrUnsupportedCommand), true, true},
		{&QueueIdle{QueueIdle: pb.QueueIdle{Completed: 4}}, false, false},
	}
	for _, tc := range testCases {
		t.Run(NameOf(tc.msg), func(t *testing.T) {
			typed, err := TypedFrom(tc.msg)
			require.NoError(t, err)
			typed.Sequence = 12
			require.Equal(t, tc.command, typed.IsCommand())
			require.Equal(t, !tc.command, typed.IsEvent())
			require.Equal(t, tc.reply, typed.IsReply())

			data, err := typed.Encode()
			require.NoError(t, err)
			decoded, err := DecodeTyped(data)
			require.NoError(t, err)
			require.Equal(t, uint32(12), decoded.Sequence)
			msg, err := decoded.Decode()
			require.NoError(t, err)
			require.Equal(t, tc.msg, msg)
		})
	}
}

func TestTypedErrors(t *testing.T) {
	_, err := TypedFrom(&struct{ fx.Message }{})
	require.Equal(t, ErrNotSerializable, err)

	typed := &Typed{Typed: pb.Typed{TypeId: 0x7fff}}
	_, err = typed.Decode()
	require.Equal(t, &ErrUnknownType{TypeID: 0x7fff}, err)
	require.Equal(t, "unknown type: 7fff", err.Error())
}

func TestTypeIDsUnique(t *testing.T) {
	for id, msg := range MessageTypes {
		require.Equal(t, id, msg.TypeID())
		require.Contains(t, typeNames, id)
	}
	require.Len(t, typeNames, len(MessageTypes))
}
