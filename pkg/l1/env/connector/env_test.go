package connector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/collar.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/collar.go/pkg/l1/comm/websocket"
)

func TestNewConnector(t *testing.T) {
	conf := NewConfig()
	require.False(t, conf.IsRemote())

	conf.RegistryURL = "mqtt://localhost:1883/collar/"
	require.True(t, conf.IsRemote())
	conn, err := conf.NewConnector()
	require.NoError(t, err)
	_, ok := conn.(*mqtt.Connector)
	require.True(t, ok)

	conf.RegistryURL = "ws://localhost:8080/collar"
	conn, err = conf.NewConnector()
	require.NoError(t, err)
	require.Equal(t, &websocket.Connector{URL: conf.RegistryURL}, conn)

	conf.RegistryURL = "http://localhost"
	_, err = conf.NewConnector()
	require.Error(t, err)
}
