package connector

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/robotalks/collar.go/pkg/l1"
	"github.com/robotalks/collar.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/collar.go/pkg/l1/comm/websocket"
)

// Config provides common options to setup Connectors.
type Config struct {
	Ref l1.ControllerRef

	// RegistryURL specifies where controllers are found, e.g.
	// mqtt://host:port/topic-prefix/ or ws://host:port/collar.
	// Empty means no remote controller.
	RegistryURL string
}

var defaultConfig = Config{
	Ref: l1.ControllerRef{Type: l1.ControllerType},
}

func init() {
	if val := os.Getenv("COLLAR_CONTROLLER_ID"); val != "" {
		defaultConfig.Ref.ID = val
	}
	if val := os.Getenv("COLLAR_REGISTRY_URL"); val != "" {
		defaultConfig.RegistryURL = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Ref.ID, "controller-id", defaultConfig.Ref.ID, "Controller ID to connect.")
	flag.StringVar(&defaultConfig.RegistryURL, "registry", defaultConfig.RegistryURL, "Controller registry URL (mqtt:// or ws://).")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// IsRemote indicates a registry is configured.
func (c *Config) IsRemote() bool {
	return c.RegistryURL != ""
}

// NewConnector creates a Connector using current config.
func (c *Config) NewConnector() (l1.Connector, error) {
	parsedURL, err := url.Parse(c.RegistryURL)
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL: %v", err)
	}
	switch parsedURL.Scheme {
	case "mqtt", "mqtts":
		return mqtt.NewConnector(c.RegistryURL)
	case "ws", "wss":
		return &websocket.Connector{URL: c.RegistryURL}, nil
	default:
		return nil, fmt.Errorf("unknown registry URL scheme: %q", parsedURL.Scheme)
	}
}

// MustNewConnector creates a Connector and fails on error.
func (c *Config) MustNewConnector() l1.Connector {
	conn, err := c.NewConnector()
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}

// Connect directly connects to the controller.
func (c *Config) Connect(ctx context.Context) (l1.ControllerConn, error) {
	connector, err := c.NewConnector()
	if err != nil {
		return nil, err
	}
	ref := c.Ref
	if ws, ok := connector.(*websocket.Connector); ok {
		ref = ws.Ref()
	}
	if !ref.IsValid() {
		return nil, fmt.Errorf("controller id must be specified")
	}
	return connector.Connect(ctx, ref)
}
