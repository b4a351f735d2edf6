package mqttbridge

import (
	"fmt"

	"github.com/tphakala/courier"
)

// Factory builds MQTT transports from mqtt:// DSNs.
type Factory struct{}

// NewFactory creates a factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Supports implements courier.TransportFactory.
func (f *Factory) Supports(dsn *courier.DSN) bool {
	return dsn.Scheme == Scheme
}

// Create implements courier.TransportFactory.
func (f *Factory) Create(dsn *courier.DSN) (courier.Transport, error) {
	if dsn.Host == "" || dsn.Host == "default" {
		return nil, fmt.Errorf("missing broker host in %s DSN", Scheme)
	}
	return New(
		dsn.Host,
		dsn.Option("topic", defaultTopic),
		dsn.Option("client_id", defaultClientID),
		dsn.User,
		dsn.Password,
	), nil
}
