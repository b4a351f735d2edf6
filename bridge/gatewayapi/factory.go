package gatewayapi

import (
	"github.com/tphakala/courier"
	"github.com/tphakala/courier/internal/httpclient"
)

// Factory builds GatewayAPI transports from gatewayapi:// DSNs.
type Factory struct {
	client *httpclient.Client
}

// NewFactory creates a factory. The client is shared by every transport the
// factory creates; nil selects a default.
func NewFactory(client *httpclient.Client) *Factory {
	return &Factory{client: client}
}

// Supports implements courier.TransportFactory.
func (f *Factory) Supports(dsn *courier.DSN) bool {
	return dsn.Scheme == Scheme
}

// Create implements courier.TransportFactory.
func (f *Factory) Create(dsn *courier.DSN) (courier.Transport, error) {
	token, err := dsn.RequiredUser("GatewayAPI token")
	if err != nil {
		return nil, err
	}
	from, err := dsn.RequiredOption("from")
	if err != nil {
		return nil, err
	}

	t := New(token, from, f.client)
	t.SetHost(dsn.HostOrDefault(defaultHost))
	return t, nil
}
