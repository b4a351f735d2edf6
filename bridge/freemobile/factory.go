package freemobile

import (
	"github.com/tphakala/courier"
	"github.com/tphakala/courier/internal/httpclient"
)

// Factory builds Free Mobile transports from freemobile:// DSNs.
type Factory struct {
	client *httpclient.Client
}

// NewFactory creates a factory sharing the given client; nil selects a
// default.
func NewFactory(client *httpclient.Client) *Factory {
	return &Factory{client: client}
}

// Supports implements courier.TransportFactory.
func (f *Factory) Supports(dsn *courier.DSN) bool {
	return dsn.Scheme == Scheme
}

// Create implements courier.TransportFactory.
func (f *Factory) Create(dsn *courier.DSN) (courier.Transport, error) {
	login, err := dsn.RequiredUser("Free Mobile login")
	if err != nil {
		return nil, err
	}
	apiKey, err := dsn.RequiredPassword("Free Mobile API key")
	if err != nil {
		return nil, err
	}
	phone, err := dsn.RequiredOption("phone")
	if err != nil {
		return nil, err
	}

	t := New(login, apiKey, phone, f.client)
	t.SetHost(dsn.HostOrDefault(defaultHost))
	return t, nil
}
