package discord

import (
	"github.com/tphakala/courier"
	"github.com/tphakala/courier/internal/httpclient"
)

// Factory builds Discord transports from discord:// DSNs.
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
	token, err := dsn.RequiredUser("Discord webhook token")
	if err != nil {
		return nil, err
	}
	webhookID, err := dsn.RequiredOption("webhook_id")
	if err != nil {
		return nil, err
	}

	t := New(webhookID, token, f.client)
	t.SetHost(dsn.HostOrDefault(defaultHost))
	return t, nil
}
