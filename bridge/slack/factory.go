package slack

import (
	"github.com/tphakala/courier"
	"github.com/tphakala/courier/internal/httpclient"
)

// Factory builds Slack transports from slack:// DSNs.
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
	token, err := dsn.RequiredUser("Slack bot token")
	if err != nil {
		return nil, err
	}

	t := New(token, dsn.Option("channel", ""), f.client)
	t.SetHost(dsn.HostOrDefault(defaultHost))
	return t, nil
}
