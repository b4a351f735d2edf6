package telegram

import (
	"github.com/tphakala/courier"
	"github.com/tphakala/courier/internal/httpclient"
)

// Factory builds Telegram transports from telegram:// DSNs.
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
	token, err := dsn.RequiredUser("Telegram bot token")
	if err != nil {
		return nil, err
	}
	// The colon inside a bot token splits it into user and password parts.
	if dsn.Password != "" {
		token = token + ":" + dsn.Password
	}

	t := New(token, dsn.Option("channel", ""), f.client)
	t.SetHost(dsn.HostOrDefault(defaultHost))
	return t, nil
}
