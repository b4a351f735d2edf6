package twilio

import (
	"github.com/tphakala/courier"
	"github.com/tphakala/courier/internal/httpclient"
)

// Factory builds Twilio transports from twilio:// DSNs.
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
	sid, err := dsn.RequiredUser("Twilio account SID")
	if err != nil {
		return nil, err
	}
	token, err := dsn.RequiredPassword("Twilio auth token")
	if err != nil {
		return nil, err
	}
	from, err := dsn.RequiredOption("from")
	if err != nil {
		return nil, err
	}

	t := New(sid, token, from, f.client)
	t.SetHost(dsn.HostOrDefault(defaultHost))
	return t, nil
}
