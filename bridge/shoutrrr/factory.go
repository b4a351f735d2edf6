package shoutrrr

import (
	"fmt"
	"time"

	"github.com/tphakala/courier"
)

// Factory builds shoutrrr transports from shoutrrr:// DSNs.
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
	serviceURL, err := dsn.RequiredOption("url")
	if err != nil {
		return nil, err
	}

	var timeout time.Duration
	if s := dsn.Option("timeout", ""); s != "" {
		timeout, err = time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout in %s DSN: %w", Scheme, err)
		}
	}
	return New(serviceURL, timeout)
}
