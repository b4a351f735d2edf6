// Package shoutrrr provides a catch-all chat transport delegating delivery
// to the shoutrrr service router, giving access to every notification
// service shoutrrr supports without a dedicated bridge.
//
// DSN: shoutrrr://default?url=SERVICE_URL (URL-encoded shoutrrr service URL)
package shoutrrr

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	sr "github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/tphakala/courier"
)

// Scheme is the DSN scheme handled by this bridge.
const Scheme = "shoutrrr"

// Transport sends chat messages through a shoutrrr service URL.
type Transport struct {
	serviceURL string
	sender     *router.ServiceRouter
}

// New creates a shoutrrr transport, validating the service URL by building
// the sender eagerly.
func New(serviceURL string, timeout time.Duration) (*Transport, error) {
	sender, err := sr.CreateSender(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("shoutrrr: invalid service URL: %w", err)
	}
	if timeout > 0 {
		sender.Timeout = timeout
	}
	sender.SetLogger(log.New(io.Discard, "", 0))
	return &Transport{serviceURL: serviceURL, sender: sender}, nil
}

// Supports reports whether the transport can deliver the message.
func (t *Transport) Supports(m *courier.Message) bool {
	return m.Kind() == courier.KindChat
}

// Send delivers the message through the shoutrrr router. The router applies
// its own timeout per service.
func (t *Transport) Send(ctx context.Context, m *courier.Message) (*courier.SentMessage, error) {
	if !t.Supports(m) {
		return nil, &courier.UnsupportedKindError{Transport: t.String(), Kind: m.Kind()}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("shoutrrr: %w", err)
	}

	params := stypes.Params{}
	for _, err := range t.sender.Send(m.Body(), &params) {
		if err != nil {
			return nil, fmt.Errorf("shoutrrr: send failed: %w", err)
		}
	}

	// The router exposes no provider message id.
	return &courier.SentMessage{Transport: t.String()}, nil
}

// String returns the canonical transport URI. The wrapped service URL may
// carry credentials, so only its scheme is reported.
func (t *Transport) String() string {
	service := ""
	if u, err := url.Parse(t.serviceURL); err == nil {
		service = u.Scheme
	}
	return courier.CanonicalURI(Scheme, "default", "service", service)
}
