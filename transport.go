package courier

import (
	"context"
	"fmt"
)

// Transport delivers one kind of message to one external provider.
// Implementations must be safe for concurrent use.
type Transport interface {
	// Supports reports whether the transport can deliver the message.
	// It is a pure predicate on the message kind with no side effects.
	Supports(m *Message) bool

	// Send delivers the message with exactly one provider call. It fails
	// with *UnsupportedKindError, without contacting the provider, when
	// Supports would return false, and with *TransportError when the
	// provider answers outside its success set. On success it returns a
	// SentMessage carrying the provider-assigned identifier when present.
	Send(ctx context.Context, m *Message) (*SentMessage, error)

	// String returns the canonical scheme://host?param=value form of the
	// transport's configuration. It is a pure function of configuration,
	// independent of any message content.
	fmt.Stringer
}
