// Package courier provides notification transport bridges: thin adapters that
// translate a generic message (SMS, chat) into an HTTP request against a
// specific provider's REST API and map the response back into a generic
// success or failure result. Transports are stateless, impose no retry or
// queuing policy of their own, and are safe for concurrent use.
package courier

import (
	"maps"
	"strings"

	"github.com/google/uuid"
	"github.com/k3a/html2text"
)

// Kind categorizes a message by the transport capability needed to deliver it.
type Kind string

const (
	// KindSMS is a text message delivered to a phone number.
	KindSMS Kind = "sms"
	// KindChat is a message delivered to a chat channel or room.
	KindChat Kind = "chat"
)

// Message is an immutable value describing content to send. Construct one
// with NewSMS or NewChat; derive variants with With. A Message is never
// mutated by a Transport.
type Message struct {
	id        string
	kind      Kind
	body      string
	recipient string
	options   map[string]any
}

// NewSMS creates an SMS message for the given phone number.
func NewSMS(recipient, body string) *Message {
	return &Message{
		id:        uuid.New().String(),
		kind:      KindSMS,
		body:      body,
		recipient: recipient,
	}
}

// NewChat creates a chat message. The channel may be empty, in which case the
// transport's default channel is used.
func NewChat(channel, body string) *Message {
	return &Message{
		id:        uuid.New().String(),
		kind:      KindChat,
		body:      body,
		recipient: channel,
	}
}

// With returns a copy of the message with a provider-specific option set.
// The receiver is left untouched.
func (m *Message) With(key string, value any) *Message {
	clone := *m
	clone.options = maps.Clone(m.options)
	if clone.options == nil {
		clone.options = make(map[string]any, 1)
	}
	clone.options[key] = value
	return &clone
}

// ID returns the unique identifier assigned at construction.
func (m *Message) ID() string { return m.id }

// Kind returns the message kind.
func (m *Message) Kind() Kind { return m.kind }

// Body returns the message body as provided.
func (m *Message) Body() string { return m.body }

// PlainBody returns the body with any HTML markup stripped, suitable for
// plain-text providers such as SMS gateways. Bodies without markup are
// returned unchanged.
func (m *Message) PlainBody() string {
	if !strings.ContainsRune(m.body, '<') {
		return m.body
	}
	return strings.TrimSpace(html2text.HTML2Text(m.body))
}

// Recipient returns the phone number (SMS) or channel (chat), possibly empty.
func (m *Message) Recipient() string { return m.recipient }

// Option returns a provider-specific option by key.
func (m *Message) Option(key string) (any, bool) {
	v, ok := m.options[key]
	return v, ok
}

// StringOption returns a provider-specific option as a string, or the given
// default when the option is absent or not a string.
func (m *Message) StringOption(key, def string) string {
	if v, ok := m.options[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Options returns a copy of the provider-specific options.
func (m *Message) Options() map[string]any {
	return maps.Clone(m.options)
}

// SentMessage confirms a successful delivery attempt. It is created exactly
// once per successful Send and carries the provider-assigned identifier when
// the provider returns one.
type SentMessage struct {
	// Transport is the canonical string of the transport that delivered
	// the message.
	Transport string
	// ProviderID is the provider-assigned message identifier, empty when
	// the provider does not return one.
	ProviderID string
}
