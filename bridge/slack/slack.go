// Package slack provides a chat transport for the Slack Web API.
//
// DSN: slack://BOT_TOKEN@default?channel=CHANNEL
//
// Slack answers HTTP 200 even for most application errors and signals
// failure through the "ok" field of the response body, so the success check
// inspects both the status code and the body.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tphakala/courier"
	"github.com/tphakala/courier/internal/httpclient"
	"github.com/tphakala/courier/internal/rest"
)

// Scheme is the DSN scheme handled by this bridge.
const Scheme = "slack"

const defaultHost = "slack.com"

// OptionChannel overrides the transport's default channel.
const OptionChannel = "channel"

// Transport posts chat messages through chat.postMessage with bearer token
// authentication.
type Transport struct {
	token   string
	channel string
	host    string
	client  *httpclient.Client
}

// New creates a Slack transport for the given bot token and default channel.
func New(token, channel string, client *httpclient.Client) *Transport {
	if client == nil {
		client = httpclient.New(nil)
	}
	return &Transport{
		token:   token,
		channel: channel,
		host:    defaultHost,
		client:  client,
	}
}

// SetHost overrides the provider host, for testing against mock endpoints.
func (t *Transport) SetHost(host string) {
	if host != "" {
		t.host = host
	}
}

// Supports reports whether the transport can deliver the message.
func (t *Transport) Supports(m *courier.Message) bool {
	return m.Kind() == courier.KindChat
}

type payload struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// Send delivers the message with a single POST to chat.postMessage. A
// non-200 status, or a 200 whose body carries ok=false, fails with
// *courier.TransportError; in the latter case the error token from Slack's
// "error" field becomes the reason.
func (t *Transport) Send(ctx context.Context, m *courier.Message) (*courier.SentMessage, error) {
	if !t.Supports(m) {
		return nil, &courier.UnsupportedKindError{Transport: t.String(), Kind: m.Kind()}
	}

	channel := m.StringOption(OptionChannel, "")
	if channel == "" {
		channel = m.Recipient()
	}
	if channel == "" {
		channel = t.channel
	}

	body, err := json.Marshal(payload{Channel: channel, Text: m.Body()})
	if err != nil {
		return nil, fmt.Errorf("slack: failed to marshal request body: %w", err)
	}

	url := "https://" + t.host + "/api/chat.postMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("slack: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+t.token)

	resp, err := t.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("slack: request failed: %w", err)
	}
	defer httpclient.DrainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, &courier.TransportError{
			Transport:  t.String(),
			StatusCode: resp.StatusCode,
			Reason:     rest.ErrorDescription(resp.Body, "error"),
		}
	}

	obj, err := rest.Object(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("slack: failed to parse response body: %w", err)
	}
	if ok, err := obj.GetBoolean("ok"); err != nil || !ok {
		reason, _ := obj.GetString("error")
		return nil, &courier.TransportError{
			Transport:  t.String(),
			StatusCode: resp.StatusCode,
			Reason:     reason,
		}
	}

	ts, _ := obj.GetString("ts")
	return &courier.SentMessage{Transport: t.String(), ProviderID: ts}, nil
}

// String returns the canonical transport URI. It reports the default channel
// regardless of any per-message override.
func (t *Transport) String() string {
	return courier.CanonicalURI(Scheme, t.host, "channel", t.channel)
}
