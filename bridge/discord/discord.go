// Package discord provides a chat transport for Discord webhooks.
//
// DSN: discord://WEBHOOK_TOKEN@default?webhook_id=ID
package discord

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
const Scheme = "discord"

const defaultHost = "discord.com"

// Transport posts chat messages to a Discord webhook. The request carries
// wait=true so Discord returns the created message and its id.
type Transport struct {
	webhookID string
	token     string
	host      string
	client    *httpclient.Client
}

// New creates a Discord transport for the given webhook id and token.
func New(webhookID, token string, client *httpclient.Client) *Transport {
	if client == nil {
		client = httpclient.New(nil)
	}
	return &Transport{
		webhookID: webhookID,
		token:     token,
		host:      defaultHost,
		client:    client,
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
	Content string `json:"content"`
}

// Send delivers the message with a single POST to the webhook. Discord
// answers 200 with the created message when wait=true; 204 is also accepted
// as success for symmetry with the no-wait variant.
func (t *Transport) Send(ctx context.Context, m *courier.Message) (*courier.SentMessage, error) {
	if !t.Supports(m) {
		return nil, &courier.UnsupportedKindError{Transport: t.String(), Kind: m.Kind()}
	}

	body, err := json.Marshal(payload{Content: m.Body()})
	if err != nil {
		return nil, fmt.Errorf("discord: failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("https://%s/api/webhooks/%s/%s?wait=true", t.host, t.webhookID, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("discord: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("discord: request failed: %w", err)
	}
	defer httpclient.DrainAndClose(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return nil, &courier.TransportError{
			Transport:  t.String(),
			StatusCode: resp.StatusCode,
			Reason:     rest.ErrorDescription(resp.Body, "message"),
		}
	}

	id := ""
	if resp.StatusCode == http.StatusOK {
		if obj, err := rest.Object(resp.Body); err == nil {
			id, _ = obj.GetString("id")
		}
	}
	return &courier.SentMessage{Transport: t.String(), ProviderID: id}, nil
}

// String returns the canonical transport URI.
func (t *Transport) String() string {
	return courier.CanonicalURI(Scheme, t.host, "webhook_id", t.webhookID)
}
