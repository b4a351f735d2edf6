// Package telegram provides a chat transport for the Telegram Bot API.
//
// DSN: telegram://BOT_TOKEN@default?channel=CHAT_ID
//
// Bot tokens contain a colon, so the DSN parser splits them into user and
// password components; the factory joins the two back together.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/tphakala/courier"
	"github.com/tphakala/courier/internal/httpclient"
	"github.com/tphakala/courier/internal/rest"
)

// Scheme is the DSN scheme handled by this bridge.
const Scheme = "telegram"

const defaultHost = "api.telegram.org"

// Option keys recognized in message options.
const (
	// OptionChannel overrides the transport's default chat.
	OptionChannel = "channel"
	// OptionParseMode selects Telegram text formatting ("MarkdownV2", "HTML").
	OptionParseMode = "parse_mode"
)

// Transport sends chat messages through a Telegram bot.
type Transport struct {
	token   string
	channel string
	host    string
	client  *httpclient.Client
}

// New creates a Telegram transport for the given bot token and default chat.
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
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// Send delivers the message with a single POST to the bot's sendMessage
// method. The chat is resolved from the channel option, then the message
// recipient, then the transport default.
func (t *Transport) Send(ctx context.Context, m *courier.Message) (*courier.SentMessage, error) {
	if !t.Supports(m) {
		return nil, &courier.UnsupportedKindError{Transport: t.String(), Kind: m.Kind()}
	}

	chat := m.StringOption(OptionChannel, "")
	if chat == "" {
		chat = m.Recipient()
	}
	if chat == "" {
		chat = t.channel
	}

	body, err := json.Marshal(payload{
		ChatID:    chat,
		Text:      m.Body(),
		ParseMode: m.StringOption(OptionParseMode, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("https://%s/bot%s/sendMessage", t.host, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("telegram: request failed: %w", err)
	}
	defer httpclient.DrainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, &courier.TransportError{
			Transport:  t.String(),
			StatusCode: resp.StatusCode,
			Reason:     rest.ErrorDescription(resp.Body, "description"),
		}
	}

	return &courier.SentMessage{
		Transport:  t.String(),
		ProviderID: extractMessageID(resp.Body),
	}, nil
}

// String returns the canonical transport URI. It reports the default channel
// regardless of any per-message override.
func (t *Transport) String() string {
	return courier.CanonicalURI(Scheme, t.host, "channel", t.channel)
}

// extractMessageID pulls result.message_id out of a sendMessage response.
func extractMessageID(body io.Reader) string {
	obj, err := rest.Object(body)
	if err != nil {
		return ""
	}
	id, err := obj.GetInt64("result", "message_id")
	if err != nil {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
