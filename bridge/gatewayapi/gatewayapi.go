// Package gatewayapi provides an SMS transport for the GatewayAPI REST API.
//
// DSN: gatewayapi://TOKEN@default?from=SENDER
package gatewayapi

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
const Scheme = "gatewayapi"

const (
	defaultHost = "gatewayapi.com"
	sendPath    = "/rest/mtsms"
)

// Transport sends SMS messages through GatewayAPI. Authentication uses the
// API token as basic auth user with an empty password.
type Transport struct {
	token  string
	from   string
	host   string
	client *httpclient.Client
}

// New creates a GatewayAPI transport. A nil client selects a default shared
// configuration.
func New(token, from string, client *httpclient.Client) *Transport {
	if client == nil {
		client = httpclient.New(nil)
	}
	return &Transport{
		token:  token,
		from:   from,
		host:   defaultHost,
		client: client,
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
	return m.Kind() == courier.KindSMS
}

type payload struct {
	Sender     string      `json:"sender"`
	Recipients []recipient `json:"recipients"`
	Message    string      `json:"message"`
}

type recipient struct {
	MSISDN string `json:"msisdn"`
}

// Send delivers the SMS with a single POST to /rest/mtsms. A response status
// other than 200 fails with *courier.TransportError carrying the status code
// and the "message" field of GatewayAPI's error body when present.
func (t *Transport) Send(ctx context.Context, m *courier.Message) (*courier.SentMessage, error) {
	if !t.Supports(m) {
		return nil, &courier.UnsupportedKindError{Transport: t.String(), Kind: m.Kind()}
	}

	body, err := json.Marshal(payload{
		Sender:     m.StringOption("from", t.from),
		Recipients: []recipient{{MSISDN: m.Recipient()}},
		Message:    m.PlainBody(),
	})
	if err != nil {
		return nil, fmt.Errorf("gatewayapi: failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://"+t.host+sendPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gatewayapi: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(t.token, "")

	resp, err := t.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("gatewayapi: request failed: %w", err)
	}
	defer httpclient.DrainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, &courier.TransportError{
			Transport:  t.String(),
			StatusCode: resp.StatusCode,
			Reason:     rest.ErrorDescription(resp.Body, "message"),
		}
	}

	return &courier.SentMessage{
		Transport:  t.String(),
		ProviderID: extractID(resp.Body),
	}, nil
}

// String returns the canonical transport URI, a pure function of
// configuration.
func (t *Transport) String() string {
	return courier.CanonicalURI(Scheme, t.host, "from", t.from)
}

// extractID pulls the first message id out of GatewayAPI's {"ids": [...]}
// response body.
func extractID(body io.Reader) string {
	obj, err := rest.Object(body)
	if err != nil {
		return ""
	}
	ids, err := obj.GetInt64Array("ids")
	if err != nil || len(ids) == 0 {
		return ""
	}
	return strconv.FormatInt(ids[0], 10)
}
