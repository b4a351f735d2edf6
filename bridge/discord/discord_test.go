package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/courier"
	"github.com/tphakala/courier/internal/httpclient"
)

const webhookURL = "https://discord.com/api/webhooks/4242/tok?wait=true"

func newMockedTransport(t *testing.T) *Transport {
	t.Helper()
	client := httpclient.New(nil)
	httpmock.ActivateNonDefault(client.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return New("4242", "tok", client)
}

func TestTransport_Send_Success(t *testing.T) {
	tr := newMockedTransport(t)

	var gotBody map[string]any
	httpmock.RegisterResponder(http.MethodPost, webhookURL,
		func(req *http.Request) (*http.Response, error) {
			b, _ := io.ReadAll(req.Body)
			require.NoError(t, json.Unmarshal(b, &gotBody))
			return httpmock.NewStringResponse(http.StatusOK,
				`{"id": "1177777777777777777", "content": "build failed"}`), nil
		})

	sent, err := tr.Send(context.Background(), courier.NewChat("", "build failed"))

	require.NoError(t, err)
	assert.Equal(t, "1177777777777777777", sent.ProviderID)
	assert.Equal(t, "build failed", gotBody["content"])
}

func TestTransport_Send_NoContentIsSuccess(t *testing.T) {
	tr := newMockedTransport(t)

	httpmock.RegisterResponder(http.MethodPost, webhookURL,
		httpmock.NewStringResponder(http.StatusNoContent, ""))

	sent, err := tr.Send(context.Background(), courier.NewChat("", "hello"))

	require.NoError(t, err)
	assert.Empty(t, sent.ProviderID)
}

func TestTransport_Send_ErrorStatus(t *testing.T) {
	tr := newMockedTransport(t)

	httpmock.RegisterResponder(http.MethodPost, webhookURL,
		httpmock.NewStringResponder(http.StatusNotFound,
			`{"message": "Unknown Webhook", "code": 10015}`))

	_, err := tr.Send(context.Background(), courier.NewChat("", "hello"))

	var terr *courier.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusNotFound, terr.StatusCode)
	assert.Equal(t, "Unknown Webhook", terr.Reason)
}

func TestTransport_Send_UnsupportedKind(t *testing.T) {
	tr := newMockedTransport(t)

	_, err := tr.Send(context.Background(), courier.NewSMS("+4512345678", "hello"))

	var kerr *courier.UnsupportedKindError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, 0, httpmock.GetTotalCallCount(), "no HTTP call expected")
}

func TestTransport_String(t *testing.T) {
	tr := New("4242", "tok", nil)
	// The token never appears in the canonical string.
	assert.Equal(t, "discord://discord.com?webhook_id=4242", tr.String())
}

func TestFactory(t *testing.T) {
	f := NewFactory(nil)

	t.Run("creates transport from DSN", func(t *testing.T) {
		dsn, err := courier.ParseDSN("discord://tok@default?webhook_id=4242")
		require.NoError(t, err)
		require.True(t, f.Supports(dsn))

		tr, err := f.Create(dsn)
		require.NoError(t, err)
		assert.Equal(t, "discord://discord.com?webhook_id=4242", tr.String())
	})

	t.Run("missing webhook id", func(t *testing.T) {
		dsn, err := courier.ParseDSN("discord://tok@default")
		require.NoError(t, err)

		_, err = f.Create(dsn)
		assert.ErrorContains(t, err, "webhook_id")
	})
}
