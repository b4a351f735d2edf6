package shoutrrr

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/courier"
)

func TestNew_ValidatesServiceURL(t *testing.T) {
	t.Run("valid service URL", func(t *testing.T) {
		tr, err := New("logger://", 0)
		require.NoError(t, err)
		assert.NotNil(t, tr)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := New("nosuchservice://example.com", 0)
		assert.Error(t, err)
	})
}

func TestTransport_Supports(t *testing.T) {
	tr, err := New("logger://", 0)
	require.NoError(t, err)

	assert.True(t, tr.Supports(courier.NewChat("", "hello")))
	assert.False(t, tr.Supports(courier.NewSMS("+4512345678", "hello")))
}

func TestTransport_Send_UnsupportedKind(t *testing.T) {
	tr, err := New("logger://", 0)
	require.NoError(t, err)

	_, err = tr.Send(context.Background(), courier.NewSMS("+4512345678", "hello"))

	var kerr *courier.UnsupportedKindError
	require.ErrorAs(t, err, &kerr)
}

func TestTransport_Send_LoggerService(t *testing.T) {
	tr, err := New("logger://", 0)
	require.NoError(t, err)

	sent, err := tr.Send(context.Background(), courier.NewChat("", "hello"))
	require.NoError(t, err)
	assert.Empty(t, sent.ProviderID)
}

func TestTransport_String_HidesCredentials(t *testing.T) {
	tr, err := New("logger://", 0)
	require.NoError(t, err)

	assert.Equal(t, "shoutrrr://default?service=logger", tr.String())
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	t.Run("creates transport from DSN", func(t *testing.T) {
		dsn, err := courier.ParseDSN("shoutrrr://default?url=" + url.QueryEscape("logger://"))
		require.NoError(t, err)
		require.True(t, f.Supports(dsn))

		tr, err := f.Create(dsn)
		require.NoError(t, err)
		assert.Equal(t, "shoutrrr://default?service=logger", tr.String())
	})

	t.Run("missing url", func(t *testing.T) {
		dsn, err := courier.ParseDSN("shoutrrr://default")
		require.NoError(t, err)

		_, err = f.Create(dsn)
		assert.ErrorContains(t, err, "url")
	})

	t.Run("invalid timeout", func(t *testing.T) {
		dsn, err := courier.ParseDSN("shoutrrr://default?url=logger%3A%2F%2F&timeout=bogus")
		require.NoError(t, err)

		_, err = f.Create(dsn)
		assert.ErrorContains(t, err, "timeout")
	})
}
