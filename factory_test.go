package courier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/courier/internal/logging"
)

// stubFactory handles one scheme and returns a fixed transport.
type stubFactory struct {
	scheme    string
	transport Transport
	createErr error
}

func (f *stubFactory) Supports(dsn *DSN) bool { return dsn.Scheme == f.scheme }

func (f *stubFactory) Create(dsn *DSN) (Transport, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.transport, nil
}

func TestRegistry_FromDSN(t *testing.T) {
	sms := &stubTransport{name: "sms", kind: KindSMS}
	r := NewRegistry(&stubFactory{scheme: "fake", transport: sms})

	t.Run("matching scheme", func(t *testing.T) {
		tr, err := r.FromDSN("fake://tok@default")
		require.NoError(t, err)
		assert.Same(t, Transport(sms), tr)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := r.FromDSN("nope://tok@default")

		var serr *UnsupportedSchemeError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "nope", serr.Scheme)
	})

	t.Run("invalid DSN", func(t *testing.T) {
		_, err := r.FromDSN("not a dsn")
		assert.Error(t, err)
	})
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	_, err := r.FromDSN("fake://x@default")
	require.Error(t, err)

	r.Register(&stubFactory{scheme: "fake", transport: &stubTransport{name: "x", kind: KindSMS}})
	_, err = r.FromDSN("fake://x@default")
	assert.NoError(t, err)
}

func TestRegistry_DispatcherFromDSNs(t *testing.T) {
	sms := &stubTransport{name: "sms", kind: KindSMS}
	chat := &stubTransport{name: "chat", kind: KindChat}
	r := NewRegistry(
		&stubFactory{scheme: "fakesms", transport: sms},
		&stubFactory{scheme: "fakechat", transport: chat},
	)

	t.Run("preserves order", func(t *testing.T) {
		d, err := r.DispatcherFromDSNs([]string{"fakechat://default", "fakesms://default"})
		require.NoError(t, err)
		d.SetLogger(logging.Discard())

		transports := d.Transports()
		require.Len(t, transports, 2)
		assert.Equal(t, "chat", transports[0].String())
		assert.Equal(t, "sms", transports[1].String())

		sent, err := d.Send(context.Background(), NewSMS("+45", "hello"))
		require.NoError(t, err)
		assert.Equal(t, "sms", sent.Transport)
	})

	t.Run("fails on first bad DSN", func(t *testing.T) {
		_, err := r.DispatcherFromDSNs([]string{"fakesms://default", "unknown://default"})

		var serr *UnsupportedSchemeError
		assert.ErrorAs(t, err, &serr)
	})
}
