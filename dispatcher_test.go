package courier

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tphakala/courier/internal/logging"
	"github.com/tphakala/courier/internal/observability"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubTransport supports one kind and returns a canned result.
type stubTransport struct {
	name  string
	kind  Kind
	err   error
	calls int
}

func (s *stubTransport) Supports(m *Message) bool { return m.Kind() == s.kind }

func (s *stubTransport) Send(ctx context.Context, m *Message) (*SentMessage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &SentMessage{Transport: s.name, ProviderID: "id-1"}, nil
}

func (s *stubTransport) String() string { return s.name }

func TestDispatcher_Send_RoutesToFirstSupporting(t *testing.T) {
	sms1 := &stubTransport{name: "sms-1", kind: KindSMS}
	sms2 := &stubTransport{name: "sms-2", kind: KindSMS}
	chat := &stubTransport{name: "chat-1", kind: KindChat}

	d := NewDispatcher(chat, sms1, sms2)
	d.SetLogger(logging.Discard())

	sent, err := d.Send(context.Background(), NewSMS("+4512345678", "hello"))

	require.NoError(t, err)
	assert.Equal(t, "sms-1", sent.Transport)
	assert.Equal(t, 1, sms1.calls)
	assert.Equal(t, 0, sms2.calls, "registration order decides, later transports untouched")
	assert.Equal(t, 0, chat.calls)
}

func TestDispatcher_Send_NoSupportingTransport(t *testing.T) {
	d := NewDispatcher(&stubTransport{name: "sms-1", kind: KindSMS})
	d.SetLogger(logging.Discard())

	_, err := d.Send(context.Background(), NewChat("ops", "hello"))

	var nerr *NoTransportError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, KindChat, nerr.Kind)
}

func TestDispatcher_Send_PropagatesTransportError(t *testing.T) {
	want := &TransportError{Transport: "sms-1", StatusCode: 500}
	d := NewDispatcher(&stubTransport{name: "sms-1", kind: KindSMS, err: want})
	d.SetLogger(logging.Discard())

	_, err := d.Send(context.Background(), NewSMS("+4512345678", "hello"))

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 500, terr.StatusCode)
}

func TestDispatcher_Send_RecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics, err := observability.NewTransportMetrics(registry)
	require.NoError(t, err)

	ok := &stubTransport{name: "sms-ok", kind: KindSMS}
	bad := &stubTransport{name: "chat-bad", kind: KindChat, err: errors.New("boom")}

	d := NewDispatcher(ok, bad)
	d.SetLogger(logging.Discard())
	d.SetMetrics(metrics)

	_, err = d.Send(context.Background(), NewSMS("+4512345678", "hello"))
	require.NoError(t, err)
	_, err = d.Send(context.Background(), NewChat("ops", "hello"))
	require.Error(t, err)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.SendTotal.WithLabelValues("sms-ok", "success")), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.SendTotal.WithLabelValues("chat-bad", "error")), 0.001)
}

func TestDispatcher_Add(t *testing.T) {
	d := NewDispatcher()
	d.SetLogger(logging.Discard())
	d.Add(&stubTransport{name: "sms-1", kind: KindSMS})

	require.Len(t, d.Transports(), 1)

	sent, err := d.Send(context.Background(), NewSMS("+4512345678", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "sms-1", sent.Transport)
}
