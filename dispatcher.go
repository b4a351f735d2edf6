package courier

import (
	"context"
	"log/slog"
	"time"

	"github.com/tphakala/courier/internal/observability"
)

// Dispatcher routes an outgoing message to the first transport, in
// registration order, whose Supports returns true. It holds no state across
// sends and is safe for concurrent use once configured.
type Dispatcher struct {
	transports []Transport
	log        *slog.Logger
	metrics    *observability.TransportMetrics
}

// NewDispatcher creates a dispatcher over the given transports. Registration
// order determines routing priority.
func NewDispatcher(transports ...Transport) *Dispatcher {
	return &Dispatcher{
		transports: transports,
		log:        slog.Default(),
	}
}

// Add appends a transport. Not safe to call concurrently with Send.
func (d *Dispatcher) Add(t Transport) {
	d.transports = append(d.transports, t)
}

// SetLogger replaces the logger used for send outcomes.
func (d *Dispatcher) SetLogger(l *slog.Logger) {
	if l != nil {
		d.log = l
	}
}

// SetMetrics enables Prometheus metrics for send outcomes.
func (d *Dispatcher) SetMetrics(m *observability.TransportMetrics) {
	d.metrics = m
}

// Transports returns the configured transports in registration order.
func (d *Dispatcher) Transports() []Transport {
	out := make([]Transport, len(d.transports))
	copy(out, d.transports)
	return out
}

// Send routes the message to the first supporting transport and delegates to
// its Send. It fails with *NoTransportError when no transport matches.
func (d *Dispatcher) Send(ctx context.Context, m *Message) (*SentMessage, error) {
	for _, t := range d.transports {
		if !t.Supports(m) {
			continue
		}

		start := time.Now()
		sent, err := t.Send(ctx, m)
		elapsed := time.Since(start)

		if d.metrics != nil {
			d.metrics.RecordSend(t.String(), elapsed, err)
		}
		if err != nil {
			d.log.Error("message send failed",
				"transport", t.String(),
				"message_id", m.ID(),
				"kind", m.Kind(),
				"duration", elapsed,
				"error", err)
			return nil, err
		}
		d.log.Info("message sent",
			"transport", t.String(),
			"message_id", m.ID(),
			"kind", m.Kind(),
			"provider_id", sent.ProviderID,
			"duration", elapsed)
		return sent, nil
	}
	return nil, &NoTransportError{Kind: m.Kind()}
}
