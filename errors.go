package courier

import "fmt"

// UnsupportedKindError is returned by Transport.Send when the message kind is
// not handled by the transport. No HTTP call is made.
type UnsupportedKindError struct {
	Transport string
	Kind      Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("transport %q does not support %s messages", e.Transport, e.Kind)
}

// TransportError is returned when a provider answers with a status code
// outside its documented success set. It carries the raw status code and,
// when the provider returned a structured error body, a human-readable
// description extracted from it.
type TransportError struct {
	Transport  string
	StatusCode int
	Reason     string
}

func (e *TransportError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("transport %q: unexpected status code %d", e.Transport, e.StatusCode)
	}
	return fmt.Sprintf("transport %q: unexpected status code %d: %s", e.Transport, e.StatusCode, e.Reason)
}

// NoTransportError is returned by the Dispatcher when no configured transport
// supports the message.
type NoTransportError struct {
	Kind Kind
}

func (e *NoTransportError) Error() string {
	return fmt.Sprintf("no transport supports %s messages", e.Kind)
}

// UnsupportedSchemeError is returned by the Registry when no factory handles
// the DSN scheme.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("no transport factory supports the %q scheme", e.Scheme)
}
