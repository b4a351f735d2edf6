package courier

// TransportFactory constructs a Transport from a parsed connection string.
// Each bridge ships one factory handling its scheme.
type TransportFactory interface {
	// Supports reports whether the factory handles the DSN scheme.
	Supports(dsn *DSN) bool
	// Create builds a transport from the DSN. It validates credentials and
	// required options and fails fast on configuration errors.
	Create(dsn *DSN) (Transport, error)
}

// Registry resolves connection strings to transports by asking a set of
// factories in registration order.
type Registry struct {
	factories []TransportFactory
}

// NewRegistry creates a registry over the given factories.
func NewRegistry(factories ...TransportFactory) *Registry {
	return &Registry{factories: factories}
}

// Register appends a factory.
func (r *Registry) Register(f TransportFactory) {
	r.factories = append(r.factories, f)
}

// FromDSN parses the connection string and builds the matching transport.
// It fails with *UnsupportedSchemeError when no factory handles the scheme.
func (r *Registry) FromDSN(s string) (Transport, error) {
	dsn, err := ParseDSN(s)
	if err != nil {
		return nil, err
	}
	for _, f := range r.factories {
		if f.Supports(dsn) {
			return f.Create(dsn)
		}
	}
	return nil, &UnsupportedSchemeError{Scheme: dsn.Scheme}
}

// DispatcherFromDSNs builds a dispatcher with one transport per connection
// string, preserving order. The first failing DSN aborts construction.
func (r *Registry) DispatcherFromDSNs(dsns []string) (*Dispatcher, error) {
	d := NewDispatcher()
	for _, s := range dsns {
		t, err := r.FromDSN(s)
		if err != nil {
			return nil, err
		}
		d.Add(t)
	}
	return d, nil
}
