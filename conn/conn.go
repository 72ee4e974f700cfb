// Package conn resolves database drivers by access mode. A Provider holds
// one endpoint for reads and one for writes and opens each lazily on first
// use. Modes are never substituted for one another: asking for a mode that
// was not configured is an error, even when the other mode is available.
package conn

import (
	"log/slog"
	"sync"

	"github.com/syssam/strata"
	"github.com/syssam/strata/dialect"
	"github.com/syssam/strata/dialect/sql"
)

// Mode selects which endpoint a statement runs against.
type Mode string

const (
	// Read routes to the read endpoint, typically a replica.
	Read Mode = "read"
	// Write routes to the write endpoint, the primary.
	Write Mode = "write"
)

// Valid reports whether m is a recognized mode.
func (m Mode) Valid() bool {
	return m == Read || m == Write
}

// Provider resolves drivers by mode. Connections are opened on first
// Resolve for a mode and reused afterwards. Provider is safe for
// concurrent use.
type Provider struct {
	cfg     Config
	wrap    func(Mode, *sql.Driver) dialect.Driver
	mu      sync.Mutex
	drivers map[Mode]dialect.Driver
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithDriverWrapper decorates every driver the provider opens. The wrapper
// runs once per mode, when that mode's connection is first resolved.
func WithDriverWrapper(wrap func(Mode, *sql.Driver) dialect.Driver) ProviderOption {
	return func(p *Provider) { p.wrap = wrap }
}

// WithStats wraps every opened driver with query statistics collection.
// The observe callback, if non-nil, receives each mode's stats handle as
// its driver is opened.
func WithStats(observe func(Mode, *sql.QueryStats), opts ...sql.StatsOption) ProviderOption {
	return WithDriverWrapper(func(mode Mode, drv *sql.Driver) dialect.Driver {
		sd := sql.NewStatsDriver(drv, opts...)
		if observe != nil {
			observe(mode, sd.QueryStats())
		}
		return sd
	})
}

// WithDebug wraps every opened driver with statement logging through the
// given logger.
func WithDebug(logger *slog.Logger) ProviderOption {
	return WithDriverWrapper(func(_ Mode, drv *sql.Driver) dialect.Driver {
		return dialect.Debug(drv, logger)
	})
}

// NewProvider validates the configured endpoints and returns a Provider.
// Validation is eager so that a malformed endpoint surfaces at startup
// rather than on the first query; the connections themselves stay lazy.
// At least one endpoint must be configured.
func NewProvider(cfg Config, opts ...ProviderOption) (*Provider, error) {
	if cfg.Read == nil && cfg.Write == nil {
		return nil, strata.NewMissingConfigError(string(Read), "no endpoints configured")
	}
	if cfg.Read != nil {
		if err := cfg.Read.validate(Read); err != nil {
			return nil, err
		}
	}
	if cfg.Write != nil {
		if err := cfg.Write.validate(Write); err != nil {
			return nil, err
		}
	}
	p := &Provider{
		cfg:     cfg,
		drivers: make(map[Mode]dialect.Driver, 2),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Resolve returns the driver for the given mode, opening it on first use.
// An unrecognized mode yields an InvalidModeError; a recognized but
// unconfigured mode yields a MissingConfigError.
func (p *Provider) Resolve(mode Mode) (dialect.Driver, error) {
	if !mode.Valid() {
		return nil, strata.NewInvalidModeError(string(mode))
	}
	ep, err := p.cfg.endpoint(mode)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if drv, ok := p.drivers[mode]; ok {
		return drv, nil
	}
	opened, err := sql.Open(ep.Dialect, ep.dsn())
	if err != nil {
		return nil, err
	}
	var drv dialect.Driver = opened
	if p.wrap != nil {
		drv = p.wrap(mode, opened)
	}
	p.drivers[mode] = drv
	return drv, nil
}

// Close closes every driver that was opened. It is safe to call Close on
// a Provider that never resolved a connection.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for mode, drv := range p.drivers {
		if err := drv.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.drivers, mode)
	}
	return firstErr
}
