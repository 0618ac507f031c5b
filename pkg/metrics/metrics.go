// Package metrics exposes Prometheus instrumentation for the registration
// engine and its request-time surfaces. All collector methods are nil-safe
// so instrumentation stays optional.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the metrics collector.
type Config struct {
	// Namespace is the metrics namespace (default: "chassis").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures the metrics collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Catch-all outcome label values.
const (
	OutcomeExempt   = "exempt"
	OutcomeNotFound = "not_found"
)

// Metrics holds the engine's collectors.
type Metrics struct {
	routesRegistered *prometheus.CounterVec
	catchAll         *prometheus.CounterVec
	errorChain       *prometheus.CounterVec
}

// New creates the collectors and registers them.
func New(opts ...Option) *Metrics {
	cfg := Config{
		Namespace: "chassis",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		routesRegistered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "routes_registered_total",
			Help:        "Routes applied to the transport, by verb.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"verb"}),
		catchAll: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "catchall_requests_total",
			Help:        "Requests reaching the catch-all, by outcome.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"outcome"}),
		errorChain: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "error_chain_invocations_total",
			Help:        "Error-controller invocations, by bound status code.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"status"}),
	}
}

// RouteRegistered records one route reaching the transport.
func (m *Metrics) RouteRegistered(verb string) {
	if m == nil {
		return
	}
	m.routesRegistered.WithLabelValues(verb).Inc()
}

// CatchAllHit records one request reaching the catch-all.
func (m *Metrics) CatchAllHit(outcome string) {
	if m == nil {
		return
	}
	m.catchAll.WithLabelValues(outcome).Inc()
}

// ErrorChainInvoked records one error controller firing.
func (m *Metrics) ErrorChainInvoked(status int) {
	if m == nil {
		return
	}
	m.errorChain.WithLabelValues(strconv.Itoa(status)).Inc()
}
