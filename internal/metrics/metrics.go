// Package metrics counts menu bar activity with Prometheus counters.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 2 * time.Second

// Recorder receives bar activity. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Key(key string, handled bool)
	Activation(name string, resolved bool)
	Collapse(reason string)
	Load(kind string, err error)
}

// Nop discards every observation.
type Nop struct{}

func (Nop) Key(string, bool)        {}
func (Nop) Activation(string, bool) {}
func (Nop) Collapse(string)         {}
func (Nop) Load(string, error)      {}

type counter struct {
	vec *prometheus.CounterVec
}

func (c *counter) inc(vals ...string) {
	c.vec.WithLabelValues(vals...).Inc()
}

func newCounter(reg prometheus.Registerer, name, help string, labels ...string) *counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menubar",
		Name:      name,
		Help:      help,
	}, labels)
	reg.MustRegister(vec)
	return &counter{vec: vec}
}

// Prometheus is a Recorder backed by counters on its own registry.
type Prometheus struct {
	registry    *prometheus.Registry
	keys        *counter
	activations *counter
	collapses   *counter
	loads       *counter
}

// New creates a recorder with a fresh registry.
func New() *Prometheus {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry registers the counters on reg.
func NewWithRegistry(reg *prometheus.Registry) *Prometheus {
	return &Prometheus{
		registry:    reg,
		keys:        newCounter(reg, "keys_total", "Key presses dispatched to the bar.", "key", "handled"),
		activations: newCounter(reg, "activations_total", "Option activations by callback name.", "name", "resolved"),
		collapses:   newCounter(reg, "collapses_total", "Times the whole bar collapsed.", "reason"),
		loads:       newCounter(reg, "loads_total", "Widget loads by kind and outcome.", "kind", "outcome"),
	}
}

func (p *Prometheus) Key(key string, handled bool) {
	p.keys.inc(key, strconv.FormatBool(handled))
}

func (p *Prometheus) Activation(name string, resolved bool) {
	if name == "" {
		name = "(none)"
	}
	p.activations.inc(name, strconv.FormatBool(resolved))
}

func (p *Prometheus) Collapse(reason string) {
	p.collapses.inc(reason)
}

func (p *Prometheus) Load(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.loads.inc(kind, outcome)
}

// Registry exposes the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (p *Prometheus) Serve(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	return p.serve(ctx, listener)
}

func (p *Prometheus) serve(ctx context.Context, listener net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", p.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
