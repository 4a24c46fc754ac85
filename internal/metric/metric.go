// Package metric exposes menu lifecycle counters to Prometheus.
package metric

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/kingrea/singleton-contextmenu/internal/contextmenu"
)

const (
	namespace = "contextmenu"

	// ShutdownTimeout bounds how long Serve waits for in-flight scrapes.
	ShutdownTimeout = 5 * time.Second
)

// Collector implements contextmenu.Observer on top of Prometheus metrics.
type Collector struct {
	shown     prometheus.Counter
	dismissed *prometheus.CounterVec
	invoked   prometheus.Counter
	zones     prometheus.Gauge
}

var _ contextmenu.Observer = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		shown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menus_shown_total",
			Help:      "Context menus opened.",
		}),
		dismissed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menus_dismissed_total",
			Help:      "Context menus closed, by reason.",
		}, []string{"reason"}),
		invoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_invoked_total",
			Help:      "Menu item actions run.",
		}),
		zones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_zones",
			Help:      "Trigger zones currently attached.",
		}),
	}
	reg.MustRegister(c.shown, c.dismissed, c.invoked, c.zones)
	return c
}

func (c *Collector) MenuShown() { c.shown.Inc() }

func (c *Collector) MenuDismissed(reason contextmenu.DismissReason) {
	c.dismissed.WithLabelValues(string(reason)).Inc()
}

func (c *Collector) ItemInvoked() { c.invoked.Inc() }

func (c *Collector) ZonesChanged(live int) { c.zones.Set(float64(live)) }

// Handler serves the metrics gathered by reg.
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, reg prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metric: listen %s: %w", addr, err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metric: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
