package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/pathviz/internal/trace"
)

const namespace = "pathviz"

// Collector exports player and solver activity to Prometheus.
type Collector struct {
	playbacks     prometheus.Counter
	cancellations prometheus.Counter
	ticks         prometheus.Counter
	finished      *prometheus.CounterVec
	pathLength    prometheus.Histogram
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		playbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playbacks_started_total",
			Help:      "Total number of trace playbacks started",
		}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playbacks_cancelled_total",
			Help:      "Total number of playbacks cancelled before finishing",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total number of playback ticks that revealed a cell",
		}),
		finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "playbacks_finished_total",
				Help:      "Total number of playbacks that ran to completion",
			},
			[]string{"result"},
		),
		pathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_length_cells",
			Help:      "Length of revealed paths",
			Buckets:   prometheus.LinearBuckets(0, 10, 10),
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solver_requests_total",
				Help:      "Total number of solver calls",
			},
			[]string{"op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solver_request_duration_seconds",
				Help:      "Duration of solver calls",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}

	for _, col := range []prometheus.Collector{
		c.playbacks, c.cancellations, c.ticks, c.finished, c.pathLength, c.requests, c.duration,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Hooks returns player hooks feeding the collector.
func (c *Collector) Hooks() trace.Hooks {
	return trace.Hooks{
		OnPlay: func(trace.Trace, time.Duration) { c.playbacks.Inc() },
		OnTick: func(*trace.State) { c.ticks.Inc() },
		OnCancel: func(*trace.State) {
			c.cancellations.Inc()
		},
		OnDone: func(st *trace.State, _ int) {
			result := "unreachable"
			if len(st.Path) > 0 {
				result = "found"
			}
			c.finished.WithLabelValues(result).Inc()
			c.pathLength.Observe(float64(len(st.Path)))
		},
	}
}

// ObserveSolver records one solver call. Its signature matches
// solver.Observer.
func (c *Collector) ObserveSolver(op string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.requests.WithLabelValues(op, result).Inc()
	c.duration.WithLabelValues(op).Observe(d.Seconds())
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(g),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting metrics server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
