package daemon

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/charlie0129/calc/pkg/calc"
	"github.com/charlie0129/calc/pkg/events"
)

type calcMetrics struct {
	registry    *prometheus.Registry
	presses     *prometheus.CounterVec
	errors      prometheus.Counter
	resets      prometheus.Counter
	displayLen  prometheus.Gauge
	subscribers prometheus.GaugeFunc
}

func newCalcMetrics(hub *events.EventHub) *calcMetrics {
	m := &calcMetrics{
		registry: prometheus.NewRegistry(),
		presses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calc_button_presses_total",
			Help: "Count of handled button presses by button.",
		}, []string{"button"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calc_errors_total",
			Help: "Number of times the engine entered the error state.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calc_resets_total",
			Help: "Number of clear presses.",
		}),
		displayLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "calc_display_length",
			Help: "Length in characters of the current display string.",
		}),
		subscribers: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "calc_event_subscribers",
			Help: "Number of connected event stream subscribers.",
		}, func() float64 { return float64(hub.Len()) }),
	}
	m.displayLen.Set(1)
	m.registry.MustRegister(m.presses, m.errors, m.resets, m.displayLen, m.subscribers)
	return m
}

func (m *calcMetrics) observe(from, to calc.State, b calc.Button) {
	m.presses.WithLabelValues(b.String()).Inc()
	if b == calc.Clear {
		m.resets.Inc()
	}
	if to.Error && !from.Error {
		m.errors.Inc()
	}
	m.displayLen.Set(float64(len([]rune(to.Display))))
}

func (m *calcMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
