package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "textinput"

// Metrics holds the node's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	stateChanges       *prometheus.CounterVec
	entities           *prometheus.GaugeVec
	automationRuns     *prometheus.CounterVec
	automationDuration *prometheus.HistogramVec
	mqttConnected      prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		stateChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_changes_total",
			Help:      "Total number of published entity values",
		}, []string{"entity_id", "source"}),

		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Number of registered entities",
		}, []string{"domain"}),

		automationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "automation_runs_total",
			Help:      "Total number of finished automation runs",
		}, []string{"status"}),

		automationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "automation_duration_seconds",
			Help:      "Automation run duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 300},
		}, []string{"status"}),

		mqttConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mqtt_connected",
			Help:      "1 when the MQTT client is connected",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.stateChanges,
		m.entities,
		m.automationRuns,
		m.automationDuration,
		m.mqttConnected,
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StateChanged counts one published value.
func (m *Metrics) StateChanged(entityID, source string) {
	if m == nil {
		return
	}
	m.stateChanges.WithLabelValues(entityID, source).Inc()
}

// SetEntities records how many entities of domain are registered.
func (m *Metrics) SetEntities(domain string, n int) {
	if m == nil {
		return
	}
	m.entities.WithLabelValues(domain).Set(float64(n))
}

// AutomationFinished records one automation run.
func (m *Metrics) AutomationFinished(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.automationRuns.WithLabelValues(status).Inc()
	m.automationDuration.WithLabelValues(status).Observe(d.Seconds())
}

// SetMQTTConnected records the MQTT connection state.
func (m *Metrics) SetMQTTConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.mqttConnected.Set(1)
		return
	}
	m.mqttConnected.Set(0)
}
