package bfhl

import (
	"net/http"
	"time"

	"bfhl-service/bfhl/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores Prometheus do serviço num registry próprio,
// para que testes possam criar instâncias independentes.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	slotsInUse    prometheus.GaugeFunc
	slotsCapacity prometheus.GaugeFunc
}

// slotGauge é o que as métricas precisam enxergar do pool de vagas.
type slotGauge interface {
	InUse() int
	Cap() int
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bfhl_requests_total",
			Help: "Requests to POST /bfhl by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bfhl_request_duration_seconds",
			Help:    "Time spent dispatching POST /bfhl by operation.",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe é seguro com receiver nil (métricas desligadas).
func (m *Metrics) Observe(op domain.Operation, outcome domain.Outcome, d time.Duration) {
	if m == nil {
		return
	}
	label := string(op)
	if label == "" {
		label = "none"
	}
	m.requests.WithLabelValues(label, string(outcome)).Inc()
	m.duration.WithLabelValues(label).Observe(d.Seconds())
}

// TrackSlots expõe ocupação e capacidade do limite de concorrência.
// Chamado uma vez por router; pool nil (limite desligado) não registra nada.
func (m *Metrics) TrackSlots(pool slotGauge) {
	if m == nil || pool == nil || m.slotsInUse != nil {
		return
	}
	m.slotsInUse = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "bfhl_concurrency_slots_in_use",
		Help: "POST /bfhl requests currently holding a concurrency slot.",
	}, func() float64 { return float64(pool.InUse()) })
	m.slotsCapacity = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "bfhl_concurrency_slots_capacity",
		Help: "Maximum concurrent POST /bfhl requests.",
	}, func() float64 { return float64(pool.Cap()) })
	m.registry.MustRegister(m.slotsInUse, m.slotsCapacity)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Requests devolve o coletor de contagem (usado em testes).
func (m *Metrics) Requests() *prometheus.CounterVec { return m.requests }
