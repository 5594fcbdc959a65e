// Package metrics собирает Prometheus метрики сервиса активации.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "activator"

// Metrics holds every collector of the service on its own registry,
// so tests can create independent instances.
type Metrics struct {
	registry        *prometheus.Registry
	redemptions     *prometheus.CounterVec
	zeroRowConsumes prometheus.Counter
	verifications   *prometheus.CounterVec
	renewals        prometheus.Counter
	requests        *prometheus.CounterVec
}

// New создает набор метрик с собственным registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		redemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redemptions_total",
			Help:      "Sold token redemptions by outcome.",
		}, []string{"outcome"}),
		zeroRowConsumes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_consume_zero_rows_total",
			Help:      "Token consumptions inside a registration that modified no row.",
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credential_verifications_total",
			Help:      "Credential verifications by outcome.",
		}, []string{"outcome"}),
		renewals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credential_renewals_total",
			Help:      "Expired credentials silently renewed.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.redemptions,
		m.zeroRowConsumes,
		m.verifications,
		m.renewals,
		m.requests,
	)

	return m
}

// Redemption учитывает исход погашения ключа (created, idempotent, rejected)
func (m *Metrics) Redemption(outcome string) {
	m.redemptions.WithLabelValues(outcome).Inc()
}

// ZeroRowConsume учитывает погашение ключа, не изменившее ни одной строки
func (m *Metrics) ZeroRowConsume() {
	m.zeroRowConsumes.Inc()
}

// Verification учитывает исход проверки credential
func (m *Metrics) Verification(outcome string) {
	m.verifications.WithLabelValues(outcome).Inc()
}

// Renewal учитывает тихое продление credential
func (m *Metrics) Renewal() {
	m.renewals.Inc()
}

// Request учитывает обработанный HTTP запрос
func (m *Metrics) Request(method string, code int) {
	m.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

// Handler returns the /metrics exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
