package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics uses its own registry so multiple app instances (one per test)
// never collide on registration.
type metrics struct {
	registry  *prometheus.Registry
	logins    *prometheus.CounterVec
	refreshes prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "usersvc_login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "usersvc_token_refreshes_total",
			Help: "Successful access token refreshes.",
		}),
	}
	m.registry.MustRegister(m.logins, m.refreshes)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
