// Package metrics содержит Prometheus-счётчики сервиса.
package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics объединяет счётчики HTTP-запросов и доменных событий.
// Нулевой указатель допустим: методы в этом случае ничего не делают.
type Metrics struct {
	requests    *prometheus.CounterVec
	transitions *prometheus.CounterVec
	grants      *prometheus.CounterVec
}

// New создаёт счётчики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bulletin",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bulletin",
			Name:      "article_transitions_total",
			Help:      "Article status transitions by target status.",
		}, []string{"status"}),
		grants: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bulletin",
			Name:      "premium_grants_total",
			Help:      "Committed premium grants by plan.",
		}, []string{"plan"}),
	}
	reg.MustRegister(m.requests, m.transitions, m.grants)
	return m
}

// ObserveRequest учитывает обработанный HTTP-запрос.
func (m *Metrics) ObserveRequest(route, method string, status int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// ArticleTransition учитывает перевод статьи в статус status.
func (m *Metrics) ArticleTransition(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}

// knownPlans - тарифы, которые попадают в метку как есть.
// Остальные значения приходят из тела запроса и сводятся к "other".
var knownPlans = map[string]struct{}{
	"monthly":   {},
	"quarterly": {},
	"yearly":    {},
}

// PremiumGranted учитывает выданный премиум по тарифу plan.
func (m *Metrics) PremiumGranted(plan string) {
	if m == nil {
		return
	}
	m.grants.WithLabelValues(planLabel(plan)).Inc()
}

func planLabel(plan string) string {
	plan = strings.ToLower(strings.TrimSpace(plan))
	if plan == "" {
		return "unknown"
	}
	if _, ok := knownPlans[plan]; ok {
		return plan
	}
	return "other"
}
