// Package metrics exposes Prometheus counters for visitor and imam activity.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what services report to. Nop satisfies it for tests and tools.
type Recorder interface {
	SubscriptionChanged(subscribed bool)
	PrayerToggled(prayer string, completed bool)
	AnnouncementChanged(action string)
	SaveFinished(kind, outcome string)
	HTTPRequest(method, route string, status int)
}

type Collector struct {
	subscriptions *prometheus.CounterVec
	prayers       *prometheus.CounterVec
	announcements *prometheus.CounterVec
	saves         *prometheus.CounterVec
	requests      *prometheus.CounterVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates the counters and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		subscriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "masjidfinder_subscription_changes_total",
			Help: "Subscription toggles by resulting state.",
		}, []string{"state"}),
		prayers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "masjidfinder_prayer_toggles_total",
			Help: "Prayer tracker toggles by prayer and resulting state.",
		}, []string{"prayer", "completed"}),
		announcements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "masjidfinder_announcement_changes_total",
			Help: "Imam announcement changes by action.",
		}, []string{"action"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "masjidfinder_save_operations_total",
			Help: "Asynchronous save operations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "masjidfinder_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(c.subscriptions, c.prayers, c.announcements, c.saves, c.requests)
	return c
}

func (c *Collector) SubscriptionChanged(subscribed bool) {
	state := "unsubscribed"
	if subscribed {
		state = "subscribed"
	}
	c.subscriptions.WithLabelValues(state).Inc()
}

func (c *Collector) PrayerToggled(prayer string, completed bool) {
	c.prayers.WithLabelValues(prayer, strconv.FormatBool(completed)).Inc()
}

func (c *Collector) AnnouncementChanged(action string) {
	c.announcements.WithLabelValues(action).Inc()
}

func (c *Collector) SaveFinished(kind, outcome string) {
	c.saves.WithLabelValues(kind, outcome).Inc()
}

func (c *Collector) HTTPRequest(method, route string, status int) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

type Nop struct{}

func (Nop) SubscriptionChanged(bool) {}
func (Nop) PrayerToggled(string, bool) {}
func (Nop) AnnouncementChanged(string) {}
func (Nop) SaveFinished(string, string) {}
func (Nop) HTTPRequest(string, string, int) {}
