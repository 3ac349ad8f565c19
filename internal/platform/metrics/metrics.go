package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Collector owns a private registry so several stores (tests, tools) can
// coexist in one process.
type Collector struct {
	registry       *prometheus.Registry
	loads          *prometheus.CounterVec
	saves          *prometheus.CounterVec
	idsAllocated   prometheus.Counter
	logins         *prometheus.CounterVec
	passwordRehash prometheus.Counter
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "talentcrm",
			Name:      "document_loads_total",
			Help:      "Document loads by result.",
		}, []string{"result"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "talentcrm",
			Name:      "document_saves_total",
			Help:      "Document saves by result.",
		}, []string{"result"}),
		idsAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "talentcrm",
			Name:      "ids_allocated_total",
			Help:      "Identifiers handed out by the id counter.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "talentcrm",
			Name:      "logins_total",
			Help:      "Authentication attempts by result.",
		}, []string{"result"}),
		passwordRehash: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "talentcrm",
			Name:      "password_upgrades_total",
			Help:      "Legacy plaintext credentials rewritten as hashes.",
		}),
	}
	c.registry.MustRegister(c.loads, c.saves, c.idsAllocated, c.logins, c.passwordRehash)
	return c
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// Methods are nil-safe so callers may run without a collector.

func (c *Collector) RecordLoad(err error) {
	if c == nil {
		return
	}
	c.loads.WithLabelValues(result(err)).Inc()
}

func (c *Collector) RecordSave(err error) {
	if c == nil {
		return
	}
	c.saves.WithLabelValues(result(err)).Inc()
}

func (c *Collector) RecordIDs(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.idsAllocated.Add(float64(n))
}

func (c *Collector) RecordLogin(success bool) {
	if c == nil {
		return
	}
	status := ResultOK
	if !success {
		status = ResultError
	}
	c.logins.WithLabelValues(status).Inc()
}

func (c *Collector) RecordPasswordUpgrade() {
	if c == nil {
		return
	}
	c.passwordRehash.Inc()
}

func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile dumps the current values in the node-exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
