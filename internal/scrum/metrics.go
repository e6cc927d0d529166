package scrum

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	jobRunsTotal      *prometheus.CounterVec
	promptsSentTotal  prometheus.Counter
	sendFailuresTotal prometheus.Counter
)

func initMetrics() {
	metricsOnce.Do(func() {
		jobRunsTotal = registerCounterVec(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scrumbot",
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Count of job executions by trigger id.",
		}, []string{"job"}))
		promptsSentTotal = registerCounter(prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scrumbot",
			Subsystem: "jobs",
			Name:      "prompts_sent_total",
			Help:      "Count of scrum prompts delivered to members.",
		}))
		sendFailuresTotal = registerCounter(prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scrumbot",
			Subsystem: "jobs",
			Name:      "send_failures_total",
			Help:      "Count of chat deliveries that failed.",
		}))
	})
}

func registerCounterVec(c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return c
}

func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter)
		}
	}
	return c
}
