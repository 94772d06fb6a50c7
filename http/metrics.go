package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Question outcomes.
const (
	outcomeAnswered = "answered"
	outcomeNoAnswer = "no_answer"
	outcomeError    = "error"
)

// QuestionBuckets covers embedding plus answer generation latencies, 50ms to 60s.
var QuestionBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

type metrics struct {
	registry  *prometheus.Registry
	questions *prometheus.CounterVec
	duration  prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		questions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "locqa_questions_total",
				Help: "Questions answered by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "locqa_question_duration_seconds",
				Help:    "Time to retrieve and answer a question",
				Buckets: QuestionBuckets,
			},
		),
	}
	m.registry.MustRegister(
		m.questions,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) observe(outcome string, d time.Duration) {
	m.questions.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}
