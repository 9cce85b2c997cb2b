package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	unitsParsed   prom.Counter
	parseFailures prom.Counter
	pagesRendered prom.Counter
	stageDuration *prom.HistogramVec
	buildDuration *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on the
// given registry (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		unitsParsed: prom.NewCounter(prom.CounterOpts{
			Namespace: "blogforge",
			Name:      "units_parsed_total",
			Help:      "Content units parsed successfully",
		}),
		parseFailures: prom.NewCounter(prom.CounterOpts{
			Namespace: "blogforge",
			Name:      "parse_failures_total",
			Help:      "Content units that failed to parse",
		}),
		pagesRendered: prom.NewCounter(prom.CounterOpts{
			Namespace: "blogforge",
			Name:      "pages_rendered_total",
			Help:      "Pages rendered and written",
		}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "blogforge",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "blogforge",
			Name:      "build_duration_seconds",
			Help:      "Total build duration by outcome",
			Buckets:   prom.DefBuckets,
		}, []string{"outcome"}),
	}

	reg.MustRegister(pr.unitsParsed, pr.parseFailures, pr.pagesRendered, pr.stageDuration, pr.buildDuration)
	return pr
}

func (pr *PrometheusRecorder) UnitParsed()   { pr.unitsParsed.Inc() }
func (pr *PrometheusRecorder) ParseFailed()  { pr.parseFailures.Inc() }
func (pr *PrometheusRecorder) PageRendered() { pr.pagesRendered.Inc() }

func (pr *PrometheusRecorder) StageCompleted(stage string, d time.Duration) {
	pr.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) BuildCompleted(outcome string, d time.Duration) {
	pr.buildDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
