package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis pipeline.
type Metrics struct {
	FetchAttempts      *prometheus.CounterVec // labels: product, outcome={real,simulated}
	FetchCacheLookups  *prometheus.CounterVec // labels: result={hit,miss}
	AcquisitionSeconds prometheus.Histogram
	SeriesPoints       prometheus.Histogram

	ForecastRuns    *prometheus.CounterVec // labels: outcome={ok,target_unavailable,insufficient_history,all_estimators_failed}
	RiskAssessments prometheus.Counter
	AnalysisRunning prometheus.Gauge
	AnalysisSeconds prometheus.Histogram
	ResultsPublished prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchAttempts,
		m.FetchCacheLookups,
		m.AcquisitionSeconds,
		m.SeriesPoints,
		m.ForecastRuns,
		m.RiskAssessments,
		m.AnalysisRunning,
		m.AnalysisSeconds,
		m.ResultsPublished,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_intel",
			Name:      "fetch_attempts_total",
			Help:      "Per-date acquisition outcomes by product.",
		}, []string{"product", "outcome"}),
		FetchCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_intel",
			Name:      "fetch_cache_lookups_total",
			Help:      "Session fetch-cache lookups by result.",
		}, []string{"result"}),
		AcquisitionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_intel",
			Name:      "acquisition_duration_seconds",
			Help:      "Duration of a complete multi-variable acquisition.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}),
		SeriesPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_intel",
			Name:      "series_points",
			Help:      "Observations per cleaned variable series.",
			Buckets:   []float64{1, 5, 10, 15, 20, 30},
		}),
		ForecastRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_intel",
			Name:      "forecast_runs_total",
			Help:      "Ensemble forecast runs by outcome.",
		}, []string{"outcome"}),
		RiskAssessments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_intel",
			Name:      "risk_assessments_total",
			Help:      "Hazard risk assessments produced.",
		}),
		AnalysisRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_intel",
			Name:      "analysis_running",
			Help:      "1 while an analysis run is in progress.",
		}),
		AnalysisSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_intel",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete analysis run.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}),
		ResultsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_intel",
			Name:      "results_published_total",
			Help:      "Analysis results published to the sink topic.",
		}),
	}
}
