// Package forecast combines several independent point-forecast methods into
// a single prediction with an uncertainty band. The ensemble is a heuristic
// combiner, not a validated meteorological model.
package forecast

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/weather-intel-service/internal/domain"
	"github.com/couchcryptid/weather-intel-service/internal/features"
	"github.com/couchcryptid/weather-intel-service/internal/observability"
)

var (
	// ErrTargetUnavailable reports a missing or empty target series.
	ErrTargetUnavailable = errors.New("target variable data not available")
	// ErrInsufficientHistory reports a target series below the minimum length.
	ErrInsufficientHistory = errors.New("insufficient historical data")
	// ErrAllEstimatorsFailed reports that no estimator produced a value.
	ErrAllEstimatorsFailed = errors.New("all forecasting methods failed")
)

const (
	// minHistory is the minimum target-series length for any forecast.
	minHistory = 10
	// minRegressorHistory gates the learned regressor.
	minRegressorHistory = 30
	// minClimatologyHistory gates day-of-year climatology over the plain mean.
	minClimatologyHistory = 30
	// movingAverageWindow is the trailing window of the moving-average estimator.
	movingAverageWindow = 7
)

// Forecaster produces ensemble forecasts from variable series. It never
// mutates input series and caches nothing across target dates.
type Forecaster struct {
	builder *features.Builder
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Forecaster.
func New(builder *features.Builder, logger *slog.Logger, metrics *observability.Metrics) *Forecaster {
	return &Forecaster{builder: builder, logger: logger, metrics: metrics}
}

// Forecast predicts the target variable's value at targetDate by averaging
// whichever estimators produce a value. Individual estimator failures are
// non-fatal; only a full wipeout yields ErrAllEstimatorsFailed.
func (f *Forecaster) Forecast(seriesByVariable map[string]domain.VariableSeries, targetVariable string, targetDate time.Time) (domain.ForecastResult, error) {
	target, ok := seriesByVariable[targetVariable]
	if !ok || len(target) == 0 {
		f.metrics.ForecastRuns.WithLabelValues("target_unavailable").Inc()
		return domain.ForecastResult{}, ErrTargetUnavailable
	}
	if len(target) < minHistory {
		f.metrics.ForecastRuns.WithLabelValues("insufficient_history").Inc()
		return domain.ForecastResult{}, ErrInsufficientHistory
	}

	var estimates []float64

	if v, ok := f.learnedEstimate(seriesByVariable, targetVariable, targetDate, target); ok {
		estimates = append(estimates, v)
	}
	estimates = append(estimates, seasonalClimatology(target, targetDate))
	if last, ok := target.Last(); ok {
		estimates = append(estimates, last.Value)
	}
	estimates = append(estimates, stat.Mean(target.Tail(movingAverageWindow).Values(), nil))

	if len(estimates) == 0 {
		f.metrics.ForecastRuns.WithLabelValues("all_estimators_failed").Inc()
		return domain.ForecastResult{}, ErrAllEstimatorsFailed
	}

	point := stat.Mean(estimates, nil)
	uncertainty := popStdDev(estimates, point)

	f.metrics.ForecastRuns.WithLabelValues("ok").Inc()
	return domain.ForecastResult{
		TargetDate:         targetDate,
		PointEstimate:      point,
		ComponentEstimates: estimates,
		Interval95:         domain.Interval{Lower: point - 2*uncertainty, Upper: point + 2*uncertainty},
		Interval80:         domain.Interval{Lower: point - 1.28*uncertainty, Upper: point + 1.28*uncertainty},
		Uncertainty:        uncertainty,
		ConfidenceScore:    confidenceScore(uncertainty),
	}, nil
}

// learnedEstimate runs the ridge regressor when the target has enough
// history. Any internal failure skips the estimator silently.
func (f *Forecaster) learnedEstimate(seriesByVariable map[string]domain.VariableSeries, targetVariable string, targetDate time.Time, target domain.VariableSeries) (float64, bool) {
	if len(target) <= minRegressorHistory {
		return 0, false
	}

	table := f.builder.Build(seriesByVariable)
	if table.IsEmpty() {
		return 0, false
	}

	model, err := fitRidge(table, targetVariable)
	if err != nil {
		f.logger.Warn("learned regressor failed, skipping", "variable", targetVariable, "error", err)
		return 0, false
	}

	row := predictionRow(table, targetDate)
	v := model.predict(row)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// predictionRow takes the latest feature row and re-derives its calendar
// position for the target date.
func predictionRow(table *features.Table, targetDate time.Time) map[string]float64 {
	row := make(map[string]float64, len(table.Columns()))
	last := table.Len() - 1
	for _, name := range table.Columns() {
		row[name] = table.At(name, last)
	}
	for name, v := range features.CalendarFeatures(targetDate) {
		row[name] = v
	}
	return row
}

// seasonalClimatology averages historical values sharing the target date's
// day of year; series shorter than the climatology gate, or day-of-years
// never observed, fall back to the overall mean.
func seasonalClimatology(target domain.VariableSeries, targetDate time.Time) float64 {
	values := target.Values()
	overall := stat.Mean(values, nil)
	if len(target) < minClimatologyHistory {
		return overall
	}

	doy := targetDate.YearDay()
	var sum float64
	var n int
	for _, obs := range target {
		if obs.Timestamp.YearDay() == doy {
			sum += obs.Value
			n++
		}
	}
	if n == 0 {
		return overall
	}
	return sum / float64(n)
}

// confidenceScore is a crude monotonic proxy for estimator agreement:
// clamp(100 - 10σ, 50, 95). Not a calibrated probability.
func confidenceScore(uncertainty float64) int {
	score := 100 - int(uncertainty*10)
	if score > 95 {
		return 95
	}
	if score < 50 {
		return 50
	}
	return score
}

// popStdDev is the population standard deviation around a known mean.
func popStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
