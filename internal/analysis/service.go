// Package analysis orchestrates one analysis run end to end: acquisition,
// per-variable forecasting, and activity risk scoring, with optional
// publication of the result.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-intel-service/internal/acquire"
	"github.com/couchcryptid/weather-intel-service/internal/domain"
	"github.com/couchcryptid/weather-intel-service/internal/forecast"
	"github.com/couchcryptid/weather-intel-service/internal/observability"
	"github.com/couchcryptid/weather-intel-service/internal/risk"
)

var errNotReady = errors.New("no analysis completed yet")

// ErrInvalidRequest wraps every request-validation failure.
var ErrInvalidRequest = errors.New("invalid analysis request")

// Publisher delivers finished analysis results to a downstream sink.
type Publisher interface {
	PublishResult(ctx context.Context, result *Result) error
}

// Request describes one analysis run.
type Request struct {
	Activity   string
	Lat        float64
	Lon        float64
	Start      time.Time
	End        time.Time
	TargetDate time.Time // optional; defaults to the day after End
	Pairs      []domain.ProductVariable
}

// Validate rejects requests the pipeline cannot act on.
func (r Request) Validate() error {
	if r.Lat < -90 || r.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", r.Lat)
	}
	if r.Lon < -180 || r.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", r.Lon)
	}
	if r.Start.After(r.End) {
		return errors.New("start date is after end date")
	}
	if len(r.Pairs) == 0 {
		return errors.New("no product/variable pairs requested")
	}
	if _, ok := domain.Activities[r.Activity]; !ok {
		return fmt.Errorf("unknown activity %q", r.Activity)
	}
	return nil
}

// ForecastEntry is the per-variable forecast outcome: a result, or an error
// code when that variable could not be forecast. Forecast failures never fail
// the run as a whole.
type ForecastEntry struct {
	Result *domain.ForecastResult `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// Result is one complete analysis.
type Result struct {
	Activity    string                           `json:"activity"`
	Lat         float64                          `json:"lat"`
	Lon         float64                          `json:"lon"`
	Start       time.Time                        `json:"start"`
	End         time.Time                        `json:"end"`
	TargetDate  time.Time                        `json:"target_date"`
	GeneratedAt time.Time                        `json:"generated_at"`
	Series      map[string]domain.VariableSeries `json:"series"`
	Forecasts   map[string]ForecastEntry         `json:"forecasts"`
	Risks       map[string]domain.RiskAssessment `json:"risks"`
}

// Service runs analyses. It implements the HTTP adapter's AnalysisRunner and
// ReadinessChecker.
type Service struct {
	acquirer   *acquire.Manager
	forecaster *forecast.Forecaster
	scorer     *risk.Scorer
	publisher  Publisher // optional
	logger     *slog.Logger
	metrics    *observability.Metrics

	ready atomic.Bool
}

// NewService creates a Service. publisher may be nil when no sink is
// configured.
func NewService(acquirer *acquire.Manager, forecaster *forecast.Forecaster, scorer *risk.Scorer, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		acquirer:   acquirer,
		forecaster: forecaster,
		scorer:     scorer,
		publisher:  publisher,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run performs one analysis. Acquisition cannot fail; forecast failures are
// recorded per variable; only validation and risk scoring surface errors.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	s.metrics.AnalysisRunning.Inc()
	defer s.metrics.AnalysisRunning.Dec()
	start := time.Now()
	defer func() {
		s.metrics.AnalysisSeconds.Observe(time.Since(start).Seconds())
	}()

	targetDate := req.TargetDate
	if targetDate.IsZero() {
		targetDate = req.End.AddDate(0, 0, 1)
	}

	series := s.acquirer.GetMultiVariableData(ctx, acquire.Request{
		Pairs: req.Pairs,
		Lat:   req.Lat,
		Lon:   req.Lon,
		Start: req.Start,
		End:   req.End,
	})

	forecasts := s.forecastAll(series, targetDate)

	risks, err := s.scorer.Score(series, targetDate, req.Activity)
	if err != nil {
		return nil, fmt.Errorf("risk scoring: %w", err)
	}

	result := &Result{
		Activity:    req.Activity,
		Lat:         req.Lat,
		Lon:         req.Lon,
		Start:       req.Start,
		End:         req.End,
		TargetDate:  targetDate,
		GeneratedAt: domain.Now(),
		Series:      series,
		Forecasts:   forecasts,
		Risks:       risks,
	}

	s.publish(ctx, result)
	s.ready.Store(true)

	s.logger.Info("analysis complete",
		"activity", req.Activity,
		"variables", len(series),
		"risks", len(risks),
		"duration", time.Since(start),
	)
	return result, nil
}

// forecastAll runs the ensemble for every acquired series, collecting typed
// error markers instead of aborting.
func (s *Service) forecastAll(series map[string]domain.VariableSeries, targetDate time.Time) map[string]ForecastEntry {
	keys := make([]string, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	forecasts := make(map[string]ForecastEntry, len(keys))
	for _, key := range keys {
		result, err := s.forecaster.Forecast(series, key, targetDate)
		if err != nil {
			forecasts[key] = ForecastEntry{Error: forecastErrorCode(err)}
			continue
		}
		forecasts[key] = ForecastEntry{Result: &result}
	}
	return forecasts
}

// publish delivers the result to the configured sink. Delivery failures are
// logged, not returned: the caller already has the result.
func (s *Service) publish(ctx context.Context, result *Result) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishResult(ctx, result); err != nil {
		s.logger.Error("result publication failed", "error", err)
		return
	}
	s.metrics.ResultsPublished.Inc()
}

// CheckReadiness reports ready once at least one analysis has completed.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errNotReady
	}
	return nil
}

// forecastErrorCode maps forecaster sentinels to stable wire-level codes.
func forecastErrorCode(err error) string {
	switch {
	case errors.Is(err, forecast.ErrTargetUnavailable):
		return "target_unavailable"
	case errors.Is(err, forecast.ErrInsufficientHistory):
		return "insufficient_history"
	case errors.Is(err, forecast.ErrAllEstimatorsFailed):
		return "all_estimators_failed"
	default:
		return "forecast_failed"
	}
}
