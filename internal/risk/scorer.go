// Package risk maps variable series and forecasts onto named weather
// hazards, producing activity-aware probability-of-occurrence estimates.
package risk

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/weather-intel-service/internal/domain"
	"github.com/couchcryptid/weather-intel-service/internal/forecast"
	"github.com/couchcryptid/weather-intel-service/internal/observability"
)

const (
	// trailingWindow is how many recent observations feed the base probability.
	trailingWindow = 30
	// maxForecastAdjustment clamps the forecast-trend contribution.
	maxForecastAdjustment = 15
)

// Scorer evaluates hazard risk for an activity at a target date.
type Scorer struct {
	forecaster *forecast.Forecaster
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewScorer creates a Scorer.
func NewScorer(forecaster *forecast.Forecaster, logger *slog.Logger, metrics *observability.Metrics) *Scorer {
	return &Scorer{forecaster: forecaster, logger: logger, metrics: metrics}
}

// Score assesses every hazard in the activity's profile. Hazards with no
// series of a matching variable family are omitted from the result rather
// than scored against an unrelated variable. Unknown activities are the only
// error; per-hazard problems degrade or omit.
func (s *Scorer) Score(seriesByVariable map[string]domain.VariableSeries, targetDate time.Time, activity string) (map[string]domain.RiskAssessment, error) {
	profile, ok := domain.Activities[activity]
	if !ok {
		return nil, fmt.Errorf("unknown activity %q", activity)
	}

	assessments := make(map[string]domain.RiskAssessment, len(profile.Hazards))
	for _, hazardID := range profile.Hazards {
		hazard, ok := domain.Hazards[hazardID]
		if !ok {
			continue
		}

		variableKey, ok := relevantVariable(hazard, seriesByVariable)
		if !ok {
			s.logger.Debug("no variable matches hazard family, omitting hazard",
				"hazard", hazardID, "family", hazard.Family)
			continue
		}

		series := seriesByVariable[variableKey]
		if len(series) == 0 {
			continue
		}

		assessments[hazardID] = s.assess(hazard, variableKey, series, seriesByVariable, targetDate)
		s.metrics.RiskAssessments.Inc()
	}
	return assessments, nil
}

// assess scores one hazard against its contributing variable.
func (s *Scorer) assess(hazard domain.Hazard, variableKey string, series domain.VariableSeries, seriesByVariable map[string]domain.VariableSeries, targetDate time.Time) domain.RiskAssessment {
	threshold := hazard.OperatingThreshold()
	base := baseProbability(hazard, series, threshold)
	adjustment := s.forecastAdjustment(hazard, variableKey, series, seriesByVariable, targetDate)
	combined := clamp(base+adjustment, 0, 100)
	tier := severityTier(hazard, threshold)
	tierSpec := hazard.Tiers[tier]

	return domain.RiskAssessment{
		HazardID:             hazard.ID,
		Probability:          round1(combined),
		BaseProbability:      round1(base),
		ForecastAdjustment:   round1(adjustment),
		SeverityTier:         tier,
		RiskLabel:            tierSpec.Risk,
		Impact:               tierSpec.Impact,
		ContributingVariable: variableKey,
	}
}

// baseProbability is the percentage of the trailing observations crossing
// the operating threshold in the hazard's direction.
func baseProbability(hazard domain.Hazard, series domain.VariableSeries, threshold float64) float64 {
	recent := series.Tail(trailingWindow)
	if len(recent) == 0 {
		return 0
	}
	hits := 0
	for _, obs := range recent {
		if hazard.Satisfies(obs.Value, threshold) {
			hits++
		}
	}
	return float64(hits) / float64(len(recent)) * 100
}

// forecastAdjustment nudges the base probability by the forecast trend
// relative to the historical mean, clamped to ±15. A failed forecast
// contributes nothing.
func (s *Scorer) forecastAdjustment(hazard domain.Hazard, variableKey string, series domain.VariableSeries, seriesByVariable map[string]domain.VariableSeries, targetDate time.Time) float64 {
	result, err := s.forecaster.Forecast(seriesByVariable, variableKey, targetDate)
	if err != nil {
		s.logger.Debug("forecast unavailable for risk adjustment",
			"hazard", hazard.ID, "variable", variableKey, "error", err)
		return 0
	}

	historicalMean := stat.Mean(series.Values(), nil)
	trend := (result.PointEstimate - historicalMean) / math.Max(1, math.Abs(historicalMean)) * 20
	return clamp(trend, -maxForecastAdjustment, maxForecastAdjustment)
}

// relevantVariable selects the series whose variable family matches the
// hazard, scanning keys in sorted order for determinism.
func relevantVariable(hazard domain.Hazard, seriesByVariable map[string]domain.VariableSeries) (string, bool) {
	keys := make([]string, 0, len(seriesByVariable))
	for k := range seriesByVariable {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if domain.FamilyForSeriesKey(key) == hazard.Family {
			return key, true
		}
	}
	return "", false
}

// severityTier resolves the highest tier whose threshold the operating
// threshold satisfies in the hazard's direction. Scanning from least to most
// severe keeps the last satisfying tier.
func severityTier(hazard domain.Hazard, operatingThreshold float64) domain.SeverityTier {
	tier := domain.SeverityLow
	for _, level := range domain.SeverityTiers {
		spec := hazard.Tiers[level]
		switch hazard.Direction {
		case domain.DirectionBelow:
			if operatingThreshold <= spec.Threshold {
				tier = level
			}
		default:
			if operatingThreshold >= spec.Threshold {
				tier = level
			}
		}
	}
	return tier
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
