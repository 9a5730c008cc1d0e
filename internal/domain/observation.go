package domain

import (
	"time"
)

// Quality marks whether an observation came from a real product granule or
// was synthesized as a fallback.
type Quality string

const (
	QualityReal      Quality = "real"
	QualitySimulated Quality = "simulated"
)

// Observation is a single dated value for one variable at one location.
// Immutable once produced.
type Observation struct {
	Timestamp   time.Time `json:"timestamp"`
	VariableKey string    `json:"variable"`
	Value       float64   `json:"value"`
	Source      string    `json:"source"`
	Quality     Quality   `json:"quality"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
}

// VariableSeries is a timestamp-ordered sequence of observations for one
// variable key at one location.
type VariableSeries []Observation

// Values returns the observation values in series order.
func (s VariableSeries) Values() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Value
	}
	return out
}

// Tail returns the last n observations, or the whole series if it is shorter.
func (s VariableSeries) Tail(n int) VariableSeries {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Last returns the most recent observation and false when the series is empty.
func (s VariableSeries) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// Interval is a [lower, upper] forecast band.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ForecastResult combines the component estimators into a single prediction
// with uncertainty bands. Produced fresh per (variable, target date) request.
type ForecastResult struct {
	TargetDate         time.Time `json:"target_date"`
	PointEstimate      float64   `json:"point_estimate"`
	ComponentEstimates []float64 `json:"component_estimates"`
	Interval80         Interval  `json:"interval_80"`
	Interval95         Interval  `json:"interval_95"`
	Uncertainty        float64   `json:"uncertainty"`
	ConfidenceScore    int       `json:"confidence_score"`
}

// RiskAssessment is one hazard's probability-of-occurrence estimate for an
// activity at a target date.
type RiskAssessment struct {
	HazardID             string       `json:"hazard_id"`
	Probability          float64      `json:"probability"`
	BaseProbability      float64      `json:"base_probability"`
	ForecastAdjustment   float64      `json:"forecast_adjustment"`
	SeverityTier         SeverityTier `json:"severity_tier"`
	RiskLabel            string       `json:"risk_label"`
	Impact               string       `json:"impact"`
	ContributingVariable string       `json:"contributing_variable"`
}

// ProductVariable names one (product, variable) acquisition request.
type ProductVariable struct {
	Product  string `json:"product"`
	Variable string `json:"variable"`
}

// Key returns the series key used throughout the pipeline, e.g. "MERRA2_400_T2M".
func (pv ProductVariable) Key() string {
	return pv.Product + "_" + pv.Variable
}
