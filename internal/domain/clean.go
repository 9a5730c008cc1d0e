package domain

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// minPointsForOutlierFilter is the series length below which the ±3σ filter
// is skipped; the sample standard deviation of a handful of points is too
// unstable to filter against.
const minPointsForOutlierFilter = 6

// CleanSeries normalizes a raw variable series: sort by timestamp, drop
// duplicate (timestamp, variable) pairs keeping the first occurrence,
// forward- then back-fill NaN values, and drop values beyond three sample
// standard deviations of the mean. Cleaning an already-clean series returns
// an equal series. The input is never mutated; an empty series is returned
// unchanged.
func CleanSeries(series VariableSeries) VariableSeries {
	if len(series) == 0 {
		return series
	}

	cleaned := make(VariableSeries, len(series))
	copy(cleaned, series)

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Timestamp.Before(cleaned[j].Timestamp)
	})

	cleaned = dropDuplicates(cleaned)
	fillMissing(cleaned)
	return filterOutliers(cleaned)
}

// dropDuplicates keeps the first observation for each (timestamp, variable)
// pair. The input must already be sorted.
func dropDuplicates(series VariableSeries) VariableSeries {
	type seriesKey struct {
		ts       int64
		variable string
	}
	seen := make(map[seriesKey]bool, len(series))
	out := series[:0]
	for _, obs := range series {
		k := seriesKey{ts: obs.Timestamp.UnixNano(), variable: obs.VariableKey}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, obs)
	}
	return out
}

// fillMissing forward-fills NaN values, then back-fills any NaNs remaining
// at the head of the series.
func fillMissing(series VariableSeries) {
	last := math.NaN()
	for i := range series {
		if math.IsNaN(series[i].Value) {
			series[i].Value = last
		} else {
			last = series[i].Value
		}
	}
	next := math.NaN()
	for i := len(series) - 1; i >= 0; i-- {
		if math.IsNaN(series[i].Value) {
			series[i].Value = next
		} else {
			next = series[i].Value
		}
	}
}

// filterOutliers drops observations beyond three sample standard deviations
// of the series mean. Skipped for short series or a degenerate stddev.
func filterOutliers(series VariableSeries) VariableSeries {
	if len(series) < minPointsForOutlierFilter {
		return series
	}

	values := series.Values()
	mean := stat.Mean(values, nil)
	std := stat.StdDev(values, nil)
	if std <= 0 || math.IsNaN(std) {
		return series
	}

	out := series[:0]
	for _, obs := range series {
		if obs.Value < mean-3*std || obs.Value > mean+3*std {
			continue
		}
		out = append(out, obs)
	}
	return out
}
