// Package features derives calendar and rolling-window features from
// cleaned variable series, merged into a single timestamp-aligned table.
package features

import (
	"errors"
	"log/slog"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/weather-intel-service/internal/domain"
)

// rollingWindow is the rolling mean/stddev window; rolling columns are only
// added when a series has more than rollingWindow points.
const rollingWindow = 7

// daysPerYear matches the cyclical-encoding period used by the forecaster.
const daysPerYear = 365.25

var errNoUsableValues = errors.New("series has no usable values")

// Builder constructs feature tables from variable series.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a feature Builder.
func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build merges per-variable features into one table via an outer join on
// timestamp. Empty series are skipped; a per-variable failure skips that
// variable without aborting the build. The result is an empty table when no
// variable yields usable features.
func (b *Builder) Build(seriesByVariable map[string]domain.VariableSeries) *Table {
	times := unionTimestamps(seriesByVariable)
	table := NewTable(times)
	if len(times) == 0 {
		return table
	}

	addCalendarColumns(table)

	for _, key := range sortedKeys(seriesByVariable) {
		series := seriesByVariable[key]
		if len(series) == 0 {
			continue
		}
		if err := b.addVariableColumns(table, key, series); err != nil {
			b.logger.Warn("feature preparation failed, skipping variable", "variable", key, "error", err)
			continue
		}
	}

	if len(table.Columns()) <= 4 { // only calendar columns means nothing usable
		return NewTable(nil)
	}
	return table
}

// CalendarFeatures returns the calendar-derived features for a single date,
// used when re-deriving a prediction row for a forecast target.
func CalendarFeatures(t time.Time) map[string]float64 {
	doy := float64(t.YearDay())
	return map[string]float64{
		"day_of_year": doy,
		"month":       float64(int(t.Month())),
		"day_sin":     math.Sin(2 * math.Pi * doy / daysPerYear),
		"day_cos":     math.Cos(2 * math.Pi * doy / daysPerYear),
	}
}

// addCalendarColumns derives day-of-year, month, and cyclical encodings for
// every row. These are shared across variables.
func addCalendarColumns(table *Table) {
	n := table.Len()
	doy := make([]float64, n)
	month := make([]float64, n)
	daySin := make([]float64, n)
	dayCos := make([]float64, n)
	for i, ts := range table.Times {
		cal := CalendarFeatures(ts)
		doy[i] = cal["day_of_year"]
		month[i] = cal["month"]
		daySin[i] = cal["day_sin"]
		dayCos[i] = cal["day_cos"]
	}
	table.SetColumn("day_of_year", doy)
	table.SetColumn("month", month)
	table.SetColumn("day_sin", daySin)
	table.SetColumn("day_cos", dayCos)
}

// addVariableColumns aligns one variable's values to the table index and
// derives its rolling statistics.
func (b *Builder) addVariableColumns(table *Table, key string, series domain.VariableSeries) error {
	values := nanSlice(table.Len())
	rowByTime := make(map[int64]int, table.Len())
	for i, ts := range table.Times {
		rowByTime[ts.UnixNano()] = i
	}

	usable := 0
	for _, obs := range series {
		row, ok := rowByTime[obs.Timestamp.UnixNano()]
		if !ok {
			continue
		}
		values[row] = obs.Value
		if !math.IsNaN(obs.Value) {
			usable++
		}
	}
	if usable == 0 {
		return errNoUsableValues
	}

	table.SetColumn(key+"_value", values)

	if len(series) > rollingWindow {
		mean, std := rollingStats(series.Values(), rollingWindow)
		table.SetColumn(key+"_rolling_mean_7", alignToTable(table, series, mean))
		table.SetColumn(key+"_rolling_std_7", alignToTable(table, series, std))
	}
	return nil
}

// rollingStats computes trailing-window mean and sample stddev with a
// minimum period of one, so early windows are partial. The stddev of a
// single-point window is NaN.
func rollingStats(values []float64, window int) (means, stds []float64) {
	means = make([]float64, len(values))
	stds = make([]float64, len(values))
	for i := range values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		win := values[lo : i+1]
		means[i] = stat.Mean(win, nil)
		if len(win) < 2 {
			stds[i] = math.NaN()
		} else {
			stds[i] = stat.StdDev(win, nil)
		}
	}
	return means, stds
}

// alignToTable scatters per-observation derived values onto the table index.
func alignToTable(table *Table, series domain.VariableSeries, derived []float64) []float64 {
	out := nanSlice(table.Len())
	rowByTime := make(map[int64]int, table.Len())
	for i, ts := range table.Times {
		rowByTime[ts.UnixNano()] = i
	}
	for i, obs := range series {
		if row, ok := rowByTime[obs.Timestamp.UnixNano()]; ok && i < len(derived) {
			out[row] = derived[i]
		}
	}
	return out
}

// unionTimestamps collects the sorted union of timestamps across all
// non-empty series.
func unionTimestamps(seriesByVariable map[string]domain.VariableSeries) []time.Time {
	seen := make(map[int64]time.Time)
	for _, series := range seriesByVariable {
		for _, obs := range series {
			seen[obs.Timestamp.UnixNano()] = obs.Timestamp
		}
	}
	times := make([]time.Time, 0, len(seen))
	for _, ts := range seen {
		times = append(times, ts)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

func sortedKeys(m map[string]domain.VariableSeries) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
