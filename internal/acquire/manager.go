// Package acquire orchestrates per-date retrieval of variable series across
// products, degrading to synthetic data so every requested variable always
// yields a complete series.
package acquire

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-intel-service/internal/domain"
	"github.com/couchcryptid/weather-intel-service/internal/observability"
	"github.com/couchcryptid/weather-intel-service/internal/synthetic"
)

// SourceClient fetches one real observation for a variable on a date.
// Implementations report earthdata.ErrNotAvailable (or any other error) when
// no usable value exists; the Manager then synthesizes.
type SourceClient interface {
	Fetch(ctx context.Context, variable string, lat, lon float64, date time.Time) (float64, error)
}

// ProgressFunc receives fractional progress in [0, 1] after each date.
type ProgressFunc func(fraction float64)

// Request describes one multi-variable acquisition.
type Request struct {
	Pairs    []domain.ProductVariable
	Lat      float64
	Lon      float64
	Start    time.Time
	End      time.Time
	Progress ProgressFunc // optional
}

// Manager coordinates source clients, the synthetic generator, and series
// cleaning for one session. Series caches are scoped to the Manager instance
// and dropped with it.
type Manager struct {
	clients          map[string]SourceClient
	synth            *synthetic.Generator
	cache            *fetchCache
	logger           *slog.Logger
	metrics          *observability.Metrics
	maxDailyRequests int
	maxRangeDays     int
}

// Options bound the request volume of one acquisition call.
type Options struct {
	MaxDailyRequests int // per-(product, variable) date budget; default 10
	MaxRangeDays     int // hard cap on the requested range; default 30
	CacheSize        int // fetch-cache entries; default 1000
}

// NewManager creates a Manager. clients maps product keys to their source
// client; unknown product keys in a request are skipped entirely.
func NewManager(clients map[string]SourceClient, synth *synthetic.Generator, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Manager {
	if opts.MaxDailyRequests <= 0 {
		opts.MaxDailyRequests = 10
	}
	if opts.MaxRangeDays <= 0 {
		opts.MaxRangeDays = 30
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1000
	}
	return &Manager{
		clients:          clients,
		synth:            synth,
		cache:            newFetchCache(opts.CacheSize),
		logger:           logger,
		metrics:          metrics,
		maxDailyRequests: opts.MaxDailyRequests,
		maxRangeDays:     opts.MaxRangeDays,
	}
}

// GetMultiVariableData retrieves a cleaned series per requested (product,
// variable) pair. Acquisition never fails: every per-date failure degrades
// to a simulated observation. The only way a key is absent from the result
// is an unrecognized product.
func (m *Manager) GetMultiVariableData(ctx context.Context, req Request) map[string]domain.VariableSeries {
	start := time.Now()
	defer func() {
		m.metrics.AcquisitionSeconds.Observe(time.Since(start).Seconds())
	}()

	totalDays := m.rangeDays(req.Start, req.End)
	totalRequests := len(req.Pairs) * totalDays
	completed := 0

	result := make(map[string]domain.VariableSeries, len(req.Pairs))
	for _, pair := range req.Pairs {
		product, ok := domain.Products[pair.Product]
		if !ok {
			m.logger.Warn("unrecognized product, skipping", "product", pair.Product)
			continue
		}

		series := m.acquireSeries(ctx, product, pair, req, totalRequests, &completed)
		cleaned := domain.CleanSeries(series)
		m.metrics.SeriesPoints.Observe(float64(len(cleaned)))
		result[pair.Key()] = cleaned
	}
	return result
}

// acquireSeries walks the date range for one pair, capped by the daily
// request budget, falling back to synthetic values per date.
func (m *Manager) acquireSeries(ctx context.Context, product domain.Product, pair domain.ProductVariable, req Request, totalRequests int, completed *int) domain.VariableSeries {
	def, ok := product.Variables[pair.Variable]
	if !ok {
		// Variables outside the catalog still get a series; they
		// synthesize with the default family.
		def = domain.VariableDef{Key: pair.Variable, Family: domain.FamilyOther}
	}

	end := m.capEnd(req.Start, req.End)
	series := make(domain.VariableSeries, 0, m.maxDailyRequests)

	recent := make([]float64, 0, m.maxDailyRequests)
	date := req.Start
	for !date.After(end) && len(series) < m.maxDailyRequests {
		obs := m.fetchOrSynthesize(ctx, product, pair, def, req.Lat, req.Lon, date, recent)
		series = append(series, obs)
		recent = append(recent, obs.Value)

		*completed++
		if req.Progress != nil && totalRequests > 0 {
			req.Progress(float64(*completed) / float64(totalRequests))
		}
		date = date.AddDate(0, 0, 1)
	}
	return series
}

// fetchOrSynthesize produces exactly one observation for a date: a cached or
// freshly fetched real value when possible, a synthetic one otherwise. The
// points accumulated so far for the variable serve as the synthetic
// generator's recent values.
func (m *Manager) fetchOrSynthesize(ctx context.Context, product domain.Product, pair domain.ProductVariable, def domain.VariableDef, lat, lon float64, date time.Time, recent []float64) domain.Observation {
	key := pair.Key()

	if value, ok := m.lookupReal(ctx, product, pair, lat, lon, date); ok {
		m.metrics.FetchAttempts.WithLabelValues(pair.Product, "real").Inc()
		return domain.Observation{
			Timestamp:   date,
			VariableKey: key,
			Value:       value,
			Source:      product.ShortName,
			Quality:     domain.QualityReal,
			Lat:         lat,
			Lon:         lon,
		}
	}

	m.metrics.FetchAttempts.WithLabelValues(pair.Product, "simulated").Inc()
	return domain.Observation{
		Timestamp:   date,
		VariableKey: key,
		Value:       m.synth.Generate(def, lat, lon, date, recent),
		Source:      product.ShortName + "_simulated",
		Quality:     domain.QualitySimulated,
		Lat:         lat,
		Lon:         lon,
	}
}

// lookupReal consults the session cache, then the product's source client.
func (m *Manager) lookupReal(ctx context.Context, product domain.Product, pair domain.ProductVariable, lat, lon float64, date time.Time) (float64, bool) {
	cacheKey := fetchCacheKey(pair.Product, pair.Variable, date)
	if value, ok := m.cache.get(cacheKey); ok {
		m.metrics.FetchCacheLookups.WithLabelValues("hit").Inc()
		return value, true
	}
	m.metrics.FetchCacheLookups.WithLabelValues("miss").Inc()

	client, ok := m.clients[pair.Product]
	if !ok {
		return 0, false
	}

	value, err := client.Fetch(ctx, pair.Variable, lat, lon, date)
	if err != nil {
		m.logger.Debug("fetch failed, falling back to simulated",
			"product", pair.Product,
			"variable", pair.Variable,
			"date", date.Format("2006-01-02"),
			"error", err,
		)
		return 0, false
	}

	m.cache.put(cacheKey, value)
	return value, true
}

// rangeDays counts the inclusive days in the request window, capped at the
// configured range limit.
func (m *Manager) rangeDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	if days > m.maxRangeDays {
		return m.maxRangeDays
	}
	return days
}

// capEnd clamps the end date so the window never exceeds the range limit.
func (m *Manager) capEnd(start, end time.Time) time.Time {
	capped := start.AddDate(0, 0, m.maxRangeDays-1)
	if end.After(capped) {
		return capped
	}
	return end
}
