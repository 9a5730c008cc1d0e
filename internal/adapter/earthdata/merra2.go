// Package earthdata implements source clients for NASA Earthdata gridded
// products. Each client attempts a small set of candidate granule locators
// for a date and reports ErrNotAvailable when none yields a usable value;
// the acquisition layer then falls back to synthetic data.
package earthdata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

// ErrNotAvailable reports that no real observation could be produced for the
// requested date. It is the only error source clients surface; transient
// per-attempt failures are retried internally and never escape.
var ErrNotAvailable = errors.New("observation not available")

// maxDownloadAttempts bounds granule download attempts per date across all
// candidate locators.
const maxDownloadAttempts = 3

// defaultMERRA2BaseURL is the GES DISC archive root for MERRA-2.
const defaultMERRA2BaseURL = "https://goldsmr4.gesdisc.eosdis.nasa.gov/data"

// MERRA2Client fetches MERRA-2 land surface diagnostics. A per-date resolved
// set ensures each (product, date) is attempted at most once per session:
// once a date is resolved, whether by success or exhaustion, later calls for it
// short-circuit to ErrNotAvailable so the caller synthesizes immediately.
type MERRA2Client struct {
	httpClient *http.Client
	creds      *Credentials
	baseURL    string
	logger     *slog.Logger

	mu       sync.Mutex
	resolved map[string]bool
}

// NewMERRA2Client creates a MERRA-2 source client. creds may be nil, in
// which case every fetch reports ErrNotAvailable.
func NewMERRA2Client(creds *Credentials, timeout time.Duration, logger *slog.Logger) *MERRA2Client {
	return &MERRA2Client{
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		baseURL:    defaultMERRA2BaseURL,
		logger:     logger,
		resolved:   make(map[string]bool),
	}
}

// Fetch attempts to retrieve one real observation for the variable at the
// nearest grid cell to (lat, lon) on the given date.
func (c *MERRA2Client) Fetch(ctx context.Context, variable string, lat, lon float64, date time.Time) (float64, error) {
	dateKey := "merra2_" + date.Format("20060102")

	c.mu.Lock()
	already := c.resolved[dateKey]
	c.mu.Unlock()
	if already {
		return 0, ErrNotAvailable
	}

	if c.creds == nil {
		c.logger.Warn("no earthdata credentials available, using simulated data")
		return 0, ErrNotAvailable
	}

	value, err := c.tryCandidates(ctx, variable, lat, lon, date)

	c.mu.Lock()
	c.resolved[dateKey] = true
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("all merra-2 locators failed", "date", date.Format("2006-01-02"), "variable", variable)
		return 0, ErrNotAvailable
	}
	return value, nil
}

// tryCandidates walks the candidate locators, downloading and extracting
// until one yields a valid value or the attempt budget is spent.
func (c *MERRA2Client) tryCandidates(ctx context.Context, variable string, lat, lon float64, date time.Time) (float64, error) {
	attempts := 0
	for _, url := range c.candidateURLs(date) {
		if attempts >= maxDownloadAttempts {
			break
		}
		attempts++

		value, err := c.fetchOne(ctx, url, variable, lat, lon)
		if err != nil {
			c.logger.Debug("merra-2 locator failed", "url", url, "error", err)
			continue
		}
		c.logger.Info("extracted merra-2 value", "variable", variable, "value", value)
		return value, nil
	}
	return 0, ErrNotAvailable
}

// fetchOne downloads one granule, extracts the nearest cell, and removes the
// temp file regardless of outcome.
func (c *MERRA2Client) fetchOne(ctx context.Context, url, variable string, lat, lon float64) (float64, error) {
	path, err := downloadGranule(ctx, c.httpClient, url, c.creds)
	if err != nil {
		return 0, err
	}
	defer os.Remove(path)

	return extractNearest(path, variable, lat, lon)
}

// candidateURLs returns the granule locators to try for a date: the 400
// stream plus the 401 reprocessing stream.
func (c *MERRA2Client) candidateURLs(date time.Time) []string {
	urls := make([]string, 0, 2)
	for _, stream := range []string{"400", "401"} {
		urls = append(urls, fmt.Sprintf(
			"%s/MERRA2/M2T1NXLND.5.12.4/%04d/%02d/MERRA2.%s.tavg1_2d_lnd_Nx.%04d%02d%02d.nc4.json",
			c.baseURL, date.Year(), int(date.Month()), stream,
			date.Year(), int(date.Month()), date.Day(),
		))
	}
	return urls
}

// IMERGClient is the catalog placeholder for GPM IMERG precipitation. Real
// IMERG access is not implemented; every fetch reports ErrNotAvailable so
// the series is fully synthesized.
type IMERGClient struct{}

// NewIMERGClient creates the IMERG placeholder client.
func NewIMERGClient() *IMERGClient {
	return &IMERGClient{}
}

// Fetch always reports ErrNotAvailable.
func (c *IMERGClient) Fetch(_ context.Context, _ string, _, _ float64, _ time.Time) (float64, error) {
	return 0, ErrNotAvailable
}
