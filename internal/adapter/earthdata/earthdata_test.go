package earthdata

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(fill float64, values map[string][]float64) gridDocument {
	return gridDocument{
		Lat:       []float64{39.5, 40.0, 40.5},
		Lon:       []float64{-74.5, -74.0, -73.5},
		FillValue: fill,
		Values:    values,
	}
}

func writeGranule(t *testing.T, doc gridDocument) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "granule.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestExtractNearest_PicksClosestCell(t *testing.T) {
	plane := make([]float64, 9)
	for i := range plane {
		plane[i] = float64(i)
	}
	path := writeGranule(t, testGrid(0, map[string][]float64{"T2M": plane}))

	// (40.1, -74.1) is nearest to lat index 1, lon index 1 -> cell 4.
	value, err := extractNearest(path, "T2M", 40.1, -74.1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, value)
}

func TestExtractNearest_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		fill  float64
		value float64
	}{
		{"fill value", -9999, -9999},
		{"huge magnitude", 0, 1e12},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plane := make([]float64, 9)
			plane[4] = tc.value
			path := writeGranule(t, testGrid(tc.fill, map[string][]float64{"T2M": plane}))

			_, err := extractNearest(path, "T2M", 40.0, -74.0)
			assert.ErrorIs(t, err, errValueInvalid)
		})
	}
}

func TestExtractNearest_MissingVariable(t *testing.T) {
	path := writeGranule(t, testGrid(0, map[string][]float64{"T2M": make([]float64, 9)}))

	_, err := extractNearest(path, "PRECTOT", 40.0, -74.0)
	assert.Error(t, err)
}

func TestExtractNearest_PlaneSizeMismatch(t *testing.T) {
	path := writeGranule(t, testGrid(0, map[string][]float64{"T2M": make([]float64, 5)}))

	_, err := extractNearest(path, "T2M", 40.0, -74.0)
	assert.Error(t, err)
}

func newTestClient(t *testing.T, handler http.Handler) (*MERRA2Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewMERRA2Client(&Credentials{Username: "u", Password: "p"}, 5*time.Second, slog.Default())
	c.baseURL = srv.URL
	return c, srv
}

func TestMERRA2Fetch_ExtractsValue(t *testing.T) {
	plane := make([]float64, 9)
	plane[4] = 298.15

	var hits atomic.Int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "u", user)
		assert.Equal(t, "p", pass)
		json.NewEncoder(w).Encode(testGrid(0, map[string][]float64{"T2M": plane})) //nolint:errcheck
	}))

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	value, err := c.Fetch(context.Background(), "T2M", 40.0, -74.0, date)
	require.NoError(t, err)
	assert.Equal(t, 298.15, value)
	assert.Equal(t, int64(1), hits.Load())
}

func TestMERRA2Fetch_ResolvedDateShortCircuits(t *testing.T) {
	var hits atomic.Int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := c.Fetch(context.Background(), "T2M", 40.0, -74.0, date)
	assert.ErrorIs(t, err, ErrNotAvailable)
	firstRound := hits.Load()
	assert.Equal(t, int64(2), firstRound) // both candidate streams tried

	// Second fetch for the same date must not touch the network again.
	_, err = c.Fetch(context.Background(), "T2M", 40.0, -74.0, date)
	assert.ErrorIs(t, err, ErrNotAvailable)
	assert.Equal(t, firstRound, hits.Load())
}

func TestMERRA2Fetch_TriesSecondStreamOnFailure(t *testing.T) {
	plane := make([]float64, 9)
	plane[4] = 301.0

	var hits atomic.Int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(testGrid(0, map[string][]float64{"T2M": plane})) //nolint:errcheck
	}))

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	value, err := c.Fetch(context.Background(), "T2M", 40.0, -74.0, date)
	require.NoError(t, err)
	assert.Equal(t, 301.0, value)
	assert.Equal(t, int64(2), hits.Load())
}

func TestMERRA2Fetch_NilCredentials(t *testing.T) {
	c := NewMERRA2Client(nil, time.Second, slog.Default())

	_, err := c.Fetch(context.Background(), "T2M", 40.0, -74.0, time.Now())
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestIMERGFetch_AlwaysNotAvailable(t *testing.T) {
	c := NewIMERGClient()
	_, err := c.Fetch(context.Background(), "precipitationCal", 40.0, -74.0, time.Now())
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestLoadCredentials_MissingFileIsNotError(t *testing.T) {
	creds, err := LoadCredentials(filepath.Join(t.TempDir(), "no-such-netrc"))
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestLoadCredentials_ParsesEarthdataMachine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netrc")
	content := "machine urs.earthdata.nasa.gov\nlogin alice\npassword s3cret\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "alice", creds.Username)
	assert.Equal(t, "s3cret", creds.Password)
}

func TestLoadCredentials_NoEarthdataMachine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netrc")
	content := "machine example.com\nlogin bob\npassword pw\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Nil(t, creds)
}
