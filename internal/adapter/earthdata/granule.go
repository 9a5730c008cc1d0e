package earthdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
)

// maxValidMagnitude rejects fill values that survive decoding; real
// geophysical quantities never approach this.
const maxValidMagnitude = 1e10

// errValueInvalid marks a grid cell whose value is flagged, NaN, or out of
// physical range.
var errValueInvalid = errors.New("grid cell value invalid")

// gridDocument is the decoded form of a granule subset response: coordinate
// axes plus a [lat][lon] value plane per variable.
type gridDocument struct {
	Lat       []float64            `json:"lat"`
	Lon       []float64            `json:"lon"`
	FillValue float64              `json:"fill_value"`
	Values    map[string][]float64 `json:"values"` // row-major [lat*lon]
}

// downloadGranule streams a granule subset to a temp file and returns its
// path. The caller owns removal of the file. Any failure removes the partial
// download before returning.
func downloadGranule(ctx context.Context, client *http.Client, url string, creds *Credentials) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if creds != nil {
		req.SetBasicAuth(creds.Username, creds.Password)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("granule request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("granule download: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "earthdata-granule-*.json")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write granule: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close granule: %w", err)
	}
	return tmp.Name(), nil
}

// extractNearest decodes a granule file and returns the value of the grid
// cell whose coordinates are closest to (lat, lon). Nearest-neighbor, not
// interpolated.
func extractNearest(path, variable string, lat, lon float64) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read granule: %w", err)
	}

	var doc gridDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("decode granule: %w", err)
	}
	if len(doc.Lat) == 0 || len(doc.Lon) == 0 {
		return 0, errors.New("granule missing coordinate axes")
	}

	plane, ok := doc.Values[variable]
	if !ok {
		return 0, fmt.Errorf("variable %q not in granule", variable)
	}
	if len(plane) != len(doc.Lat)*len(doc.Lon) {
		return 0, fmt.Errorf("variable %q plane has %d cells, want %d", variable, len(plane), len(doc.Lat)*len(doc.Lon))
	}

	latIdx := nearestIndex(doc.Lat, lat)
	lonIdx := nearestIndex(doc.Lon, lon)
	value := plane[latIdx*len(doc.Lon)+lonIdx]

	if math.IsNaN(value) || math.Abs(value) > maxValidMagnitude {
		return 0, errValueInvalid
	}
	if doc.FillValue != 0 && value == doc.FillValue {
		return 0, errValueInvalid
	}
	return value, nil
}

// nearestIndex returns the index of the coordinate closest to target.
func nearestIndex(coords []float64, target float64) int {
	best := 0
	bestDist := math.Abs(coords[0] - target)
	for i, c := range coords[1:] {
		if d := math.Abs(c - target); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best
}
