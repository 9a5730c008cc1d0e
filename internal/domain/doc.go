// Package domain models point-location geophysical time series and the
// static reference data used to assess activity-specific weather risk.
//
// # Data Source
//
// Observations come from NASA Earthdata gridded products (MERRA-2 land
// surface diagnostics, GPM IMERG precipitation, and related collections).
// Each product exposes a set of variables (2m air temperature, total
// precipitation, 10m wind speed, ...) sampled daily at the nearest grid
// cell to a requested coordinate. When a product is unreachable (missing
// credentials, network failure, or a granule that simply does not exist
// for a date) the acquisition layer substitutes a physically-plausible
// synthetic value and tags the observation quality as "simulated".
//
// # Series Cleaning
//
// CleanSeries normalizes a raw per-variable series: observations are sorted
// by timestamp, duplicate (timestamp, variable) pairs are dropped keeping
// the first occurrence, NaN values are forward- then back-filled, and
// values beyond three sample standard deviations of the series mean are
// removed. Outlier filtering is skipped for series with fewer than six
// points, where the sample standard deviation is too noisy to trust.
//
// # Hazards and Activities
//
// A Hazard is a named weather-risk category (extreme heat, strong winds,
// ...) with three ordered severity tiers, each carrying its own threshold.
// An ActivityProfile maps a planned activity to the hazards relevant to it.
// Both tables are static reference data and are never mutated at runtime.
// Each catalog variable carries a VariableFamily tag resolved at definition
// time, so hazard-to-variable matching is a typed lookup rather than
// substring matching on variable names.
package domain
