// Package domain defines the core entities of the light-curve pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FilterCadence: Observation epochs and limiting depths for one filter
//   - SurveyConfiguration: Filters, cadences and the global time origin
//   - LightCurve / Collection: Per-object, per-filter time series
//   - AggregatedCollection: Per-object concatenation across filters
//   - EncodingPolicy: Reduced-precision widths for each encoded field
//   - Header: The five-line per-object metadata header
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
