// Package constants provides shared constants for the fpl-tactix application.
package constants

import "time"

// Optimization defaults. Every tunable can be overridden through the
// configuration surface; these are the values applied when unset.
const (
	// DefaultHorizon is the number of future gameweeks projections are
	// summed over.
	DefaultHorizon = 5

	// DefaultGamma is the per-gameweek geometric decay applied to future
	// projections.
	DefaultGamma = 0.85

	// DefaultMaxTransfers bounds how many players may be moved out in a
	// single solve.
	DefaultMaxTransfers = 3

	// DefaultHitPenalty is the points cost of each transfer beyond the
	// free allowance.
	DefaultHitPenalty = 4.0

	// DefaultBenchWeight is the objective weight of a squad member who
	// does not start.
	DefaultBenchWeight = 0.1

	// DefaultInertiaThreshold is the minimum net improvement (in decayed
	// points) required before spending a transfer is recommended over
	// rolling it.
	DefaultInertiaThreshold = 2.0

	// DefaultSolverTimeLimit caps the wall-clock time of an exact solve.
	DefaultSolverTimeLimit = 20 * time.Second

	// DefaultBudgetEpsilon absorbs floating-point rounding on the budget
	// row so exactly-balanced plans are not rejected as infeasible.
	DefaultBudgetEpsilon = 1e-6

	// DefaultTopSuggestions is how many heuristic swap candidates are
	// returned.
	DefaultTopSuggestions = 5
)

// Projection constants.
const (
	// MinFormProjection is the floor applied when estimating a projection
	// from form alone.
	MinFormProjection = 2.0
)

// Numeric tolerances.
const (
	// BinaryThreshold is the rounding threshold applied to solved binary
	// variables; solver values carry numeric slack around 0 and 1.
	BinaryThreshold = 0.5

	// PointsTolerance is the tolerance for comparing projected point totals.
	PointsTolerance = 1e-6
)

// Output format constants.
const (
	// OutputFormatPretty is the human-readable output format.
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the machine-readable output format.
	OutputFormatJSON = "json"
)

// Configuration file constants.
const (
	// DefaultConfigFile is the default configuration file name.
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name.
	ExampleConfigFile = "config.yaml.example"
)

// Server configuration defaults.
const (
	// DefaultServerAddress is the default HTTP listen address for the API.
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for
	// snapshot payloads (1 MB).
	DefaultMaxUploadSizeBytes int64 = 1024 * 1024
)
