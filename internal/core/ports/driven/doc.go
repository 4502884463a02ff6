// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - SurveyLoader: Parses the survey configuration document
//   - CadenceReader: Reads one filter's cadence file
//   - CurveSourceFactory / CurveSource: Supplies the simulator's raw flux collections
//   - OutputFactory: Opens the writers below for an output directory
//   - TableWriter: Writes human-readable tables
//   - CurveEncoder / CurveDecoder: Reduced-precision codec for aggregated curves
//   - HeaderStore: Per-object metadata header persistence
//   - ConfigStore: Tool settings
//   - ChangeWatcher: File change notifications for watch mode
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - RunLedger: Records runs and per-object failures (SQLite)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
