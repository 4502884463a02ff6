// Package services implements the driving port interfaces.
// Services contain the core pipeline logic and orchestrate
// calls to driven ports (adapters).
//
// The pipeline is synchronous: cadences are loaded once, then the
// uncompressed and compressed writer paths each make one pass over the
// catalogue. Per-object output failures are collected, not fatal.
//
// Services are pure Go with no CGO or external dependencies.
package services
