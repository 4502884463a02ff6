// Package file provides file-based implementations of the configuration ports.
//
// Adapters:
//   - SurveyLoader: survey configuration documents (JSON, TOML or YAML)
//   - ConfigStore: TOML-based tool settings in ~/.lcsynth/config.toml
//
// Environment overrides (LCSYNTH_*) are parsed by ParseEnv.
package file
