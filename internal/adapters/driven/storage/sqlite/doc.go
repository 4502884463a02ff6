// Package sqlite provides the SQLite-backed run ledger.
//
// The database lives at <data dir>/ledger.db (default ~/.lcsynth/data).
// Schema changes are applied from the embedded migrations package, each
// numbered file once, tracked in schema_migrations.
package sqlite
