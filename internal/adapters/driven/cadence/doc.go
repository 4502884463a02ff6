// Package cadence reads per-filter survey cadence files.
//
// A cadence file is plain text: one header line, which is discarded,
// followed by whitespace-separated "epoch depth" rows. Files may be
// gzip-compressed (detected by magic number or a .gz suffix).
package cadence
