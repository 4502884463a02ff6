// Package memory provides in-memory implementations of the driven ports.
// They back the service and CLI tests; nothing is persisted.
package memory
