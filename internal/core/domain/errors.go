package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent pipeline failures.
// Infrastructure adapters wrap these so callers can classify with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConfiguration indicates a malformed or incomplete survey configuration.
	// Fatal: the run aborts before any output is produced.
	ErrConfiguration = errors.New("configuration error")

	// ErrCadenceRead indicates a cadence file could not be read or was truncated.
	// Fatal: aggregation needs every filter present.
	ErrCadenceRead = errors.New("cadence read error")

	// ErrDomain indicates a value outside the domain of a photometric transform,
	// e.g. a non-positive flux. It points at an upstream modelling defect.
	ErrDomain = errors.New("domain error")

	// ErrOutputIO indicates an output file could not be opened, written, or
	// an expected header file is missing. Isolated to the affected object.
	ErrOutputIO = errors.New("output I/O error")

	// Collection Errors.

	// ErrLengthMismatch indicates parallel arrays or per-filter curves
	// that are required to share a length do not.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrCadenceMismatch indicates a sampled curve has more samples than its
	// filter's cadence has epochs.
	ErrCadenceMismatch = errors.New("sampled curve exceeds cadence")

	// ErrHeaderShort indicates a metadata header with fewer than five lines.
	ErrHeaderShort = errors.New("metadata header too short")
)

// ObjectFailure records an error isolated to a single object's output.
type ObjectFailure struct {
	// Index is the object index within the mother collection.
	Index int

	// Stage names the pipeline step that failed (e.g. "uncompressed", "compressed").
	Stage string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (f ObjectFailure) Error() string {
	return fmt.Sprintf("object %d (%s): %v", f.Index, f.Stage, f.Err)
}

// Unwrap returns the underlying error.
func (f ObjectFailure) Unwrap() error {
	return f.Err
}

// WriteReport summarises a writer pass over the catalogue.
type WriteReport struct {
	// Stage names the writer that produced the report.
	Stage string

	// Written counts objects whose output completed.
	Written int

	// Failures lists objects whose output failed.
	Failures []ObjectFailure
}

// OK returns true when no object failed.
func (r *WriteReport) OK() bool {
	return r == nil || len(r.Failures) == 0
}

// Fail records a failure for an object.
func (r *WriteReport) Fail(index int, err error) {
	r.Failures = append(r.Failures, ObjectFailure{Index: index, Stage: r.Stage, Err: err})
}

// Err joins all failures into one error, or returns nil.
func (r *WriteReport) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}
