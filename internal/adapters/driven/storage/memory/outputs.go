package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.TableWriter        = (*TableWriter)(nil)
	_ driven.HeaderStore        = (*HeaderStore)(nil)
	_ driven.CurveEncoder       = (*Encoder)(nil)
	_ driven.CurveDecoder       = (*Encoder)(nil)
	_ driven.OutputFactory      = (*OutputFactory)(nil)
	_ driven.CurveSource        = (*CurveSource)(nil)
	_ driven.CurveSourceFactory = (*CurveSourceFactory)(nil)
)

// TableWriter keeps written tables by name.
type TableWriter struct {
	mu     sync.Mutex
	tables map[string][][]float64
	fail   map[string]error
}

// NewTableWriter creates an empty table writer.
func NewTableWriter() *TableWriter {
	return &TableWriter{
		tables: make(map[string][][]float64),
		fail:   make(map[string]error),
	}
}

// FailOn makes writes of the named table return err.
func (w *TableWriter) FailOn(name string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fail[name] = err
}

// WriteTable stores a copy of rows.
func (w *TableWriter) WriteTable(_ context.Context, name string, rows [][]float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fail[name]; err != nil {
		return err
	}
	cp := make([][]float64, len(rows))
	for i, r := range rows {
		cp[i] = append([]float64(nil), r...)
	}
	w.tables[name] = cp
	return nil
}

// Table returns a written table.
func (w *TableWriter) Table(name string) ([][]float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	rows, ok := w.tables[name]
	return rows, ok
}

// Names returns the written table names, sorted.
func (w *TableWriter) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.tables))
	for n := range w.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HeaderStore keeps headers by object index.
type HeaderStore struct {
	mu      sync.Mutex
	headers map[int]domain.Header
}

// NewHeaderStore creates an empty header store.
func NewHeaderStore() *HeaderStore {
	return &HeaderStore{headers: make(map[int]domain.Header)}
}

// ReadHeader returns a copy of the header of object index.
func (s *HeaderStore) ReadHeader(_ context.Context, index int) (*domain.Header, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.headers[index]
	if !ok {
		return nil, fmt.Errorf("%w: no header for object %d", domain.ErrOutputIO, index)
	}
	return &h, nil
}

// WriteHeader stores a copy of h.
func (s *HeaderStore) WriteHeader(_ context.Context, index int, h *domain.Header) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers[index] = *h
	return nil
}

// Delete removes the header of object index.
func (s *HeaderStore) Delete(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.headers, index)
}

// Encoded is one object's curves as handed to the encoder.
type Encoded struct {
	Full    domain.AggregatedCurve
	Sampled domain.AggregatedCurve
	Policy  domain.EncodingPolicy
}

// Encoder records encoded curves and writes a provisional header whose
// lines 2-5 name the field widths.
type Encoder struct {
	mu      sync.Mutex
	headers driven.HeaderStore
	encoded map[int]Encoded
	fail    map[int]error

	// SkipHeader leaves the header of these objects unwritten.
	SkipHeader map[int]bool
}

// NewEncoder creates an encoder writing headers to headers.
func NewEncoder(headers driven.HeaderStore) *Encoder {
	return &Encoder{
		headers:    headers,
		encoded:    make(map[int]Encoded),
		fail:       make(map[int]error),
		SkipHeader: make(map[int]bool),
	}
}

// FailOn makes encoding object index return err.
func (e *Encoder) FailOn(index int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fail[index] = err
}

// Encode records the curves and writes the provisional header.
func (e *Encoder) Encode(
	ctx context.Context,
	index int,
	full, sampled domain.AggregatedCurve,
	policy domain.EncodingPolicy,
) error {
	e.mu.Lock()
	if err := e.fail[index]; err != nil {
		e.mu.Unlock()
		return err
	}
	e.encoded[index] = Encoded{Full: full, Sampled: sampled, Policy: policy}
	skip := e.SkipHeader[index]
	e.mu.Unlock()

	if skip {
		return nil
	}
	h := &domain.Header{Lines: [domain.HeaderLines]string{
		fmt.Sprintf("%d %d", sampled.Len(), full.Len()),
		fmt.Sprintf("full value %d", policy.Full.Value),
		fmt.Sprintf("sampled time %d", policy.Sampled.Time),
		fmt.Sprintf("sampled value %d", policy.Sampled.Value),
		fmt.Sprintf("sampled uncertainty %d", policy.Sampled.Uncertainty),
	}}
	return e.headers.WriteHeader(ctx, index, h)
}

// Encoded returns what was encoded for object index.
func (e *Encoder) Encoded(index int) (Encoded, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	enc, ok := e.encoded[index]
	return enc, ok
}

// Decode returns what was encoded for object index, exactly.
func (e *Encoder) Decode(ctx context.Context, index int, _ []string) (*domain.DecodedObject, error) {
	enc, ok := e.Encoded(index)
	if !ok {
		return nil, fmt.Errorf("%w: object %d not encoded", domain.ErrOutputIO, index)
	}
	h, err := e.headers.ReadHeader(ctx, index)
	if err != nil {
		return nil, err
	}
	return &domain.DecodedObject{Header: h, Policy: enc.Policy, Full: enc.Full, Sampled: enc.Sampled}, nil
}

// OutputFactory hands out one shared set of in-memory writers.
type OutputFactory struct {
	TableWriter  *TableWriter
	HeaderStore  *HeaderStore
	CurveEncoder *Encoder

	mu   sync.Mutex
	dirs []string
}

// NewOutputFactory creates a factory with fresh writers.
func NewOutputFactory() *OutputFactory {
	headers := NewHeaderStore()
	return &OutputFactory{
		TableWriter:  NewTableWriter(),
		HeaderStore:  headers,
		CurveEncoder: NewEncoder(headers),
	}
}

// Tables returns the shared table writer.
func (f *OutputFactory) Tables(dir string) (driven.TableWriter, error) {
	f.record(dir)
	return f.TableWriter, nil
}

// Encoder returns the shared encoder.
func (f *OutputFactory) Encoder(dir string) (driven.CurveEncoder, error) {
	f.record(dir)
	return f.CurveEncoder, nil
}

// Headers returns the shared header store.
func (f *OutputFactory) Headers(dir string) (driven.HeaderStore, error) {
	f.record(dir)
	return f.HeaderStore, nil
}

// Decoder returns the shared encoder.
func (f *OutputFactory) Decoder(dir string) (driven.CurveDecoder, error) {
	f.record(dir)
	return f.CurveEncoder, nil
}

// Dirs returns every directory a writer was requested for.
func (f *OutputFactory) Dirs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.dirs...)
}

func (f *OutputFactory) record(dir string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirs = append(f.dirs, dir)
}

// CurveSource serves fixed raw collections.
type CurveSource struct {
	Raw *driven.RawCollections
	Err error
}

// Load returns the fixed collections.
func (s *CurveSource) Load(ctx context.Context, _ []string) (*driven.RawCollections, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Raw, nil
}

// CurveSourceFactory opens the same source for every directory.
type CurveSourceFactory struct {
	Source *CurveSource
	Opened []string
}

// NewCurveSourceFactory creates a factory serving raw.
func NewCurveSourceFactory(raw *driven.RawCollections) *CurveSourceFactory {
	return &CurveSourceFactory{Source: &CurveSource{Raw: raw}}
}

// Open records dir and returns the source.
func (f *CurveSourceFactory) Open(dir string) (driven.CurveSource, error) {
	f.Opened = append(f.Opened, dir)
	return f.Source, nil
}
