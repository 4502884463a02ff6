package memory

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.SurveyLoader  = (*SurveyLoader)(nil)
	_ driven.CadenceReader = (*CadenceReader)(nil)
	_ driven.ChangeWatcher = (*ChangeWatcher)(nil)
)

// SurveyLoader serves survey parameters registered by path.
type SurveyLoader struct {
	docs map[string]domain.SurveyParameters
}

// NewSurveyLoader creates an empty loader.
func NewSurveyLoader() *SurveyLoader {
	return &SurveyLoader{docs: make(map[string]domain.SurveyParameters)}
}

// Add registers params under path.
func (l *SurveyLoader) Add(path string, params domain.SurveyParameters) {
	l.docs[path] = params
}

// Load returns a copy of the parameters registered under path.
func (l *SurveyLoader) Load(path string) (*domain.SurveyParameters, error) {
	p, ok := l.docs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no such document", domain.ErrConfiguration, path)
	}
	return &p, nil
}

// CadenceReader serves cadences registered by filter. Every read returns
// fresh slices, as reading a file would.
type CadenceReader struct {
	cadences map[string]domain.FilterCadence
	fail     map[string]error
}

// NewCadenceReader creates an empty reader.
func NewCadenceReader() *CadenceReader {
	return &CadenceReader{
		cadences: make(map[string]domain.FilterCadence),
		fail:     make(map[string]error),
	}
}

// Add registers a cadence for filter.
func (r *CadenceReader) Add(filter string, epochs, depths []float64) {
	r.cadences[filter] = domain.FilterCadence{Filter: filter, Epochs: epochs, Depths: depths}
}

// FailOn makes reads of filter return err.
func (r *CadenceReader) FailOn(filter string, err error) {
	r.fail[filter] = err
}

// ReadCadence returns a copy of the registered cadence.
func (r *CadenceReader) ReadCadence(_ context.Context, dir, filter string) (domain.FilterCadence, error) {
	if err := r.fail[filter]; err != nil {
		return domain.FilterCadence{}, err
	}
	c, ok := r.cadences[filter]
	if !ok {
		return domain.FilterCadence{}, fmt.Errorf("%w: %s/%s.dat: no such file", domain.ErrCadenceRead, dir, filter)
	}
	return domain.FilterCadence{
		Filter: filter,
		Epochs: append([]float64(nil), c.Epochs...),
		Depths: append([]float64(nil), c.Depths...),
	}, nil
}

// ChangeWatcher replays batches pushed onto Changes.
type ChangeWatcher struct {
	Changes chan []string
	Paths   []string
	Err     error
}

// NewChangeWatcher creates a watcher with a buffered Changes channel.
func NewChangeWatcher() *ChangeWatcher {
	return &ChangeWatcher{Changes: make(chan []string, 8)}
}

// Watch records paths and returns Changes.
func (w *ChangeWatcher) Watch(_ context.Context, paths []string) (<-chan []string, error) {
	if w.Err != nil {
		return nil, w.Err
	}
	w.Paths = append(w.Paths, paths...)
	return w.Changes, nil
}
