package header

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	ctx := context.Background()

	h := &domain.Header{Lines: [5]string{"8 10", "20.1 22.3 8", "0 3650 16", "20 23 8", "0.01 0.3 8"}}
	require.NoError(t, s.WriteHeader(ctx, 4, h))

	got, err := s.ReadHeader(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, h.Lines, got.Lines)
	assert.Equal(t, filepath.Join(dir, "comp_p_4.dat"), s.Path(4))
}

func TestFileStore_RewritePreservesBytes(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	ctx := context.Background()
	original := "old line\n  spaced  \t tabs\n\n1e-3 7\nlast\r\n"
	require.NoError(t, os.WriteFile(s.Path(0), []byte(original), 0600))

	h, err := s.ReadHeader(ctx, 0)
	require.NoError(t, err)
	h.Lines[0] = "3 5 10"
	require.NoError(t, s.WriteHeader(ctx, 0, h))

	data, err := os.ReadFile(s.Path(0))
	require.NoError(t, err)
	assert.Equal(t, "3 5 10\n  spaced  \t tabs\n\n1e-3 7\nlast\r\n", string(data))
}

func TestFileStore_Missing(t *testing.T) {
	_, err := NewFileStore(t.TempDir()).ReadHeader(context.Background(), 9)

	assert.True(t, errors.Is(err, domain.ErrOutputIO))
}

func TestFileStore_Short(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	require.NoError(t, os.WriteFile(s.Path(1), []byte("a\nb\nc\n"), 0600))

	_, err := s.ReadHeader(context.Background(), 1)

	assert.True(t, errors.Is(err, domain.ErrOutputIO))
	assert.True(t, errors.Is(err, domain.ErrHeaderShort))
}

func TestFileStore_WriteNoTempLeft(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.WriteHeader(context.Background(), 2, &domain.Header{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "comp_p_2.dat", entries[0].Name())
}
