package table

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

func TestAppendCell(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, " 0.000000e+00"},
		{24.0, " 2.400000e+01"},
		{-1.5, " -1.500000e+00"},
		{59853.123456789, " 5.985312e+04"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, string(AppendCell(nil, tt.in)))
	}
}

func TestTextWriter_WriteTable(t *testing.T) {
	dir := t.TempDir()
	w := NewTextWriter(dir)

	err := w.WriteTable(context.Background(), "tableg_0.dat", [][]float64{
		{1, 24, 0.1},
		{2, 24.5, 0.2},
	})

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "tableg_0.dat"))
	require.NoError(t, err)
	assert.Equal(t,
		" 1.000000e+00 2.400000e+01 1.000000e-01\n 2.000000e+00 2.450000e+01 2.000000e-01\n",
		string(data))
	assert.Equal(t, dir, w.Dir())
}

func TestTextWriter_Overwrites(t *testing.T) {
	dir := t.TempDir()
	w := NewTextWriter(dir)
	ctx := context.Background()

	require.NoError(t, w.WriteTable(ctx, "t.dat", [][]float64{{1}, {2}, {3}}))
	require.NoError(t, w.WriteTable(ctx, "t.dat", [][]float64{{4}}))

	data, err := os.ReadFile(filepath.Join(dir, "t.dat"))
	require.NoError(t, err)
	assert.Equal(t, " 4.000000e+00\n", string(data))
}

func TestTextWriter_EmptyTable(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, NewTextWriter(dir).WriteTable(context.Background(), "empty.dat", nil))

	info, err := os.Stat(filepath.Join(dir, "empty.dat"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestTextWriter_UnwritableDir(t *testing.T) {
	w := NewTextWriter(filepath.Join(t.TempDir(), "missing"))

	err := w.WriteTable(context.Background(), "x.dat", [][]float64{{1}})

	assert.True(t, errors.Is(err, domain.ErrOutputIO))
}
