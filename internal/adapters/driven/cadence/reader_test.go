package cadence

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

func writeCadence(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestParse(t *testing.T) {
	input := "# mjd m5\n59853.1 24.3\n59855.2   24.1\n\n59860.0\t23.9\n"

	epochs, depths, err := Parse(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []float64{59853.1, 59855.2, 59860.0}, epochs)
	assert.Equal(t, []float64{24.3, 24.1, 23.9}, depths)
}

func TestParse_HeaderOnly(t *testing.T) {
	epochs, depths, err := Parse(context.Background(), strings.NewReader("mjd m5\n"))

	require.NoError(t, err)
	assert.Empty(t, epochs)
	assert.Empty(t, depths)
}

func TestParse_EmptyStream(t *testing.T) {
	epochs, _, err := Parse(context.Background(), strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, epochs)
}

func TestParse_MalformedStopsReading(t *testing.T) {
	input := "header\n1.0 24.0\n2.0 oops\n3.0 24.0\n"

	epochs, depths, err := Parse(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []float64{1.0}, epochs)
	assert.Equal(t, []float64{24.0}, depths)
}

func TestParse_Truncated(t *testing.T) {
	input := "header\n1.0 24.0\n2.0\n"

	_, _, err := Parse(context.Background(), strings.NewReader(input))

	assert.True(t, errors.Is(err, domain.ErrCadenceRead))
}

func TestParse_ExtraColumnsIgnored(t *testing.T) {
	epochs, depths, err := Parse(context.Background(), strings.NewReader("h\n1 24 0.9 clear\n"))

	require.NoError(t, err)
	assert.Equal(t, []float64{1}, epochs)
	assert.Equal(t, []float64{24}, depths)
}

func TestFileReader_ReadCadence(t *testing.T) {
	dir := t.TempDir()
	writeCadence(t, dir, "g.dat", "time depth\n10 24.5\n12 24.6\n")

	c, err := NewFileReader().ReadCadence(context.Background(), dir, "g")

	require.NoError(t, err)
	assert.Equal(t, "g", c.Filter)
	assert.Equal(t, []float64{10, 12}, c.Epochs)
	assert.Equal(t, []float64{24.5, 24.6}, c.Depths)
}

func TestFileReader_Missing(t *testing.T) {
	_, err := NewFileReader().ReadCadence(context.Background(), t.TempDir(), "z")

	assert.True(t, errors.Is(err, domain.ErrCadenceRead))
}

func TestFileReader_Gzip(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "r.dat.gz"))
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte("header\n5 23.0\n6 23.5\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	c, err := NewFileReader().ReadCadence(context.Background(), dir, "r")

	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6}, c.Epochs)
}

func TestPath_PrefersPlain(t *testing.T) {
	dir := t.TempDir()
	writeCadence(t, dir, "i.dat", "h\n")
	writeCadence(t, dir, "i.dat.gz", "")

	assert.Equal(t, filepath.Join(dir, "i.dat"), Path(dir, "i"))
	assert.Equal(t, filepath.Join(dir, "y.dat"), Path(dir, "y"))
}

func TestPath_Prefix(t *testing.T) {
	dir := t.TempDir()
	writeCadence(t, dir, "lsst_g.dat", "h\n")
	writeCadence(t, dir, "lsst_r.dat.gz", "")
	prefix := filepath.Join(dir, "lsst_")

	assert.Equal(t, filepath.Join(dir, "lsst_g.dat"), Path(prefix, "g"))
	assert.Equal(t, filepath.Join(dir, "lsst_r.dat.gz"), Path(prefix, "r"))
	assert.Equal(t, filepath.Join(dir, "g.dat"), Path(dir+string(filepath.Separator), "g"))
	assert.Equal(t, "g.dat", Path("", "g"))
}

func TestFileReader_ReadCadencePrefix(t *testing.T) {
	dir := t.TempDir()
	writeCadence(t, dir, "lsst_i.dat", "mjd m5\n59000 24.5\n59001 24.2\n")

	c, err := NewFileReader().ReadCadence(context.Background(), filepath.Join(dir, "lsst_"), "i")

	require.NoError(t, err)
	assert.Equal(t, "i", c.Filter)
	assert.Equal(t, []float64{59000, 59001}, c.Epochs)
	assert.Equal(t, []float64{24.5, 24.2}, c.Depths)
}
