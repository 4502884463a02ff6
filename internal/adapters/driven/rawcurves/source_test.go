package rawcurves

import (
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

func writeDump(t *testing.T, dir string, v domain.Variant, filter string, i int, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Name(v, filter, i)), []byte(body), 0600))
}

func TestParse(t *testing.T) {
	t.Run("two columns", func(t *testing.T) {
		c, err := Parse(strings.NewReader("# t flux\n0 1.5\n\n1 2.5\n"))
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1}, c.Time)
		assert.Equal(t, []float64{1.5, 2.5}, c.Value)
		assert.Empty(t, c.Uncertainty)
	})

	t.Run("reference flux", func(t *testing.T) {
		c, err := Parse(strings.NewReader("0 1 10\n3 2 20\n"))
		require.NoError(t, err)
		assert.Equal(t, []float64{10, 20}, c.Uncertainty)
		assert.True(t, c.HasUncertainty())
	})

	t.Run("mixed columns", func(t *testing.T) {
		_, err := Parse(strings.NewReader("0 1 10\n3 2\n"))
		assert.True(t, errors.Is(err, domain.ErrLengthMismatch))

		_, err = Parse(strings.NewReader("0 1\n3 2 20\n"))
		assert.True(t, errors.Is(err, domain.ErrLengthMismatch))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Parse(strings.NewReader("0 x\n"))
		assert.Error(t, err)

		_, err = Parse(strings.NewReader("0\n"))
		assert.Error(t, err)
	})
}

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"g", "r"} {
		for i := 0; i < 2; i++ {
			writeDump(t, dir, domain.VariantFull, f, i, "0 1\n1 2\n2 3\n")
			writeDump(t, dir, domain.VariantSampled, f, i, "5 1 1\n9 2 2\n")
		}
	}

	src, err := NewFactory().Open(dir)
	require.NoError(t, err)
	raw, err := src.Load(context.Background(), []string{"g", "r"})
	require.NoError(t, err)

	assert.Equal(t, 2, raw.Mother.NumCurves())
	require.Len(t, raw.Full, 2)
	require.Len(t, raw.Sampled, 2)
	assert.Equal(t, "r", raw.Full[1].Filter)
	assert.Equal(t, domain.VariantSampled, raw.Sampled[0].Variant)
	assert.Equal(t, 3, raw.Full[0].Curve(1).Len())
	assert.Equal(t, []float64{5, 9}, raw.Sampled[1].Curve(0).Time)
	assert.Equal(t, []float64{1, 2}, raw.Sampled[1].Curve(0).Uncertainty)
}

func TestFileSource_MissingFilterFile(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, domain.VariantFull, "g", 0, "0 1\n")
	writeDump(t, dir, domain.VariantSampled, "g", 0, "0 1\n")

	_, err := NewFileSource(dir).Load(context.Background(), []string{"g", "r"})

	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileSource_Empty(t *testing.T) {
	_, err := NewFileSource(t.TempDir()).Load(context.Background(), []string{"g"})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFactory_OpenMissing(t *testing.T) {
	_, err := NewFactory().Open(filepath.Join(t.TempDir(), "nope"))

	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
