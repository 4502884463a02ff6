package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, 1, Width8.Bytes())
	assert.Equal(t, 2, Width16.Bytes())
	assert.Equal(t, 4, Width32.Bytes())
	assert.Equal(t, uint64(255), Width8.Levels())
	assert.Equal(t, uint64(65535), Width16.Levels())
	assert.Equal(t, uint64(4294967295), Width32.Levels())
	assert.False(t, Width(12).IsValid())
}

func TestParseWidth(t *testing.T) {
	w, err := ParseWidth(16)
	require.NoError(t, err)
	assert.Equal(t, Width16, w)

	for _, bits := range []int{0, 7, 64, 264, -8} {
		_, err := ParseWidth(bits)
		assert.True(t, errors.Is(err, ErrConfiguration), "bits=%d", bits)
	}
}

func TestDefaultEncodingPolicy(t *testing.T) {
	p := DefaultEncodingPolicy()

	require.NoError(t, p.Validate())
	assert.Equal(t, Width8, p.Full.Value)
	assert.Equal(t, Width16, p.Sampled.Time)
	assert.Equal(t, Width8, p.Sampled.Value)
	assert.Equal(t, Width8, p.Sampled.Uncertainty)
}

func TestEncodingPolicy_Validate(t *testing.T) {
	p := DefaultEncodingPolicy()
	p.Sampled.Uncertainty = 0
	assert.True(t, errors.Is(p.Validate(), ErrConfiguration))

	p = DefaultEncodingPolicy()
	p.Full.Time = Width16
	assert.True(t, errors.Is(p.Validate(), ErrConfiguration))
}
