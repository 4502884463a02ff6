package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsLine(t *testing.T) {
	assert.Equal(t, "3 5 10", CountsLine([]int{3, 5}, 10))
	assert.Equal(t, "0 7 4", CountsLine([]int{0, 7}, 4))
	assert.Equal(t, "9", CountsLine(nil, 9))
}

func TestParseCountsLine(t *testing.T) {
	sampled, full, err := ParseCountsLine("3 5 10")

	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, sampled)
	assert.Equal(t, 10, full)

	_, _, err = ParseCountsLine("")
	assert.True(t, errors.Is(err, ErrHeaderShort))

	_, _, err = ParseCountsLine("3 x 10")
	assert.Error(t, err)

	_, _, err = ParseCountsLine("3 -5 10")
	assert.Error(t, err)
}

func TestParseHeader(t *testing.T) {
	data := []byte("8 10\n1.0 2.0\n0 100\n20.5 21.5\n0.01 0.2\n")

	h, err := ParseHeader(data)

	require.NoError(t, err)
	assert.Equal(t, "8 10", h.Lines[0])
	assert.Equal(t, "0.01 0.2", h.Lines[4])
	assert.Equal(t, data, h.Bytes())
}

func TestParseHeader_KeepsCarriageReturns(t *testing.T) {
	data := []byte("1\r\n2\r\n3\r\n4\r\n5\r\n")

	h, err := ParseHeader(data)

	require.NoError(t, err)
	assert.Equal(t, "2\r", h.Lines[1])
	assert.Equal(t, data, h.Bytes())
}

func TestParseHeader_Short(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"one line", "1 2\n"},
		{"four lines", "a\nb\nc\nd\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader([]byte(tt.data))
			assert.True(t, errors.Is(err, ErrHeaderShort))
		})
	}
}

func TestParseHeader_ExtraLinesDropped(t *testing.T) {
	h, err := ParseHeader([]byte("1\n2\n3\n4\n5\n6\n"))

	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n4\n5\n", string(h.Bytes()))
}
