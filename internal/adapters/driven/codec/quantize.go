package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

// Range is the closed interval a field is quantised over.
type Range struct {
	Lo float64
	Hi float64
}

// RangeOf returns the range of the finite values in v.
// An empty or all non-finite slice yields the zero range.
func RangeOf(v []float64) Range {
	r := Range{}
	found := false
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		if !found {
			r = Range{Lo: x, Hi: x}
			found = true
			continue
		}
		r.Lo = math.Min(r.Lo, x)
		r.Hi = math.Max(r.Hi, x)
	}
	return r
}

// Step returns the spacing between adjacent quantisation levels.
func (r Range) Step(w domain.Width) float64 {
	return (r.Hi - r.Lo) / float64(w.Levels())
}

// Quantize maps x onto [0, w.Levels()].
func Quantize(x float64, r Range, w domain.Width) uint64 {
	levels := w.Levels()
	switch {
	case math.IsNaN(x):
		return 0
	case x >= r.Hi:
		if r.Hi == r.Lo {
			return 0
		}
		return levels
	case x <= r.Lo:
		return 0
	}
	q := math.Round((x - r.Lo) / (r.Hi - r.Lo) * float64(levels))
	if q > float64(levels) {
		return levels
	}
	return uint64(q)
}

// Dequantize is the inverse of Quantize, up to half a Step.
func Dequantize(q uint64, r Range, w domain.Width) float64 {
	if r.Hi == r.Lo {
		return r.Lo
	}
	return r.Lo + float64(q)/float64(w.Levels())*(r.Hi-r.Lo)
}

// appendQuantized appends the encoded words of v.
func appendQuantized(dst []byte, v []float64, r Range, w domain.Width) []byte {
	for _, x := range v {
		q := Quantize(x, r, w)
		switch w {
		case domain.Width8:
			dst = append(dst, byte(q))
		case domain.Width16:
			dst = binary.LittleEndian.AppendUint16(dst, uint16(q))
		case domain.Width32:
			dst = binary.LittleEndian.AppendUint32(dst, uint32(q))
		}
	}
	return dst
}

// readQuantized decodes n words of width w from src.
func readQuantized(src []byte, n int, r Range, w domain.Width) ([]float64, []byte, error) {
	if n < 0 || n > len(src)/w.Bytes() {
		return nil, nil, fmt.Errorf("need %d words of %d bytes, have %d bytes", n, w.Bytes(), len(src))
	}
	size := n * w.Bytes()
	out := make([]float64, n)
	for k := range out {
		var q uint64
		switch w {
		case domain.Width8:
			q = uint64(src[k])
		case domain.Width16:
			q = uint64(binary.LittleEndian.Uint16(src[2*k:]))
		case domain.Width32:
			q = uint64(binary.LittleEndian.Uint32(src[4*k:]))
		}
		out[k] = Dequantize(q, r, w)
	}
	return out, src[size:], nil
}

// formatRange renders a header range line "lo hi bits".
func formatRange(r Range, w domain.Width) string {
	return strconv.FormatFloat(r.Lo, 'g', -1, 64) + " " +
		strconv.FormatFloat(r.Hi, 'g', -1, 64) + " " +
		strconv.Itoa(int(w))
}

// parseRange is the inverse of formatRange.
func parseRange(line string) (Range, domain.Width, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Range{}, 0, fmt.Errorf("range line %q: want 3 fields", line)
	}
	lo, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Range{}, 0, fmt.Errorf("range line %q: %w", line, err)
	}
	hi, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Range{}, 0, fmt.Errorf("range line %q: %w", line, err)
	}
	bits, err := strconv.Atoi(fields[2])
	if err != nil {
		return Range{}, 0, fmt.Errorf("range line %q: %w", line, err)
	}
	w, err := domain.ParseWidth(bits)
	if err != nil {
		return Range{}, 0, err
	}
	return Range{Lo: lo, Hi: hi}, w, nil
}
