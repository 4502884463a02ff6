package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// HeaderLines is the number of lines in a per-object metadata header.
const HeaderLines = 5

// Header is the five-line metadata header written next to each object's
// compressed curves. Line 1 carries the sample counts; lines 2-5 carry the
// decode ranges written by the codec and are treated as opaque text.
type Header struct {
	Lines [HeaderLines]string
}

// ParseHeader splits raw header content into its first five lines.
// Lines are kept byte-for-byte, minus the newline terminator.
func ParseHeader(data []byte) (*Header, error) {
	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, ErrHeaderShort
	}
	lines := strings.Split(text, "\n")
	if len(lines) < HeaderLines {
		return nil, ErrHeaderShort
	}
	h := &Header{}
	copy(h.Lines[:], lines[:HeaderLines])
	return h, nil
}

// Bytes renders the header, one newline-terminated line each.
func (h *Header) Bytes() []byte {
	var b strings.Builder
	for _, line := range h.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// CountsLine formats header line 1: the per-filter sampled counts followed
// by the full-curve count, space separated. fullCount is the aggregated
// length; every filter has the same number of full steps, so one filter's
// full length is fullCount divided by the number of filters.
func CountsLine(sampledCounts []int, fullCount int) string {
	fields := make([]string, 0, len(sampledCounts)+1)
	for _, n := range sampledCounts {
		fields = append(fields, strconv.Itoa(n))
	}
	fields = append(fields, strconv.Itoa(fullCount))
	return strings.Join(fields, " ")
}

// ParseCountsLine is the inverse of CountsLine.
func ParseCountsLine(line string) (sampledCounts []int, fullCount int, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, 0, ErrHeaderShort
	}
	counts := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, 0, err
		}
		if n < 0 {
			return nil, 0, fmt.Errorf("negative count %d", n)
		}
		counts[i] = n
	}
	return counts[:len(counts)-1], counts[len(counts)-1], nil
}

// DecodedObject is one object's curves read back from compressed output,
// together with the header and the widths it was written with.
type DecodedObject struct {
	Header  *Header
	Policy  EncodingPolicy
	Full    AggregatedCurve
	Sampled AggregatedCurve
}

// Inspection is a decoded object plus the sampled fluxes recovered from its
// magnitudes. Fluxes is nil when no survey baselines were available.
type Inspection struct {
	Index  int
	Object *DecodedObject
	Fluxes [][]float64
}
