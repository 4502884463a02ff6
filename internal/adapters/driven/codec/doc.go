// Package codec implements the reduced-precision light-curve codec.
//
// Each field of an aggregated curve is quantised linearly between its
// minimum and maximum into unsigned 8, 16 or 32-bit little-endian words.
// Non-finite samples are clamped to the ends of the range.
//
// Per object i three files are written:
//
//   - comp_full_<i>.bin: full-curve magnitudes
//   - comp_sampled_<i>.bin: sampled times, then magnitudes, then uncertainties
//   - comp_p_<i>.dat: the metadata header
//
// Header lines 2-5 hold "lo hi bits" for the full magnitudes, sampled
// times, sampled magnitudes and sampled uncertainties. Line 1 holds the
// sample counts and is rewritten by the compressed writer.
package codec
