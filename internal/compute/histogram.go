package compute

import (
	"github.com/slide-archive/histogramd/internal/domain"
)

// Options selects how a histogram is binned.
type Options struct {
	// Label excludes zero-valued pixels from the computation
	Label bool
	// Bitmask counts set bits per bit position instead of binning values
	Bitmask bool
	// Bins is the bin count for data wider than 8 bits
	Bins int
}

// Result is the computed histogram in its wire form.
type Result struct {
	Label    bool      `json:"label"`
	Bitmask  bool      `json:"bitmask"`
	Bins     int       `json:"bins"`
	Hist     []int64   `json:"hist"`
	BinEdges []float64 `json:"binEdges"`
}

// Histogram bins the pixel values.
//
// 8-bit data gets unit-width bins aligned to the observed range, so
// every distinct value lands in its own bin: edges run from min to
// max+1 inclusive. Wider data gets Bins equal-width bins spanning
// [min, max], with the right-most bin closed. In bitmask mode each
// output entry counts pixels with that bit position set, preceded by a
// zero-pixel bucket unless Label already excluded zeros; binEdges then
// holds the bucket positions and has the same length as hist.
func Histogram(pixels *Pixels, opts Options) (*Result, error) {
	if pixels.Float {
		return floatHistogram(pixels.Floats, opts)
	}

	values := pixels.Values
	if opts.Label {
		filtered := make([]uint64, 0, len(values))
		for _, v := range values {
			if v != 0 {
				filtered = append(filtered, v)
			}
		}
		values = filtered
	}

	if len(values) == 0 {
		return nil, domain.NewValidationError("image", "no pixels to histogram")
	}

	result := &Result{
		Label:   opts.Label,
		Bitmask: opts.Bitmask,
		Bins:    opts.Bins,
	}

	if opts.Bitmask {
		result.Hist, result.BinEdges = bitmaskHistogram(values, pixels.BitDepth, opts.Label)
		return result, nil
	}

	lo, hi := minMax(values)

	if pixels.BitDepth == 8 {
		result.Hist, result.BinEdges = unitHistogram(values, lo, hi)
		return result, nil
	}

	if opts.Bins <= 0 {
		return nil, domain.NewValidationError("bins", "bins must be positive for non-8-bit data")
	}
	samples := make([]float64, len(values))
	for i, v := range values {
		samples[i] = float64(v)
	}
	result.Hist, result.BinEdges = rangeHistogram(samples, float64(lo), float64(hi), opts.Bins)
	return result, nil
}

// floatHistogram bins signed-integer and floating-point samples. Bit
// positions are not defined for them, so bitmask mode is rejected.
func floatHistogram(values []float64, opts Options) (*Result, error) {
	if opts.Bitmask {
		return nil, domain.NewValidationError("bitmask", "bitmask requires unsigned integer pixel data")
	}

	if opts.Label {
		filtered := make([]float64, 0, len(values))
		for _, v := range values {
			if v != 0 {
				filtered = append(filtered, v)
			}
		}
		values = filtered
	}
	if len(values) == 0 {
		return nil, domain.NewValidationError("image", "no pixels to histogram")
	}
	if opts.Bins <= 0 {
		return nil, domain.NewValidationError("bins", "bins must be positive for non-8-bit data")
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	result := &Result{
		Label:   opts.Label,
		Bitmask: opts.Bitmask,
		Bins:    opts.Bins,
	}
	result.Hist, result.BinEdges = rangeHistogram(values, lo, hi, opts.Bins)
	return result, nil
}

func minMax(values []uint64) (uint64, uint64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// unitHistogram bins 8-bit values into one bin per distinct value in
// the observed range. Edges are min..max+1, one more than the bins.
func unitHistogram(values []uint64, lo, hi uint64) ([]int64, []float64) {
	hist := make([]int64, hi-lo+1)
	for _, v := range values {
		hist[v-lo]++
	}

	edges := make([]float64, len(hist)+1)
	for i := range edges {
		edges[i] = float64(lo) + float64(i)
	}
	return hist, edges
}

// rangeHistogram bins values into equal-width bins over [lo, hi]. A
// value equal to hi belongs to the last bin. Degenerate ranges expand
// by half a unit either side so a constant image still bins.
func rangeHistogram(values []float64, lo, hi float64, bins int) ([]int64, []float64) {
	min := lo
	max := hi
	if min == max {
		min -= 0.5
		max += 0.5
	}

	width := (max - min) / float64(bins)
	hist := make([]int64, bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		hist[idx]++
	}

	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	edges[bins] = max
	return hist, edges
}

// bitmaskHistogram counts pixels per set bit position. Without label
// mode the first bucket counts zero-valued pixels and the bit buckets
// shift up by one.
func bitmaskHistogram(values []uint64, bitDepth int, label bool) ([]int64, []float64) {
	offset := 1
	if label {
		offset = 0
	}

	hist := make([]int64, bitDepth+offset)
	if !label {
		for _, v := range values {
			if v == 0 {
				hist[0]++
			}
		}
	}

	for bit := 0; bit < bitDepth; bit++ {
		mask := uint64(1) << bit
		var count int64
		for _, v := range values {
			if v&mask != 0 {
				count++
			}
		}
		hist[bit+offset] = count
	}

	edges := make([]float64, len(hist))
	start := 0
	if label {
		start = 1
	}
	for i := range edges {
		edges[i] = float64(start + i)
	}
	return hist, edges
}
