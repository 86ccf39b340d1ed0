package lib

import "math"
import "strconv"

// HistogramInt64 statistical histogram over int64 samples, bucketed
// into fixed width intervals between [from, till). Samples below
// `from` and at or above `till` land in the first and last bucket.
type HistogramInt64 struct {
	n         int64
	minval    int64
	maxval    int64
	sum       int64
	sumsq     float64
	histogram []int64
	init      bool
	from      int64
	till      int64
	width     int64
}

// NewHistogramInt64 return a new histogram object.
func NewHistogramInt64(from, till, width int64) *HistogramInt64 {
	from = (from / width) * width
	till = (till / width) * width
	h := &HistogramInt64{from: from, till: till, width: width}
	h.histogram = make([]int64, 1+((till-from)/width)+1)
	return h
}

// Add a sample to this histogram.
func (h *HistogramInt64) Add(sample int64) {
	h.n++
	h.sum += sample
	h.sumsq += float64(sample) * float64(sample)
	if !h.init || sample < h.minval {
		h.minval, h.init = sample, true
	}
	if h.maxval < sample {
		h.maxval = sample
	}

	switch {
	case sample < h.from:
		h.histogram[0]++
	case sample >= h.till:
		h.histogram[len(h.histogram)-1]++
	default:
		h.histogram[((sample-h.from)/h.width)+1]++
	}
}

// Min return minimum value from sample.
func (h *HistogramInt64) Min() int64 {
	return h.minval
}

// Max return maximum value from sample.
func (h *HistogramInt64) Max() int64 {
	return h.maxval
}

// Samples return total number of samples in the set.
func (h *HistogramInt64) Samples() int64 {
	return h.n
}

// Sum return the sum of all sample values.
func (h *HistogramInt64) Sum() int64 {
	return h.sum
}

// Mean return the average value of all samples.
func (h *HistogramInt64) Mean() int64 {
	if h.n == 0 {
		return 0
	}
	return int64(float64(h.sum) / float64(h.n))
}

// SD return by how much the samples differ from the mean value.
func (h *HistogramInt64) SD() int64 {
	if h.n == 0 {
		return 0
	}
	nF, meanF := float64(h.n), float64(h.sum)/float64(h.n)
	variance := (h.sumsq / nF) - (meanF * meanF)
	if variance < 0 {
		return 0
	}
	return int64(math.Sqrt(variance))
}

// Stats return cumulative counts, keyed by the lower bound of each
// bucket upto the last non-empty bucket, which is keyed as "+".
func (h *HistogramInt64) Stats() map[string]int64 {
	m := make(map[string]int64)
	last := -1
	for i := len(h.histogram) - 1; i >= 0; i-- {
		if h.histogram[i] > 0 {
			last = i
			break
		}
	}
	cumm := int64(0)
	for j := 0; j <= last; j++ {
		cumm += h.histogram[j]
		if j == last {
			m["+"] = cumm
			continue
		}
		m[strconv.Itoa(int(h.from+(int64(j)*h.width)))] = cumm
	}
	return m
}

// Fullstats includes samples, min, max, mean and deviation along with
// the histogram from Stats().
func (h *HistogramInt64) Fullstats() map[string]interface{} {
	hmap := make(map[string]interface{})
	for k, v := range h.Stats() {
		hmap[k] = v
	}
	return map[string]interface{}{
		"samples":     h.Samples(),
		"min":         h.Min(),
		"max":         h.Max(),
		"mean":        h.Mean(),
		"stddeviance": h.SD(),
		"histogram":   hmap,
	}
}
