package crspline

import (
	"github.com/npillmayer/coaster"
	"gonum.org/v1/gonum/floats"
)

// CalculateSplineLength samples the whole chain at resolution+1 uniformly
// spaced values of global t (both 0 and 1 included) and approximates the
// arc length by summing the chords between consecutive samples. It records
// the sampled times and the cumulative lengths for distance queries.
//
// Has to be called after every change of the chain's geometry. The
// controller calls it itself when adding or removing segments.
func (c *Controller) CalculateSplineLength() {
	if len(c.segments) == 0 {
		c.times, c.lengths = nil, nil
		c.arcLength = 0
		return
	}
	n := c.resolution + 1
	c.times = make([]float64, n)
	chords := make([]float64, n)
	prev := c.Point(0)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(c.resolution)
		c.times[i] = t
		p := c.Point(t)
		chords[i] = p.Sub(prev).Length() // chords[0] = 0
		prev = p
	}
	c.lengths = floats.CumSum(make([]float64, n), chords)
	c.arcLength = c.lengths[n-1]
	tracer().Debugf("spline length %.4f over %d segments", c.arcLength, len(c.segments))
}

// LengthTable returns copies of the sampled times and cumulative lengths.
func (c *Controller) LengthTable() (times, lengths []float64) {
	times = append([]float64(nil), c.times...)
	lengths = append([]float64(nil), c.lengths...)
	return
}

// findLengthIndex returns the index whose cumulative length matches or is
// closest to length. Binary search over the non-decreasing length table.
func (c *Controller) findLengthIndex(length float64) int {
	left, right := 0, len(c.lengths)-1
	mid := right / 2
	for left <= right {
		mid = (left + right) / 2
		if c.lengths[mid] == length {
			return mid
		}
		if c.lengths[mid] < length { // length is right of mid
			left = mid + 1
		} else { // length is left of mid
			right = mid - 1
		}
	}
	return mid
}

// TimeAtDistance converts a fraction d ∈ [0,1] of the chain's arc length to
// the global parameter t at which that distance has been travelled.
// d is clamped. An empty chain yields 0, a chain of length 0 yields d.
//
// The table entries bracketing the desired length are found by binary search
// and t is interpolated linearly between them. A match exactly on an entry
// other than the first is treated as the right end of its bracket.
func (c *Controller) TimeAtDistance(d float64) float64 {
	if len(c.segments) == 0 || len(c.lengths) < 2 {
		return 0
	}
	if c.arcLength == 0 {
		return coaster.Clamp01(d)
	}
	desired := coaster.Clamp01(d) * c.arcLength
	index := c.findLengthIndex(desired)
	left, right := index, index+1
	if (desired <= c.lengths[index] && index != 0) || right >= len(c.lengths) {
		left, right = index-1, index
	}
	span := c.lengths[right] - c.lengths[left]
	var s float64
	if span > 0 {
		s = coaster.Clamp01((desired - c.lengths[left]) / span)
	}
	return c.times[left] + s*(c.times[right]-c.times[left])
}

// PointAtDistance returns the point at fraction d ∈ [0,1] of the chain's
// arc length.
func (c *Controller) PointAtDistance(d float64) coaster.Vector {
	if len(c.segments) == 0 {
		return coaster.Zero
	}
	return c.Point(c.TimeAtDistance(d))
}
