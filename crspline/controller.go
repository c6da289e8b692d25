package crspline

import (
	"errors"
	"math"

	"github.com/npillmayer/coaster"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster.spline'
func tracer() tracing.Trace {
	return tracing.Select("coaster.spline")
}

// oppositeDot is the dot product of unit tangents at or below which two
// tangents count as pointing in opposite directions.
const oppositeDot = -0.98

var (
	// ErrNilSegment indicates a nil segment pointer.
	ErrNilSegment = errors.New("segment must not be nil")
	// ErrDegenerateRotation indicates that tangent matching could not find a
	// valid rotation axis. The segment has not been added.
	ErrDegenerateRotation = errors.New("degenerate rotation axis for tangent matching")
	// ErrTooFewSegments indicates that an operation needs more segments.
	ErrTooFewSegments = errors.New("spline has too few segments")
)

// Controller owns an ordered chain of segments and its arc-length table.
// Index 0 is the start of the chain.
type Controller struct {
	segments   []*Segment
	rotation   coaster.Matrix3 // rotation applied to the last parent segment
	times      []float64       // sampled global t
	lengths    []float64       // cumulative chord length at times[i]
	arcLength  float64
	resolution int // number of sampling intervals for the length table
}

// NewController creates an empty chain. resolution is the number of
// intervals the length table samples the whole chain with.
func NewController(resolution int) *Controller {
	if resolution < 1 {
		resolution = 1
	}
	return &Controller{
		rotation:   coaster.Identity3(),
		resolution: resolution,
	}
}

// Resolution returns the sampling resolution of the length table.
func (c *Controller) Resolution() int {
	return c.resolution
}

// SegmentCount returns the number of segments in the chain.
func (c *Controller) SegmentCount() int {
	return len(c.segments)
}

// Segment returns segment i of the chain.
func (c *Controller) Segment(i int) *Segment {
	return c.segments[i]
}

// Back returns the last segment of the chain, or nil for an empty chain.
func (c *Controller) Back() *Segment {
	if len(c.segments) == 0 {
		return nil
	}
	return c.segments[len(c.segments)-1]
}

// ArcLength returns the approximated length of the whole chain, as of the
// last call to CalculateSplineLength.
func (c *Controller) ArcLength() float64 {
	return c.arcLength
}

// AddSegment joins seg onto the end of the chain.
//
// Unless the chain is empty, seg is translated such that its start point p1
// coincides with the end point p2 of the current last segment. Segments which
// are not parents first receive the rotation stored from the last parent.
// If matchTangent is set, seg is rotated beforehand so that its start
// tangent points along the end tangent of the chain; a parent segment
// remembers this rotation for its followers.
//
// If no rotation axis can be found, ErrDegenerateRotation is returned and
// the chain is unchanged. Note that the stored rotation has already been
// reset at that point if seg is a parent.
//
// On success seg is marked as used, its coefficients are calculated with
// the given tension and the length table is rebuilt.
func (c *Controller) AddSegment(seg *Segment, tension float64, matchTangent bool) error {
	if seg == nil {
		return ErrNilSegment
	}
	if seg.IsParent() {
		c.rotation = coaster.Identity3()
	}
	if len(c.segments) > 0 {
		p := seg.ControlPoints()
		if !seg.IsParent() {
			p = transformAll(c.rotation, p)
		}
		if matchTangent {
			last := c.Back()
			target := last.ControlPoint(3).Sub(last.ControlPoint(1)).Normalized()
			current := p[2].Sub(p[0]).Normalized()
			rotation, err := matchingRotation(current, target)
			if err != nil {
				tracer().Errorf("rejecting segment: tangents %v and %v", current, target)
				return err
			}
			p = transformAll(rotation, p)
			if seg.IsParent() {
				c.rotation = rotation
			}
		}
		offset := c.Back().End().Sub(p[1])
		for i := range p {
			p[i] = p[i].Add(offset)
		}
		tracer().Debugf("joining segment %d with offset %v", len(c.segments), offset)
		seg.SetControlPoints(p[0], p[1], p[2], p[3])
	}
	c.segments = append(c.segments, seg)
	seg.SetUsed(true)
	seg.CalculateCoefficients(tension)
	c.CalculateSplineLength()
	return nil
}

// MustAddSegment is AddSegment, panicking on error.
func (c *Controller) MustAddSegment(seg *Segment, tension float64, matchTangent bool) {
	if err := c.AddSegment(seg, tension, matchTangent); err != nil {
		panic(err)
	}
}

// matchingRotation finds the rotation taking unit tangent current onto unit
// tangent target.
func matchingRotation(current, target coaster.Vector) (coaster.Matrix3, error) {
	dot := current.Dot(target)
	if dot <= oppositeDot {
		return coaster.RotationY(math.Pi), nil
	} else if dot > oppositeDot && dot < 1.0 {
		axis := current.Cross(target).Normalized()
		if math.IsNaN(axis.LengthSquared()) {
			return coaster.Matrix3{}, ErrDegenerateRotation
		}
		return coaster.RotationAxisAngle(axis, math.Acos(dot)), nil
	}
	// parallel tangents, or NaN from a degenerate segment
	return coaster.Identity3(), nil
}

func transformAll(m coaster.Matrix3, p [4]coaster.Vector) [4]coaster.Vector {
	for i := range p {
		p[i] = m.TransformVector(p[i])
	}
	return p
}

// RemoveBack removes the last segment and rebuilds the length table.
// Does nothing for an empty chain.
func (c *Controller) RemoveBack() {
	if len(c.segments) == 0 {
		return
	}
	last := len(c.segments) - 1
	c.segments[last].SetUsed(false)
	c.segments[last] = nil
	c.segments = c.segments[:last]
	c.CalculateSplineLength()
}

// ClearSegments empties the chain. The length table is emptied as well;
// length queries return zero values until segments are added again.
func (c *Controller) ClearSegments() {
	for _, seg := range c.segments {
		seg.SetUsed(false)
	}
	c.segments = c.segments[:0]
	c.times, c.lengths = nil, nil
	c.arcLength = 0
}

// JoinSelf creates a new, unattached segment which closes the chain: it runs
// from the end of the last segment to the start of the first one. Its outer
// control points mirror the neighbouring tangents, so the closing curve
// continues both the end tangent of the chain and the start tangent of the
// chain. Coefficients are not calculated.
//
// Returns ErrTooFewSegments if the chain has fewer than 2 segments.
func (c *Controller) JoinSelf() (*Segment, error) {
	if len(c.segments) < 2 {
		return nil, ErrTooFewSegments
	}
	first, last := c.segments[0], c.Back()
	p1 := last.ControlPoint(2)
	p2 := first.ControlPoint(1)
	p0 := last.ControlPoint(1).Sub(last.ControlPoint(3)).Add(p2)
	p3 := first.ControlPoint(2).Sub(first.ControlPoint(0)).Add(p1)
	return NewSegmentFrom(p0, p1, p2, p3), nil
}

// CurrentSegment returns the index of the segment global parameter t lies in.
// t is clamped to [0,1]. On a boundary between two segments the later segment
// is selected, except at t = 1, which belongs to the last segment.
func (c *Controller) CurrentSegment(t float64) int {
	n := len(c.segments)
	if n == 0 {
		return 0
	}
	global := coaster.Clamp01(t) * float64(n)
	rounded1 := int(math.Round(global))
	rounded2 := int(math.Round(global + 0.5))
	var lo int
	if rounded1 == rounded2 { // rounded up
		lo = rounded1 - 1
	} else { // rounded down
		lo = rounded1
	}
	if lo > n-1 { // end of the chain reached
		lo = n - 1
	} else if lo < 0 {
		lo = 0
	}
	return lo
}

// locate maps global t to a segment index and a local parameter.
func (c *Controller) locate(t float64) (int, float64) {
	t = coaster.Clamp01(t)
	i := c.CurrentSegment(t)
	local := t*float64(len(c.segments)) - float64(i)
	return i, local
}

// Point returns the point at global parameter t ∈ [0,1].
// An empty chain yields the zero vector.
func (c *Controller) Point(t float64) coaster.Vector {
	if len(c.segments) == 0 {
		return coaster.Zero
	}
	i, local := c.locate(t)
	return c.segments[i].Point(local)
}

// Tangent returns the normalized tangent at global parameter t ∈ [0,1].
// An empty chain yields the zero vector; degenerate segments yield NaN.
func (c *Controller) Tangent(t float64) coaster.Vector {
	if len(c.segments) == 0 {
		return coaster.Zero
	}
	i, local := c.locate(t)
	return c.segments[i].Tangent(local)
}
