package crspline

import (
	"github.com/npillmayer/coaster"
)

// Segment is a single cubic Catmull-Rom curve.
//
// Coefficients are derived from the control points by CalculateCoefficients
// and are stale after any control point change until it is called again.
type Segment struct {
	controls     [4]coaster.Vector // p0..p3
	coefficients [4]coaster.Vector // c0..c3 of c0 + c1·t + c2·t² + c3·t³
	used         bool              // adopted by a controller
	parent       bool              // head of a series of segments
}

// NewSegment creates a segment with all control points at the origin.
// New segments are chain heads (parents) and not yet used by a controller.
func NewSegment() *Segment {
	return &Segment{parent: true}
}

// NewSegmentFrom creates a segment from four control points.
// Coefficients still have to be calculated.
func NewSegmentFrom(p0, p1, p2, p3 coaster.Vector) *Segment {
	seg := NewSegment()
	seg.SetControlPoints(p0, p1, p2, p3)
	return seg
}

// SetControlPoints replaces all four control points. Any points are accepted,
// including repeated ones.
func (seg *Segment) SetControlPoints(p0, p1, p2, p3 coaster.Vector) {
	seg.controls = [4]coaster.Vector{p0, p1, p2, p3}
}

// SetControlPoint replaces control point i (0..3).
func (seg *Segment) SetControlPoint(i int, p coaster.Vector) {
	seg.controls[i] = p
}

// ControlPoint returns control point i (0..3).
func (seg *Segment) ControlPoint(i int) coaster.Vector {
	return seg.controls[i]
}

// ControlPoints returns a copy of all four control points.
func (seg *Segment) ControlPoints() [4]coaster.Vector {
	return seg.controls
}

// Start is where the visible curve begins (p1).
func (seg *Segment) Start() coaster.Vector {
	return seg.controls[1]
}

// End is where the visible curve ends (p2).
func (seg *Segment) End() coaster.Vector {
	return seg.controls[2]
}

// Coefficient returns coefficient vector i (0..3).
func (seg *Segment) Coefficient(i int) coaster.Vector {
	return seg.coefficients[i]
}

// IsUsed is true once a controller has adopted the segment.
func (seg *Segment) IsUsed() bool {
	return seg.used
}

// SetUsed is a property setter.
func (seg *Segment) SetUsed(used bool) {
	seg.used = used
}

// IsParent is true for the head segment of a series of segments.
func (seg *Segment) IsParent() bool {
	return seg.parent
}

// SetParent is a property setter.
func (seg *Segment) SetParent(parent bool) {
	seg.parent = parent
}

// basis returns the Catmull-Rom basis matrix for tension tau.
// A tension of 0.5 gives the textbook uniform Catmull-Rom blend.
func basis(tau float64) coaster.Matrix4 {
	return coaster.Matrix4FromRows(
		coaster.V4(0, 1, 0, 0),
		coaster.V4(-tau, 0, tau, 0),
		coaster.V4(2*tau, tau-3, 3-2*tau, -tau),
		coaster.V4(-tau, 2-tau, tau-2, tau),
	)
}

// CalculateCoefficients derives the polynomial coefficients from the
// current control points and tension. It has to be called again after every
// control point change. Returns the coefficient matrix, rows c0..c3.
func (seg *Segment) CalculateCoefficients(tension float64) coaster.Matrix4 {
	points := coaster.Matrix4FromRows(seg.controls[0], seg.controls[1], seg.controls[2], seg.controls[3])
	coeffs := basis(tension).Multiply4x3(points)
	for i := 0; i < 4; i++ {
		seg.coefficients[i] = coeffs.Row(i)
	}
	return coeffs
}

// Point evaluates the curve at local parameter t, clamped to [0,1].
func (seg *Segment) Point(t float64) coaster.Vector {
	t = coaster.Clamp01(t)
	c := seg.coefficients
	return coaster.V(
		c[0].X+c[1].X*t+c[2].X*t*t+c[3].X*t*t*t,
		c[0].Y+c[1].Y*t+c[2].Y*t*t+c[3].Y*t*t*t,
		c[0].Z+c[1].Z*t+c[2].Z*t*t+c[3].Z*t*t*t,
	)
}

// Tangent evaluates the normalized derivative at local parameter t, clamped
// to [0,1]. For a degenerate segment the derivative may vanish; the result
// then has NaN components.
func (seg *Segment) Tangent(t float64) coaster.Vector {
	return seg.Derivative(t).Normalized()
}

// Derivative evaluates the unnormalized derivative c1 + 2·c2·t + 3·c3·t²
// at local parameter t, clamped to [0,1].
func (seg *Segment) Derivative(t float64) coaster.Vector {
	t = coaster.Clamp01(t)
	c := seg.coefficients
	return coaster.V(
		c[1].X+2*c[2].X*t+3*c[3].X*t*t,
		c[1].Y+2*c[2].Y*t+3*c[3].Y*t*t,
		c[1].Z+2*c[2].Z*t+3*c[3].Z*t*t,
	)
}

// Clone returns a detached copy of the segment, not marked as used.
func (seg *Segment) Clone() *Segment {
	c := *seg
	c.used = false
	return &c
}
