package track

import (
	"fmt"

	"github.com/npillmayer/coaster"
	"github.com/npillmayer/coaster/crspline"
)

// Boundary is the sub-range [T0,T1] of the global spline parameter a piece
// occupies.
type Boundary struct {
	T0, T1 float64
}

// Contains is true if T0 <= t <= T1.
func (b Boundary) Contains(t float64) bool {
	return b.T0 <= t && t <= b.T1
}

// Width returns T1-T0.
func (b Boundary) Width() float64 {
	return b.T1 - b.T0
}

// Orientation is a reference frame together with a roll angle in degrees.
type Orientation struct {
	Forward, Up, Right coaster.Vector
	Roll               float64
}

// Piece is one segment of a track, tagged with its kind, plus the values
// the simulation needs: tension, roll target in degrees and length.
type Piece struct {
	tag         Tag
	segment     *crspline.Segment
	tension     float64
	rollTarget  float64
	length      float64
	initialRoll float64
	initial     Orientation
	bounds      Boundary
}

// NewPiece creates a piece from the (possibly overridden) preset for tag.
// CompleteTrack and FromFile pieces have no preset and are rejected.
func NewPiece(tag Tag, cfg Config) (*Piece, error) {
	preset, ok := cfg.Preset(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no preset geometry", ErrUnknownTag, tag)
	}
	p := preset.ControlPoints
	return &Piece{
		tag:        tag,
		segment:    crspline.NewSegmentFrom(p[0], p[1], p[2], p[3]),
		tension:    preset.Tension,
		rollTarget: preset.RollTarget,
	}, nil
}

// NewPieceFromRecord creates a FromFile piece with the stored values of a
// track file. The length is kept as given; LoadTrack relies on it for the
// piece boundaries.
func NewPieceFromRecord(points [4]coaster.Vector, tension, rollTarget, length float64) *Piece {
	return &Piece{
		tag:        FromFile,
		segment:    crspline.NewSegmentFrom(points[0], points[1], points[2], points[3]),
		tension:    tension,
		rollTarget: rollTarget,
		length:     length,
	}
}

func newClosingPiece(seg *crspline.Segment, tension float64) *Piece {
	return &Piece{
		tag:     CompleteTrack,
		segment: seg,
		tension: tension,
	}
}

func (p *Piece) String() string {
	return fmt.Sprintf("piece<%s [%.4f,%.4f] roll=%.1f len=%.3f>",
		p.tag, p.bounds.T0, p.bounds.T1, p.rollTarget, p.length)
}

// Tag returns the kind of the piece.
func (p *Piece) Tag() Tag {
	return p.tag
}

// Segment returns the spline segment of the piece. Once the piece belongs
// to a track the segment is owned by the track's spline chain.
func (p *Piece) Segment() *crspline.Segment {
	return p.segment
}

// ControlPoints returns the segment's control points.
func (p *Piece) ControlPoints() [4]coaster.Vector {
	return p.segment.ControlPoints()
}

// SetControlPoints replaces the control points. Call CalculateSpline
// afterwards.
func (p *Piece) SetControlPoints(points [4]coaster.Vector) {
	p.segment.SetControlPoints(points[0], points[1], points[2], points[3])
}

// CalculateSpline recalculates the segment coefficients with the piece's
// tension.
func (p *Piece) CalculateSpline() {
	p.segment.CalculateCoefficients(p.tension)
}

func (p *Piece) Tension() float64 {
	return p.tension
}

func (p *Piece) SetTension(tension float64) {
	p.tension = tension
}

// RollTarget returns the bank angle in degrees reached at the end of the
// piece.
func (p *Piece) RollTarget() float64 {
	return p.rollTarget
}

func (p *Piece) SetRollTarget(degrees float64) {
	p.rollTarget = degrees
}

func (p *Piece) Length() float64 {
	return p.length
}

func (p *Piece) SetLength(length float64) {
	p.length = length
}

// InitialRoll is the roll in degrees the piece starts with, i.e. the roll
// target of its predecessor.
func (p *Piece) InitialRoll() float64 {
	return p.initialRoll
}

func (p *Piece) SetInitialRoll(degrees float64) {
	p.initialRoll = degrees
}

// InitialOrientation returns the frame stored with SetInitialOrientation.
func (p *Piece) InitialOrientation() Orientation {
	return p.initial
}

func (p *Piece) SetInitialOrientation(o Orientation) {
	p.initial = o
}

// Bounds returns the piece's range of the global spline parameter.
func (p *Piece) Bounds() Boundary {
	return p.bounds
}

// ShouldSmooth reports whether joining this piece matches its start tangent
// to the end of the track. Closing pieces and pieces from a file are placed
// as they are.
func (p *Piece) ShouldSmooth() bool {
	return p.tag != CompleteTrack && p.tag != FromFile
}

// clone returns a copy of p with a detached segment.
func (p *Piece) clone() *Piece {
	c := *p
	c.segment = p.segment.Clone()
	c.segment.SetUsed(p.segment.IsUsed())
	return &c
}
