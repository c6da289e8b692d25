package track

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/coaster"
	"github.com/npillmayer/coaster/crspline"
)

var (
	// ErrTrackFull indicates that the track has reached its maximum number
	// of pieces.
	ErrTrackFull = errors.New("track is full")
	// ErrCannotClose indicates an attempt to close a track with fewer than
	// two pieces.
	ErrCannotClose = errors.New("track too short to be closed")
	// ErrEmptyTrack indicates an operation which needs at least one piece.
	ErrEmptyTrack = errors.New("track has no pieces")
	// ErrNilPiece indicates a nil piece pointer.
	ErrNilPiece = errors.New("piece must not be nil")
)

// Track is an ordered list of pieces backed by a spline chain, together with
// the state of a simulation along it.
type Track struct {
	config  Config
	pieces  []*Piece
	spline  *crspline.Controller
	starts  *treemap.Map // boundary T0 → piece index
	mesh    MeshBuilder
	t       float64
	frame   frame
	initial frame
	store   frame   // frame at the end of the track
	storeT  float64 // roll target at the end of the track
}

// Option configures a Track.
type Option func(*Track)

// WithInitialFrame sets the frame a simulation starts with. The default
// heads along +z with +y up.
func WithInitialFrame(forward, up, right coaster.Vector) Option {
	return func(tr *Track) {
		tr.initial = frame{forward: forward, up: up, right: right}
	}
}

// New creates an empty track. mesh may be nil.
func New(cfg Config, mesh MeshBuilder, opts ...Option) *Track {
	if mesh == nil {
		mesh = nopMesh{}
	}
	tr := &Track{
		config:  cfg,
		spline:  crspline.NewController(cfg.Resolution),
		starts:  treemap.NewWith(utils.Float64Comparator),
		mesh:    mesh,
		initial: initialFrame(),
	}
	for _, opt := range opts {
		opt(tr)
	}
	tr.frame = tr.initial
	tr.store = tr.initial
	return tr
}

// Config returns the configuration the track was created with.
func (tr *Track) Config() Config {
	return tr.config
}

// Spline returns the underlying spline chain.
func (tr *Track) Spline() *crspline.Controller {
	return tr.spline
}

// AddTrackPiece appends a piece of kind tag. Preset pieces are joined with
// matching tangents and inherit the roll target of the previous piece.
// CompleteTrack closes the loop and needs at least two pieces.
//
// If the join is rejected, the error is returned and the track is
// unchanged.
func (tr *Track) AddTrackPiece(tag Tag) error {
	if len(tr.pieces) >= tr.config.MaxPieces {
		return fmt.Errorf("%w: %d pieces", ErrTrackFull, len(tr.pieces))
	}
	var piece *Piece
	switch tag {
	case CompleteTrack:
		if len(tr.pieces) < 2 {
			return fmt.Errorf("%w: %d pieces", ErrCannotClose, len(tr.pieces))
		}
		seg, err := tr.spline.JoinSelf()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCannotClose, err)
		}
		piece = newClosingPiece(seg, tr.config.Tension)
	default:
		var err error
		if piece, err = NewPiece(tag, tr.config); err != nil {
			return err
		}
	}
	if err := tr.spline.AddSegment(piece.segment, piece.tension, piece.ShouldSmooth()); err != nil {
		return fmt.Errorf("cannot add %s piece: %w", tag, err)
	}
	if back := tr.Back(); back != nil {
		piece.rollTarget = back.rollTarget
		piece.initialRoll = back.rollTarget
	}
	piece.length = segmentLength(piece, tr.config.PreviewResolution)
	tr.pieces = append(tr.pieces, piece)
	tracer().Infof("added %v", piece)
	tr.CalculatePieceBoundaries()
	return nil
}

// AddTrackPieceFromFile appends a piece without tangent matching. Piece
// boundaries are not recalculated; call LoadTrack after the last piece.
func (tr *Track) AddTrackPieceFromFile(piece *Piece) error {
	if piece == nil {
		return ErrNilPiece
	}
	if len(tr.pieces) >= tr.config.MaxPieces {
		return fmt.Errorf("%w: %d pieces", ErrTrackFull, len(tr.pieces))
	}
	if err := tr.spline.AddSegment(piece.segment, piece.tension, false); err != nil {
		return err
	}
	if back := tr.Back(); back != nil {
		piece.initialRoll = back.rollTarget
	}
	tr.pieces = append(tr.pieces, piece)
	return nil
}

// LoadTrack finishes loading: boundaries, mesh and supports are calculated
// and the simulation is reset.
func (tr *Track) LoadTrack() {
	tr.CalculatePieceBoundaries()
	tr.GenerateMesh()
	tr.GenerateSupportStructures()
	tr.Reset()
}

// EraseTrack removes all pieces and resets the simulation.
func (tr *Track) EraseTrack() {
	for len(tr.pieces) > 0 {
		tr.spline.RemoveBack()
		tr.pieces = tr.pieces[:len(tr.pieces)-1]
	}
	tr.spline.ClearSegments()
	tr.starts.Clear()
	tr.store = tr.initial
	tr.storeT = 0
	tr.Reset()
	tr.mesh.Clear()
	tr.mesh.ClearPreview()
}

// RemoveBack removes the last piece. It is a no-op for an empty track.
func (tr *Track) RemoveBack() {
	if len(tr.pieces) == 0 {
		return
	}
	tr.spline.RemoveBack()
	tr.pieces = tr.pieces[:len(tr.pieces)-1]
	tracer().Infof("removed last piece, %d left", len(tr.pieces))
	tr.CalculatePieceBoundaries()
	tr.mesh.ClearPreview()
	tr.mesh.ClearSupports()
}

// UpdateBack copies control points, tension, roll target and length of
// piece into the last piece, e.g. after editing it in a Preview.
func (tr *Track) UpdateBack(piece *Piece) error {
	if piece == nil {
		return ErrNilPiece
	}
	back := tr.Back()
	if back == nil {
		return ErrEmptyTrack
	}
	back.SetControlPoints(piece.ControlPoints())
	back.tension = piece.tension
	back.rollTarget = piece.rollTarget
	back.length = piece.length
	back.CalculateSpline()
	tr.RecalculateTrackLength()
	tr.CalculatePieceBoundaries()
	return nil
}

// CalculatePieceBoundaries assigns each piece its range of the global
// spline parameter. The running fraction of summed piece lengths is mapped
// through the arc-length table; the first range starts at 0, the last ends
// at 1 and adjacent ranges share their boundary.
func (tr *Track) CalculatePieceBoundaries() {
	tr.starts.Clear()
	n := len(tr.pieces)
	if n == 0 {
		return
	}
	total := 0.0
	for _, p := range tr.pieces {
		total += p.length
	}
	t0, running := 0.0, 0.0
	for i, p := range tr.pieces {
		running += p.length
		var t1 float64
		switch {
		case i == n-1:
			t1 = 1
		case total > 0:
			t1 = tr.spline.TimeAtDistance(running / total)
		default:
			t1 = float64(i+1) / float64(n)
		}
		if t1 < t0 {
			t1 = t0
		}
		p.bounds = Boundary{T0: t0, T1: t1}
		tr.starts.Put(t0, i) // a later piece with the same start wins
		t0 = t1
	}
}

// ActiveTrackPiece returns the index of the piece containing the current
// simulation time. A time on a shared boundary belongs to the later piece.
func (tr *Track) ActiveTrackPiece() int {
	return tr.pieceAt(tr.t)
}

func (tr *Track) pieceAt(t float64) int {
	_, index := tr.starts.Floor(t)
	if index == nil {
		return 0
	}
	return index.(int)
}

// TrackLength returns the arc length of the spline chain.
func (tr *Track) TrackLength() float64 {
	return tr.spline.ArcLength()
}

// RecalculateTrackLength rebuilds the arc-length table.
func (tr *Track) RecalculateTrackLength() {
	tr.spline.CalculateSplineLength()
}

func (tr *Track) TrackPieceCount() int {
	return len(tr.pieces)
}

func (tr *Track) MaxTrackPieceCount() int {
	return tr.config.MaxPieces
}

// Back returns the last piece, or nil.
func (tr *Track) Back() *Piece {
	if len(tr.pieces) == 0 {
		return nil
	}
	return tr.pieces[len(tr.pieces)-1]
}

// TrackPiece returns piece i.
func (tr *Track) TrackPiece(i int) *Piece {
	return tr.pieces[i]
}

// PointAtDistance returns the point at the fraction d of the track length.
// d == 1 yields the exact end of the chain.
func (tr *Track) PointAtDistance(d float64) coaster.Vector {
	if len(tr.pieces) == 0 {
		return coaster.Zero
	}
	if d == 1 {
		return tr.spline.Point(1)
	}
	return tr.spline.PointAtDistance(d)
}

// PointAtTime returns the point at global spline parameter t.
func (tr *Track) PointAtTime(t float64) coaster.Vector {
	if len(tr.pieces) == 0 {
		return coaster.Zero
	}
	return tr.spline.Point(t)
}

// segmentLength measures a piece on its own, at the given resolution.
func segmentLength(p *Piece, resolution int) float64 {
	c := crspline.NewController(resolution)
	if err := c.AddSegment(p.segment.Clone(), p.tension, false); err != nil {
		return 0
	}
	return c.ArcLength()
}
