package track

import (
	"github.com/npillmayer/coaster"
	"github.com/npillmayer/coaster/crspline"
)

// PieceEdit is a snapshot of the editable values of a preview piece.
type PieceEdit struct {
	ControlPoints [4]coaster.Vector
	Tension       float64
	RollTarget    float64
}

// Preview simulates a single piece while it is being edited. It works on a
// copy of the piece; Piece returns a copy to commit back into the track.
type Preview struct {
	config  Config
	piece   *Piece
	spline  *crspline.Controller
	mesh    PreviewMeshBuilder
	frame   frame
	initial frame
	t       float64
	active  bool
}

// NewPreview creates an inactive preview with an empty piece. mesh may be
// nil.
func NewPreview(cfg Config, mesh PreviewMeshBuilder) *Preview {
	if mesh == nil {
		mesh = nopMesh{}
	}
	pv := &Preview{
		config: cfg,
		piece: &Piece{
			tag:     FromFile,
			segment: crspline.NewSegment(),
			tension: 1,
		},
		spline:  crspline.NewController(cfg.PreviewResolution),
		mesh:    mesh,
		frame:   initialFrame(),
		initial: initialFrame(),
	}
	pv.spline.MustAddSegment(pv.piece.segment, pv.piece.tension, false)
	return pv
}

// InitTrackPiece copies control points, tension, roll target and tag of p
// into the preview piece and activates the preview.
func (pv *Preview) InitTrackPiece(p *Piece) {
	if p == nil {
		return
	}
	pv.piece.tag = p.tag
	pv.piece.SetControlPoints(p.ControlPoints())
	pv.piece.tension = p.tension
	pv.piece.rollTarget = p.rollTarget
	pv.piece.CalculateSpline()
	pv.CalculateLength()
	pv.SetActive(true)
}

// InitialiseSimulation sets the frame the preview starts with, usually the
// stored end of the committed track. prevRollTarget is the roll target of
// the piece before the previewed one.
func (pv *Preview) InitialiseSimulation(roll float64, forward, right, up coaster.Vector, prevRollTarget float64) {
	pv.initial = frame{forward: forward, up: up, right: right, roll: roll}
	pv.frame = pv.initial
	pv.piece.initialRoll = prevRollTarget
	pv.t = 0
}

// UpdateSimulation moves the preview to the fraction d of the piece length.
// Roll is interpolated from the piece's initial roll to its roll target.
func (pv *Preview) UpdateSimulation(d float64) {
	pv.t = pv.spline.TimeAtDistance(d)
	pv.frame.advance(pv.spline.Tangent(pv.t))
	pv.frame.bankTo(coaster.Lerp(pv.piece.initialRoll, pv.piece.rollTarget, pv.t))
}

// Reset moves the preview back to its initial frame.
func (pv *Preview) Reset() {
	pv.frame = pv.initial
	pv.t = 0
}

// GenerateMesh samples the piece and feeds the frames to the preview mesh
// builder.
func (pv *Preview) GenerateMesh() {
	n := pv.config.PreviewSamples
	for i := 0; i < n; i++ {
		d := float64(i) / float64(n-1)
		pv.UpdateSimulation(d)
		f := pv.frame.at(pv.pointAtDistance(d))
		pv.mesh.StorePreviewPoint(f)
		if i%pv.config.CrossTieFrequency == 0 {
			pv.mesh.AddPreviewCrossTie(f)
		}
	}
	pv.mesh.UpdatePreviewMesh()
	pv.Reset()
}

func (pv *Preview) pointAtDistance(d float64) coaster.Vector {
	if d == 1 {
		return pv.spline.Point(1)
	}
	return pv.spline.PointAtDistance(d)
}

// CalculateLength measures the piece and stores the length with it.
func (pv *Preview) CalculateLength() {
	pv.spline.CalculateSplineLength()
	pv.piece.length = pv.spline.ArcLength()
}

// Edit returns the editable values of the piece.
func (pv *Preview) Edit() PieceEdit {
	return PieceEdit{
		ControlPoints: pv.piece.ControlPoints(),
		Tension:       pv.piece.tension,
		RollTarget:    pv.piece.rollTarget,
	}
}

// Apply sets the editable values of the piece and recalculates the curve
// and its length.
func (pv *Preview) Apply(e PieceEdit) {
	pv.piece.SetControlPoints(e.ControlPoints)
	pv.piece.tension = e.Tension
	pv.piece.rollTarget = e.RollTarget
	pv.piece.CalculateSpline()
	pv.CalculateLength()
}

// MoveControlPoints translates the control points selected by mode by
// delta. An inactive preview is not changed.
func (pv *Preview) MoveControlPoints(mode EditMode, delta coaster.Vector) {
	if !pv.active {
		return
	}
	e := pv.Edit()
	for i, move := range mode.ActivePoints() {
		if move {
			e.ControlPoints[i] = e.ControlPoints[i].Add(delta)
		}
	}
	pv.Apply(e)
}

// Piece returns a detached copy of the preview piece.
func (pv *Preview) Piece() *Piece {
	return pv.piece.clone()
}

// Length returns the length of the preview piece.
func (pv *Preview) Length() float64 {
	return pv.piece.length
}

// EraseTrack deactivates the preview and clears its piece.
func (pv *Preview) EraseTrack() {
	pv.SetActive(false)
	pv.piece.SetControlPoints([4]coaster.Vector{})
	pv.piece.rollTarget = 0
	pv.piece.initialRoll = 0
	pv.piece.CalculateSpline()
	pv.CalculateLength()
	pv.initial = initialFrame()
	pv.Reset()
	pv.mesh.ClearPreview()
}

func (pv *Preview) SetActive(active bool) {
	pv.active = active
	pv.mesh.SetPreviewActive(active)
}

func (pv *Preview) Active() bool {
	return pv.active
}

func (pv *Preview) Time() float64 {
	return pv.t
}

func (pv *Preview) Forward() coaster.Vector {
	return pv.frame.forward
}

func (pv *Preview) Up() coaster.Vector {
	return pv.frame.up
}

func (pv *Preview) Right() coaster.Vector {
	return pv.frame.right
}

// Roll returns the current bank angle in degrees.
func (pv *Preview) Roll() float64 {
	return pv.frame.roll
}
