package track

import "github.com/npillmayer/coaster"

// Editor builds a track interactively: the last piece of the track is shown
// in a Preview, where it can be edited, and is committed back when the next
// piece is placed.
type Editor struct {
	track   *Track
	preview *Preview
	mode    EditMode
}

// NewEditor couples a track with a preview.
func NewEditor(tr *Track, pv *Preview) *Editor {
	return &Editor{track: tr, preview: pv}
}

func (e *Editor) Track() *Track {
	return e.track
}

func (e *Editor) Preview() *Preview {
	return e.preview
}

// Mode returns the current edit mode.
func (e *Editor) Mode() EditMode {
	return e.mode
}

func (e *Editor) SetMode(mode EditMode) {
	e.mode = mode
}

// Build commits the previewed piece, appends a piece of kind tag and starts
// previewing it. Closing the track finishes editing.
func (e *Editor) Build(tag Tag) error {
	tr := e.track
	if tr.TrackPieceCount() > 0 && e.preview.Active() {
		if err := tr.UpdateBack(e.preview.Piece()); err != nil {
			return err
		}
	}
	tr.GenerateMesh()
	end := Orientation{
		Forward: tr.ForwardStore(),
		Up:      tr.UpStore(),
		Right:   tr.RightStore(),
		Roll:    tr.RollStore(),
	}
	if tr.TrackPieceCount() == 0 {
		end = tr.OrientationAt(0)
	}
	if err := tr.AddTrackPiece(tag); err != nil {
		return err
	}
	if tag == CompleteTrack {
		e.Finish()
		return nil
	}
	e.startPreview(tr.Back(), end)
	return nil
}

// Move translates the control points of the previewed piece selected by
// the current edit mode and regenerates the preview mesh.
func (e *Editor) Move(dx, dy, dz float64) {
	if !e.preview.Active() {
		return
	}
	e.preview.MoveControlPoints(e.mode, coaster.V(dx, dy, dz))
	e.preview.GenerateMesh()
}

// SetRollTarget changes the roll target of the previewed piece.
func (e *Editor) SetRollTarget(degrees float64) {
	if !e.preview.Active() {
		return
	}
	edit := e.preview.Edit()
	edit.RollTarget = degrees
	e.preview.Apply(edit)
	e.preview.GenerateMesh()
}

// Undo removes the last piece and previews the one before it.
func (e *Editor) Undo() {
	tr := e.track
	tr.RemoveBack()
	back := tr.Back()
	if back == nil {
		e.preview.EraseTrack()
		tr.GenerateMesh()
		return
	}
	start := back.InitialOrientation()
	if start.Forward.IsZero() {
		start = tr.OrientationAt(tr.pieceStart(tr.TrackPieceCount() - 1))
	}
	tr.GenerateMesh()
	e.startPreview(back, start)
}

// Finish commits the previewed piece and generates mesh and supports of
// the whole track.
func (e *Editor) Finish() {
	tr := e.track
	if e.preview.Active() && tr.Back() != nil && tr.Back().Tag() != CompleteTrack {
		if err := tr.UpdateBack(e.preview.Piece()); err != nil {
			tracer().Errorf("cannot commit preview: %v", err)
		}
	}
	e.preview.SetActive(false)
	tr.mesh.ClearPreview()
	tr.GenerateMesh()
	tr.GenerateSupportStructures()
}

// Erase clears track and preview.
func (e *Editor) Erase() {
	e.track.EraseTrack()
	e.preview.EraseTrack()
}

func (e *Editor) startPreview(back *Piece, start Orientation) {
	back.SetInitialOrientation(start)
	e.preview.InitTrackPiece(back)
	e.preview.InitialiseSimulation(start.Roll, start.Forward, start.Right, start.Up, back.InitialRoll())
	e.preview.GenerateMesh()
}
