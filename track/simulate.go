package track

import (
	"github.com/npillmayer/coaster"
)

// Camera placement relative to the simulated frame.
const (
	cameraHeight = 0.15
	cameraBehind = 0.5
)

// UpdateSimulation moves the simulation to the fraction d of the track
// length. The frame follows the spline tangent and banks towards the roll
// target of the active piece, starting from the roll target of the piece
// before it. Does nothing for an empty track.
func (tr *Track) UpdateSimulation(d float64) {
	if len(tr.pieces) == 0 {
		return
	}
	tr.t = tr.spline.TimeAtDistance(d)
	active := tr.ActiveTrackPiece()
	piece := tr.pieces[active]
	tr.frame.advance(tr.spline.Tangent(tr.t))
	start := tr.frame.roll
	if active > 0 {
		start = tr.pieces[active-1].rollTarget
	}
	progress := 1.0
	if b := piece.bounds; b.Width() > 0 {
		progress = coaster.Clamp01((tr.t - b.T0) / b.Width())
	}
	tr.frame.bankTo(coaster.Lerp(start, piece.rollTarget, progress))
}

// Reset moves the simulation back to the start with the initial frame.
func (tr *Track) Reset() {
	tr.frame = tr.initial
	tr.t = 0
}

// storeSimulationValues remembers the current frame as the end of the track.
func (tr *Track) storeSimulationValues() {
	tr.store = tr.frame
	if back := tr.Back(); back != nil {
		tr.storeT = back.rollTarget
	}
}

// CalculateEndOfSimulation simulates the whole track to find the frame at
// its end, then resets.
func (tr *Track) CalculateEndOfSimulation() {
	tr.walk(tr.config.SamplesPerPiece*len(tr.pieces), nil)
}

// walk simulates n samples at d = i/(n-1) from the start, calling fn for
// each. The frame of the last sample is stored as the end of the track and
// the simulation is reset afterwards.
func (tr *Track) walk(n int, fn func(i int, f Frame)) {
	if len(tr.pieces) == 0 || n < 2 {
		return
	}
	tr.Reset()
	for i := 0; i < n; i++ {
		d := float64(i) / float64(n-1)
		tr.UpdateSimulation(d)
		if fn != nil {
			fn(i, tr.frame.at(tr.PointAtDistance(d)))
		}
		if i == n-1 {
			tr.storeSimulationValues()
		}
	}
	tr.Reset()
}

// Frames returns n simulated samples evenly spaced by distance.
func (tr *Track) Frames(n int) []Frame {
	frames := make([]Frame, 0, n)
	tr.walk(n, func(_ int, f Frame) {
		frames = append(frames, f)
	})
	return frames
}

// GenerateMesh samples the track and feeds the frames to the mesh builder,
// with a cross tie every CrossTieFrequency samples.
func (tr *Track) GenerateMesh() {
	if len(tr.pieces) == 0 {
		tr.mesh.Clear()
		return
	}
	n := tr.config.SamplesPerPiece * len(tr.pieces)
	tr.walk(n, func(i int, f Frame) {
		tr.mesh.StorePoint(f)
		if i%tr.config.CrossTieFrequency == 0 {
			tr.mesh.AddCrossTie(f)
		}
	})
	tr.mesh.UpdateMesh()
	tracer().Debugf("generated mesh with %d samples", n)
}

// Time returns the current global spline parameter.
func (tr *Track) Time() float64 {
	return tr.t
}

// Point returns the position of the simulation.
func (tr *Track) Point() coaster.Vector {
	return tr.PointAtTime(tr.t)
}

func (tr *Track) Forward() coaster.Vector {
	return tr.frame.forward
}

func (tr *Track) Up() coaster.Vector {
	return tr.frame.up
}

func (tr *Track) Right() coaster.Vector {
	return tr.frame.right
}

// Roll returns the current bank angle in degrees.
func (tr *Track) Roll() float64 {
	return tr.frame.roll
}

// Frame returns the current simulation state as a sample.
func (tr *Track) Frame() Frame {
	return tr.frame.at(tr.Point())
}

// ForwardStore returns the forward vector at the end of the track, as of
// the last full sampling pass.
func (tr *Track) ForwardStore() coaster.Vector {
	return tr.store.forward
}

func (tr *Track) UpStore() coaster.Vector {
	return tr.store.up
}

func (tr *Track) RightStore() coaster.Vector {
	return tr.store.right
}

func (tr *Track) RollStore() float64 {
	return tr.store.roll
}

// TargetRollStore returns the roll target of the last piece, as of the last
// full sampling pass.
func (tr *Track) TargetRollStore() float64 {
	return tr.storeT
}

// CameraEye returns a viewpoint slightly above and behind the simulation.
func (tr *Track) CameraEye() coaster.Vector {
	return tr.Point().
		Add(tr.frame.up.Scaled(cameraHeight)).
		Sub(tr.frame.forward.Scaled(cameraBehind))
}

// CameraLookAt returns the point the camera looks at.
func (tr *Track) CameraLookAt() coaster.Vector {
	return tr.CameraEye().Add(tr.frame.forward)
}

func (tr *Track) CameraUp() coaster.Vector {
	return tr.frame.up
}

// OrientationAt simulates the track from the start up to the fraction d of
// its length, with the sampling density of GenerateMesh, and returns the
// frame found there. The simulation is reset afterwards.
func (tr *Track) OrientationAt(d float64) Orientation {
	if len(tr.pieces) == 0 {
		return Orientation{Forward: tr.initial.forward, Up: tr.initial.up, Right: tr.initial.right}
	}
	d = coaster.Clamp01(d)
	n := tr.config.SamplesPerPiece * len(tr.pieces)
	tr.Reset()
	for i := 0; i < n; i++ {
		di := float64(i) / float64(n-1)
		if di >= d {
			break
		}
		tr.UpdateSimulation(di)
	}
	tr.UpdateSimulation(d)
	o := Orientation{Forward: tr.frame.forward, Up: tr.frame.up, Right: tr.frame.right, Roll: tr.frame.roll}
	tr.Reset()
	return o
}

// pieceStart returns the fraction of the track length at which piece i
// starts.
func (tr *Track) pieceStart(i int) float64 {
	total, before := 0.0, 0.0
	for j, p := range tr.pieces {
		total += p.length
		if j < i {
			before += p.length
		}
	}
	if total == 0 {
		return float64(i) / float64(len(tr.pieces))
	}
	return before / total
}
