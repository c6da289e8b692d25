package track

import (
	"github.com/npillmayer/coaster"
)

// frame is the moving reference frame of a simulation. roll is in degrees.
type frame struct {
	forward, up, right coaster.Vector
	roll               float64
}

func initialFrame() frame {
	return frame{
		forward: coaster.Forward(),
		up:      coaster.Up(),
		right:   coaster.Right(),
	}
}

// advance carries the frame over to a new forward direction, keeping up as
// close to the previous up as possible. A degenerate tangent leaves the
// frame as it is.
func (f *frame) advance(forward coaster.Vector) {
	if forward.IsNaN() || forward.IsZero() {
		tracer().Debugf("degenerate tangent, keeping frame")
		return
	}
	right := f.up.Cross(forward).Normalized()
	if right.IsNaN() {
		// up and forward are parallel; keep the old right vector
		right = f.right
	}
	f.forward = forward
	f.right = right
	f.up = forward.Cross(right).Normalized()
}

// bankTo rotates up and right around forward until the roll equals target.
func (f *frame) bankTo(target float64) {
	delta := (target - f.roll) * coaster.Deg2Rad
	if delta == 0 {
		return
	}
	m := coaster.RotationAxisAngle(f.forward, delta)
	f.up = m.TransformVector(f.up)
	f.right = f.up.Cross(f.forward)
	f.roll = target
}

// Frame is a sample of a simulation: position and orientation.
type Frame struct {
	Centre  coaster.Vector
	Right   coaster.Vector
	Up      coaster.Vector
	Forward coaster.Vector
	Roll    float64
}

func (f frame) at(centre coaster.Vector) Frame {
	return Frame{
		Centre:  centre,
		Right:   f.right,
		Up:      f.up,
		Forward: f.forward,
		Roll:    f.roll,
	}
}
