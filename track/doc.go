// Package track assembles Catmull-Rom segments into a roller coaster track
// and simulates a ride along it.
/*

A Track owns an ordered list of pieces and one crspline.Controller. Pieces
are created from a small table of presets (straight, turns, climbs), joined
onto the end of the chain with matching tangents, and may finally be closed
into a loop:

	tr := track.New(track.DefaultConfig(), nil)
	_ = tr.AddTrackPiece(track.Straight)
	_ = tr.AddTrackPiece(track.RightTurn)
	_ = tr.AddTrackPiece(track.Straight)
	_ = tr.AddTrackPiece(track.CompleteTrack)

Each piece occupies a sub-range [t0,t1] of the chain's global parameter;
the ranges tile [0,1]. UpdateSimulation(d) moves a reference frame
(forward, up, right) to the fraction d of the track's length. The frame is
carried along the path rather than rebuilt from a world up vector, and
banking is integrated as a rotation about the forward axis towards the roll
target of the active piece, interpolated from the roll target of the
previous piece.

A Preview simulates one piece that is being edited, starting from the frame
the committed track ends with. An Editor ties track and preview together
the way an interactive builder uses them. Mesh builders receive sampled
frames; they are collaborators outside of this package.

Nothing in this package is safe for concurrent use.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package track

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster.track'
func tracer() tracing.Trace {
	return tracing.Select("coaster.track")
}
