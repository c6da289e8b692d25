package track

import (
	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/coaster"
)

// SupportKind distinguishes straight from bent supports.
type SupportKind int

// Upright track stands on a vertical support. Inverted track gets an angled
// leg towards the ground side first.
const (
	VerticalSupport SupportKind = iota
	SegmentedSupport
)

func (k SupportKind) String() string {
	if k == SegmentedSupport {
		return "segmented"
	}
	return "vertical"
}

// Support is a pillar below the track. From and To are the ends of the
// vertical part; To lies on the floor. For segmented supports the angled
// leg runs from AngledFrom to AngledTo, which coincides with From.
type Support struct {
	Kind       SupportKind
	From, To   coaster.Vector
	AngledFrom coaster.Vector
	AngledTo   coaster.Vector
}

// neighbourhood is the number of ribbon quads around a support's own sample
// which cannot block it.
const neighbourhood = 3

// ribbon is the plan view of the track, one quad per pair of samples.
type ribbon struct {
	quads   []polyclip.Contour
	boxes   []polyclip.Rectangle
	heights []float64 // lowest corner of each quad
}

func newRibbon(frames []Frame, width float64) ribbon {
	var r ribbon
	for i := 0; i+1 < len(frames); i++ {
		a, b := frames[i], frames[i+1]
		ha, hb := a.Right.Scaled(width/2), b.Right.Scaled(width/2)
		corners := []coaster.Vector{a.Centre.Sub(ha), a.Centre.Add(ha), b.Centre.Add(hb), b.Centre.Sub(hb)}
		quad := make(polyclip.Contour, len(corners))
		low := corners[0].Y
		for j, c := range corners {
			quad[j] = polyclip.Point{X: c.X, Y: c.Z}
			if c.Y < low {
				low = c.Y
			}
		}
		r.quads = append(r.quads, quad)
		r.boxes = append(r.boxes, quad.BoundingBox())
		r.heights = append(r.heights, low)
	}
	return r
}

// blocks is true if a stretch of ribbon away from sample i covers the foot
// of a support at p and runs below p.
func (r ribbon) blocks(i int, p coaster.Vector) bool {
	foot := polyclip.Point{X: p.X, Y: p.Z}
	for j, quad := range r.quads {
		if j >= i-neighbourhood && j <= i+neighbourhood {
			continue
		}
		if r.heights[j] >= p.Y {
			continue
		}
		box := r.boxes[j]
		if foot.X < box.Min.X || foot.X > box.Max.X || foot.Y < box.Min.Y || foot.Y > box.Max.Y {
			continue
		}
		if quad.Contains(foot) {
			return true
		}
	}
	return false
}

// GenerateSupportStructures places a support candidate every
// SupportFrequency samples and keeps those which neither end below the
// floor nor stand on a lower stretch of track. The supports are handed to
// the mesh builder and returned.
func (tr *Track) GenerateSupportStructures() []Support {
	tr.mesh.ClearSupports()
	if len(tr.pieces) == 0 {
		return nil
	}
	cfg := tr.config
	frames := tr.Frames(cfg.SamplesPerPiece * len(tr.pieces))
	r := newRibbon(frames, cfg.TrackWidth)
	var supports []Support
	for i := 0; i < len(frames); i += cfg.SupportFrequency {
		f := frames[i]
		top := f.Centre.Sub(f.Up.Scaled(cfg.SupportDrop))
		s := Support{Kind: VerticalSupport, From: top}
		if f.Up.Dot(coaster.Up()) < 0 {
			right := f.Right.Normalized()
			if coaster.Up().Dot(right) < 0 {
				right = right.Flip()
			}
			s.Kind = SegmentedSupport
			s.AngledFrom = top
			s.AngledTo = top.Sub(right)
			s.From = s.AngledTo
		}
		s.To = coaster.V(s.From.X, cfg.SupportFloor, s.From.Z)
		if s.From.Y <= cfg.SupportFloor {
			continue
		}
		if r.blocks(i, s.From) {
			tracer().Debugf("support at sample %d blocked by track below", i)
			continue
		}
		tr.mesh.AddSupport(s)
		supports = append(supports, s)
	}
	return supports
}
