package track

import (
	"math"
	"testing"

	"github.com/npillmayer/coaster"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrack(t *testing.T, mesh MeshBuilder, tags ...Tag) *Track {
	t.Helper()
	tr := New(DefaultConfig(), mesh)
	for _, tag := range tags {
		require.NoError(t, tr.AddTrackPiece(tag), "adding %s", tag)
	}
	return tr
}

func TestEmptyTrack(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := New(DefaultConfig(), nil)
	assert.Equal(t, 0, tr.TrackPieceCount())
	assert.Nil(t, tr.Back())
	assert.True(t, tr.PointAtDistance(0.5).IsZero())
	tr.UpdateSimulation(0.5)
	assert.Equal(t, 0.0, tr.Time())
	tr.RemoveBack()
	assert.ErrorIs(t, tr.UpdateBack(&Piece{}), ErrEmptyTrack)
}

func TestBoundariesTileUnitInterval(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight, RightTurn, Straight, ClimbUp, LeftTurn, ClimbDown)
	n := tr.TrackPieceCount()
	require.Equal(t, 6, n)
	assert.Equal(t, 0.0, tr.TrackPiece(0).Bounds().T0)
	assert.Equal(t, 1.0, tr.TrackPiece(n-1).Bounds().T1)
	for i := 0; i < n; i++ {
		b := tr.TrackPiece(i).Bounds()
		assert.LessOrEqual(t, b.T0, b.T1, "piece %d", i)
		if i > 0 {
			assert.Equal(t, tr.TrackPiece(i-1).Bounds().T1, b.T0, "gap before piece %d", i)
		}
	}
}

func TestEqualPiecesSplitEvenly(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight, Straight)
	assert.InDelta(t, 10.0, tr.TrackPiece(0).Length(), 1e-9)
	assert.InDelta(t, 20.0, tr.TrackLength(), 1e-9)
	assert.InDelta(t, 0.5, tr.TrackPiece(0).Bounds().T1, 1e-6)
}

func TestSharedBoundaryBelongsToLaterPiece(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight, Straight, Straight)
	assert.Equal(t, 0, tr.pieceAt(0))
	assert.Equal(t, 1, tr.pieceAt(tr.TrackPiece(1).Bounds().T0))
	assert.Equal(t, 2, tr.pieceAt(tr.TrackPiece(2).Bounds().T0))
	assert.Equal(t, 2, tr.pieceAt(1))
	assert.Equal(t, 0, tr.pieceAt(tr.TrackPiece(1).Bounds().T0-1e-9))
	for i := 0; i <= 100; i++ {
		tt := float64(i) / 100
		assert.True(t, tr.TrackPiece(tr.pieceAt(tt)).Bounds().Contains(tt), "t=%g", tt)
	}
	assert.False(t, tr.TrackPiece(0).Bounds().Contains(tr.TrackPiece(2).Bounds().T0))
}

func TestRollTargetIsCarriedOver(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, RightTurn, Straight)
	assert.Equal(t, -45.0, tr.TrackPiece(0).RollTarget())
	assert.Equal(t, -45.0, tr.TrackPiece(1).RollTarget())
	assert.Equal(t, -45.0, tr.TrackPiece(1).InitialRoll())
}

func TestRollReachesTarget(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tr := newTrack(t, nil, Straight)
	tr.Back().SetRollTarget(90)
	prev := tr.Roll()
	for i := 0; i <= 100; i++ {
		tr.UpdateSimulation(float64(i) / 100)
		assert.GreaterOrEqual(t, tr.Roll(), prev-1e-9, "roll decreased at step %d", i)
		prev = tr.Roll()
	}
	assert.InDelta(t, 90.0, tr.Roll(), 1e-9)
	assert.InDelta(t, 0.0, tr.Up().Dot(tr.Forward()), 1e-9)
	assert.InDelta(t, 1.0, tr.Up().Length(), 1e-9)
	assert.InDelta(t, 0.0, tr.Up().Y, 1e-9, "banked by a right angle")
}

func TestClosedCircuit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight, RightTurn, Straight, CompleteTrack)
	assert.Equal(t, 4, tr.TrackPieceCount())
	assert.Equal(t, CompleteTrack, tr.Back().Tag())
	assert.True(t, tr.PointAtDistance(1).EqualWithin(tr.PointAtDistance(0), 1e-9))
	assert.Greater(t, tr.TrackLength(), 0.0)
	closing := tr.Back().Segment()
	assert.True(t, closing.IsUsed())
	assert.True(t, closing.End().EqualWithin(tr.TrackPiece(0).Segment().Start(), 1e-12))
	tr.UpdateSimulation(0.7)
	assert.NotEqual(t, 0.0, tr.Time())
	tr.Reset()
	assert.Equal(t, coaster.Forward(), tr.Forward())
	assert.Equal(t, 0.0, tr.Time())
	assert.Equal(t, 0.0, tr.Roll())
	tr.UpdateSimulation(0)
	assert.Equal(t, coaster.Forward(), tr.Forward())
}

func TestCannotCloseShortTrack(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight)
	err := tr.AddTrackPiece(CompleteTrack)
	assert.ErrorIs(t, err, ErrCannotClose)
	assert.Equal(t, 1, tr.TrackPieceCount())
}

func TestTrackFull(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := DefaultConfig()
	cfg.MaxPieces = 2
	tr := New(cfg, nil)
	require.NoError(t, tr.AddTrackPiece(Straight))
	require.NoError(t, tr.AddTrackPiece(Straight))
	assert.ErrorIs(t, tr.AddTrackPiece(Straight), ErrTrackFull)
	assert.Equal(t, 2, tr.MaxTrackPieceCount())
}

func TestUnknownTagIsRejected(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := New(DefaultConfig(), nil)
	assert.ErrorIs(t, tr.AddTrackPiece(FromFile), ErrUnknownTag)
	assert.Equal(t, 0, tr.TrackPieceCount())
}

func TestRemoveLastPiece(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight)
	tr.RemoveBack()
	assert.Equal(t, 0, tr.TrackPieceCount())
	assert.True(t, tr.PointAtDistance(0.5).IsZero())
	tr = newTrack(t, nil, Straight, ClimbUp, Straight)
	tr.RemoveBack()
	assert.Equal(t, 2, tr.TrackPieceCount())
	assert.Equal(t, 1.0, tr.Back().Bounds().T1)
}

func TestEraseTrack(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rec := NewRecorder()
	tr := newTrack(t, rec, Straight, RightTurn)
	tr.GenerateMesh()
	require.NotEmpty(t, rec.Points)
	tr.EraseTrack()
	assert.Equal(t, 0, tr.TrackPieceCount())
	assert.Equal(t, 0.0, tr.TrackLength())
	assert.Empty(t, rec.Points)
	assert.Equal(t, coaster.Forward(), tr.ForwardStore())
	require.NoError(t, tr.AddTrackPiece(Straight))
	assert.True(t, tr.PointAtDistance(0).IsZero())
}

func TestUpdateBack(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight, Straight)
	edit := tr.Back().clone()
	points := edit.ControlPoints()
	points[2] = points[2].Add(coaster.V(0, 0, 10))
	points[3] = points[3].Add(coaster.V(0, 0, 10))
	edit.SetControlPoints(points)
	edit.SetRollTarget(30)
	edit.SetLength(segmentLength(edit, tr.Config().PreviewResolution))
	require.NoError(t, tr.UpdateBack(edit))
	assert.InDelta(t, 30.0, tr.TrackLength(), 1e-9)
	assert.Equal(t, 30.0, tr.Back().RollTarget())
	assert.InDelta(t, 0.5, tr.Back().Bounds().T0, 1e-6)
	assert.ErrorIs(t, tr.UpdateBack(nil), ErrNilPiece)
}

func TestGenerateMesh(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rec := NewRecorder()
	tr := newTrack(t, rec, Straight, RightTurn)
	tr.GenerateMesh()
	assert.Equal(t, 1, rec.Updates)
	require.Len(t, rec.Points, 60)
	assert.Len(t, rec.CrossTies, 20)
	assert.True(t, rec.Points[0].Centre.IsZero())
	assert.True(t, rec.Points[59].Centre.EqualWithin(tr.PointAtDistance(1), 1e-12))
	for i, f := range rec.Points {
		assert.InDelta(t, 0.0, f.Up.Dot(f.Forward), 1e-9, "sample %d", i)
	}
	// the simulation is reset and the end of the track is stored
	assert.Equal(t, 0.0, tr.Time())
	assert.Equal(t, coaster.Forward(), tr.Forward())
	assert.True(t, tr.ForwardStore().EqualWithin(coaster.Right(), 1e-9))
	assert.Equal(t, 0.0, tr.TargetRollStore())
	tr.GenerateMesh()
	assert.Len(t, rec.Points, 60, "a second pass replaces the first")
}

func TestCalculateEndOfSimulation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight, LeftTurn)
	tr.CalculateEndOfSimulation()
	assert.True(t, tr.ForwardStore().EqualWithin(coaster.Right().Flip(), 1e-9))
	assert.InDelta(t, 0.0, tr.UpStore().Dot(tr.ForwardStore()), 1e-9)
	assert.Equal(t, 0.0, tr.Time())
}

func TestOrientationAtPieceStart(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight, RightTurn, Straight)
	o := tr.OrientationAt(tr.pieceStart(2))
	assert.True(t, o.Forward.EqualWithin(coaster.Right(), 1e-2))
	assert.Equal(t, 0.0, tr.Time())
}

func TestCamera(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight)
	tr.UpdateSimulation(0.5)
	p := tr.Point()
	assert.InDelta(t, 5.0, p.Z, 1e-6)
	eye := tr.CameraEye()
	assert.True(t, eye.EqualWithin(coaster.V(0, 0.15, p.Z-0.5), 1e-9))
	assert.True(t, tr.CameraLookAt().EqualWithin(coaster.V(0, 0.15, p.Z+0.5), 1e-9))
	assert.Equal(t, tr.Up(), tr.CameraUp())
	assert.False(t, math.IsNaN(tr.Frame().Roll))
}
