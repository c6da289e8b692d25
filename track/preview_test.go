package track

import (
	"testing"

	"github.com/npillmayer/coaster"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewFollowsTrackEnd(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rec := NewRecorder()
	tr := newTrack(t, rec, Straight)
	tr.GenerateMesh()
	require.NoError(t, tr.AddTrackPiece(RightTurn))
	pv := NewPreview(tr.Config(), rec)
	assert.False(t, pv.Active())
	pv.InitTrackPiece(tr.Back())
	assert.True(t, pv.Active())
	assert.True(t, rec.PreviewActive)
	assert.InDelta(t, tr.Back().Length(), pv.Length(), 1e-9)

	pv.InitialiseSimulation(tr.RollStore(), tr.ForwardStore(), tr.RightStore(), tr.UpStore(), -45)
	pv.UpdateSimulation(0)
	assert.InDelta(t, -45.0, pv.Roll(), 1e-9)
	pv.UpdateSimulation(1)
	assert.InDelta(t, 0.0, pv.Roll(), 1e-9)
	assert.True(t, pv.Forward().EqualWithin(coaster.Right(), 1e-9))
	assert.InDelta(t, 0.0, pv.Up().Dot(pv.Forward()), 1e-9)
	pv.Reset()
	assert.Equal(t, tr.ForwardStore(), pv.Forward())
}

func TestPreviewMesh(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rec := NewRecorder()
	tr := newTrack(t, nil, Straight, RightTurn)
	pv := NewPreview(tr.Config(), rec)
	pv.InitTrackPiece(tr.Back())
	pv.InitialiseSimulation(0, coaster.Forward(), coaster.Right(), coaster.Up(), 0)
	pv.GenerateMesh()
	require.Len(t, rec.PreviewPoints, 25)
	assert.Len(t, rec.PreviewCrossTies, 9)
	assert.Equal(t, 1, rec.PreviewUpdates)
	seg := tr.Back().Segment()
	assert.True(t, rec.PreviewPoints[0].Centre.EqualWithin(seg.Start(), 1e-9))
	assert.True(t, rec.PreviewPoints[24].Centre.EqualWithin(seg.End(), 1e-9))
	assert.Equal(t, 0.0, pv.Time())
	assert.Empty(t, rec.Points, "track mesh is untouched")
}

func TestMoveControlPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight)
	pv := NewPreview(tr.Config(), nil)
	before := pv.Edit()
	pv.MoveControlPoints(SoftCurve, coaster.V(0, 1, 0))
	assert.Equal(t, before, pv.Edit(), "inactive preview must not move")

	pv.InitTrackPiece(tr.Back())
	length := pv.Length()
	points := pv.Edit().ControlPoints
	delta := coaster.V(0, 1, 0)
	pv.MoveControlPoints(SoftCurve, delta)
	moved := pv.Edit().ControlPoints
	for i, active := range SoftCurve.ActivePoints() {
		want := points[i]
		if active {
			want = want.Add(delta)
		}
		assert.True(t, moved[i].Equal(want), "control point %d", i)
	}
	assert.NotEqual(t, length, pv.Length(), "length follows the edit")
	pv.MoveControlPoints(FixedEnds, delta)
	assert.True(t, pv.Edit().ControlPoints[2].Equal(moved[2]))
	assert.True(t, pv.Edit().ControlPoints[3].Equal(moved[3].Add(delta)))
}

func TestPreviewPieceIsDetached(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := newTrack(t, nil, Straight)
	pv := NewPreview(tr.Config(), nil)
	pv.InitTrackPiece(tr.Back())
	p := pv.Piece()
	p.SetRollTarget(99)
	p.SetControlPoints([4]coaster.Vector{})
	assert.Equal(t, 0.0, pv.Edit().RollTarget)
	assert.True(t, pv.Edit().ControlPoints[2].Equal(coaster.V(0, 0, 10)))
	assert.Equal(t, Straight, pv.Piece().Tag())
}

func TestApplyAndErasePreview(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rec := NewRecorder()
	tr := newTrack(t, nil, Straight)
	pv := NewPreview(tr.Config(), rec)
	pv.InitTrackPiece(tr.Back())
	e := pv.Edit()
	e.RollTarget = 30
	e.ControlPoints[2] = coaster.V(0, 0, 20)
	e.ControlPoints[3] = coaster.V(0, 0, 20)
	pv.Apply(e)
	assert.Equal(t, 30.0, pv.Piece().RollTarget())
	assert.InDelta(t, 20.0, pv.Length(), 1e-9)
	pv.EraseTrack()
	assert.False(t, pv.Active())
	assert.False(t, rec.PreviewActive)
	assert.Equal(t, 0.0, pv.Length())
}

func TestEditorSession(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rec := NewRecorder()
	tr := New(DefaultConfig(), rec)
	ed := NewEditor(tr, NewPreview(tr.Config(), rec))
	require.NoError(t, ed.Build(Straight))
	require.NoError(t, ed.Build(RightTurn))
	assert.Equal(t, SoftCurve, ed.Mode())
	ed.Move(0, 0, 2)
	ed.SetRollTarget(-20)
	edited := ed.Preview().Edit()
	require.NoError(t, ed.Build(Straight))
	require.Equal(t, 3, tr.TrackPieceCount())
	turn := tr.TrackPiece(1)
	assert.Equal(t, edited.ControlPoints, turn.ControlPoints(), "edit committed")
	assert.Equal(t, -20.0, turn.RollTarget())
	assert.Equal(t, -20.0, tr.Back().RollTarget(), "roll carried over to the next piece")

	ed.Undo()
	require.Equal(t, 2, tr.TrackPieceCount())
	assert.True(t, ed.Preview().Active())
	assert.Equal(t, turn.ControlPoints(), ed.Preview().Edit().ControlPoints)
	assert.NotEmpty(t, rec.PreviewPoints)

	require.NoError(t, ed.Build(CompleteTrack))
	assert.Equal(t, 3, tr.TrackPieceCount())
	assert.False(t, ed.Preview().Active())
	assert.Empty(t, rec.PreviewPoints)
	assert.Len(t, rec.Points, 90)

	ed.Erase()
	assert.Equal(t, 0, tr.TrackPieceCount())
	assert.False(t, ed.Preview().Active())
}
