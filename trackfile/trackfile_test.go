package trackfile

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/coaster"
	"github.com/npillmayer/coaster/track"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtTrack(t *testing.T) *track.Track {
	t.Helper()
	tr := track.New(track.DefaultConfig(), nil)
	for _, tag := range []track.Tag{track.Straight, track.RightTurn, track.Straight, track.ClimbUp, track.CompleteTrack} {
		require.NoError(t, tr.AddTrackPiece(tag))
	}
	tr.Back().SetRollTarget(15)
	return tr
}

func TestReadWriteSymmetry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	records := Records(builtTrack(t))
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))
	read, err := Read(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(records, read); diff != "" {
		t.Errorf("records differ after round trip (-want +got):\n%s", diff)
	}
}

func TestLoadReproducesTrack(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	orig := builtTrack(t)
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, orig))
	rec := track.NewRecorder()
	loaded := track.New(track.DefaultConfig(), rec)
	require.NoError(t, loaded.AddTrackPiece(track.ClimbDown)) // replaced by Load
	require.NoError(t, Load(loaded, &buf))
	require.Equal(t, orig.TrackPieceCount(), loaded.TrackPieceCount())
	assert.InDelta(t, orig.TrackLength(), loaded.TrackLength(), 1e-9)
	approx := cmpopts.EquateApprox(0, 1e-9)
	for i := 0; i < orig.TrackPieceCount(); i++ {
		a, b := orig.TrackPiece(i), loaded.TrackPiece(i)
		assert.Equal(t, track.FromFile, b.Tag())
		if diff := cmp.Diff(a.ControlPoints(), b.ControlPoints(), approx); diff != "" {
			t.Errorf("piece %d control points differ:\n%s", i, diff)
		}
		if diff := cmp.Diff(a.Bounds(), b.Bounds(), approx); diff != "" {
			t.Errorf("piece %d bounds differ:\n%s", i, diff)
		}
		assert.Equal(t, a.RollTarget(), b.RollTarget())
	}
	assert.Len(t, rec.Points, 30*loaded.TrackPieceCount(), "loading generates the mesh")
	assert.Equal(t, 0.0, loaded.Time())
}

func TestReadRejectsMalformedInput(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	inputs := []string{
		"",
		"x",
		"-1",
		"99999999999999999",
		"1000000000\n0 0 0\n",
		"1\n0 0 0\n0 0 0\n",
		"1\n0 0 0\n0 0 0\n0 0 10\n0 0 ten\n2\n0\n10\n",
	}
	for _, in := range inputs {
		_, err := Read(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrMalformed, "input %q", in)
	}
	records, err := Read(strings.NewReader("0\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadTooManyPieces(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, builtTrack(t)))
	cfg := track.DefaultConfig()
	cfg.MaxPieces = 2
	tr := track.New(cfg, nil)
	err := Load(tr, &buf)
	assert.ErrorIs(t, err, track.ErrTrackFull)
	assert.Equal(t, 0, tr.TrackPieceCount())
}

func TestFileHelpers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := filepath.Join(t.TempDir(), "circuit.txt")
	require.NoError(t, SaveFile(path, builtTrack(t)))
	tr := track.New(track.DefaultConfig(), nil)
	require.NoError(t, LoadFile(tr, path))
	assert.Equal(t, 5, tr.TrackPieceCount())
	assert.True(t, tr.PointAtDistance(0).EqualWithin(coaster.Zero, 1e-12))
	assert.Error(t, LoadFile(tr, filepath.Join(t.TempDir(), "missing.txt")))
}
