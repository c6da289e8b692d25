package track

// MeshBuilder receives the sampled frames of a track. Points arrive in
// order; UpdateMesh marks the end of a sampling pass.
type MeshBuilder interface {
	Clear()
	StorePoint(Frame)
	AddCrossTie(Frame)
	UpdateMesh()
	ClearPreview()
	ClearSupports()
	AddSupport(Support)
}

// PreviewMeshBuilder receives the sampled frames of a preview piece.
type PreviewMeshBuilder interface {
	SetPreviewActive(bool)
	StorePreviewPoint(Frame)
	AddPreviewCrossTie(Frame)
	UpdatePreviewMesh()
	ClearPreview()
}

// Recorder is an in-memory MeshBuilder and PreviewMeshBuilder. Each sampling
// pass replaces the frames of the previous one.
type Recorder struct {
	Points           []Frame
	CrossTies        []Frame
	Supports         []Support
	PreviewPoints    []Frame
	PreviewCrossTies []Frame
	PreviewActive    bool
	Updates          int // completed track passes
	PreviewUpdates   int // completed preview passes

	pending, pendingTies               []Frame
	pendingPreview, pendingPreviewTies []Frame
}

var _ MeshBuilder = (*Recorder)(nil)
var _ PreviewMeshBuilder = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() {
	r.Points, r.CrossTies = nil, nil
	r.pending, r.pendingTies = nil, nil
	r.Supports = nil
}

func (r *Recorder) StorePoint(f Frame) {
	r.pending = append(r.pending, f)
}

func (r *Recorder) AddCrossTie(f Frame) {
	r.pendingTies = append(r.pendingTies, f)
}

func (r *Recorder) UpdateMesh() {
	r.Points, r.CrossTies = r.pending, r.pendingTies
	r.pending, r.pendingTies = nil, nil
	r.Updates++
}

func (r *Recorder) ClearPreview() {
	r.PreviewPoints, r.PreviewCrossTies = nil, nil
	r.pendingPreview, r.pendingPreviewTies = nil, nil
}

func (r *Recorder) ClearSupports() {
	r.Supports = nil
}

func (r *Recorder) AddSupport(s Support) {
	r.Supports = append(r.Supports, s)
}

func (r *Recorder) SetPreviewActive(active bool) {
	r.PreviewActive = active
}

func (r *Recorder) StorePreviewPoint(f Frame) {
	r.pendingPreview = append(r.pendingPreview, f)
}

func (r *Recorder) AddPreviewCrossTie(f Frame) {
	r.pendingPreviewTies = append(r.pendingPreviewTies, f)
}

func (r *Recorder) UpdatePreviewMesh() {
	r.PreviewPoints, r.PreviewCrossTies = r.pendingPreview, r.pendingPreviewTies
	r.pendingPreview, r.pendingPreviewTies = nil, nil
	r.PreviewUpdates++
}

// nopMesh discards everything.
type nopMesh struct{}

func (nopMesh) Clear()                   {}
func (nopMesh) StorePoint(Frame)         {}
func (nopMesh) AddCrossTie(Frame)        {}
func (nopMesh) UpdateMesh()              {}
func (nopMesh) ClearPreview()            {}
func (nopMesh) ClearSupports()           {}
func (nopMesh) AddSupport(Support)       {}
func (nopMesh) SetPreviewActive(bool)    {}
func (nopMesh) StorePreviewPoint(Frame)  {}
func (nopMesh) AddPreviewCrossTie(Frame) {}
func (nopMesh) UpdatePreviewMesh()       {}
