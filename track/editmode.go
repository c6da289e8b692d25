package track

import "fmt"

// EditMode selects which control points of a piece follow an edit.
type EditMode int

// Edit modes. SoftCurve moves everything except the attachment point,
// HardCurve additionally keeps the trailing control point, FixedEnds only
// moves the trailing control point.
const (
	SoftCurve EditMode = iota
	HardCurve
	FixedEnds
)

var editMasks = [...][4]bool{
	SoftCurve: {true, false, true, true},
	HardCurve: {true, false, true, false},
	FixedEnds: {false, false, false, true},
}

var editModeNames = [...]string{
	SoftCurve: "soft",
	HardCurve: "hard",
	FixedEnds: "fixed",
}

// ActivePoints returns which of the four control points an edit moves.
// Unknown modes move nothing.
func (m EditMode) ActivePoints() [4]bool {
	if m < 0 || int(m) >= len(editMasks) {
		return [4]bool{}
	}
	return editMasks[m]
}

func (m EditMode) String() string {
	if m < 0 || int(m) >= len(editModeNames) {
		return fmt.Sprintf("EditMode(%d)", int(m))
	}
	return editModeNames[m]
}
