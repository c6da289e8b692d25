package track

import (
	"errors"
	"fmt"

	"github.com/npillmayer/coaster"
)

// Tag identifies the kind of a track piece.
type Tag int

// Piece kinds. CompleteTrack closes the loop and FromFile marks pieces read
// from a track file; neither has preset geometry.
const (
	Straight Tag = iota
	RightTurn
	LeftTurn
	ClimbUp
	ClimbDown
	CompleteTrack
	FromFile
)

// ErrUnknownTag indicates a tag without a name or without preset geometry.
var ErrUnknownTag = errors.New("unknown track piece tag")

var tagNames = [...]string{
	Straight:      "straight",
	RightTurn:     "right-turn",
	LeftTurn:      "left-turn",
	ClimbUp:       "climb-up",
	ClimbDown:     "climb-down",
	CompleteTrack: "complete-track",
	FromFile:      "from-file",
}

func (tag Tag) String() string {
	if tag < 0 || int(tag) >= len(tagNames) {
		return fmt.Sprintf("Tag(%d)", int(tag))
	}
	return tagNames[tag]
}

// ParseTag is the inverse of Tag.String.
func ParseTag(name string) (Tag, error) {
	for tag, n := range tagNames {
		if n == name {
			return Tag(tag), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

// Tags lists the tags a user may place, in menu order.
func Tags() []Tag {
	return []Tag{Straight, RightTurn, LeftTurn, ClimbUp, ClimbDown, CompleteTrack}
}

// Preset is the static geometry a new piece starts with: control points
// relative to the origin, heading along +z, plus a roll target in degrees
// and a tension.
type Preset struct {
	ControlPoints [4]coaster.Vector
	RollTarget    float64
	Tension       float64
}

var defaultPresets = map[Tag]Preset{
	Straight: {
		ControlPoints: [4]coaster.Vector{coaster.V(0, 0, 0), coaster.V(0, 0, 0), coaster.V(0, 0, 10), coaster.V(0, 0, 10)},
		Tension:       2.0,
	},
	RightTurn: {
		ControlPoints: [4]coaster.Vector{coaster.V(10, 0, 0), coaster.V(0, 0, 0), coaster.V(10, 0, 10), coaster.V(10, 0, 0)},
		RollTarget:    -45,
		Tension:       2.0,
	},
	LeftTurn: {
		ControlPoints: [4]coaster.Vector{coaster.V(-10, 0, 0), coaster.V(0, 0, 0), coaster.V(-10, 0, 10), coaster.V(-10, 0, 0)},
		RollTarget:    45,
		Tension:       2.0,
	},
	ClimbUp: {
		ControlPoints: [4]coaster.Vector{coaster.V(0, 10, 0), coaster.V(0, 0, 0), coaster.V(0, 10, 10), coaster.V(0, 0, 10)},
		Tension:       2.0,
	},
	ClimbDown: {
		ControlPoints: [4]coaster.Vector{coaster.V(0, -10, 0), coaster.V(0, 0, 0), coaster.V(0, -10, 10), coaster.V(0, 0, 10)},
		Tension:       2.0,
	},
}
