package gamepad

import (
	"strings"

	"github.com/pkg/errors"
)

// ButtonID identifies one of the fixed set of gamepad buttons. The set and
// the names match the SDL game controller button layout.
type ButtonID uint8

const (
	ButtonA ButtonID = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonLeftStick
	ButtonRightStick
	ButtonBack
	ButtonStart
	ButtonGuide
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeft
	ButtonDpadRight

	// NumButtons is the size of the button enumeration.
	NumButtons
)

var buttonNames = [NumButtons]string{
	ButtonA:             "A",
	ButtonB:             "B",
	ButtonX:             "X",
	ButtonY:             "Y",
	ButtonLeftShoulder:  "LEFTSHOULDER",
	ButtonRightShoulder: "RIGHTSHOULDER",
	ButtonLeftStick:     "LEFTSTICK",
	ButtonRightStick:    "RIGHTSTICK",
	ButtonBack:          "BACK",
	ButtonStart:         "START",
	ButtonGuide:         "GUIDE",
	ButtonDpadUp:        "DPAD_UP",
	ButtonDpadDown:      "DPAD_DOWN",
	ButtonDpadLeft:      "DPAD_LEFT",
	ButtonDpadRight:     "DPAD_RIGHT",
}

func (b ButtonID) String() string {
	if b >= NumButtons {
		return "UNKNOWN"
	}
	return buttonNames[b]
}

// Valid reports whether b is a member of the button enumeration.
func (b ButtonID) Valid() bool {
	return b < NumButtons
}

// ParseButtonID converts a button name to its ButtonID. Matching is
// case-insensitive.
func ParseButtonID(name string) (ButtonID, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for id, n := range buttonNames {
		if n == upper {
			return ButtonID(id), nil
		}
	}
	return 0, errors.Errorf("unknown button %q", name)
}

// AxisID identifies one analog channel of the gamepad.
type AxisID uint8

const (
	AxisLeftX AxisID = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisLeftTrigger
	AxisRightTrigger

	// NumAxes is the size of the axis enumeration.
	NumAxes
)

var axisNames = [NumAxes]string{
	AxisLeftX:        "left_x",
	AxisLeftY:        "left_y",
	AxisRightX:       "right_x",
	AxisRightY:       "right_y",
	AxisLeftTrigger:  "lt",
	AxisRightTrigger: "rt",
}

func (a AxisID) String() string {
	if a >= NumAxes {
		return "unknown"
	}
	return axisNames[a]
}
