package gamepad

import "time"

// Sample is one snapshot of the controller taken at a poll tick. Stick axes
// are normalized to [-1, 1] and triggers to [0, 1]; no deadzone or
// sensitivity is applied here. A Sample is a plain value and is comparable,
// which is what the dispatcher relies on for edge detection.
type Sample struct {
	Axes      [NumAxes]float64
	Buttons   [NumButtons]bool
	Connected bool
	Name      string
	Time      time.Time
}

// Pressed reports whether the given button is down in this sample. Unknown
// identifiers read as not pressed.
func (s Sample) Pressed(b ButtonID) bool {
	if !b.Valid() {
		return false
	}
	return s.Buttons[b]
}

// Sampler produces controller snapshots for the engine tick loop. Sample
// must be non-blocking and must tolerate having no device connected, in
// which case it returns a zero-valued disconnected Sample.
type Sampler interface {
	Sample() Sample
}
