// Package filter applies the deadzone threshold and linear sensitivity
// curve to normalized axis values.
package filter

import "math"

// Apply filters one raw axis value. Values inside the deadzone collapse to
// zero; outside it the output ramps linearly from 0 at the deadzone boundary
// to ±sensitivity at full deflection, so there is no discontinuity at the
// edge:
//
//	out = sign(raw) * sensitivity * (|raw| - deadZone) / (1 - deadZone)
//
// deadZone must be below 1; config validation enforces deadZone <= 0.5
// before a value ever reaches this function.
func Apply(raw, deadZone, sensitivity float64) float64 {
	abs := math.Abs(raw)
	if abs < deadZone {
		return 0
	}
	out := sensitivity * (abs - deadZone) / (1 - deadZone)
	return math.Copysign(out, raw)
}
