package action

import (
	"github.com/molpad/molpad/internal/config"
	"github.com/molpad/molpad/internal/filter"
	"github.com/molpad/molpad/internal/gamepad"
)

// Dispatcher owns the mode state machine and derives the per-tick directive
// list from consecutive samples. It is not safe for concurrent use; the
// engine serializes ticks and mode mutations.
type Dispatcher struct {
	mode Mode
}

func NewDispatcher(initial Mode) *Dispatcher {
	return &Dispatcher{mode: initial}
}

// Mode returns the currently active mode.
func (d *Dispatcher) Mode() Mode {
	return d.mode
}

// SetMode forces the mode, as driven by the mode command.
func (d *Dispatcher) SetMode(m Mode) {
	d.mode = m
}

// Dispatch produces the ordered directive list for one tick. prev is the
// sample from the previous tick and is used for button edge detection.
//
// Order: stick directives, trigger directives, mode toggle, then bound
// button invocations. The toggle consumes the START edge, so a binding on
// START never fires. A disconnected sample yields no directives.
func (d *Dispatcher) Dispatch(cur, prev gamepad.Sample, st config.Settings) []Action {
	if !cur.Connected {
		return nil
	}

	acts := make([]Action, 0, 4)
	mode := d.mode

	// Stick axes. User-level Y inversion happens before filtering.
	ly := cur.Axes[gamepad.AxisLeftY]
	ry := cur.Axes[gamepad.AxisRightY]
	if st.InvertY {
		ly = -ly
		ry = -ry
	}

	panX := filter.Apply(cur.Axes[gamepad.AxisLeftX], st.DeadZone, st.SensitivityTranslation)
	panY := filter.Apply(ly, st.DeadZone, st.SensitivityTranslation)
	if panX != 0 || panY != 0 {
		acts = append(acts, Action{Kind: KindPan, Mode: mode, DX: panX, DY: panY})
	}

	rotX := filter.Apply(cur.Axes[gamepad.AxisRightX], st.DeadZone, st.SensitivityRotation)
	rotY := filter.Apply(ry, st.DeadZone, st.SensitivityRotation)
	if rotX != 0 || rotY != 0 {
		acts = append(acts, Action{Kind: KindRotate, Mode: mode, DX: rotX, DY: rotY})
	}

	// Triggers: zoom in view mode, Z translation in model mode.
	lt := filter.Apply(cur.Axes[gamepad.AxisLeftTrigger], st.DeadZone, st.SensitivityZoom)
	rt := filter.Apply(cur.Axes[gamepad.AxisRightTrigger], st.DeadZone, st.SensitivityZoom)
	if mode == ModeView {
		if rt != 0 {
			acts = append(acts, Action{Kind: KindZoomIn, Mode: mode, Amount: rt})
		}
		if lt != 0 {
			acts = append(acts, Action{Kind: KindZoomOut, Mode: mode, Amount: lt})
		}
	} else {
		if rt != 0 {
			acts = append(acts, Action{Kind: KindTranslateZ, Mode: mode, Amount: rt})
		}
		if lt != 0 {
			acts = append(acts, Action{Kind: KindTranslateZ, Mode: mode, Amount: -lt})
		}
	}

	// Mode toggle on the START rising edge, consuming the edge.
	if risingEdge(cur, prev, gamepad.ButtonStart) {
		d.mode = d.mode.Toggled()
		acts = append(acts, Action{Kind: KindModeChange, Mode: d.mode})
	}

	// Bound commands on every other rising edge. An unbound button is a
	// silent no-op.
	for b := gamepad.ButtonID(0); b < gamepad.NumButtons; b++ {
		if b == gamepad.ButtonStart || !risingEdge(cur, prev, b) {
			continue
		}
		if cmd, ok := st.Bindings.Resolve(b); ok {
			acts = append(acts, Action{Kind: KindInvoke, Mode: d.mode, Command: cmd})
		}
	}

	return acts
}

// risingEdge reports a not-pressed to pressed transition between two
// consecutive samples.
func risingEdge(cur, prev gamepad.Sample, b gamepad.ButtonID) bool {
	return cur.Pressed(b) && !prev.Pressed(b)
}
