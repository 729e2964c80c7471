package action

import (
	"github.com/pkg/errors"

	"github.com/molpad/molpad/internal/config"
)

// Mode selects what the left stick and triggers manipulate: the camera
// (view) or the selected models. Right-stick rotation behaves the same in
// both modes. Exactly one mode is active at a time; it flips on the START
// button rising edge and is not persisted across restarts.
type Mode uint8

const (
	ModeView Mode = iota
	ModeModel
)

func (m Mode) String() string {
	if m == ModeModel {
		return config.ModeNameModel
	}
	return config.ModeNameView
}

// Toggled returns the other mode.
func (m Mode) Toggled() Mode {
	if m == ModeView {
		return ModeModel
	}
	return ModeView
}

// ParseMode converts a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case config.ModeNameView:
		return ModeView, nil
	case config.ModeNameModel:
		return ModeModel, nil
	default:
		return ModeView, errors.Errorf("unknown mode %q", name)
	}
}
