// Package config holds the persisted gamepad settings: deadzone,
// per-category sensitivities, Y inversion, the button binding table and the
// startup mode default.
package config

import (
	"fmt"

	"github.com/molpad/molpad/internal/gamepad"
)

// Range invariants. Out-of-range values are rejected, never clamped.
const (
	MinDeadZone = 0.0
	MaxDeadZone = 0.5

	MinSensitivity = 0.1
	MaxSensitivity = 5.0
)

// Sensitivity category names accepted by the command surface.
const (
	SensitivityTranslation = "translation"
	SensitivityRotation    = "rotation"
	SensitivityZoom        = "zoom"
)

// Mode default names accepted in the settings document.
const (
	ModeNameView  = "view"
	ModeNameModel = "model"
)

// Bindings maps buttons to opaque host command strings. Command text is
// passed through uninterpreted.
type Bindings map[gamepad.ButtonID]string

// Bind associates a button with a command, replacing any existing binding.
func (b Bindings) Bind(button gamepad.ButtonID, command string) error {
	if !button.Valid() {
		return &ValidationError{Field: "button", Reason: fmt.Sprintf("unknown button id %d", button)}
	}
	b[button] = command
	return nil
}

// Unbind removes a binding if present; removing an absent binding is a
// no-op.
func (b Bindings) Unbind(button gamepad.ButtonID) {
	delete(b, button)
}

// Resolve returns the command bound to a button, if any.
func (b Bindings) Resolve(button gamepad.ButtonID) (string, bool) {
	cmd, ok := b[button]
	return cmd, ok
}

// Clone returns an independent copy of the binding table.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Settings is the in-memory form of the settings document.
type Settings struct {
	DeadZone               float64
	SensitivityTranslation float64
	SensitivityRotation    float64
	SensitivityZoom        float64
	InvertY                bool
	DefaultMode            string
	Bindings               Bindings
}

// Default returns the settings used when no document exists yet.
func Default() Settings {
	return Settings{
		DeadZone:               0.15,
		SensitivityTranslation: 1.0,
		SensitivityRotation:    1.0,
		SensitivityZoom:        1.0,
		InvertY:                false,
		DefaultMode:            ModeNameView,
		Bindings:               Bindings{},
	}
}

// Clone returns a deep copy, so command handlers can mutate a candidate and
// commit it only after validation and persistence succeed.
func (s Settings) Clone() Settings {
	out := s
	out.Bindings = s.Bindings.Clone()
	return out
}

// ValidateDeadZone checks the deadzone range invariant.
func ValidateDeadZone(v float64) error {
	if v < MinDeadZone || v > MaxDeadZone {
		return &ValidationError{
			Field:  "deadzone",
			Reason: fmt.Sprintf("%g outside [%g, %g]", v, MinDeadZone, MaxDeadZone),
		}
	}
	return nil
}

// ValidateSensitivity checks one sensitivity value against the shared range
// invariant. The field name is reported in the error.
func ValidateSensitivity(field string, v float64) error {
	if v < MinSensitivity || v > MaxSensitivity {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("%g outside [%g, %g]", v, MinSensitivity, MaxSensitivity),
		}
	}
	return nil
}

// Validate checks every invariant of the settings aggregate.
func (s Settings) Validate() error {
	if err := ValidateDeadZone(s.DeadZone); err != nil {
		return err
	}
	if err := ValidateSensitivity("sensitivity_translation", s.SensitivityTranslation); err != nil {
		return err
	}
	if err := ValidateSensitivity("sensitivity_rotation", s.SensitivityRotation); err != nil {
		return err
	}
	if err := ValidateSensitivity("sensitivity_zoom", s.SensitivityZoom); err != nil {
		return err
	}
	if s.DefaultMode != ModeNameView && s.DefaultMode != ModeNameModel {
		return &ValidationError{
			Field:  "default_mode",
			Reason: fmt.Sprintf("%q is neither %q nor %q", s.DefaultMode, ModeNameView, ModeNameModel),
		}
	}
	for button := range s.Bindings {
		if !button.Valid() {
			return &ValidationError{Field: "bindings", Reason: fmt.Sprintf("unknown button id %d", button)}
		}
	}
	return nil
}
