package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/molpad/molpad/internal/gamepad"
)

// Flat key set of the settings document.
const (
	keyDeadZone               = "deadzone"
	keySensitivityTranslation = "sensitivity_translation"
	keySensitivityRotation    = "sensitivity_rotation"
	keySensitivityZoom        = "sensitivity_zoom"
	keyInvertY                = "invert_y"
	keyDefaultMode            = "default_mode"
	keyBindings               = "bindings"
)

// Store reads and writes the settings document at a fixed path. Load and
// Save round-trip exactly for any valid Settings.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// DefaultPath returns the per-user settings document location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locate user config directory")
	}
	return filepath.Join(dir, "molpad", "config.json"), nil
}

// Load reads the settings document. A missing document yields the defaults;
// a document that exists but is malformed or violates an invariant yields a
// *ConfigError.
func (s *Store) Load() (Settings, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, &ConfigError{Path: s.path, Err: err}
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	defaults := Default()
	v.SetDefault(keyDeadZone, defaults.DeadZone)
	v.SetDefault(keySensitivityTranslation, defaults.SensitivityTranslation)
	v.SetDefault(keySensitivityRotation, defaults.SensitivityRotation)
	v.SetDefault(keySensitivityZoom, defaults.SensitivityZoom)
	v.SetDefault(keyInvertY, defaults.InvertY)
	v.SetDefault(keyDefaultMode, defaults.DefaultMode)

	if err := v.ReadInConfig(); err != nil {
		return Settings{}, &ConfigError{Path: s.path, Err: err}
	}

	out := Settings{
		DeadZone:               v.GetFloat64(keyDeadZone),
		SensitivityTranslation: v.GetFloat64(keySensitivityTranslation),
		SensitivityRotation:    v.GetFloat64(keySensitivityRotation),
		SensitivityZoom:        v.GetFloat64(keySensitivityZoom),
		InvertY:                v.GetBool(keyInvertY),
		DefaultMode:            v.GetString(keyDefaultMode),
		Bindings:               Bindings{},
	}

	for name, cmd := range v.GetStringMapString(keyBindings) {
		button, err := gamepad.ParseButtonID(name)
		if err != nil {
			return Settings{}, &ConfigError{Path: s.path, Err: err}
		}
		out.Bindings[button] = cmd
	}

	if err := out.Validate(); err != nil {
		return Settings{}, &ConfigError{Path: s.path, Err: err}
	}
	return out, nil
}

// Save validates and persists the settings document atomically: the
// document is written to a temporary file in the same directory and renamed
// into place, so an interrupted write never leaves a partial document.
func (s *Store) Save(st Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "create settings directory")
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set(keyDeadZone, st.DeadZone)
	v.Set(keySensitivityTranslation, st.SensitivityTranslation)
	v.Set(keySensitivityRotation, st.SensitivityRotation)
	v.Set(keySensitivityZoom, st.SensitivityZoom)
	v.Set(keyInvertY, st.InvertY)
	v.Set(keyDefaultMode, st.DefaultMode)

	bindings := make(map[string]string, len(st.Bindings))
	for button, cmd := range st.Bindings {
		bindings[button.String()] = cmd
	}
	v.Set(keyBindings, bindings)

	// Keep the .json suffix so viper picks the encoder from the extension.
	tmp := filepath.Join(filepath.Dir(s.path), ".tmp-"+filepath.Base(s.path))
	if err := v.WriteConfigAs(tmp); err != nil {
		return errors.Wrap(err, "write settings")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "replace settings")
	}
	return nil
}
