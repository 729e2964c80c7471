package config

import "fmt"

// ValidationError reports an out-of-range value or unknown identifier on a
// mutating command. The prior settings state is always left unchanged when
// one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigError reports a settings document that exists but could not be read
// or does not satisfy the invariants. It is recoverable: callers fall back
// to defaults at startup.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("settings document %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
