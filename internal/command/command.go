// Package command implements the textual command surface consumed by the
// remote clients: start, stop, status, mode, sensitivity, deadzone,
// invert_y, bind and unbind. Each command either succeeds with a short
// reply or fails with a typed error; values are never clamped silently.
package command

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/molpad/molpad/internal/action"
	"github.com/molpad/molpad/internal/config"
	"github.com/molpad/molpad/internal/engine"
	"github.com/molpad/molpad/internal/gamepad"
)

type Executor struct {
	eng *engine.Engine
}

func NewExecutor(eng *engine.Engine) *Executor {
	return &Executor{eng: eng}
}

// Execute parses and runs one command line and returns the reply text.
func (x *Executor) Execute(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", errors.New("empty command")
	}

	switch fields[0] {
	case "start":
		x.eng.Start()
		return "started", nil

	case "stop":
		x.eng.Stop()
		return "stopped", nil

	case "status":
		data, err := json.Marshal(x.eng.Status())
		if err != nil {
			return "", errors.Wrap(err, "encode status")
		}
		return string(data), nil

	case "mode":
		if len(fields) != 2 {
			return "", errors.New("usage: mode {view|model}")
		}
		m, err := action.ParseMode(fields[1])
		if err != nil {
			return "", err
		}
		x.eng.SetMode(m)
		return "mode " + m.String(), nil

	case "sensitivity":
		if len(fields) != 3 {
			return "", errors.New("usage: sensitivity {translation|rotation|zoom} <value>")
		}
		v, err := parseFloat("sensitivity", fields[2])
		if err != nil {
			return "", err
		}
		if err := x.eng.SetSensitivity(fields[1], v); err != nil {
			return "", err
		}
		return fmt.Sprintf("sensitivity %s %g", fields[1], v), nil

	case "deadzone":
		if len(fields) != 2 {
			return "", errors.New("usage: deadzone <value>")
		}
		v, err := parseFloat("deadzone", fields[1])
		if err != nil {
			return "", err
		}
		if err := x.eng.SetDeadZone(v); err != nil {
			return "", err
		}
		return fmt.Sprintf("deadzone %g", v), nil

	case "invert_y":
		if len(fields) != 2 {
			return "", errors.New("usage: invert_y {on|off}")
		}
		inverted, err := parseOnOff(fields[1])
		if err != nil {
			return "", err
		}
		if err := x.eng.SetInvertY(inverted); err != nil {
			return "", err
		}
		return fmt.Sprintf("invert_y %v", inverted), nil

	case "bind":
		if len(fields) < 3 {
			return "", errors.New("usage: bind <button> <command...>")
		}
		button, err := gamepad.ParseButtonID(fields[1])
		if err != nil {
			return "", &config.ValidationError{Field: "button", Reason: err.Error()}
		}
		// The bound command is the remainder of the line after the button
		// token: host command text is opaque and may contain anything.
		hostCmd := bindArgument(line, fields[1])
		if err := x.eng.Bind(button, hostCmd); err != nil {
			return "", err
		}
		return fmt.Sprintf("bound %s", button), nil

	case "unbind":
		if len(fields) != 2 {
			return "", errors.New("usage: unbind <button>")
		}
		button, err := gamepad.ParseButtonID(fields[1])
		if err != nil {
			return "", &config.ValidationError{Field: "button", Reason: err.Error()}
		}
		if err := x.eng.Unbind(button); err != nil {
			return "", err
		}
		return fmt.Sprintf("unbound %s", button), nil

	default:
		return "", errors.Errorf("unknown command %q", fields[0])
	}
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &config.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return v, nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true":
		return true, nil
	case "off", "false":
		return false, nil
	default:
		return false, &config.ValidationError{Field: "invert_y", Reason: fmt.Sprintf("%q is not on/off", s)}
	}
}

// bindArgument strips the "bind" verb and the button token off the front of
// the line and returns what is left, trimmed at both ends.
func bindArgument(line, buttonToken string) string {
	rest := strings.TrimSpace(line)
	rest = strings.TrimSpace(rest[len("bind"):])
	return strings.TrimSpace(rest[len(buttonToken):])
}
