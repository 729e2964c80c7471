package command

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/molpad/molpad/internal/action"
	"github.com/molpad/molpad/internal/config"
	"github.com/molpad/molpad/internal/engine"
	"github.com/molpad/molpad/internal/gamepad"
)

type idleSampler struct{}

func (idleSampler) Sample() gamepad.Sample { return gamepad.Sample{} }

func newExecutor(t *testing.T) (*Executor, *engine.Engine) {
	t.Helper()
	store := config.NewStore(filepath.Join(t.TempDir(), "config.json"))
	eng := engine.New(idleSampler{}, action.NewLogAdapter(golog.NewTestLogger(t)),
		store, config.Default(), time.Millisecond, golog.NewTestLogger(t))
	t.Cleanup(eng.Stop)
	return NewExecutor(eng), eng
}

func TestStartStopStatus(t *testing.T) {
	x, eng := newExecutor(t)

	reply, err := x.Execute("start")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reply, test.ShouldEqual, "started")
	test.That(t, eng.Running(), test.ShouldBeTrue)

	reply, err = x.Execute("status")
	test.That(t, err, test.ShouldBeNil)
	var st engine.Status
	test.That(t, json.Unmarshal([]byte(reply), &st), test.ShouldBeNil)
	test.That(t, st.Running, test.ShouldBeTrue)
	test.That(t, st.Mode, test.ShouldEqual, "view")

	_, err = x.Execute("stop")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, eng.Running(), test.ShouldBeFalse)
}

func TestModeCommand(t *testing.T) {
	x, eng := newExecutor(t)

	_, err := x.Execute("mode model")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, eng.Mode(), test.ShouldEqual, action.ModeModel)

	_, err = x.Execute("mode orbit")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, eng.Mode(), test.ShouldEqual, action.ModeModel)
}

func TestSensitivityCommand(t *testing.T) {
	x, eng := newExecutor(t)

	_, err := x.Execute("sensitivity zoom 3.5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, eng.Settings().SensitivityZoom, test.ShouldEqual, 3.5)

	_, err = x.Execute("sensitivity zoom 7")
	var verr *config.ValidationError
	test.That(t, errors.As(err, &verr), test.ShouldBeTrue)
	test.That(t, eng.Settings().SensitivityZoom, test.ShouldEqual, 3.5)

	_, err = x.Execute("sensitivity zoom high")
	test.That(t, errors.As(err, &verr), test.ShouldBeTrue)
}

func TestDeadzoneCommand(t *testing.T) {
	x, eng := newExecutor(t)

	_, err := x.Execute("deadzone 0.2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, eng.Settings().DeadZone, test.ShouldEqual, 0.2)

	_, err = x.Execute("deadzone 0.6")
	var verr *config.ValidationError
	test.That(t, errors.As(err, &verr), test.ShouldBeTrue)
	test.That(t, eng.Settings().DeadZone, test.ShouldEqual, 0.2)
}

func TestInvertYCommand(t *testing.T) {
	x, eng := newExecutor(t)

	_, err := x.Execute("invert_y on")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, eng.Settings().InvertY, test.ShouldBeTrue)

	_, err = x.Execute("invert_y sideways")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, eng.Settings().InvertY, test.ShouldBeTrue)
}

func TestBindCommandPreservesSpaces(t *testing.T) {
	x, eng := newExecutor(t)

	reply, err := x.Execute("bind A color red @sel; select clear")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reply, test.ShouldEqual, "bound A")

	cmd, ok := eng.Settings().Bindings.Resolve(gamepad.ButtonA)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, cmd, test.ShouldEqual, "color red @sel; select clear")
}

func TestBindUnknownButton(t *testing.T) {
	x, _ := newExecutor(t)

	_, err := x.Execute("bind TURBO select clear")
	var verr *config.ValidationError
	test.That(t, errors.As(err, &verr), test.ShouldBeTrue)
}

func TestUnbindCommand(t *testing.T) {
	x, eng := newExecutor(t)

	_, err := x.Execute("bind DPAD_UP view orient")
	test.That(t, err, test.ShouldBeNil)

	_, err = x.Execute("unbind dpad_up") // case-insensitive button names
	test.That(t, err, test.ShouldBeNil)
	_, ok := eng.Settings().Bindings.Resolve(gamepad.ButtonDpadUp)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestUnknownCommand(t *testing.T) {
	x, _ := newExecutor(t)
	_, err := x.Execute("teleport")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, strings.Contains(err.Error(), "teleport"), test.ShouldBeTrue)
}
