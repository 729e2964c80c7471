package engine

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/molpad/molpad/internal/action"
	"github.com/molpad/molpad/internal/config"
	"github.com/molpad/molpad/internal/gamepad"
)

// scriptSampler plays back a fixed sequence of samples, then repeats the
// last one.
type scriptSampler struct {
	mu      sync.Mutex
	samples []gamepad.Sample
	idx     int
}

func (s *scriptSampler) Sample() gamepad.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.samples) == 0 {
		return gamepad.Sample{}
	}
	out := s.samples[s.idx]
	if s.idx < len(s.samples)-1 {
		s.idx++
	}
	return out
}

// recordingAdapter records every adapter call for assertions.
type recordingAdapter struct {
	mu         sync.Mutex
	directives []string
	commands   []string
	modeCount  int
	devCount   int
}

func (r *recordingAdapter) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directives = append(r.directives, name)
}

func (r *recordingAdapter) Pan(action.Mode, float64, float64) { r.record("pan") }

func (r *recordingAdapter) Rotate(action.Mode, float64, float64) { r.record("rotate") }

func (r *recordingAdapter) ZoomIn(float64) { r.record("zoom_in") }

func (r *recordingAdapter) ZoomOut(float64) { r.record("zoom_out") }

func (r *recordingAdapter) TranslateZ(action.Mode, float64) { r.record("translate_z") }

func (r *recordingAdapter) InvokeCommand(command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directives = append(r.directives, "invoke")
	r.commands = append(r.commands, command)
}

func (r *recordingAdapter) ModeChanged(action.Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directives = append(r.directives, "mode_change")
	r.modeCount++
}

func (r *recordingAdapter) DeviceChanged(bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devCount++
}

func (r *recordingAdapter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.directives)
}

func (r *recordingAdapter) modeChanges() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.modeCount
}

func (r *recordingAdapter) deviceChanges() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.devCount
}

func (r *recordingAdapter) invokedCommands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.commands))
	copy(out, r.commands)
	return out
}

func newTestEngine(t *testing.T, sampler gamepad.Sampler, rec action.Adapter, st config.Settings) *Engine {
	t.Helper()
	store := config.NewStore(filepath.Join(t.TempDir(), "config.json"))
	return New(sampler, rec, store, st, time.Millisecond, golog.NewTestLogger(t))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestStartStopIdempotent(t *testing.T) {
	e := newTestEngine(t, &scriptSampler{}, &recordingAdapter{}, config.Default())

	e.Start()
	e.Start()
	test.That(t, e.Running(), test.ShouldBeTrue)

	e.Stop()
	test.That(t, e.Running(), test.ShouldBeFalse)
	e.Stop()
	test.That(t, e.Running(), test.ShouldBeFalse)
}

func TestNoDispatchAfterStopReturns(t *testing.T) {
	cur := gamepad.Sample{Connected: true, Name: "pad"}
	cur.Axes[gamepad.AxisRightX] = 0.5

	rec := &recordingAdapter{}
	e := newTestEngine(t, &scriptSampler{samples: []gamepad.Sample{cur}}, rec, config.Default())

	e.Start()
	waitFor(t, func() bool { return rec.count() > 2 })
	e.Stop()

	before := rec.count()
	time.Sleep(30 * time.Millisecond)
	test.That(t, rec.count(), test.ShouldEqual, before)
}

func TestDisconnectedDeviceDispatchesNothing(t *testing.T) {
	rec := &recordingAdapter{}
	e := newTestEngine(t, &scriptSampler{}, rec, config.Default())

	e.Start()
	time.Sleep(20 * time.Millisecond)
	e.Stop()
	test.That(t, rec.count(), test.ShouldEqual, 0)
}

func TestDeviceChangeNotifiesAdapter(t *testing.T) {
	connected := gamepad.Sample{Connected: true, Name: "pad"}
	rec := &recordingAdapter{}
	sampler := &scriptSampler{samples: []gamepad.Sample{{}, connected, {}}}
	e := newTestEngine(t, sampler, rec, config.Default())

	e.Start()
	waitFor(t, func() bool { return rec.deviceChanges() >= 2 })
	e.Stop()
}

func TestModeTogglePersistsAcrossTicks(t *testing.T) {
	idle := gamepad.Sample{Connected: true}
	pressed := idle
	pressed.Buttons[gamepad.ButtonStart] = true

	rec := &recordingAdapter{}
	sampler := &scriptSampler{samples: []gamepad.Sample{idle, pressed, pressed, idle}}
	e := newTestEngine(t, sampler, rec, config.Default())

	test.That(t, e.Mode(), test.ShouldEqual, action.ModeView)
	e.Start()
	waitFor(t, func() bool { return e.Mode() == action.ModeModel })
	e.Stop()

	// Held then released press toggled exactly once
	test.That(t, rec.modeChanges(), test.ShouldEqual, 1)
}

func TestSetDeadZoneRejectsAndRetains(t *testing.T) {
	e := newTestEngine(t, &scriptSampler{}, &recordingAdapter{}, config.Default())

	err := e.SetDeadZone(0.6)
	test.That(t, err, test.ShouldNotBeNil)
	var verr *config.ValidationError
	test.That(t, errors.As(err, &verr), test.ShouldBeTrue)
	test.That(t, e.Settings().DeadZone, test.ShouldEqual, config.Default().DeadZone)

	test.That(t, e.SetDeadZone(0.3), test.ShouldBeNil)
	test.That(t, e.Settings().DeadZone, test.ShouldEqual, 0.3)
}

func TestSetSensitivityByCategory(t *testing.T) {
	e := newTestEngine(t, &scriptSampler{}, &recordingAdapter{}, config.Default())

	test.That(t, e.SetSensitivity("rotation", 2.5), test.ShouldBeNil)
	test.That(t, e.Settings().SensitivityRotation, test.ShouldEqual, 2.5)

	test.That(t, e.SetSensitivity("rotation", 9.0), test.ShouldNotBeNil)
	test.That(t, e.Settings().SensitivityRotation, test.ShouldEqual, 2.5)

	test.That(t, e.SetSensitivity("warp", 1.0), test.ShouldNotBeNil)
}

func TestBindPersistsToStore(t *testing.T) {
	store := config.NewStore(filepath.Join(t.TempDir(), "config.json"))
	e := New(&scriptSampler{}, &recordingAdapter{}, store, config.Default(),
		time.Millisecond, golog.NewTestLogger(t))

	test.That(t, e.Bind(gamepad.ButtonA, "select clear"), test.ShouldBeNil)

	persisted, err := store.Load()
	test.That(t, err, test.ShouldBeNil)
	cmd, ok := persisted.Bindings.Resolve(gamepad.ButtonA)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, cmd, test.ShouldEqual, "select clear")

	test.That(t, e.Unbind(gamepad.ButtonA), test.ShouldBeNil)
	persisted, err = store.Load()
	test.That(t, err, test.ShouldBeNil)
	_, ok = persisted.Bindings.Resolve(gamepad.ButtonA)
	test.That(t, ok, test.ShouldBeFalse)
}

// statusAdapter mirrors the production wiring: the adapter reads a fresh
// engine status snapshot from inside its own callbacks.
type statusAdapter struct {
	recordingAdapter
	statusFn func() Status
}

func (s *statusAdapter) ModeChanged(m action.Mode) {
	s.statusFn()
	s.recordingAdapter.ModeChanged(m)
}

func (s *statusAdapter) DeviceChanged(connected bool, name string) {
	s.statusFn()
	s.recordingAdapter.DeviceChanged(connected, name)
}

func TestAdapterMayReadStatusFromCallbacks(t *testing.T) {
	connected := gamepad.Sample{Connected: true, Name: "pad"}
	rec := &statusAdapter{}
	sampler := &scriptSampler{samples: []gamepad.Sample{{}, connected}}
	e := newTestEngine(t, sampler, rec, config.Default())
	rec.statusFn = e.Status

	done := make(chan struct{})
	go func() {
		e.SetMode(action.ModeModel)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("SetMode blocked with a status-reading adapter")
	}
	test.That(t, rec.modeChanges(), test.ShouldEqual, 1)
	test.That(t, e.Mode(), test.ShouldEqual, action.ModeModel)

	// The tick path notifies the adapter the same way on device changes.
	e.Start()
	waitFor(t, func() bool { return rec.deviceChanges() >= 1 })
	e.Stop()
}

func TestBoundCommandInvoked(t *testing.T) {
	st := config.Default()
	test.That(t, st.Bindings.Bind(gamepad.ButtonY, "surface"), test.ShouldBeNil)

	idle := gamepad.Sample{Connected: true}
	pressed := idle
	pressed.Buttons[gamepad.ButtonY] = true

	rec := &recordingAdapter{}
	sampler := &scriptSampler{samples: []gamepad.Sample{idle, pressed, idle}}
	e := newTestEngine(t, sampler, rec, st)

	e.Start()
	waitFor(t, func() bool { return len(rec.invokedCommands()) > 0 })
	e.Stop()

	test.That(t, rec.invokedCommands(), test.ShouldResemble, []string{"surface"})
}
