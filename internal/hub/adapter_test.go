package hub

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/molpad/molpad/internal/action"
	"github.com/molpad/molpad/internal/config"
	"github.com/molpad/molpad/internal/engine"
	"github.com/molpad/molpad/internal/gamepad"
)

type fixedSampler struct {
	sample gamepad.Sample
}

func (s fixedSampler) Sample() gamepad.Sample { return s.sample }

func newBroadcastEngine(t *testing.T, sampler gamepad.Sampler) (*Broadcaster, *engine.Engine) {
	t.Helper()
	logger := golog.NewTestLogger(t)
	h := NewHub(logger)
	go h.Run()

	b := NewBroadcaster(h, logger)
	store := config.NewStore(filepath.Join(t.TempDir(), "config.json"))
	eng := engine.New(sampler, b, store, config.Default(), time.Millisecond, logger)
	b.SetStatus(eng.Status)
	t.Cleanup(eng.Stop)
	return b, eng
}

// The broadcaster reads the engine status from inside ModeChanged and
// DeviceChanged; both a forced mode change and a device hotplug must
// complete with this wiring.
func TestModeChangeUnderBroadcastAdapter(t *testing.T) {
	_, eng := newBroadcastEngine(t, fixedSampler{})

	done := make(chan struct{})
	go func() {
		eng.SetMode(action.ModeModel)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mode change never completed under the broadcast adapter")
	}
	test.That(t, eng.Mode(), test.ShouldEqual, action.ModeModel)

	// The engine must still accept commands afterwards.
	test.That(t, eng.SetDeadZone(0.2), test.ShouldBeNil)
	test.That(t, eng.Status().DeadZone, test.ShouldEqual, 0.2)
}

func TestDeviceHotplugUnderBroadcastAdapter(t *testing.T) {
	_, eng := newBroadcastEngine(t,
		fixedSampler{sample: gamepad.Sample{Connected: true, Name: "pad"}})

	// The first tick sees the device appear and notifies the adapter, which
	// reads the status back. Give a few ticks, then require that the engine
	// is still responsive and stoppable.
	eng.Start()
	time.Sleep(20 * time.Millisecond)

	var connected bool
	done := make(chan struct{})
	go func() {
		connected = eng.Status().Connected
		eng.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("engine unresponsive after device hotplug under the broadcast adapter")
	}
	test.That(t, connected, test.ShouldBeTrue)
	test.That(t, eng.Running(), test.ShouldBeFalse)
}

func TestStatusSkippedUntilInstalled(t *testing.T) {
	logger := golog.NewTestLogger(t)
	h := NewHub(logger)
	go h.Run()

	b := NewBroadcaster(h, logger)
	_, ok := b.status()
	test.That(t, ok, test.ShouldBeFalse)

	// Must not panic with no source installed.
	b.broadcastStatus()

	b.SetStatus(func() engine.Status { return engine.Status{Mode: "view"} })
	st, ok := b.status()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, st.Mode, test.ShouldEqual, "view")
}
