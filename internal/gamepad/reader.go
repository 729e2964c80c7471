package gamepad

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/jupiterrider/purego-sdl3/sdl"
	"github.com/pkg/errors"
)

const (
	pollDelayNS = 16_000_000 // ~60Hz

	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *DeviceMapping
	name     string
	id       sdl.JoystickID
}

// Reader is the SDL3 Sampler backend. It runs its own event and polling loop
// on a locked OS thread and keeps the latest Sample available for the engine.
// Device disconnects are reported as a disconnected Sample, never as an
// error; the loop keeps running so a reconnected controller is picked up
// again.
type Reader struct {
	sample    Sample
	joysticks map[sdl.JoystickID]*joystickInfo
	activeID  sdl.JoystickID // the first connected joystick
	hasActive bool
	logger    golog.Logger
	mu        sync.RWMutex
}

func NewReader(logger golog.Logger) *Reader {
	return &Reader{
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
		logger:    logger,
	}
}

// Sample returns a snapshot of the current controller state. Safe to call
// from any goroutine; returns a zero-valued disconnected sample when no
// device is active.
func (r *Reader) Sample() Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.sample
	s.Time = time.Now()
	return s
}

// Run initializes SDL and runs the event+polling loop until the context is
// cancelled. It locks the calling goroutine to its OS thread, which SDL
// requires; call it from a dedicated goroutine.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return errors.Errorf("sdl init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	r.logger.Debug("SDL3 joystick subsystem initialized")

	// Pick up already-connected joysticks
	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		default:
		}

		r.processEvents()
		r.pollState()
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		r.logger.Warnw("failed to open joystick", "id", instanceID, "error", sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := GetMapping(vendorID, productID)

	r.joysticks[jsID] = &joystickInfo{
		joystick: js,
		mapping:  mapping,
		name:     name,
		id:       jsID,
	}

	r.logger.Infow("controller connected",
		"name", name,
		"vendor", vendorID,
		"product", productID,
		"mapping", mapping.Name,
		"axes", sdl.GetNumJoystickAxes(js),
		"buttons", sdl.GetNumJoystickButtons(js))

	// The first connected joystick becomes the active one
	if !r.hasActive {
		r.activeID = jsID
		r.hasActive = true

		r.mu.Lock()
		r.sample = Sample{Connected: true, Name: name}
		r.mu.Unlock()
	}
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	r.logger.Infow("controller disconnected", "name", info.name)
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)

	if !r.hasActive || r.activeID != instanceID {
		return
	}
	r.hasActive = false

	r.mu.Lock()
	r.sample = Sample{}
	r.mu.Unlock()

	// Promote the next available joystick
	for id, js := range r.joysticks {
		if sdl.JoystickConnected(js.joystick) {
			r.activeID = id
			r.hasActive = true
			r.logger.Infow("active controller switched", "name", js.name)

			r.mu.Lock()
			r.sample = Sample{Connected: true, Name: js.name}
			r.mu.Unlock()
			break
		}
	}
}

func (r *Reader) closeAll() {
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
	r.hasActive = false

	r.mu.Lock()
	r.sample = Sample{}
	r.mu.Unlock()
}

func (r *Reader) pollState() {
	if !r.hasActive {
		return
	}

	info, exists := r.joysticks[r.activeID]
	if !exists || !sdl.JoystickConnected(info.joystick) {
		return
	}

	js := info.joystick
	mapping := info.mapping
	sample := Sample{Connected: true, Name: info.name}

	for _, am := range mapping.Axes {
		raw := sdl.GetJoystickAxis(js, am.Index)
		if am.IsTrigger {
			sample.Axes[am.Target] = NormalizeTrigger(raw, am.RawMin, am.RawMax)
			continue
		}
		val := NormalizeAxis(raw)
		if am.Invert {
			val = -val
		}
		sample.Axes[am.Target] = val
	}

	numButtons := sdl.GetNumJoystickButtons(js)
	for _, bm := range mapping.Buttons {
		if bm.Index >= numButtons {
			continue
		}
		sample.Buttons[bm.Target] = sdl.GetJoystickButton(js, bm.Index)
	}

	if mapping.HasHat && sdl.GetNumJoystickHats(js) > 0 {
		hat := sdl.GetJoystickHat(js, 0)
		sample.Buttons[ButtonDpadUp] = hat&hatUp != 0
		sample.Buttons[ButtonDpadRight] = hat&hatRight != 0
		sample.Buttons[ButtonDpadDown] = hat&hatDown != 0
		sample.Buttons[ButtonDpadLeft] = hat&hatLeft != 0
	}

	r.mu.Lock()
	r.sample = sample
	r.mu.Unlock()
}
