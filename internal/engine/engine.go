// Package engine runs the polling loop: sampler -> filter/dispatcher ->
// host adapter, once per tick, and exposes the mutating command entry
// points. All mutation is serialized with the tick through one mutex, so a
// command never lands in the middle of a tick computation. Adapter calls
// are always made with the mutex released, so an adapter may call back
// into the engine (Status in particular) from its callbacks.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/edaniels/golog"

	"github.com/molpad/molpad/internal/action"
	"github.com/molpad/molpad/internal/config"
	"github.com/molpad/molpad/internal/gamepad"
)

// DefaultTickInterval targets ~60Hz.
const DefaultTickInterval = 16 * time.Millisecond

type Engine struct {
	mu       sync.Mutex
	sampler  gamepad.Sampler
	adapter  action.Adapter
	store    *config.Store
	settings config.Settings
	disp     *action.Dispatcher
	logger   golog.Logger
	interval time.Duration

	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	prev    gamepad.Sample
}

// New builds an engine around an already-loaded settings aggregate. The
// initial mode comes from the persisted default.
func New(sampler gamepad.Sampler, adapter action.Adapter, store *config.Store,
	settings config.Settings, interval time.Duration, logger golog.Logger,
) *Engine {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	initial := action.ModeView
	if settings.DefaultMode == config.ModeNameModel {
		initial = action.ModeModel
	}
	return &Engine{
		sampler:  sampler,
		adapter:  adapter,
		store:    store,
		settings: settings,
		disp:     action.NewDispatcher(initial),
		logger:   logger,
		interval: interval,
	}
}

// Start launches the tick loop. Starting an already-started engine is a
// no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	e.running = true
	go e.run(ctx, e.done)
	e.logger.Info("gamepad control started")
}

// Stop halts the tick loop and returns once it has fully drained: no action
// is dispatched after Stop returns. Stopping a stopped engine is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	cancel, done := e.cancel, e.done
	e.running = false
	e.mu.Unlock()

	cancel()
	<-done
	e.logger.Info("gamepad control stopped")
}

// Running reports whether the tick loop is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

func (e *Engine) tick() {
	e.mu.Lock()
	cur := e.sampler.Sample()
	deviceChanged := cur.Connected != e.prev.Connected ||
		(cur.Connected && cur.Name != e.prev.Name)
	acts := e.disp.Dispatch(cur, e.prev, e.settings)
	e.prev = cur
	e.mu.Unlock()

	// Adapter callbacks run outside the lock: an adapter is allowed to call
	// back into Status or any other entry point.
	if deviceChanged {
		e.adapter.DeviceChanged(cur.Connected, cur.Name)
	}
	for _, act := range acts {
		action.Deliver(e.adapter, act)
	}
}

// Mode returns the active manipulation mode.
func (e *Engine) Mode() action.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disp.Mode()
}

// SetMode forces the manipulation mode. Not persisted. The adapter
// notification happens after the lock is released, same as tick delivery.
func (e *Engine) SetMode(m action.Mode) {
	e.mu.Lock()
	if e.disp.Mode() == m {
		e.mu.Unlock()
		return
	}
	e.disp.SetMode(m)
	e.mu.Unlock()
	e.adapter.ModeChanged(m)
}

// Settings returns a copy of the active settings.
func (e *Engine) Settings() config.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.Clone()
}

// commit validates, persists and installs a candidate settings aggregate.
// On any failure the prior settings stay active and nothing is persisted.
func (e *Engine) commit(candidate config.Settings) error {
	if err := e.store.Save(candidate); err != nil {
		return err
	}
	e.settings = candidate
	return nil
}

// SetDeadZone sets the deadzone threshold. Out-of-range values are rejected
// with a validation error, never clamped.
func (e *Engine) SetDeadZone(v float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := config.ValidateDeadZone(v); err != nil {
		return err
	}
	candidate := e.settings.Clone()
	candidate.DeadZone = v
	return e.commit(candidate)
}

// SetSensitivity sets one sensitivity category (translation, rotation or
// zoom).
func (e *Engine) SetSensitivity(category string, v float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate := e.settings.Clone()
	switch category {
	case config.SensitivityTranslation:
		candidate.SensitivityTranslation = v
	case config.SensitivityRotation:
		candidate.SensitivityRotation = v
	case config.SensitivityZoom:
		candidate.SensitivityZoom = v
	default:
		return &config.ValidationError{Field: "sensitivity", Reason: "unknown category " + category}
	}
	if err := config.ValidateSensitivity("sensitivity_"+category, v); err != nil {
		return err
	}
	return e.commit(candidate)
}

// SetInvertY sets the Y-axis inversion flag.
func (e *Engine) SetInvertY(inverted bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	candidate := e.settings.Clone()
	candidate.InvertY = inverted
	return e.commit(candidate)
}

// Bind maps a button to a host command string, replacing any existing
// binding, and persists the table.
func (e *Engine) Bind(button gamepad.ButtonID, command string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	candidate := e.settings.Clone()
	if err := candidate.Bindings.Bind(button, command); err != nil {
		return err
	}
	return e.commit(candidate)
}

// Unbind removes a button binding. Removing an absent binding is a no-op
// and does not rewrite the document.
func (e *Engine) Unbind(button gamepad.ButtonID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.settings.Bindings.Resolve(button); !ok {
		return nil
	}
	candidate := e.settings.Clone()
	candidate.Bindings.Unbind(button)
	return e.commit(candidate)
}

// Status is a point-in-time snapshot for the tray and remote surface.
type Status struct {
	Running     bool               `json:"running"`
	Mode        string             `json:"mode"`
	Connected   bool               `json:"connected"`
	Device      string             `json:"device,omitempty"`
	DeadZone    float64            `json:"deadzone"`
	InvertY     bool               `json:"invert_y"`
	Sensitivity map[string]float64 `json:"sensitivity"`
	Bindings    map[string]string  `json:"bindings"`
}

// Status returns a snapshot of the engine state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	sample := e.sampler.Sample()
	bindings := make(map[string]string, len(e.settings.Bindings))
	for button, cmd := range e.settings.Bindings {
		bindings[button.String()] = cmd
	}
	return Status{
		Running:   e.running,
		Mode:      e.disp.Mode().String(),
		Connected: sample.Connected,
		Device:    sample.Name,
		DeadZone:  e.settings.DeadZone,
		InvertY:   e.settings.InvertY,
		Sensitivity: map[string]float64{
			config.SensitivityTranslation: e.settings.SensitivityTranslation,
			config.SensitivityRotation:    e.settings.SensitivityRotation,
			config.SensitivityZoom:        e.settings.SensitivityZoom,
		},
		Bindings: bindings,
	}
}
