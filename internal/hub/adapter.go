package hub

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/edaniels/golog"

	"github.com/molpad/molpad/internal/action"
	"github.com/molpad/molpad/internal/engine"
)

const statusSyncInterval = 5 * time.Second

// Broadcaster is the WebSocket host adapter: every directive the engine
// dispatches is encoded and broadcast to the connected viewer clients, and
// the full status snapshot is re-sent periodically and on state changes.
type Broadcaster struct {
	hub      *Hub
	statusFn atomic.Pointer[func() engine.Status]
	logger   golog.Logger
	seq      atomic.Int64
}

// NewBroadcaster wires a broadcaster to the hub. The status snapshot source
// is installed separately via SetStatus because the engine itself is built
// around this adapter.
func NewBroadcaster(h *Hub, logger golog.Logger) *Broadcaster {
	return &Broadcaster{hub: h, logger: logger}
}

// SetStatus installs the status snapshot source. Safe to call while the
// sync loop and connection handlers are already running; until it is
// called, status messages are skipped.
func (b *Broadcaster) SetStatus(statusFn func() engine.Status) {
	b.statusFn.Store(&statusFn)
}

func (b *Broadcaster) status() (engine.Status, bool) {
	fn := b.statusFn.Load()
	if fn == nil {
		return engine.Status{}, false
	}
	return (*fn)(), true
}

// Run periodically re-broadcasts the full status so clients recover from
// missed messages. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(statusSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.broadcastStatus()
		}
	}
}

// SendStatus pushes the current full status to a newly connected client.
func (b *Broadcaster) SendStatus(c *Client) {
	st, ok := b.status()
	if !ok {
		return
	}
	msg := NewStatusMessage(b.seq.Add(1), st)
	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Errorw("encode status", "error", err)
		return
	}
	c.Send(data)
}

func (b *Broadcaster) broadcastStatus() {
	st, ok := b.status()
	if !ok {
		return
	}
	msg := NewStatusMessage(b.seq.Add(1), st)
	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Errorw("encode status", "error", err)
		return
	}
	b.hub.Broadcast(data)
}

func (b *Broadcaster) broadcast(act action.Action) {
	msg := NewDirectiveMessage(b.seq.Add(1), directiveFor(act))
	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Errorw("encode directive", "error", err)
		return
	}
	b.hub.Broadcast(data)
}

// action.Adapter implementation.

func (b *Broadcaster) Pan(mode action.Mode, dx, dy float64) {
	b.broadcast(action.Action{Kind: action.KindPan, Mode: mode, DX: dx, DY: dy})
}

func (b *Broadcaster) Rotate(mode action.Mode, dx, dy float64) {
	b.broadcast(action.Action{Kind: action.KindRotate, Mode: mode, DX: dx, DY: dy})
}

func (b *Broadcaster) ZoomIn(amount float64) {
	b.broadcast(action.Action{Kind: action.KindZoomIn, Amount: amount})
}

func (b *Broadcaster) ZoomOut(amount float64) {
	b.broadcast(action.Action{Kind: action.KindZoomOut, Amount: amount})
}

func (b *Broadcaster) TranslateZ(mode action.Mode, amount float64) {
	b.broadcast(action.Action{Kind: action.KindTranslateZ, Mode: mode, Amount: amount})
}

func (b *Broadcaster) InvokeCommand(command string) {
	b.broadcast(action.Action{Kind: action.KindInvoke, Command: command})
}

func (b *Broadcaster) ModeChanged(mode action.Mode) {
	b.broadcast(action.Action{Kind: action.KindModeChange, Mode: mode})
	b.broadcastStatus()
}

func (b *Broadcaster) DeviceChanged(connected bool, name string) {
	b.broadcastStatus()
}
