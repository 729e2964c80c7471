package hub

import (
	"time"

	"github.com/molpad/molpad/internal/action"
	"github.com/molpad/molpad/internal/engine"
)

// Directive is the wire form of one dispatched action.
type Directive struct {
	Kind    string  `json:"kind"`
	Mode    string  `json:"mode,omitempty"`
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`
	Amount  float64 `json:"amount,omitempty"`
	Command string  `json:"command,omitempty"`
}

// Message is a WebSocket message sent from server to client.
type Message struct {
	Type      string         `json:"type"` // "status", "directive", "result", "error"
	Seq       int64          `json:"seq"`
	Timestamp int64          `json:"timestamp"` // Unix milliseconds
	Status    *engine.Status `json:"status,omitempty"`
	Directive *Directive     `json:"directive,omitempty"`
	Result    string         `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// NewStatusMessage wraps an engine status snapshot.
func NewStatusMessage(seq int64, st engine.Status) *Message {
	return &Message{
		Type:      "status",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Status:    &st,
	}
}

// NewDirectiveMessage wraps one dispatched directive.
func NewDirectiveMessage(seq int64, d Directive) *Message {
	return &Message{
		Type:      "directive",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Directive: &d,
	}
}

// NewResultMessage is the per-client reply to an executed command.
func NewResultMessage(result string) *Message {
	return &Message{
		Type:      "result",
		Timestamp: time.Now().UnixMilli(),
		Result:    result,
	}
}

// NewErrorMessage is the per-client reply to a failed command.
func NewErrorMessage(err error) *Message {
	return &Message{
		Type:      "error",
		Timestamp: time.Now().UnixMilli(),
		Error:     err.Error(),
	}
}

// directiveFor converts an action into its wire form.
func directiveFor(act action.Action) Directive {
	return Directive{
		Kind:    act.Kind.String(),
		Mode:    act.Mode.String(),
		DX:      act.DX,
		DY:      act.DY,
		Amount:  act.Amount,
		Command: act.Command,
	}
}
