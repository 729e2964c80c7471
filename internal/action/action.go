// Package action turns filtered controller samples into abstract scene
// directives. Directives carry no host identifiers beyond opaque command
// strings; the host adapter decides what pan/rotate/zoom mean for the
// actual scene graph.
package action

// Kind names a directive.
type Kind uint8

const (
	KindPan Kind = iota
	KindRotate
	KindZoomIn
	KindZoomOut
	KindTranslateZ
	KindInvoke
	KindModeChange
)

var kindNames = [...]string{
	KindPan:        "pan",
	KindRotate:     "rotate",
	KindZoomIn:     "zoom_in",
	KindZoomOut:    "zoom_out",
	KindTranslateZ: "translate_z",
	KindInvoke:     "invoke",
	KindModeChange: "mode_change",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Action is one host-facing directive produced by a dispatch tick.
type Action struct {
	Kind Kind
	// Mode the directive was derived under. For KindModeChange this is the
	// mode after the flip.
	Mode Mode
	// DX/DY carry stick displacement for pan and rotate.
	DX float64
	DY float64
	// Amount carries trigger magnitude for zoom and Z translation.
	Amount float64
	// Command carries the bound host command for KindInvoke.
	Command string
}

// Adapter is the host-facing collaborator the engine drives. Implementations
// translate directives into actual camera or model transforms, or forward
// them to a remote viewer.
type Adapter interface {
	Pan(mode Mode, dx, dy float64)
	Rotate(mode Mode, dx, dy float64)
	ZoomIn(amount float64)
	ZoomOut(amount float64)
	TranslateZ(mode Mode, amount float64)
	InvokeCommand(command string)
	ModeChanged(mode Mode)
	DeviceChanged(connected bool, name string)
}

// Deliver routes one action to the matching adapter call.
func Deliver(a Adapter, act Action) {
	switch act.Kind {
	case KindPan:
		a.Pan(act.Mode, act.DX, act.DY)
	case KindRotate:
		a.Rotate(act.Mode, act.DX, act.DY)
	case KindZoomIn:
		a.ZoomIn(act.Amount)
	case KindZoomOut:
		a.ZoomOut(act.Amount)
	case KindTranslateZ:
		a.TranslateZ(act.Mode, act.Amount)
	case KindInvoke:
		a.InvokeCommand(act.Command)
	case KindModeChange:
		a.ModeChanged(act.Mode)
	}
}

// Multi fans every adapter call out to all wrapped adapters in order.
func Multi(adapters ...Adapter) Adapter {
	return multiAdapter(adapters)
}

type multiAdapter []Adapter

func (m multiAdapter) Pan(mode Mode, dx, dy float64) {
	for _, a := range m {
		a.Pan(mode, dx, dy)
	}
}

func (m multiAdapter) Rotate(mode Mode, dx, dy float64) {
	for _, a := range m {
		a.Rotate(mode, dx, dy)
	}
}

func (m multiAdapter) ZoomIn(amount float64) {
	for _, a := range m {
		a.ZoomIn(amount)
	}
}

func (m multiAdapter) ZoomOut(amount float64) {
	for _, a := range m {
		a.ZoomOut(amount)
	}
}

func (m multiAdapter) TranslateZ(mode Mode, amount float64) {
	for _, a := range m {
		a.TranslateZ(mode, amount)
	}
}

func (m multiAdapter) InvokeCommand(command string) {
	for _, a := range m {
		a.InvokeCommand(command)
	}
}

func (m multiAdapter) ModeChanged(mode Mode) {
	for _, a := range m {
		a.ModeChanged(mode)
	}
}

func (m multiAdapter) DeviceChanged(connected bool, name string) {
	for _, a := range m {
		a.DeviceChanged(connected, name)
	}
}
