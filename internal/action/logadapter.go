package action

import "github.com/edaniels/golog"

// LogAdapter is a host adapter that just logs every directive. Used for
// headless runs and as a trace sink next to the real adapter.
type LogAdapter struct {
	logger golog.Logger
}

func NewLogAdapter(logger golog.Logger) *LogAdapter {
	return &LogAdapter{logger: logger}
}

func (l *LogAdapter) Pan(mode Mode, dx, dy float64) {
	l.logger.Debugw("pan", "mode", mode.String(), "dx", dx, "dy", dy)
}

func (l *LogAdapter) Rotate(mode Mode, dx, dy float64) {
	l.logger.Debugw("rotate", "mode", mode.String(), "dx", dx, "dy", dy)
}

func (l *LogAdapter) ZoomIn(amount float64) {
	l.logger.Debugw("zoom in", "amount", amount)
}

func (l *LogAdapter) ZoomOut(amount float64) {
	l.logger.Debugw("zoom out", "amount", amount)
}

func (l *LogAdapter) TranslateZ(mode Mode, amount float64) {
	l.logger.Debugw("translate z", "mode", mode.String(), "amount", amount)
}

func (l *LogAdapter) InvokeCommand(command string) {
	l.logger.Infow("invoke host command", "command", command)
}

func (l *LogAdapter) ModeChanged(mode Mode) {
	l.logger.Infow("mode changed", "mode", mode.String())
}

func (l *LogAdapter) DeviceChanged(connected bool, name string) {
	if connected {
		l.logger.Infow("controller connected", "name", name)
	} else {
		l.logger.Info("controller disconnected")
	}
}
