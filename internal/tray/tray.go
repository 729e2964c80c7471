// Package tray puts a control icon in the system tray: start/stop the
// engine, toggle the manipulation mode, open the status page, exit.
package tray

import (
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
	"github.com/edaniels/golog"

	"github.com/molpad/molpad/internal/engine"
)

// ShutdownFunc is called when "Exit" is clicked.
type ShutdownFunc func()

type Tray struct {
	eng          *engine.Engine
	url          string
	logger       golog.Logger
	shutdownFunc ShutdownFunc
	once         sync.Once
	shuttingDown atomic.Bool

	menuToggle *systray.MenuItem
	menuMode   *systray.MenuItem
	menuOpen   *systray.MenuItem
	menuExit   *systray.MenuItem
}

func New(eng *engine.Engine, url string, logger golog.Logger, shutdownFn ShutdownFunc) *Tray {
	return &Tray{
		eng:          eng,
		url:          url,
		logger:       logger,
		shutdownFunc: shutdownFn,
	}
}

// Run initializes and runs the system tray. Blocks until Quit.
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("molpad")
	systray.SetTooltip("molpad - " + t.url)

	t.menuToggle = systray.AddMenuItem("Stop control", "Start or stop gamepad control")
	t.menuMode = systray.AddMenuItem("Mode: "+t.eng.Mode().String(), "Toggle view/model mode")
	t.menuOpen = systray.AddMenuItem("Open status page", "Open the status frontend")
	t.menuExit = systray.AddMenuItem("Exit", "Quit molpad")

	t.refresh()
	go t.handleMenuClicks()

	t.logger.Debug("system tray initialized")
}

func (t *Tray) refresh() {
	if t.eng.Running() {
		t.menuToggle.SetTitle("Stop control")
	} else {
		t.menuToggle.SetTitle("Start control")
	}
	t.menuMode.SetTitle("Mode: " + t.eng.Mode().String())
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuToggle.ClickedCh:
			if t.shuttingDown.Load() {
				continue
			}
			if t.eng.Running() {
				t.eng.Stop()
			} else {
				t.eng.Start()
			}
			t.refresh()

		case <-t.menuMode.ClickedCh:
			if t.shuttingDown.Load() {
				continue
			}
			t.eng.SetMode(t.eng.Mode().Toggled())
			t.refresh()

		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}

		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.shutdownFunc)
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	t.logger.Debug("system tray exiting")
}

func (t *Tray) openBrowser() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", t.url)
	case "darwin":
		cmd = exec.Command("open", t.url)
	default:
		cmd = exec.Command("xdg-open", t.url)
	}

	if err := cmd.Start(); err != nil {
		t.logger.Warnw("failed to open browser", "error", err)
	}
}
