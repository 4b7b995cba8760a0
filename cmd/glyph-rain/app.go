package main

import (
	"log/slog"

	"github.com/lixenwraith/glyph-rain/engine"
	"github.com/lixenwraith/glyph-rain/host"
	"github.com/lixenwraith/glyph-rain/seed"
	"github.com/lixenwraith/glyph-rain/terminal"
)

// app routes terminal input to the loop, host and seed switcher
// handleEvent runs on the loop goroutine
type app struct {
	loop     *engine.Loop
	host     *host.TerminalHost
	switcher *seed.Switcher
	logger   *slog.Logger
}

func (a *app) handleEvent(ev terminal.Event) {
	switch ev.Type {
	case terminal.EventResize:
		a.logger.Debug("terminal resized", "cols", ev.Width, "rows", ev.Height)
		a.host.HandleResize()

	case terminal.EventClosed:
		a.loop.Stop()

	case terminal.EventKey:
		a.handleKey(ev)
	}
}

func (a *app) handleKey(ev terminal.Event) {
	switch ev.Key {
	case terminal.KeyEscape, terminal.KeyCtrlC:
		a.loop.Stop()

	case terminal.KeyTab:
		name := a.switcher.Next()
		a.logger.Debug("preset cycled", "preset", name)

	case terminal.KeyRune:
		switch r := ev.Rune; {
		case r == 'q' || r == 'Q':
			a.loop.Stop()
		case r == ' ':
			paused := a.loop.Clock().Toggle()
			a.logger.Debug("pause toggled", "paused", paused)
		case r >= '1' && r <= '4':
			if err := a.switcher.SelectIndex(int(r - '1')); err != nil {
				a.logger.Warn("preset select failed", "error", err)
				return
			}
			a.logger.Debug("preset selected", "preset", a.switcher.Active())
		}
	}
}

// pollEvents forwards terminal events to the loop until the screen closes
func (a *app) pollEvents(term terminal.Terminal) {
	for {
		ev := term.PollEvent()
		a.loop.Post(func() { a.handleEvent(ev) })
		if ev.Type == terminal.EventClosed {
			return
		}
	}
}
