package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/glyph-rain/config"
	"github.com/lixenwraith/glyph-rain/engine"
	"github.com/lixenwraith/glyph-rain/host"
	"github.com/lixenwraith/glyph-rain/rain"
	"github.com/lixenwraith/glyph-rain/seed"
	"github.com/lixenwraith/glyph-rain/status"
	"github.com/lixenwraith/glyph-rain/terminal"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the renderer crashes
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	flags := config.BindFlags(pflag.CommandLine)
	pflag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyph-rain: %v\n", err)
		os.Exit(2)
	}

	logger, logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	rainColor, err := cfg.RainColor()
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyph-rain: %v\n", err)
		os.Exit(2)
	}
	colorMode, err := cfg.ColorMode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyph-rain: %v\n", err)
		os.Exit(2)
	}

	stats := status.NewRegistry()

	// Seed sources
	holder := seed.NewHolder("")
	switcher, err := seed.NewSwitcher(holder, cfg.Seed.Preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyph-rain: %v\n", err)
		os.Exit(2)
	}
	if cfg.Seed.File != "" {
		text, err := seed.LoadFile(cfg.Seed.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "glyph-rain: %v\n", err)
			os.Exit(1)
		}
		switcher.SetUser(text)

		reloads := stats.Ints.Get("seed.reloads")
		onReload := func(text string) {
			reloads.Add(1)
			switcher.SetUser(text)
		}
		watcher, err := seed.NewWatcher(cfg.Seed.File, onReload, logger)
		if err != nil {
			logger.Warn("seed file not watched", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	// Initialize terminal
	term, err := terminal.New(colorMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal: %v\n", err)
		os.Exit(1)
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer term.Fini()

	// Dependency Injection: engine goroutines reset the terminal through this handler
	engine.SetCrashHandler(crash)

	loop := engine.NewLoop(engine.NewPausableClock(nil), engine.IntervalForFPS(cfg.FPS))
	loop.SetLogger(logger)

	h := host.New(term, loop, host.Metrics{
		CellWidth:  cfg.Cell.Width,
		CellHeight: cfg.Cell.Height,
		PixelRatio: cfg.PixelRatio,
	})
	h.SetStats(stats)

	renderer := rain.New(h, holder,
		rain.WithColor(rainColor),
		rain.WithFadeAlpha(cfg.Color.FadeAlpha),
		rain.WithLogger(logger),
	)
	renderer.Mount()
	defer renderer.Unmount()

	a := &app{loop: loop, host: h, switcher: switcher, logger: logger}
	engine.Go(func() { a.pollEvents(term) })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("glyph-rain started",
		"fps", cfg.FPS,
		"color_mode", colorMode.String(),
		"preset", switcher.Active(),
	)
	started := time.Now()
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("frame loop failed", "error", err)
	}

	if elapsed := time.Since(started).Seconds(); elapsed > 0 {
		stats.Floats.Get("loop.fps").Set(float64(loop.FrameCount()) / elapsed)
	}
	stats.Ints.Get("loop.frames").Store(int64(loop.FrameCount()))
	logger.Info("glyph-rain stopped", stats.Attrs()...)
}

// crash restores the terminal and reports the panic before exiting
func crash(r any) {
	terminal.EmergencyReset(os.Stdout)
	// Use \r\n for raw mode compatibility to avoid zig-zag output
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mGLYPH-RAIN CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}
