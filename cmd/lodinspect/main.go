package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gekko3d/lightlod"
	"github.com/gekko3d/lightlod/debugfeed"
	"github.com/gekko3d/lightlod/lod"
)

const (
	frameInterval   = 16 * time.Millisecond
	publishInterval = 250 * time.Millisecond
)

func main() {
	var (
		settingsPath string
		logPath      string
		wsAddr       string
		grid         int
		spacing      float64
		tick         time.Duration
		direction    bool
		debug        bool
	)
	flag.StringVar(&settingsPath, "settings", "", "JSON or YAML tier table, defaults to a built-in table")
	flag.StringVar(&logPath, "log", "lodinspect.log", "log file")
	flag.StringVar(&wsAddr, "ws", "", "serve a websocket debug feed on this address")
	flag.IntVar(&grid, "grid", 7, "lights per grid side")
	flag.Float64Var(&spacing, "spacing", 8, "distance between lights")
	flag.DurationVar(&tick, "tick", lod.DefaultInterval, "controller update tick")
	flag.BoolVar(&direction, "direction", true, "consider the controller direction")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.Parse()

	if err := run(settingsPath, logPath, wsAddr, config{
		grid:      grid,
		spacing:   float32(spacing),
		tick:      tick,
		direction: direction,
		debug:     debug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "lodinspect: %v\n", err)
		os.Exit(1)
	}
}

func run(settingsPath, logPath, wsAddr string, cfg config) error {
	if settingsPath != "" {
		settings, err := lightlod.ReadSettingsFile(settingsPath)
		if err != nil {
			return err
		}
		cfg.settings = settings
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	cfg.logOut = logFile

	in, err := newInspector(cfg)
	if err != nil {
		return err
	}

	var feed *debugfeed.Feed
	if wsAddr != "" {
		feed = debugfeed.New(debugfeed.Config{Logger: in.app.Logger()})
		srv := &http.Server{Addr: wsAddr, Handler: feed}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				in.app.Logger().Errorf("debug feed: %v", err)
			}
		}()
		defer func() {
			feed.Close()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return loop(in, screen, feed)
}

func loop(in *inspector, screen tcell.Screen, feed *debugfeed.Feed) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	lastPublish := time.Time{}

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !in.handleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			in.app.Update()
			in.draw(screen)

			if feed != nil && now.Sub(lastPublish) >= publishInterval {
				lastPublish = now
				if err := feed.Publish(lightlod.InspectLODSources(in.cmd)); err != nil {
					in.app.Logger().Warnf("publish: %v", err)
				}
			}
		}
	}
}
