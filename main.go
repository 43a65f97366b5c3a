/*
Virtual camera demo: fly a single camera around with the keyboard and watch
the view and projection matrices being uploaded to the renderer.
*/
package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/virtcam/engine"
	"github.com/spaghettifunk/virtcam/engine/config"
	"github.com/spaghettifunk/virtcam/engine/core"
	"github.com/spaghettifunk/virtcam/engine/platform"
	"github.com/spaghettifunk/virtcam/engine/renderer"
	"github.com/spaghettifunk/virtcam/testbed"
)

func main() {
	configPath := flag.String("config", "virtcam.toml", "path to the TOML configuration file")
	watch := flag.Bool("watch", true, "reload camera settings when the config file changes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		core.LogWarn("config file %s not found, using defaults", *configPath)
		cfg = config.Default()
		*watch = false
	case err != nil:
		core.LogFatal("loading config: %s", err)
	}

	if cfg.Application.LogFile != "" {
		logFile, err := core.OpenLogFile(cfg.Application.LogFile)
		if err != nil {
			core.LogWarn("%s, logging to stderr only", err)
		} else {
			defer logFile.Close()
		}
	}

	reloadPath := ""
	if *watch {
		reloadPath = *configPath
	}
	tb := testbed.NewTestGame(cfg, reloadPath)

	e, err := engine.New(tb.Game, renderer.NewNullBackend(), func(input *core.InputState, events *core.EventSystem) engine.Platform {
		return platform.New(input, events)
	})
	if err != nil {
		core.LogFatal("creating engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("initializing engine: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	// the loop owns shutdown, a signal only asks it to stop
	go func() {
		sig := <-sigCh
		core.LogInfo("received %s", sig)
		e.Stop()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutting down: %s", err)
	}
	if runErr != nil {
		core.LogFatal("engine stopped: %s", runErr)
	}
}
