package main

import (
	"flag"
	"log"
	"runtime"
	"sync/atomic"

	"voxelforge/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file; empty uses the built-in defaults")
	flag.Parse()

	defer closer.Close()
	if err := run(*configPath); err != nil {
		closer.Fatalln(err)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.LogSummary()

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	// SIGINT is handled off the main thread; it only asks the loop to stop and
	// waits until GL and GLFW have been torn down here.
	var quit atomic.Bool
	done := make(chan struct{})
	closer.Bind(func() {
		quit.Store(true)
		<-done
	})
	defer close(done)

	window, err := setupWindow(windowWidth, windowHeight)
	if err != nil {
		return err
	}
	defer window.Destroy()

	app, err := setupApp(cfg, window)
	if err != nil {
		return err
	}
	defer app.Dispose()

	log.Printf("spawned at %v with %d workers", app.Player.Position, cfg.WorkerCount())
	NewGameLoop(window, app, &quit).Run()
	return nil
}
