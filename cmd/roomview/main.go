// Roomview is a first-person viewer for a simple room scene.
//
// Controls: mouse to look, WASD to walk, Space and LeftShift to rise and
// sink, F1 to toggle wireframe, Escape to quit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"room-viewer/core"
	"room-viewer/input"
	"room-viewer/internal/logging"
	"room-viewer/internal/platform"
	"room-viewer/opengl"
	"room-viewer/scene"
)

// maxFrameDelta caps one frame step, in seconds.
const maxFrameDelta = 0.1

// defined flags
var (
	levelFlag   logging.LevelFlag
	sceneFlag   = flag.String("scene", "", "YAML scene description (default: built-in room)")
	logFileFlag = flag.String("logfile", "", "write logs to this file instead of stderr")
	flyFlag     = flag.Bool("fly", false, "fly freely instead of walking inside the room")
	saveFlag    = flag.String("save", "", "on exit, write the scene with the final camera pose to this file")
)

func init() {
	levelFlag.Value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level (DEBUG, INFO, WARN, ERROR)")
}

func main() {
	flag.Parse()
	logFile := logging.Setup(levelFlag.Value, *logFileFlag)

	err := run()
	if err != nil {
		slog.Error("roomview failed", "error", err)
		if *logFileFlag != "" {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	if cerr := logFile.Close(); cerr != nil {
		fmt.Fprintln(os.Stderr, "close log file:", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func loadDescription(path string) (scene.Description, error) {
	if path == "" {
		return scene.DefaultDescription(), nil
	}
	return scene.LoadDescription(path)
}

func run() error {
	desc, err := loadDescription(*sceneFlag)
	if err != nil {
		return err
	}
	s, err := scene.Build(desc)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	slog.Info("scene loaded", "path", *sceneFlag, "nodes", len(s.Nodes), "room", s.Room != nil)

	cfg := platform.DefaultWindowConfig()
	cfg.Width = desc.Window.Width
	cfg.Height = desc.Window.Height
	cfg.Title = desc.Window.Title
	cfg.VSync = *desc.Window.VSync

	window, err := platform.NewWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Destroy()

	r, err := opengl.NewRenderer()
	if err != nil {
		return err
	}
	defer func() {
		for _, m := range s.Meshes() {
			r.ReleaseMesh(m)
		}
		r.Destroy()
	}()

	width, height := window.GetFramebufferSize()
	r.SetViewport(width, height)

	// A nil *RoomBounds in the interface would not read as free flight.
	var bounds input.Bounds
	if s.Room != nil && !*flyFlag {
		bounds = input.NewRoomBounds(*s.Room)
		s.Camera.Position = bounds.Apply(s.Camera.Position)
	}
	controller := input.NewController(s.Camera, bounds)

	clock := core.NewFrameClock(platform.Time)
	clock.MaxDelta = maxFrameDelta

	statsLimit := rate.NewLimiter(rate.Every(5*time.Second), 1)
	frames, statsStart := 0, platform.Time()
	var totalFrames int64

	slog.Info("entering frame loop", "width", width, "height", height, "fly", bounds == nil)
	for !window.ShouldClose() {
		dt := clock.Tick()
		window.PollEvents()

		res := controller.Update(window, dt)
		if res.Quit {
			window.SetShouldClose(true)
		}
		if res.WireframeChanged {
			r.SetWireframe(res.Wireframe)
			slog.Debug("wireframe toggled", "on", res.Wireframe)
		}

		s.Update(dt)

		if window.Width != width || window.Height != height {
			width, height = window.Width, window.Height
			r.SetViewport(width, height)
			slog.Debug("viewport resized", "width", width, "height", height)
		}

		r.BeginFrame(s.ClearColor)
		drawn := r.DrawScene(s, s.Camera.GetViewMatrix(), s.GetProjectionMatrix(window.AspectRatio()))
		window.SwapBuffers()

		frames++
		totalFrames++
		if statsLimit.Allow() {
			now := platform.Time()
			if elapsed := now - statsStart; elapsed > 0 {
				fps := humanize.FtoaWithDigits(float64(frames)/elapsed, 1)
				window.SetTitle(fmt.Sprintf("%s - %s fps", cfg.Title, fps))
				slog.Info("frame stats",
					"fps", fps,
					"drawn", drawn,
					"position", s.Camera.Position,
					"yaw", s.Camera.Yaw,
					"pitch", s.Camera.Pitch)
			}
			frames, statsStart = 0, now
		}
	}
	if *saveFlag != "" {
		if err := scene.SaveDescription(desc.Snapshot(s.Camera), *saveFlag); err != nil {
			return err
		}
		slog.Info("scene saved", "path", *saveFlag)
	}
	slog.Info("exiting", "frames", humanize.Comma(totalFrames))
	return nil
}
