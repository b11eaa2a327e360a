package main

import (
	"log"
	"sync/atomic"
	"time"

	"voxelforge/internal/config"
	"voxelforge/internal/input"
	"voxelforge/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// slowFrame is the frame time above which the slowest sections are logged.
const slowFrame = 50 * time.Millisecond

// GameLoop manages the main loop state
type GameLoop struct {
	window *glfw.Window
	app    *App
	quit   *atomic.Bool

	lastTime time.Time
}

// NewGameLoop creates a loop over the initialized components
func NewGameLoop(window *glfw.Window, app *App, quit *atomic.Bool) *GameLoop {
	return &GameLoop{
		window:   window,
		app:      app,
		quit:     quit,
		lastTime: time.Now(),
	}
}

// Run ticks until the window closes or a quit is requested
func (gl *GameLoop) Run() {
	for !gl.window.ShouldClose() && !gl.quit.Load() {
		gl.tick()
	}
}

func (gl *GameLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now

	a := gl.app
	gl.handleInputActions()

	func() { defer profiling.Track("player.Update")(); a.Player.UpdatePosition(dt, a.Input) }()
	a.Chunks.Update(a.Player.GetEyePosition())
	func() { defer profiling.Track("player.UpdateHoveredBlock")(); a.Player.UpdateHoveredBlock() }()

	a.Renderer.Render(a.Chunks, a.Player, dt)

	// Edges are consumed; events polled below belong to the next frame.
	a.Input.PostUpdate()
	func() { defer profiling.Track("glfw.SwapBuffers")(); gl.window.SwapBuffers() }()
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	total := time.Since(now)
	a.HUD.RecordFrame(total)
	if total > slowFrame {
		log.Printf("slow frame %.1fms: %s", float64(total.Microseconds())/1000, profiling.TopN(5))
	}
}

func (gl *GameLoop) handleInputActions() {
	a := gl.app
	im := a.Input

	if im.JustPressed(input.ActionQuit) {
		gl.window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		a.Blocks.Wireframe = !a.Blocks.Wireframe
		a.HUD.Wireframe = a.Blocks.Wireframe
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		a.HUD.ShowProfiling = !a.HUD.ShowProfiling
	}

	if im.JustPressed(input.ActionBreak) {
		a.Player.BreakBlock()
	}
	if im.JustPressed(input.ActionPlace) {
		a.Player.PlaceBlock()
	}
	if im.JustPressed(input.ActionNextBlock) {
		a.Player.CycleSelection(1)
	}
	if im.JustPressed(input.ActionPrevBlock) {
		a.Player.CycleSelection(-1)
	}

	if im.JustPressed(input.ActionRenderFarther) {
		gl.setRenderDistance(a.Chunks.RenderDistance() + 1)
	}
	if im.JustPressed(input.ActionRenderNearer) {
		gl.setRenderDistance(a.Chunks.RenderDistance() - 1)
	}
}

func (gl *GameLoop) setRenderDistance(r int) {
	r = min(max(r, config.MinRenderDistance), config.MaxRenderDistance)
	if r == gl.app.Chunks.RenderDistance() {
		return
	}
	gl.app.Chunks.SetRenderDistance(r)
	gl.app.Renderer.GetCamera().FitFarPlane(r, gl.app.Config.ChunkSize)
	log.Printf("render distance %d", r)
}
