package main

import (
	"voxelforge/internal/atlas"
	"voxelforge/internal/config"
	"voxelforge/internal/graphics/renderables/blocks"
	"voxelforge/internal/graphics/renderables/crosshair"
	"voxelforge/internal/graphics/renderables/hud"
	"voxelforge/internal/graphics/renderables/wireframe"
	renderer "voxelforge/internal/graphics/renderer"
	"voxelforge/internal/input"
	"voxelforge/internal/player"
	"voxelforge/internal/streaming"
	"voxelforge/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

func setupWindow(width, height int) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(width, height, "voxelforge", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, err
	}

	glfw.SwapInterval(1)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	return window, nil
}

// App holds the initialized viewer components
type App struct {
	Config   config.Config
	Renderer *renderer.Renderer
	Blocks   *blocks.Blocks
	HUD      *hud.HUD
	Chunks   *streaming.Manager
	Player   *player.Player
	Input    *input.InputManager
}

func setupApp(cfg config.Config, window *glfw.Window) (*App, error) {
	reg, err := cfg.NewRegistry()
	if err != nil {
		return nil, err
	}
	gen, err := cfg.NewGenerator()
	if err != nil {
		return nil, err
	}

	blocksRenderer := blocks.NewBlocks(atlas.Generate(reg), reg.TileSize())
	hudRenderer := hud.NewHUD(blocksRenderer, reg)

	fbw, fbh := window.GetFramebufferSize()
	r, err := renderer.NewRenderer(fbw, fbh,
		blocksRenderer,
		wireframe.NewWireframe(),
		crosshair.NewCrosshair(),
		hudRenderer,
	)
	if err != nil {
		return nil, err
	}
	r.GetCamera().FitFarPlane(cfg.RenderDistance, cfg.ChunkSize)

	opts := cfg.StreamingOptions()
	opts.OnMeshReady = blocksRenderer.OnMeshReady
	opts.OnUnload = blocksRenderer.OnUnload
	chunks, err := streaming.New(reg, gen, opts)
	if err != nil {
		r.Dispose()
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Renderer: r,
		Blocks:   blocksRenderer,
		HUD:      hudRenderer,
		Chunks:   chunks,
		Player:   player.New(chunks, reg, spawnPoint(gen, cfg)),
		Input:    input.NewInputManager(),
	}
	app.attach(window)
	return app, nil
}

// spawnPoint places the camera a few blocks above the terrain, or the water,
// at the origin.
func spawnPoint(gen world.Generator, cfg config.Config) mgl32.Vec3 {
	ground := 0
	if s, ok := gen.(world.SurfaceSampler); ok {
		ground = s.HeightAt(0, 0)
	}
	if cfg.World.Generator == "noise" {
		ground = max(ground, cfg.World.SeaLevel)
	}
	return mgl32.Vec3{0.5, float32(ground) + 3, 0.5}
}

func (a *App) attach(window *glfw.Window) {
	a.Input.Attach(window)
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		a.Player.HandleMouseMovement(xpos, ypos)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.Renderer.UpdateViewport(width, height)
	})
}

// Dispose frees GL resources, then stops the workers.
func (a *App) Dispose() {
	a.Renderer.Dispose()
	a.Chunks.Close()
}
