// pkg/render/engo/scene.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"
)

const fontURL = "gomono.ttf"

// Options describe the window.
type Options struct {
	Title    string
	Width    int
	Height   int
	FPSLimit int
}

// GameScene hosts the simulation in an engo window. Engo owns the main
// loop, so the scene calls Frame once per engine update.
type GameScene struct {
	world   *ecs.World
	backend *Backend

	// Frame runs one simulation tick; false ends the program.
	Frame func() bool
	// Err holds the first setup failure.
	Err error
}

// NewGameScene creates a scene drawing through backend
func NewGameScene(backend *Backend, frame func() bool) *GameScene {
	return &GameScene{backend: backend, Frame: frame}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "OrbiterScene"
}

// Preload registers the embedded HUD font (required by Engo)
func (scene *GameScene) Preload() {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(gomono.TTF)); err != nil {
		scene.Err = fmt.Errorf("failed to load font: %w", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	w, _ := u.(*ecs.World)
	scene.world = w

	font := &common.Font{URL: fontURL, FG: color.White, Size: 14}
	if scene.Err == nil {
		if err := font.CreatePreloaded(); err != nil {
			scene.Err = fmt.Errorf("failed to create font: %w", err)
			font = nil
		}
	} else {
		font = nil
	}

	rs := &common.RenderSystem{}
	w.AddSystem(rs)
	w.AddSystem(&frameSystem{scene: scene})

	SetupInputBindings()
	scene.backend.attach(rs, font)
}

// Exit is called when the window is closed (required by Engo)
func (scene *GameScene) Exit() {
	scene.backend.RequestQuit()
}

// frameSystem advances the simulation from inside engo's update loop.
type frameSystem struct {
	scene *GameScene
}

func (s *frameSystem) Update(dt float32) {
	if s.scene.Err != nil || !s.scene.Frame() {
		engo.Exit()
	}
}

func (s *frameSystem) Remove(ecs.BasicEntity) {}

// Run opens the window and blocks until the scene exits.
func Run(opts Options, scene *GameScene) error {
	engo.Run(engo.RunOptions{
		Title:               opts.Title,
		Width:               opts.Width,
		Height:              opts.Height,
		FPSLimit:            opts.FPSLimit,
		OverrideCloseAction: true,
	}, scene)
	return scene.Err
}
