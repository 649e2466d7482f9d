// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orbiter/pkg/render"
)

const (
	buttonShift = "shift"
	buttonQuit  = "quit"
)

// buttons reads named engo buttons.
type buttons interface {
	Down(name string) bool
	JustPressed(name string) bool
}

type engoButtons struct{}

func (engoButtons) Down(name string) bool {
	return engo.Input.Button(name).Down()
}

func (engoButtons) JustPressed(name string) bool {
	return engo.Input.Button(name).JustPressed()
}

// SetupInputBindings registers the simulation controls. Zoom keys are
// the digit keys and need shift held as well.
func SetupInputBindings() {
	engo.Input.RegisterButton(render.KeyThrustForward.String(), engo.KeyZ)
	engo.Input.RegisterButton(render.KeyThrustReverse.String(), engo.KeyC)
	engo.Input.RegisterButton(render.KeyBrake.String(), engo.KeyX)
	engo.Input.RegisterButton(render.KeyRotateLeft.String(), engo.KeyA)
	engo.Input.RegisterButton(render.KeyRotateRight.String(), engo.KeyD)
	engo.Input.RegisterButton(render.KeyZoomIn.String(), engo.KeyOne)
	engo.Input.RegisterButton(render.KeyZoomOut.String(), engo.KeyTwo)

	engo.Input.RegisterButton(buttonShift, engo.KeyLeftShift, engo.KeyRightShift)
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape)
}

func keyDown(in buttons, k render.Key) bool {
	switch k {
	case render.KeyZoomIn, render.KeyZoomOut:
		return in.Down(buttonShift) && in.Down(k.String())
	default:
		return in.Down(k.String())
	}
}
