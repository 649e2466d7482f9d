// pkg/render/engo/input_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/go-orbiter/pkg/render"
)

func TestKeyDown(t *testing.T) {
	tests := []struct {
		name string
		down []string
		key  render.Key
		want bool
	}{
		{"thrust", []string{"thrust-forward"}, render.KeyThrustForward, true},
		{"brake released", nil, render.KeyBrake, false},
		{"rotate right", []string{"rotate-right"}, render.KeyRotateRight, true},
		{"zoom in needs shift", []string{"zoom-in"}, render.KeyZoomIn, false},
		{"zoom in with shift", []string{"zoom-in", buttonShift}, render.KeyZoomIn, true},
		{"zoom out with shift", []string{"zoom-out", buttonShift}, render.KeyZoomOut, true},
		{"shift alone", []string{buttonShift}, render.KeyZoomOut, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fakeButtons{down: map[string]bool{}}
			for _, name := range tt.down {
				in.down[name] = true
			}
			if got := keyDown(in, tt.key); got != tt.want {
				t.Errorf("keyDown(%v) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestGameScene_Type(t *testing.T) {
	scene := NewGameScene(NewBackend(), func() bool { return true })
	if scene.Type() != "OrbiterScene" {
		t.Errorf("Type() = %q", scene.Type())
	}
}

func TestGameScene_ExitRequestsQuit(t *testing.T) {
	b, _, _ := newTestBackend()
	scene := NewGameScene(b, func() bool { return true })

	scene.Exit()
	if events := b.PollEvents(); len(events) != 1 || events[0].Kind != render.EventQuit {
		t.Errorf("PollEvents() = %v, want quit", events)
	}
}
