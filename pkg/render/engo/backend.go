// pkg/render/engo/backend.go
package engo

import (
	"image/color"
	"math"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbiter/pkg/physics"
	"github.com/opd-ai/go-orbiter/pkg/render"
)

// renderSink is the part of common.RenderSystem the backend feeds.
type renderSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// sprite is one pooled drawable entity.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	z float32
}

// pool recycles sprites of one drawable kind between frames. Engo keeps
// entities alive across frames, so immediate-mode draw calls reuse them
// instead of creating new ones every tick.
type pool struct {
	sprites []*sprite
	used    int
}

// next returns a visible sprite stacked above everything drawn before it
// in this frame.
func (p *pool) next(b *Backend, shader common.Shader) *sprite {
	b.layer++
	z := b.layer

	if p.used < len(p.sprites) {
		s := p.sprites[p.used]
		p.used++
		s.Hidden = false
		// z only moves when the frame's draw counts change
		if s.z != z {
			b.setZIndex(&s.RenderComponent, z)
			s.z = z
		}
		return s
	}

	s := &sprite{BasicEntity: ecs.NewBasic(), z: z}
	b.setShader(&s.RenderComponent, shader)
	b.setZIndex(&s.RenderComponent, z)
	b.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	p.sprites = append(p.sprites, s)
	p.used++
	return s
}

// hideUnused hides the sprites not drawn this frame.
func (p *pool) hideUnused() {
	for _, s := range p.sprites[p.used:] {
		s.Hidden = true
	}
}

func (p *pool) removeAll(sink renderSink) {
	for _, s := range p.sprites {
		sink.Remove(s.BasicEntity)
	}
	p.sprites = nil
	p.used = 0
}

// Backend implements render.Backend on top of an engo RenderSystem. All
// drawables use HUD shaders, so positions are plain screen pixels.
type Backend struct {
	mu      sync.Mutex
	sink    renderSink
	font    *common.Font
	input   buttons
	circles pool
	lines   pool
	texts   pool
	layer   float32

	background    color.RGBA
	backgroundSet bool
	quit          bool

	setBackground func(color.Color)
	setShader     func(*common.RenderComponent, common.Shader)
	setZIndex     func(*common.RenderComponent, float32)
}

// NewBackend creates a backend that draws nothing until a scene attaches
// its render system.
func NewBackend() *Backend {
	return &Backend{
		input:         engoButtons{},
		setBackground: common.SetBackground,
		setShader: func(rc *common.RenderComponent, s common.Shader) {
			rc.SetShader(s)
		},
		setZIndex: func(rc *common.RenderComponent, z float32) {
			rc.SetZIndex(z)
		},
	}
}

// attach connects the backend to the scene's render system and font.
func (b *Backend) attach(sink renderSink, font *common.Font) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sink = sink
	b.font = font
}

// RequestQuit queues a quit event, as when the window is closed.
func (b *Backend) RequestQuit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quit = true
}

// Clear implements render.Surface.
func (b *Backend) Clear(c color.RGBA) {
	b.circles.used, b.lines.used, b.texts.used = 0, 0, 0
	b.layer = 0

	if !b.backgroundSet || c != b.background {
		b.setBackground(c)
		b.background, b.backgroundSet = c, true
	}
}

// DrawCircle implements render.Surface.
func (b *Backend) DrawCircle(center physics.Vector2D, radius float64, c color.RGBA) {
	if b.sink == nil {
		return
	}
	s := b.circles.next(b, common.LegacyHUDShader)
	s.Drawable = common.Circle{}
	s.Color = c
	s.Position = engo.Point{X: float32(center.X - radius), Y: float32(center.Y - radius)}
	s.Width = float32(2 * radius)
	s.Height = float32(2 * radius)
	s.Rotation = 0
}

// Stroke widths in pixels. Orbits are hairlines; the heading line is
// drawn heavier.
const (
	polylineWidth = 1
	lineWidth     = 2
)

// DrawPolyline implements render.Surface.
func (b *Backend) DrawPolyline(points []physics.Vector2D, c color.RGBA, closed bool) {
	for i := 1; i < len(points); i++ {
		b.segment(points[i-1], points[i], c, polylineWidth)
	}
	if closed && len(points) > 2 {
		b.segment(points[len(points)-1], points[0], c, polylineWidth)
	}
}

// DrawLine implements render.Surface.
func (b *Backend) DrawLine(from, to physics.Vector2D, c color.RGBA) {
	b.segment(from, to, c, lineWidth)
}

// segment draws a rectangle of the given width rotated about its corner,
// offset so the stroke is centered on the from-to line.
func (b *Backend) segment(from, to physics.Vector2D, c color.RGBA, width float64) {
	if b.sink == nil {
		return
	}
	d := to.Sub(from)
	angle := math.Atan2(d.Y, d.X)
	corner := from.Sub(physics.Vector2D{X: -math.Sin(angle), Y: math.Cos(angle)}.Scale(width / 2))

	s := b.lines.next(b, common.LegacyHUDShader)
	s.Drawable = common.Rectangle{}
	s.Color = c
	s.Position = engo.Point{X: float32(corner.X), Y: float32(corner.Y)}
	s.Width = float32(d.Length())
	s.Height = float32(width)
	s.Rotation = float32(angle * 180 / math.Pi)
}

// DrawText implements render.Surface.
func (b *Backend) DrawText(text string, pos physics.Vector2D, c color.RGBA) {
	if b.sink == nil || b.font == nil {
		return
	}
	s := b.texts.next(b, common.TextHUDShader)
	s.Drawable = common.Text{Font: b.font, Text: text}
	s.Color = c
	s.Position = engo.Point{X: float32(pos.X), Y: float32(pos.Y)}
	s.Rotation = 0
}

// Present implements render.Surface. Engo draws the frame itself after
// the systems update, so this only retires sprites left over from the
// previous frame.
func (b *Backend) Present() {
	b.circles.hideUnused()
	b.lines.hideUnused()
	b.texts.hideUnused()
}

// IsKeyDown implements render.Input.
func (b *Backend) IsKeyDown(k render.Key) bool {
	return keyDown(b.input, k)
}

// PollEvents implements render.Input.
func (b *Backend) PollEvents() []render.Event {
	b.mu.Lock()
	quit := b.quit
	b.quit = false
	b.mu.Unlock()

	if quit || b.input.JustPressed(buttonQuit) {
		return []render.Event{{Kind: render.EventQuit}}
	}
	return nil
}

// Close implements render.Backend.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sink == nil {
		return nil
	}
	b.circles.removeAll(b.sink)
	b.lines.removeAll(b.sink)
	b.texts.removeAll(b.sink)
	b.sink = nil
	return nil
}
