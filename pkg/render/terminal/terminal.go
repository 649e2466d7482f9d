// Package terminal draws the simulation in a character-cell terminal.
package terminal

import (
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbiter/pkg/physics"
	"github.com/opd-ai/go-orbiter/pkg/render"
)

// DefaultHoldTime is how long a key counts as held after its last press.
// Terminals report presses and repeats, not releases, so it has to bridge
// the autorepeat delay. Pressing another key releases the previous one.
const DefaultHoldTime = 500 * time.Millisecond

var keyBindings = map[rune]render.Key{
	'z': render.KeyThrustForward,
	'c': render.KeyThrustReverse,
	'x': render.KeyBrake,
	'a': render.KeyRotateLeft,
	'd': render.KeyRotateRight,
	// Terminals deliver the shifted glyph, not shift plus a digit, so
	// zoom binds the glyphs Shift+1/2 produce on US and UK/German layouts.
	'!': render.KeyZoomIn,
	'@': render.KeyZoomOut,
	'"': render.KeyZoomOut,
}

// Backend implements render.Backend on a tcell screen. Logical screen
// coordinates are scaled onto the terminal's cells.
type Backend struct {
	screen tcell.Screen
	width  float64
	height float64
	cols   int
	rows   int

	events   chan tcell.Event
	done     chan struct{}
	once     sync.Once
	held     map[render.Key]time.Time
	pending  []render.Event
	holdTime time.Duration
	now      func() time.Time
}

// New opens the terminal and maps a width x height logical screen onto it.
func New(width, height float64) (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	b := NewWithScreen(screen, width, height)
	b.listen()
	return b, nil
}

// NewWithScreen wraps an initialized screen. Events must be fed with
// HandleEvent unless the screen was opened by New.
func NewWithScreen(screen tcell.Screen, width, height float64) *Backend {
	cols, rows := screen.Size()
	return &Backend{
		screen:   screen,
		width:    width,
		height:   height,
		cols:     cols,
		rows:     rows,
		events:   make(chan tcell.Event, 100),
		done:     make(chan struct{}),
		held:     make(map[render.Key]time.Time),
		holdTime: DefaultHoldTime,
		now:      time.Now,
	}
}

// listen forwards terminal events to the channel drained by PollEvents.
func (b *Backend) listen() {
	go func() {
		for {
			ev := b.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case b.events <- ev:
			case <-b.done:
				return
			}
		}
	}()
}

// HandleEvent translates one tcell event into held keys or quit requests.
func (b *Backend) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			b.pending = append(b.pending, render.Event{Kind: render.EventQuit})
			return
		}
		if ev.Key() != tcell.KeyRune {
			return
		}
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if k, ok := keyBindings[r]; ok {
			b.press(k)
		}
	case *tcell.EventResize:
		b.screen.Sync()
		b.cols, b.rows = b.screen.Size()
	}
}

// press marks k as held and releases every other key, since a terminal
// only repeats the most recent key.
func (b *Backend) press(k render.Key) {
	clear(b.held)
	b.held[k] = b.now()
}

// PollEvents implements render.Input.
func (b *Backend) PollEvents() []render.Event {
	for drained := false; !drained; {
		select {
		case ev := <-b.events:
			b.HandleEvent(ev)
		default:
			drained = true
		}
	}

	events := b.pending
	b.pending = nil
	return events
}

// IsKeyDown implements render.Input.
func (b *Backend) IsKeyDown(k render.Key) bool {
	at, ok := b.held[k]
	return ok && b.now().Sub(at) < b.holdTime
}

// Close implements render.Backend.
func (b *Backend) Close() error {
	b.once.Do(func() {
		close(b.done)
		b.screen.Fini()
	})
	return nil
}

// cell maps a logical point to a terminal cell.
func (b *Backend) cell(p physics.Vector2D) (int, int) {
	return int(math.Floor(p.X * float64(b.cols) / b.width)),
		int(math.Floor(p.Y * float64(b.rows) / b.height))
}

// near rejects points so far off screen that rasterizing toward them
// would be wasted work.
func (b *Backend) near(p physics.Vector2D) bool {
	const limit = 16
	return math.Abs(p.X) < limit*b.width && math.Abs(p.Y) < limit*b.height
}

func (b *Backend) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.cols && y < b.rows
}

func (b *Backend) set(x, y int, r rune, c color.RGBA) {
	if !b.inside(x, y) {
		return
	}
	b.screen.SetContent(x, y, r, nil, style(c))
}

func style(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Clear implements render.Surface.
func (b *Backend) Clear(c color.RGBA) {
	b.screen.SetStyle(tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))))
	b.screen.Clear()
}

// DrawCircle implements render.Surface. Circles smaller than a cell
// become a single glyph. Larger ones are sampled along the outline, with
// the sample count bounded by the screen size so a huge zoom stays cheap.
func (b *Backend) DrawCircle(center physics.Vector2D, radius float64, c color.RGBA) {
	fx := center.X * float64(b.cols) / b.width
	fy := center.Y * float64(b.rows) / b.height
	rx := radius * float64(b.cols) / b.width
	ry := radius * float64(b.rows) / b.height

	cols, rows := float64(b.cols), float64(b.rows)
	if fx+rx < 0 || fx-rx >= cols || fy+ry < 0 || fy-ry >= rows {
		return
	}

	if rx < 1 && ry < 1 {
		glyph := '·'
		if radius >= 3 {
			glyph = '●'
		}
		b.set(int(math.Floor(fx)), int(math.Floor(fy)), glyph, c)
		return
	}

	// a screen lying wholly inside the circle shows none of the outline
	if b.enclosedBy(fx, fy, rx, ry) {
		return
	}

	steps := max(8, int(math.Min(2*math.Pi*math.Max(rx, ry), float64(maxCircleSteps*(b.cols+b.rows)))))
	ox, oy := math.Floor(fx), math.Floor(fy)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := ox + math.Round(rx*math.Cos(a))
		y := oy + math.Round(ry*math.Sin(a))
		if x >= 0 && y >= 0 && x < cols && y < rows {
			b.set(int(x), int(y), 'o', c)
		}
	}
}

// maxCircleSteps scales the outline sample cap with the screen perimeter.
const maxCircleSteps = 4

// enclosedBy reports whether every screen corner lies inside the ellipse.
func (b *Backend) enclosedBy(fx, fy, rx, ry float64) bool {
	for _, x := range []float64{0, float64(b.cols)} {
		for _, y := range []float64{0, float64(b.rows)} {
			dx, dy := (x-fx)/rx, (y-fy)/ry
			if dx*dx+dy*dy >= 1 {
				return false
			}
		}
	}
	return true
}

// DrawPolyline implements render.Surface.
func (b *Backend) DrawPolyline(points []physics.Vector2D, c color.RGBA, closed bool) {
	for i := 1; i < len(points); i++ {
		b.line(points[i-1], points[i], '.', c)
	}
	if closed && len(points) > 2 {
		b.line(points[len(points)-1], points[0], '.', c)
	}
}

// DrawLine implements render.Surface.
func (b *Backend) DrawLine(from, to physics.Vector2D, c color.RGBA) {
	b.line(from, to, '*', c)
}

// line rasterizes with Bresenham in cell space.
func (b *Backend) line(from, to physics.Vector2D, r rune, c color.RGBA) {
	if !b.near(from) || !b.near(to) {
		return
	}
	x0, y0 := b.cell(from)
	x1, y1 := b.cell(to)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	// segments wholly off screen are common when zoomed in
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) ||
		(x0 >= b.cols && x1 >= b.cols) || (y0 >= b.rows && y1 >= b.rows) {
		return
	}

	err := dx + dy
	for {
		b.set(x0, y0, r, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawText implements render.Surface.
func (b *Backend) DrawText(text string, pos physics.Vector2D, c color.RGBA) {
	x, y := b.cell(pos)
	st := style(c)
	for _, r := range text {
		if b.inside(x, y) {
			b.screen.SetContent(x, y, r, nil, st)
		}
		x++
	}
}

// Present implements render.Surface.
func (b *Backend) Present() {
	b.screen.Show()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
