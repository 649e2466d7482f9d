// pkg/audio/thruster.go
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-orbiter/pkg/event"
)

const sampleRate = beep.SampleRate(44100)

// Thruster plays a looping engine hum while the probe fires. Until Init
// succeeds every method is a no-op, so a machine without an audio device
// runs silently.
type Thruster struct {
	mu          sync.Mutex
	ctrl        *beep.Ctrl
	tone        float64
	volume      float64
	initialized bool
	sub         event.SubscriptionID
	bus         *event.Bus
}

// NewThruster creates a thruster sound with the given base tone in Hz and
// volume exponent (base 2).
func NewThruster(tone, volume float64) *Thruster {
	if tone <= 0 {
		tone = 55
	}
	return &Thruster{tone: tone, volume: volume}
}

// Init opens the speaker and starts the paused hum.
func (t *Thruster) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	hum, err := t.streamer()
	if err != nil {
		return err
	}

	t.ctrl = &beep.Ctrl{Streamer: hum, Paused: true}
	speaker.Play(t.ctrl)
	t.initialized = true
	return nil
}

// streamer builds the hum: the base tone plus its octave at half
// amplitude, scaled by the configured volume.
func (t *Thruster) streamer() (beep.Streamer, error) {
	base, err := generators.SineTone(sampleRate, t.tone)
	if err != nil {
		return nil, err
	}
	octave, err := generators.SineTone(sampleRate, 2*t.tone)
	if err != nil {
		return nil, err
	}

	return &effects.Volume{
		Streamer: beep.Mix(base, &effects.Volume{Streamer: octave, Base: 2, Volume: -1}),
		Base:     2,
		Volume:   t.volume,
	}, nil
}

// Attach makes the thruster follow ThrustChanged events on bus.
func (t *Thruster) Attach(bus *event.Bus) {
	id := bus.Subscribe(event.ThrustChanged, func(e event.Event) {
		if te, ok := e.(*event.ThrustEvent); ok {
			t.SetThrusting(te.Thrusting)
		}
	})

	t.mu.Lock()
	t.bus, t.sub = bus, id
	t.mu.Unlock()
}

// SetThrusting starts or pauses the hum.
func (t *Thruster) SetThrusting(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return
	}

	speaker.Lock()
	t.ctrl.Paused = !on
	speaker.Unlock()
}

// Playing reports whether the hum is audible.
func (t *Thruster) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !t.ctrl.Paused
}

// Close detaches from the bus and silences the speaker.
func (t *Thruster) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bus != nil {
		t.bus.Unsubscribe(event.ThrustChanged, t.sub)
		t.bus = nil
	}
	if !t.initialized {
		return
	}
	speaker.Clear()
	t.initialized = false
}
