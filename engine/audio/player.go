package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/spaghettifunk/facecube/engine/core"
)

var ErrUnknownCue = errors.New("unknown audio cue")

type Config struct {
	Enabled    bool
	Volume     float64
	SampleRate int
}

func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Volume:     0.4,
		SampleRate: 44100,
	}
}

// Player plays short interface cues through a shared mixer. Without a working
// audio device every call is a no-op.
type Player struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer(cfg Config) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	return &Player{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the audio device. A failure leaves the player silent; the
// error is returned so the caller can log it.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	core.LogDebug("audio initialized at %d Hz", p.cfg.SampleRate)
	return nil
}

func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

func (p *Player) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := Build(cue, p.rate, p.cfg.Volume)
	if err != nil {
		core.LogWarn("failed to build %s cue: %s", cue, err)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *Player) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
