package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

type Cue uint8

const (
	// A face was clicked.
	CuePick Cue = iota
	// The cube came to rest on a face.
	CueSettle
	// Content failed to load or reload.
	CueError
)

func (c Cue) String() string {
	switch c {
	case CuePick:
		return "pick"
	case CueSettle:
		return "settle"
	case CueError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	pickDuration  = 40 * time.Millisecond
	noteDuration  = 90 * time.Millisecond
	errorDuration = 150 * time.Millisecond
	cueAttack     = 5 * time.Millisecond
)

// tone is a sine at freq lasting d, faded in over cueAttack and out over the
// rest of d.
func tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	total := rate.N(d)
	attack := rate.N(cueAttack)
	if attack > total {
		attack = total
	}
	return beep.Seq(
		effects.Transition(beep.Take(attack, sine), attack, 0, 1, effects.TransitionLinear),
		effects.Transition(beep.Take(total-attack, sine), total-attack, 1, 0, effects.TransitionEqualPower),
	), nil
}

// Build returns the streamer for cue at the given gain, 0..1.
func Build(cue Cue, rate beep.SampleRate, gain float64) (beep.Streamer, error) {
	var (
		s   beep.Streamer
		err error
	)
	switch cue {
	case CuePick:
		s, err = tone(rate, 1320, pickDuration)
	case CueSettle:
		var lo, hi beep.Streamer
		if lo, err = tone(rate, 659.25, noteDuration); err != nil {
			return nil, err
		}
		if hi, err = tone(rate, 987.77, 2*noteDuration); err != nil {
			return nil, err
		}
		s = beep.Seq(lo, hi)
	case CueError:
		s, err = tone(rate, 220, errorDuration)
	default:
		return nil, ErrUnknownCue
	}
	if err != nil {
		return nil, err
	}
	return volume(s, gain), nil
}

// Duration of cue once built.
func Duration(cue Cue) time.Duration {
	switch cue {
	case CuePick:
		return pickDuration
	case CueSettle:
		return 3 * noteDuration
	case CueError:
		return errorDuration
	default:
		return 0
	}
}

// math.Log2(0) is -Inf, silence instead
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
