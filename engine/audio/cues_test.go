package audio

import (
	"testing"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}
	return out
}

func TestBuildCueLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, cue := range []Cue{CuePick, CueSettle, CueError} {
		t.Run(cue.String(), func(t *testing.T) {
			s, err := Build(cue, rate, 0.5)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			samples := drain(t, s)
			want := rate.N(Duration(cue))
			// each note rounds its own sample count
			if diff := len(samples) - want; diff < -2 || diff > 2 {
				t.Errorf("len = %d, want about %d", len(samples), want)
			}
			for i, smp := range samples {
				if smp[0] < -1 || smp[0] > 1 || smp[1] < -1 || smp[1] > 1 {
					t.Fatalf("sample %d out of range: %v", i, smp)
				}
			}
		})
	}
}

func TestBuildSilentCue(t *testing.T) {
	s, err := Build(CuePick, beep.SampleRate(44100), 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, smp := range drain(t, s) {
		if smp[0] != 0 || smp[1] != 0 {
			t.Fatalf("sample %d not silent: %v", i, smp)
		}
	}
}

func TestBuildUnknownCue(t *testing.T) {
	if _, err := Build(Cue(42), beep.SampleRate(44100), 1); err != ErrUnknownCue {
		t.Errorf("err = %v, want ErrUnknownCue", err)
	}
}

func TestPlayerWithoutDevice(t *testing.T) {
	p := NewPlayer(Config{Enabled: false, Volume: 1})
	if err := p.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if p.Enabled() {
		t.Error("disabled player reports enabled")
	}
	// no device, must not panic
	p.Play(CueSettle)
	p.Shutdown()
}
