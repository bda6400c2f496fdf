package core

import "github.com/spaghettifunk/facecube/engine/containers"

const AVG_COUNT = 30

// Metrics tracks frame timings for the HUD.
type Metrics struct {
	frameTimes         *containers.RingQueue[float64]
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64
}

func NewMetrics() *Metrics {
	return &Metrics{
		frameTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

// Update records a frame that took frameElapsedTime seconds.
func (m *Metrics) Update(frameElapsedTime float64) {
	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	m.frameTimes.Push(frameMS)

	var sum float64
	m.frameTimes.Each(func(ms float64) { sum += ms })
	m.MSavg = sum / float64(m.frameTimes.Len())

	// Calculate Frames per second.
	m.AccumulatedFrameMS += frameMS
	m.Frames++
	if m.AccumulatedFrameMS > 1000 {
		m.FPS = float64(m.Frames)
		m.AccumulatedFrameMS -= 1000
		m.Frames = 0
	}
}

func (m *Metrics) Frame() (float64, float64) {
	return m.FPS, m.MSavg
}
