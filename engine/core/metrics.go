package core

import "github.com/spaghettifunk/virtcam/engine/containers"

// Number of frames in the rolling frame time average.
const AVG_COUNT int = 30

// How often the FPS value is refreshed, in seconds.
const FPS_REFRESH_SECONDS float64 = 0.25

// Metrics keeps a rolling frame time average and a frames-per-second value
// refreshed every FPS_REFRESH_SECONDS.
type Metrics struct {
	msTimes     *containers.RingQueue[float64]
	msSum       float64
	frames      int32
	accumulated float64
	fps         float64
	refreshed   bool
}

func NewMetrics() *Metrics {
	return &Metrics{
		msTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

// Update records one frame that took frameElapsedTime seconds.
func (m *Metrics) Update(frameElapsedTime float64) {
	m.refreshed = false

	// Slide the frame ms window.
	if m.msTimes.IsFull() {
		oldest, _ := m.msTimes.Dequeue()
		m.msSum -= oldest
	}
	frameMS := frameElapsedTime * 1000.0
	_ = m.msTimes.Enqueue(frameMS)
	m.msSum += frameMS

	// Count all frames, then refresh the FPS every quarter second.
	m.frames++
	m.accumulated += frameElapsedTime
	if m.accumulated > FPS_REFRESH_SECONDS {
		m.fps = float64(m.frames) / m.accumulated
		m.accumulated = 0
		m.frames = 0
		m.refreshed = true
	}
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

// FrameTime is the average frame time in milliseconds over the last AVG_COUNT frames.
func (m *Metrics) FrameTime() float64 {
	if m.msTimes.IsEmpty() {
		return 0
	}
	return m.msSum / float64(m.msTimes.Len())
}

// Refreshed reports whether the last Update produced a new FPS value.
func (m *Metrics) Refreshed() bool {
	return m.refreshed
}
