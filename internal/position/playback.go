package position

import (
	"math"
	"sync"
	"time"
)

type PlaybackState string

const (
	PlaybackIdle    PlaybackState = "IDLE"
	PlaybackPlaying PlaybackState = "PLAYING"
	PlaybackPaused  PlaybackState = "PAUSED"
)

const (
	// Grace period between receiving a sequence and starting autoplay, so
	// the map can settle before the marker moves.
	autoplayGrace = time.Second

	// One step per second at 1x; the interval divides by the speed factor.
	baseTickInterval = time.Second

	// Jump distance of the forward/back buttons.
	playbackStepSize = 5
)

// speed factors cycled by CycleSpeed, in order.
var playbackSpeeds = []int{1, 2, 4}

// Animator drives step-by-step playback of a history trace. It owns at most
// one ticker goroutine at a time; loading a new sequence or closing the
// animator cancels it. The OnChange callback fires on every index change and
// must tolerate repeated indices.
type Animator struct {
	mu         sync.Mutex
	points     []HistoryPoint
	index      int
	speedIdx   int
	state      PlaybackState
	ticking    chan struct{}
	autoplay   *time.Timer
	generation uint64
	onChange   func(index int, point HistoryPoint)
}

func NewAnimator(onChange func(index int, point HistoryPoint)) *Animator {
	return &Animator{state: PlaybackIdle, onChange: onChange}
}

// SetSequence replaces the trace: playback stops, the marker returns to the
// first point, and when the trace has two or more points playback restarts
// automatically after a short grace period. A sequence loaded during the
// grace period supersedes the pending autoplay.
func (a *Animator) SetSequence(points []HistoryPoint) {
	a.mu.Lock()
	a.stopTickerLocked()
	a.cancelAutoplayLocked()
	a.points = points
	a.index = 0
	a.state = PlaybackIdle
	a.generation++
	gen := a.generation

	if len(points) >= 2 {
		a.autoplay = time.AfterFunc(autoplayGrace, func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			if a.generation != gen || a.state != PlaybackIdle {
				return
			}
			a.startTickerLocked()
		})
	}
	a.mu.Unlock()

	if len(points) > 0 {
		a.notify(0)
	}
}

func (a *Animator) Play() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelAutoplayLocked()
	if a.state == PlaybackPlaying || len(a.points) < 2 {
		return
	}
	// Playing again from the end starts the trace over.
	if a.index >= len(a.points)-1 {
		a.index = 0
	}
	a.startTickerLocked()
}

func (a *Animator) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != PlaybackPlaying {
		return
	}
	a.stopTickerLocked()
	a.state = PlaybackPaused
}

// Seek positions the marker at percent (0-100) of the trace, rounded to the
// nearest index. The playing/paused state is preserved.
func (a *Animator) Seek(percent float64) {
	a.mu.Lock()
	if len(a.points) == 0 {
		a.mu.Unlock()
		return
	}
	percent = math.Min(100, math.Max(0, percent))
	a.index = int(math.Round(percent / 100 * float64(len(a.points)-1)))
	idx := a.index
	a.mu.Unlock()

	a.notify(idx)
}

// Step jumps the marker forward or backward, clamped to the trace bounds.
func (a *Animator) Step(forward bool) {
	a.mu.Lock()
	if len(a.points) == 0 {
		a.mu.Unlock()
		return
	}
	delta := playbackStepSize
	if !forward {
		delta = -playbackStepSize
	}
	a.index = clamp(a.index+delta, 0, len(a.points)-1)
	idx := a.index
	a.mu.Unlock()

	a.notify(idx)
}

// CycleSpeed advances the speed factor (1x, 2x, 4x, back to 1x) and returns
// the new factor. An active ticker restarts at the new interval.
func (a *Animator) CycleSpeed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.speedIdx = (a.speedIdx + 1) % len(playbackSpeeds)
	if a.state == PlaybackPlaying {
		a.stopTickerLocked()
		a.startTickerLocked()
	}
	return playbackSpeeds[a.speedIdx]
}

// Reset stops playback and returns the marker to the first point.
func (a *Animator) Reset() {
	a.mu.Lock()
	a.stopTickerLocked()
	a.cancelAutoplayLocked()
	a.index = 0
	a.state = PlaybackIdle
	hasPoints := len(a.points) > 0
	a.mu.Unlock()

	if hasPoints {
		a.notify(0)
	}
}

// Close cancels the ticker and any pending autoplay. The animator must not
// be used afterwards.
func (a *Animator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopTickerLocked()
	a.cancelAutoplayLocked()
	a.state = PlaybackIdle
	a.generation++
}

func (a *Animator) State() PlaybackState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Animator) Index() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.index
}

func (a *Animator) Speed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return playbackSpeeds[a.speedIdx]
}

func (a *Animator) startTickerLocked() {
	a.state = PlaybackPlaying
	stop := make(chan struct{})
	a.ticking = stop
	go a.run(stop, baseTickInterval/time.Duration(playbackSpeeds[a.speedIdx]))
}

func (a *Animator) stopTickerLocked() {
	if a.ticking != nil {
		close(a.ticking)
		a.ticking = nil
	}
}

func (a *Animator) cancelAutoplayLocked() {
	if a.autoplay != nil {
		a.autoplay.Stop()
		a.autoplay = nil
	}
}

func (a *Animator) run(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !a.advance(stop) {
				return
			}
		}
	}
}

// advance moves the marker one point forward. It reports false once the end
// of the trace is reached (playback does not loop) or when this goroutine
// has been superseded.
func (a *Animator) advance(stop chan struct{}) bool {
	a.mu.Lock()
	if a.ticking != stop {
		a.mu.Unlock()
		return false
	}
	if a.index >= len(a.points)-1 {
		a.ticking = nil
		a.state = PlaybackIdle
		a.mu.Unlock()
		return false
	}
	a.index++
	idx := a.index
	a.mu.Unlock()

	a.notify(idx)
	return true
}

func (a *Animator) notify(idx int) {
	a.mu.Lock()
	cb := a.onChange
	var point HistoryPoint
	ok := idx < len(a.points)
	if ok {
		point = a.points[idx]
	}
	a.mu.Unlock()

	if cb != nil && ok {
		cb(idx, point)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
