package position

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func idleAnimator(t *testing.T, n int) *Animator {
	t.Helper()
	a := NewAnimator(nil)
	a.SetSequence(historyWithSpeeds(make([]float64, n)))
	t.Cleanup(a.Close)
	return a
}

func TestAnimator_SetSequenceResets(t *testing.T) {
	a := idleAnimator(t, 10)
	a.Seek(100)
	assert.Equal(t, 9, a.Index())

	a.SetSequence(historyWithSpeeds(make([]float64, 5)))
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, PlaybackIdle, a.State())
}

func TestAnimator_AutoplayAfterGrace(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	a := NewAnimator(func(idx int, _ HistoryPoint) {
		mu.Lock()
		seen = append(seen, idx)
		mu.Unlock()
	})
	defer a.Close()

	a.SetSequence(historyWithSpeeds(make([]float64, 20)))
	assert.Equal(t, PlaybackIdle, a.State())

	// 4x speed so ticks come quickly once the grace period elapses.
	a.CycleSpeed()
	a.CycleSpeed()
	assert.Equal(t, 4, a.Speed())

	assert.Eventually(t, func() bool {
		return a.State() == PlaybackPlaying && a.Index() > 0
	}, 3*time.Second, 10*time.Millisecond)

	a.Pause()
	assert.Equal(t, PlaybackPaused, a.State())

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, seen)
	assert.Equal(t, 0, seen[0])
}

func TestAnimator_NoAutoplayForSinglePoint(t *testing.T) {
	a := idleAnimator(t, 1)
	time.Sleep(autoplayGrace + 300*time.Millisecond)
	assert.Equal(t, PlaybackIdle, a.State())
	assert.Equal(t, 0, a.Index())
}

func TestAnimator_SeekPercentRoundsToIndex(t *testing.T) {
	a := idleAnimator(t, 101)

	a.Seek(50)
	assert.Equal(t, 50, a.Index())

	a.Seek(0)
	assert.Equal(t, 0, a.Index())

	a.Seek(100)
	assert.Equal(t, 100, a.Index())

	// Out-of-range input clamps rather than erroring.
	a.Seek(250)
	assert.Equal(t, 100, a.Index())
}

func TestAnimator_StepClamps(t *testing.T) {
	a := idleAnimator(t, 8)

	a.Step(false)
	assert.Equal(t, 0, a.Index())

	a.Step(true)
	assert.Equal(t, 5, a.Index())

	a.Step(true)
	assert.Equal(t, 7, a.Index())
}

func TestAnimator_SpeedCycle(t *testing.T) {
	a := NewAnimator(nil)
	defer a.Close()

	assert.Equal(t, 1, a.Speed())
	assert.Equal(t, 2, a.CycleSpeed())
	assert.Equal(t, 4, a.CycleSpeed())
	assert.Equal(t, 1, a.CycleSpeed())
}

func TestAnimator_ResetReturnsToStart(t *testing.T) {
	a := idleAnimator(t, 10)
	a.Seek(100)
	a.Reset()
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, PlaybackIdle, a.State())
}

func TestAnimator_PlaybackStopsAtEnd(t *testing.T) {
	a := idleAnimator(t, 3)

	// Jump near the end and force speed up so the ticker reaches the last
	// index fast.
	a.CycleSpeed()
	a.CycleSpeed()
	a.Seek(100)
	a.Step(false)
	assert.Equal(t, 0, a.Index())
	a.Play()

	assert.Eventually(t, func() bool {
		return a.Index() == 2 && a.State() == PlaybackIdle
	}, 3*time.Second, 10*time.Millisecond)
}
