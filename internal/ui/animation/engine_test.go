package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type alphaRecorder struct {
	mu     sync.Mutex
	values []float64
}

func (recorder *alphaRecorder) apply(alpha float64) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.values = append(recorder.values, alpha)
}

func (recorder *alphaRecorder) count() int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return len(recorder.values)
}

func (recorder *alphaRecorder) last() (float64, bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if len(recorder.values) == 0 {
		return 0, false
	}
	return recorder.values[len(recorder.values)-1], true
}

func fastConfig() Config {
	return Config{
		FlashCount:       2,
		FlashOnDuration:  Range{Min: time.Millisecond, Max: 2 * time.Millisecond},
		FlashOffDuration: Range{Min: time.Millisecond, Max: 2 * time.Millisecond},
		FadeDuration:     10 * time.Millisecond,
		FadeInterval:     time.Millisecond,
	}
}

func TestRangeRandomStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	value := Range{Min: 100 * time.Millisecond, Max: 200 * time.Millisecond}

	for i := 0; i < 50; i++ {
		sampled := value.Random(rng)
		assert.GreaterOrEqual(t, sampled, value.Min)
		assert.Less(t, sampled, value.Max)
	}

	degenerate := Range{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, degenerate.Random(rng))
}

func TestFlashEndsAtRestingAlpha(t *testing.T) {
	recorder := &alphaRecorder{}
	engine := New(fastConfig(), recorder.apply)
	defer engine.Stop()

	engine.StartFlash(context.Background(), 0.3)

	assert.Eventually(t, func() bool {
		last, ok := recorder.last()
		return ok && last == 0.3 && recorder.count() >= 4
	}, time.Second, 5*time.Millisecond)
}

func TestFadeReachesTarget(t *testing.T) {
	recorder := &alphaRecorder{}
	engine := New(fastConfig(), recorder.apply)
	defer engine.Stop()

	engine.StartFade(context.Background(), 0.3, 0.8)

	assert.Eventually(t, func() bool {
		last, ok := recorder.last()
		return ok && last == 0.8
	}, time.Second, 5*time.Millisecond)
}

func TestRapidRestartsOverlapCleanly(t *testing.T) {
	recorder := &alphaRecorder{}
	engine := New(fastConfig(), recorder.apply)
	defer engine.Stop()

	// Each restart cancels the previous flash while it may still be timing
	// its next step; overlapping goroutines must not share mutable state.
	for i := 0; i < 20; i++ {
		engine.StartFlash(context.Background(), 0.3)
	}

	assert.Eventually(t, func() bool {
		last, ok := recorder.last()
		return ok && last == 0.3
	}, time.Second, 5*time.Millisecond)
}

func TestStopCancelsActiveAnimation(t *testing.T) {
	recorder := &alphaRecorder{}
	config := fastConfig()
	config.FlashOnDuration = Range{Min: time.Hour, Max: time.Hour}
	engine := New(config, recorder.apply)

	engine.StartFlash(context.Background(), 0.3)
	engine.Stop()

	// The flash set opacity once and then blocked; after Stop no further
	// updates arrive.
	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, recorder.count(), 1)
}
