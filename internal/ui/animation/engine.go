// Package animation drives overlay transparency effects: the completion
// flash and smooth fades between transparency levels.
package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	FlashCount       int
	FlashOnDuration  Range
	FlashOffDuration Range

	FadeDuration time.Duration
	FadeInterval time.Duration
}

// Engine runs transparency animations against a single alpha setter. At
// most one animation is active; starting a new one cancels the previous.
type Engine struct {
	mu         sync.Mutex
	config     Config
	applyAlpha func(float64)
	cancel     context.CancelFunc
	rng        *rand.Rand
}

// New creates an animation engine. The setter is called from the engine's
// goroutine and must be safe for that.
func New(config Config, applyAlpha func(float64)) *Engine {
	return &Engine{
		config:     config,
		applyAlpha: applyAlpha,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartFlash alternates the overlay between fully opaque and its resting
// alpha to announce completion, ending at the resting alpha.
func (engine *Engine) StartFlash(ctx context.Context, restingAlpha float64) {
	rng := engine.runRand()
	engine.start(ctx, func(runCtx context.Context) {
		for i := 0; i < engine.config.FlashCount; i++ {
			engine.applyAlpha(1.0)
			if !sleepWithContext(runCtx, engine.config.FlashOnDuration.Random(rng)) {
				return
			}
			engine.applyAlpha(restingAlpha)
			if !sleepWithContext(runCtx, engine.config.FlashOffDuration.Random(rng)) {
				return
			}
		}
		engine.applyAlpha(restingAlpha)
	})
}

// StartFade moves the alpha from its current value to the target in even
// steps over the fade duration.
func (engine *Engine) StartFade(ctx context.Context, from, to float64) {
	engine.start(ctx, func(runCtx context.Context) {
		steps := int(engine.config.FadeDuration / engine.config.FadeInterval)
		if steps <= 0 {
			engine.applyAlpha(to)
			return
		}

		delta := (to - from) / float64(steps)
		value := from
		for i := 0; i < steps; i++ {
			value += delta
			engine.applyAlpha(value)
			if !sleepWithContext(runCtx, engine.config.FadeInterval) {
				return
			}
		}
		engine.applyAlpha(to)
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// runRand derives a generator owned by a single animation goroutine. A
// cancelled flash may outlive its replacement briefly; the shared generator
// is touched only under the mutex.
func (engine *Engine) runRand() *rand.Rand {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return rand.New(rand.NewSource(engine.rng.Int63()))
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
