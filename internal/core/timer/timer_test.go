package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineIsStopped(t *testing.T) {
	engine := New()

	assert.Equal(t, StateStopped, engine.State())
	assert.Equal(t, time.Duration(0), engine.Remaining(time.Now()))
	assert.Equal(t, "00:00", engine.DisplayText(time.Now()))
}

func TestStartValidation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		duration time.Duration
		wantErr  error
	}{
		{"zero", 0, ErrInvalidDuration},
		{"negative", -time.Second, ErrInvalidDuration},
		{"over 24h", 24*time.Hour + time.Second, ErrInvalidDuration},
		{"exactly 24h", 24 * time.Hour, nil},
		{"one second", time.Second, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New()
			err := engine.Start(now, tt.duration)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, StateStopped, engine.State())
			} else {
				require.NoError(t, err)
				assert.Equal(t, StateRunning, engine.State())
			}
		})
	}
}

func TestStartRejectedWhileRunningOrPaused(t *testing.T) {
	now := time.Now()
	engine := New()
	require.NoError(t, engine.Start(now, time.Minute))

	assert.ErrorIs(t, engine.Start(now, time.Minute), ErrInvalidTransition)

	require.NoError(t, engine.Pause(now))
	assert.ErrorIs(t, engine.Start(now, time.Minute), ErrInvalidTransition)
	assert.Equal(t, StatePaused, engine.State())
}

func TestImmediateTickKeepsFullRemaining(t *testing.T) {
	now := time.Now()
	engine := New()
	require.NoError(t, engine.Start(now, 5*time.Minute))

	engine.Tick(now)
	assert.Equal(t, 5*time.Minute, engine.Remaining(now))
	assert.Equal(t, StateRunning, engine.State())
}

func TestTickCountsDown(t *testing.T) {
	now := time.Now()
	engine := New()
	require.NoError(t, engine.Start(now, 10*time.Second))

	engine.Tick(now.Add(3 * time.Second))
	assert.Equal(t, 7*time.Second, engine.Remaining(now.Add(3*time.Second)))
}

func TestCompletionEmittedExactlyOnce(t *testing.T) {
	start := time.Now()
	engine := New()
	require.NoError(t, engine.Start(start, 5*time.Second))

	completed := engine.Tick(start.Add(5 * time.Second))
	assert.True(t, completed)
	assert.Equal(t, StateFinished, engine.State())

	completed = engine.Tick(start.Add(6 * time.Second))
	assert.False(t, completed)
	assert.Equal(t, StateFinished, engine.State())
}

func TestOvershootClampsToZero(t *testing.T) {
	start := time.Now()
	engine := New()
	require.NoError(t, engine.Start(start, time.Second))

	completed := engine.Tick(start.Add(time.Hour))
	assert.True(t, completed)
	assert.Equal(t, time.Duration(0), engine.Remaining(start.Add(time.Hour)))
}

func TestPauseResumePreservesRemaining(t *testing.T) {
	start := time.Now()
	engine := New()
	require.NoError(t, engine.Start(start, time.Minute))

	at := start.Add(20 * time.Second)
	require.NoError(t, engine.Pause(at))
	assert.Equal(t, StatePaused, engine.State())
	assert.Equal(t, 40*time.Second, engine.Remaining(at))

	// Zero elapsed real time between pause and resume.
	require.NoError(t, engine.Resume(at))
	assert.Equal(t, StateRunning, engine.State())
	assert.Equal(t, 40*time.Second, engine.Remaining(at))
}

func TestResumeCountsSuspendedTimeAsElapsed(t *testing.T) {
	start := time.Now()
	engine := New()
	require.NoError(t, engine.Start(start, time.Minute))
	require.NoError(t, engine.Pause(start.Add(10*time.Second)))

	// Resume an hour later: the paused remaining carries over untouched.
	resumeAt := start.Add(time.Hour)
	require.NoError(t, engine.Resume(resumeAt))
	assert.Equal(t, 50*time.Second, engine.Remaining(resumeAt))

	// From resume onward the monotonic clock drives the countdown.
	assert.Equal(t, 45*time.Second, engine.Remaining(resumeAt.Add(5*time.Second)))
}

func TestPauseAtZeroFinishesWithoutCompletion(t *testing.T) {
	start := time.Now()
	engine := New()
	require.NoError(t, engine.Start(start, time.Second))

	require.NoError(t, engine.Pause(start.Add(2*time.Second)))
	assert.Equal(t, StateFinished, engine.State())

	// Already finished, so a later tick must not report completion again.
	assert.False(t, engine.Tick(start.Add(3*time.Second)))
}

func TestPauseResumeTransitionGuards(t *testing.T) {
	now := time.Now()
	engine := New()

	assert.ErrorIs(t, engine.Pause(now), ErrInvalidTransition)
	assert.ErrorIs(t, engine.Resume(now), ErrInvalidTransition)

	require.NoError(t, engine.Start(now, time.Minute))
	assert.ErrorIs(t, engine.Resume(now), ErrInvalidTransition)
}

func TestResetFromEveryState(t *testing.T) {
	now := time.Now()

	prepare := map[string]func(engine *Engine){
		"stopped": func(engine *Engine) {},
		"running": func(engine *Engine) {
			_ = engine.Start(now, time.Minute)
		},
		"paused": func(engine *Engine) {
			_ = engine.Start(now, time.Minute)
			_ = engine.Pause(now.Add(time.Second))
		},
		"finished": func(engine *Engine) {
			_ = engine.Start(now, time.Second)
			engine.Tick(now.Add(2 * time.Second))
		},
	}

	for name, setup := range prepare {
		t.Run(name, func(t *testing.T) {
			engine := New()
			setup(engine)

			engine.Reset()
			assert.Equal(t, StateStopped, engine.State())
			assert.Equal(t, time.Duration(0), engine.Remaining(now))
			assert.Equal(t, time.Duration(0), engine.OriginalDuration())
		})
	}
}

func TestRestartAfterFinish(t *testing.T) {
	start := time.Now()
	engine := New()
	require.NoError(t, engine.Start(start, time.Second))
	engine.Tick(start.Add(time.Second))
	require.Equal(t, StateFinished, engine.State())

	require.NoError(t, engine.Start(start.Add(2*time.Second), time.Minute))
	assert.Equal(t, StateRunning, engine.State())
	assert.Equal(t, time.Minute, engine.Remaining(start.Add(2*time.Second)))
}

func TestDisplayText(t *testing.T) {
	start := time.Now()
	engine := New()

	assert.Equal(t, "00:00", engine.DisplayText(start))

	require.NoError(t, engine.Start(start, 65*time.Second))
	assert.Equal(t, "01:05", engine.DisplayText(start))

	engine.Tick(start.Add(66 * time.Second))
	assert.Equal(t, "DONE!", engine.DisplayText(start.Add(66*time.Second)))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		value time.Duration
		want  string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{5 * time.Minute, "05:00"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour, "1:00:00"},
		{24 * time.Hour, "24:00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.value))
	}
}
