package animation

import "time"

// DefaultConfig returns the stock flash and fade timings.
func DefaultConfig() Config {
	return Config{
		FlashCount: 3,
		FlashOnDuration: Range{
			Min: 180 * time.Millisecond,
			Max: 220 * time.Millisecond,
		},
		FlashOffDuration: Range{
			Min: 180 * time.Millisecond,
			Max: 220 * time.Millisecond,
		},
		FadeDuration: 150 * time.Millisecond,
		FadeInterval: 15 * time.Millisecond,
	}
}
