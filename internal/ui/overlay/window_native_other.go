//go:build !windows

package overlay

import "ghosttimer/internal/core/model"

// Per-pixel window alpha and free placement need compositor support that
// fyne does not expose off Windows; the overlay still works, just without
// transparency effects.

func (overlay *Window) applyNativeOpacity(alpha uint8) {}

func (overlay *Window) applyNativePosition(position model.Point) {}

func (overlay *Window) applyNativeTopmost(topmost bool) {}
