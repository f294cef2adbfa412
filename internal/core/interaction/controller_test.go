package interaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghosttimer/internal/core/model"
)

var testSize = model.Size{Width: 200, Height: 100}

func testDisplay() model.DisplayConfig {
	return model.DisplayConfig{
		Transparency:      0.3,
		HoverTransparency: 0.8,
		ShowControls:      true,
	}
}

func TestHoverEnterIsIdempotent(t *testing.T) {
	controller := New(model.Point{X: 100, Y: 100}, testSize)

	assert.True(t, controller.OnHoverEnter())
	assert.False(t, controller.OnHoverEnter())
	assert.Equal(t, 0.8, controller.EffectiveAlpha(testDisplay()))
}

func TestHoverExitRevertsImmediatelyWithoutDebounce(t *testing.T) {
	now := time.Now()
	controller := New(model.Point{X: 100, Y: 100}, testSize)
	controller.OnHoverEnter()

	assert.True(t, controller.OnHoverExit(now))
	assert.Equal(t, 0.3, controller.EffectiveAlpha(testDisplay()))

	// Exit without a prior enter is a no-op.
	assert.False(t, controller.OnHoverExit(now))
}

func TestHoverExitDebounce(t *testing.T) {
	now := time.Now()
	controller := New(model.Point{X: 100, Y: 100}, testSize)
	controller.SetExitDebounce(200 * time.Millisecond)
	controller.OnHoverEnter()

	// The exit is deferred; hover alpha holds until the deadline.
	assert.False(t, controller.OnHoverExit(now))
	assert.Equal(t, 0.8, controller.EffectiveAlpha(testDisplay()))

	assert.False(t, controller.Tick(now.Add(100*time.Millisecond)))
	assert.True(t, controller.Tick(now.Add(200*time.Millisecond)))
	assert.Equal(t, 0.3, controller.EffectiveAlpha(testDisplay()))
}

func TestReenterCancelsPendingExit(t *testing.T) {
	now := time.Now()
	controller := New(model.Point{X: 100, Y: 100}, testSize)
	controller.SetExitDebounce(200 * time.Millisecond)
	controller.OnHoverEnter()
	controller.OnHoverExit(now)

	// Re-entering before the deadline keeps the hover state.
	assert.False(t, controller.OnHoverEnter())
	assert.False(t, controller.Tick(now.Add(time.Second)))
	assert.True(t, controller.Hovered())
}

func TestDragTracksPointerWithOffset(t *testing.T) {
	controller := New(model.Point{X: 100, Y: 100}, testSize)

	// Press at (105,105): offset from the origin is (5,5).
	require.True(t, controller.OnPress(model.Point{X: 105, Y: 105}))
	assert.True(t, controller.Dragging())

	assert.True(t, controller.OnMove(model.Point{X: 200, Y: 150}))
	assert.Equal(t, model.Point{X: 195, Y: 145}, controller.Position())

	assert.True(t, controller.OnRelease(time.Now()))
	assert.False(t, controller.Dragging())
	assert.Equal(t, model.Point{X: 195, Y: 145}, controller.Position())
}

func TestPressOutsideWidgetIsIgnored(t *testing.T) {
	controller := New(model.Point{X: 100, Y: 100}, testSize)

	assert.False(t, controller.OnPress(model.Point{X: 50, Y: 50}))
	assert.False(t, controller.Dragging())
	assert.False(t, controller.OnMove(model.Point{X: 60, Y: 60}))
	assert.False(t, controller.OnRelease(time.Now()))
}

func TestMoveWithoutDragDoesNothing(t *testing.T) {
	controller := New(model.Point{X: 100, Y: 100}, testSize)

	assert.False(t, controller.OnMove(model.Point{X: 500, Y: 500}))
	assert.Equal(t, model.Point{X: 100, Y: 100}, controller.Position())
}

func TestDraggingUsesHoverAlpha(t *testing.T) {
	controller := New(model.Point{X: 100, Y: 100}, testSize)
	require.True(t, controller.OnPress(model.Point{X: 110, Y: 110}))

	assert.Equal(t, 0.8, controller.EffectiveAlpha(testDisplay()))
}

func TestHoverExitDeferredWhileDragging(t *testing.T) {
	now := time.Now()
	controller := New(model.Point{X: 100, Y: 100}, testSize)
	controller.OnHoverEnter()
	require.True(t, controller.OnPress(model.Point{X: 110, Y: 110}))

	// The pointer can slip off the widget mid-drag; the revert waits for
	// the release.
	assert.False(t, controller.OnHoverExit(now))
	assert.True(t, controller.Hovered())

	controller.OnRelease(now)
	assert.False(t, controller.Hovered())
	assert.Equal(t, 0.3, controller.EffectiveAlpha(testDisplay()))
}

func TestOpenMenuPinsFullOpacity(t *testing.T) {
	now := time.Now()
	controller := New(model.Point{X: 100, Y: 100}, testSize)

	assert.True(t, controller.OpenMenu())
	assert.False(t, controller.OpenMenu())
	assert.Equal(t, 1.0, controller.EffectiveAlpha(testDisplay()))

	assert.True(t, controller.CloseMenu(now))
	assert.Equal(t, 0.3, controller.EffectiveAlpha(testDisplay()))
}

func TestHoverExitDeferredWhileMenuOpen(t *testing.T) {
	now := time.Now()
	controller := New(model.Point{X: 100, Y: 100}, testSize)
	controller.OnHoverEnter()
	controller.OpenMenu()

	assert.False(t, controller.OnHoverExit(now))
	assert.True(t, controller.Hovered())

	controller.CloseMenu(now)
	assert.False(t, controller.Hovered())
}

func TestToggleVisibility(t *testing.T) {
	controller := New(model.Point{X: 100, Y: 100}, testSize)
	require.True(t, controller.Visible())

	assert.True(t, controller.ToggleVisibility())
	assert.False(t, controller.Visible())
	assert.True(t, controller.ToggleVisibility())
	assert.True(t, controller.Visible())
}

func TestControlsVisible(t *testing.T) {
	display := testDisplay()
	controller := New(model.Point{X: 100, Y: 100}, testSize)

	assert.False(t, controller.ControlsVisible(display))

	controller.OnHoverEnter()
	assert.True(t, controller.ControlsVisible(display))

	display.ShowControls = false
	assert.False(t, controller.ControlsVisible(display))
}

func TestSetPositionSyncsExternalCorrection(t *testing.T) {
	controller := New(model.Point{X: 100, Y: 100}, testSize)

	assert.True(t, controller.SetPosition(model.Point{X: 150, Y: 300}))
	assert.Equal(t, model.Point{X: 150, Y: 300}, controller.Position())
	assert.False(t, controller.SetPosition(model.Point{X: 150, Y: 300}))
}
