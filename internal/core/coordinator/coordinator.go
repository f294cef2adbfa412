// Package coordinator serializes every state change of the application onto
// a single dispatch loop. Timer, display and interaction components have no
// locks of their own; the coordinator is their only caller. Slow work
// (pixel sampling, configuration writes) runs on short-lived goroutines
// whose results re-enter the loop as queued inputs.
package coordinator

import (
	"context"
	"log"
	"reflect"
	"sync"
	"time"

	"ghosttimer/internal/core/display"
	"ghosttimer/internal/core/interaction"
	"ghosttimer/internal/core/model"
	"ghosttimer/internal/core/timer"
)

// DefaultStartDuration is used by the start/stop hotkey when no countdown
// was ever started.
const DefaultStartDuration = 5 * time.Minute

// DefaultWidgetSize is the overlay's logical size.
var DefaultWidgetSize = model.Size{Width: 200, Height: 100}

// ConfigStore persists the configuration. Save may block; it is never
// called from the dispatch loop.
type ConfigStore interface {
	Save(config model.Configuration) error
}

// Options contains runtime knobs, all optional.
type Options struct {
	TickInterval      time.Duration
	WidgetSize        model.Size
	Clock             func() time.Time
	HoverExitDebounce time.Duration
}

// Coordinator owns the application state machine.
type Coordinator struct {
	options Options
	config  model.Configuration

	engine      *timer.Engine
	displayCtx  *display.Adapter
	interaction *interaction.Controller

	sampler display.Sampler
	store   ConfigStore

	inputs chan input

	sampleSeq       uint64
	sampleInFlight  bool
	persistSeq      uint64
	persistInFlight bool
	persistPending  bool

	lastRender   RenderState
	renderedOnce bool

	mu      sync.Mutex
	events  []chan Event
	running bool
	stopCh  chan struct{}
}

// New creates a coordinator around an already loaded configuration. The
// sampler may be nil when background sampling is unavailable on this
// platform; the store may be nil in tests.
func New(config model.Configuration, sampler display.Sampler, store ConfigStore, options Options) *Coordinator {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.WidgetSize == (model.Size{}) {
		options.WidgetSize = DefaultWidgetSize
	}
	if options.Clock == nil {
		options.Clock = time.Now
	}

	position := config.Display.Position
	controller := interaction.New(position, options.WidgetSize)
	controller.SetExitDebounce(options.HoverExitDebounce)

	return &Coordinator{
		options:     options,
		config:      config,
		engine:      timer.New(),
		displayCtx:  display.New(position, options.WidgetSize),
		interaction: controller,
		sampler:     sampler,
		store:       store,
		inputs:      make(chan input, 64),
		stopCh:      make(chan struct{}),
	}
}

// Subscribe registers a new observer channel. Events are dropped, never
// blocked on, when an observer falls behind.
func (c *Coordinator) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	c.mu.Lock()
	c.events = append(c.events, ch)
	c.mu.Unlock()
	return ch
}

// Run drives the dispatch loop until the context is cancelled. All
// component state is touched only from this goroutine.
func (c *Coordinator) Run(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	ticker := time.NewTicker(c.options.TickInterval)
	defer ticker.Stop()

	// Publish the initial render state before the first tick.
	c.handle(input{kind: inputTick}, c.options.Clock())

	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return
		case <-c.stopCh:
			c.shutdown()
			return
		case now := <-ticker.C:
			c.handle(input{kind: inputTick}, now)
			c.drain()
		case in := <-c.inputs:
			c.handle(in, c.options.Clock())
		}
	}
}

// Stop terminates the dispatch loop.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.stopCh)
}

// Config returns the configuration the coordinator holds. Only safe to call
// before Run starts; afterwards the dispatch loop owns it.
func (c *Coordinator) Config() model.Configuration {
	return c.config
}

// Start queues a countdown start. The duration is validated here so the
// caller gets an immediate error for out-of-range values; state-dependent
// rejections surface as warning events instead.
func (c *Coordinator) Start(duration time.Duration) error {
	if duration <= 0 || duration > timer.MaxDuration {
		return timer.ErrInvalidDuration
	}
	c.enqueue(input{kind: inputStart, duration: duration})
	return nil
}

// Pause queues a pause request.
func (c *Coordinator) Pause() { c.enqueue(input{kind: inputPause}) }

// Resume queues a resume request.
func (c *Coordinator) Resume() { c.enqueue(input{kind: inputResume}) }

// Reset queues a reset request.
func (c *Coordinator) Reset() { c.enqueue(input{kind: inputReset}) }

// HotkeyToggleVisibility queues the visibility hotkey.
func (c *Coordinator) HotkeyToggleVisibility() {
	c.enqueue(input{kind: inputHotkeyToggleVisibility})
}

// HotkeyStartStop queues the start/stop hotkey.
func (c *Coordinator) HotkeyStartStop() { c.enqueue(input{kind: inputHotkeyStartStop}) }

// HotkeyReset queues the reset hotkey.
func (c *Coordinator) HotkeyReset() { c.enqueue(input{kind: inputHotkeyReset}) }

// PointerEntered queues a hover enter.
func (c *Coordinator) PointerEntered() { c.enqueue(input{kind: inputPointerEntered}) }

// PointerExited queues a hover exit.
func (c *Coordinator) PointerExited() { c.enqueue(input{kind: inputPointerExited}) }

// PointerPressed queues a press at the given logical position.
func (c *Coordinator) PointerPressed(point model.Point) {
	c.enqueue(input{kind: inputPointerPressed, point: point})
}

// PointerMoved queues a pointer move.
func (c *Coordinator) PointerMoved(point model.Point) {
	c.enqueue(input{kind: inputPointerMoved, point: point})
}

// PointerReleased queues a pointer release.
func (c *Coordinator) PointerReleased() { c.enqueue(input{kind: inputPointerReleased}) }

// MenuOpened queues a context-menu open.
func (c *Coordinator) MenuOpened() { c.enqueue(input{kind: inputMenuOpened}) }

// MenuClosed queues a context-menu close.
func (c *Coordinator) MenuClosed() { c.enqueue(input{kind: inputMenuClosed}) }

// DPIChanged queues a monitor scale-factor change.
func (c *Coordinator) DPIChanged(scale float64) {
	c.enqueue(input{kind: inputDPIChanged, scale: scale})
}

// MonitorsChanged queues a monitor topology change.
func (c *Coordinator) MonitorsChanged(monitors []model.MonitorInfo) {
	c.enqueue(input{kind: inputMonitorsChanged, monitors: monitors})
}

// UpdateConfig queues a replacement configuration, as produced by the
// preferences window or a file-watch reload.
func (c *Coordinator) UpdateConfig(config model.Configuration) {
	c.enqueue(input{kind: inputConfigUpdate, config: config})
}

func (c *Coordinator) enqueue(in input) {
	select {
	case c.inputs <- in:
	case <-c.stopCh:
	}
}

// drain flushes whatever is already queued so a tick settles the whole
// backlog in one pass.
func (c *Coordinator) drain() {
	for {
		select {
		case in := <-c.inputs:
			c.handle(in, c.options.Clock())
		default:
			return
		}
	}
}

// handle is the single dispatch point. Every branch mutates component
// state, and the tail publishes a render event if anything visible changed.
func (c *Coordinator) handle(in input, now time.Time) {
	switch in.kind {
	case inputTick:
		c.handleTick(now)

	case inputStart:
		if err := c.engine.Start(now, in.duration); err != nil {
			c.warn(now, err.Error())
		}

	case inputPause:
		if err := c.engine.Pause(now); err != nil {
			c.warn(now, err.Error())
		}

	case inputResume:
		if err := c.engine.Resume(now); err != nil {
			c.warn(now, err.Error())
		}

	case inputReset:
		c.engine.Reset()

	case inputHotkeyToggleVisibility:
		c.interaction.ToggleVisibility()

	case inputHotkeyStartStop:
		c.handleStartStop(now)

	case inputHotkeyReset:
		c.engine.Reset()

	case inputPointerEntered:
		c.interaction.OnHoverEnter()

	case inputPointerExited:
		c.interaction.OnHoverExit(now)

	case inputPointerPressed:
		c.interaction.OnPress(in.point)

	case inputPointerMoved:
		if c.interaction.OnMove(in.point) {
			c.displayCtx.NotePositionChanged(c.interaction.Position())
		}

	case inputPointerReleased:
		if c.interaction.OnRelease(now) {
			c.displayCtx.NotePositionChanged(c.interaction.Position())
			c.rememberPosition()
		}

	case inputMenuOpened:
		c.interaction.OpenMenu()

	case inputMenuClosed:
		c.interaction.CloseMenu(now)

	case inputDPIChanged:
		if c.displayCtx.OnDPIChange(in.scale) {
			c.interaction.SetPosition(c.displayCtx.Position())
			c.rememberPosition()
		}

	case inputMonitorsChanged:
		if c.displayCtx.OnMonitorTopologyChange(in.monitors) {
			c.interaction.SetPosition(c.displayCtx.Position())
			c.rememberPosition()
		}

	case inputConfigUpdate:
		c.applyConfig(in.config)

	case inputSampleDone:
		c.sampleInFlight = false
		if in.seq == c.sampleSeq {
			c.displayCtx.ApplySample(in.color, in.err)
		}

	case inputPersistDone:
		c.persistInFlight = false
		if in.err != nil {
			log.Printf("config save failed: %v", in.err)
			c.warn(now, "config save failed: "+in.err.Error())
		}
		if c.persistPending {
			c.persistPending = false
			c.launchPersist()
		}
	}

	c.maybeSample(now)
	c.publishIfChanged(now)
}

func (c *Coordinator) handleTick(now time.Time) {
	if c.engine.Tick(now) {
		c.emit(Event{Type: EventFinished, At: now})
	}
	c.interaction.Tick(now)
}

// handleStartStop implements the start/stop hotkey: start from idle with
// the last used duration, pause when running, resume when paused.
func (c *Coordinator) handleStartStop(now time.Time) {
	switch c.engine.State() {
	case timer.StateStopped, timer.StateFinished:
		duration := c.engine.OriginalDuration()
		if duration <= 0 {
			duration = DefaultStartDuration
		}
		if err := c.engine.Start(now, duration); err != nil {
			c.warn(now, err.Error())
		}
	case timer.StateRunning:
		if err := c.engine.Pause(now); err != nil {
			c.warn(now, err.Error())
		}
	case timer.StatePaused:
		if err := c.engine.Resume(now); err != nil {
			c.warn(now, err.Error())
		}
	}
}

func (c *Coordinator) applyConfig(next model.Configuration) {
	if issues := next.Normalize(); len(issues) > 0 {
		for _, issue := range issues {
			log.Printf("config field reset to default: %s", issue)
		}
	}

	// File-watch reloads echo our own saves back; an unchanged config must
	// not trigger another save or the two would ping-pong forever.
	previous := c.config
	if reflect.DeepEqual(previous, next) {
		return
	}
	c.config = next

	// A position edit from the preferences window moves the widget; a drag
	// already synced both sides, so only react to a real difference.
	if next.Display.Position != previous.Display.Position &&
		next.Display.Position != c.interaction.Position() {
		c.interaction.SetPosition(next.Display.Position)
		c.displayCtx.NotePositionChanged(next.Display.Position)
	}

	// Turning auto detection (back) on needs a fresh sample at the current
	// spot.
	if c.samplingEnabled() && !previousSamplingEnabled(previous) {
		c.displayCtx.NotePositionChanged(c.interaction.Position())
	}

	c.requestPersist()
}

func previousSamplingEnabled(config model.Configuration) bool {
	return config.Behavior.AutoDetectBackground && config.Display.TextColor.IsAuto()
}

func (c *Coordinator) samplingEnabled() bool {
	return c.sampler != nil &&
		c.config.Behavior.AutoDetectBackground &&
		c.config.Display.TextColor.IsAuto()
}

// maybeSample issues at most one background sample task at a time, and only
// when the display context says one is due.
func (c *Coordinator) maybeSample(now time.Time) {
	if c.sampleInFlight || !c.samplingEnabled() || !c.displayCtx.SampleDue(now) {
		return
	}

	bounds := c.displayCtx.BeginSample(now)
	c.sampleSeq++
	seq := c.sampleSeq
	c.sampleInFlight = true
	sampler := c.sampler

	go func() {
		color, err := display.CollectSample(bounds, sampler)
		c.enqueue(input{kind: inputSampleDone, seq: seq, color: color, err: err})
	}()
}

// rememberPosition copies the live position into the configuration and
// schedules a save, when position persistence is enabled.
func (c *Coordinator) rememberPosition() {
	if !c.config.Behavior.RememberPosition {
		return
	}
	c.config.Display.Position = c.interaction.Position()
	c.requestPersist()
}

// requestPersist schedules a configuration save. Saves are serialized: a
// request that arrives while one is in flight coalesces into a single
// follow-up write.
func (c *Coordinator) requestPersist() {
	if c.store == nil {
		return
	}
	if c.persistInFlight {
		c.persistPending = true
		return
	}
	c.launchPersist()
}

func (c *Coordinator) launchPersist() {
	snapshot := c.config
	c.persistSeq++
	seq := c.persistSeq
	c.persistInFlight = true
	store := c.store

	go func() {
		err := store.Save(snapshot)
		c.enqueue(input{kind: inputPersistDone, seq: seq, err: err})
	}()
}

// textColor resolves the effective text color: a manual choice wins, auto
// detection supplies the sampled contrast, and auto without detection
// falls back to white.
func (c *Coordinator) textColor() model.Color {
	if manual := c.config.Display.TextColor.Manual; manual != nil {
		return *manual
	}
	if c.config.Behavior.AutoDetectBackground {
		return c.displayCtx.TextColor()
	}
	return model.White
}

func (c *Coordinator) renderState(now time.Time) RenderState {
	return RenderState{
		TimeText:        c.engine.DisplayText(now),
		TimerState:      c.engine.State(),
		Alpha:           c.interaction.EffectiveAlpha(c.config.Display),
		TextColor:       c.textColor(),
		Position:        c.interaction.Position(),
		ControlsVisible: c.interaction.ControlsVisible(c.config.Display),
		Visible:         c.interaction.Visible(),
	}
}

func (c *Coordinator) publishIfChanged(now time.Time) {
	state := c.renderState(now)
	if c.renderedOnce && state == c.lastRender {
		return
	}
	c.lastRender = state
	c.renderedOnce = true
	c.emit(Event{Type: EventRender, Render: state, At: now})
}

func (c *Coordinator) warn(now time.Time, message string) {
	c.emit(Event{Type: EventWarning, Message: message, At: now})
}

func (c *Coordinator) emit(event Event) {
	c.mu.Lock()
	events := append([]chan Event(nil), c.events...)
	c.mu.Unlock()

	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (c *Coordinator) shutdown() {
	c.mu.Lock()
	c.running = false
	events := c.events
	c.events = nil
	c.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}
