// Package carousel implements a looping slider that shows a fixed window of
// items and moves one item at a time.
//
// The engine keeps an unbounded base offset in pixels. The displayed offset is
// the base wrapped into [-period, 0), where period is the width of one copy of
// the item list. Navigation requests accumulate in a signed pending counter and
// are drained one animated step at a time.
package carousel

import (
	"math"
	"sync"
	"time"
)

const (
	// Visible is the number of items shown at once.
	Visible = 3
	// Gap is the spacing between items in pixels.
	Gap = 24.0
	// StepDuration is the length of one animated step.
	StepDuration = 420 * time.Millisecond

	epsilon = 1e-6
)

// Normalize repeats items cyclically until the window can be filled. Lists
// already long enough are returned unchanged.
func Normalize[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	if len(items) >= Visible {
		return items
	}
	out := make([]T, 0, Visible)
	for len(out) < Visible {
		out = append(out, items...)
	}
	return out[:Visible]
}

// Track doubles the normalised list so wrapping from the last item to the first is seamless.
func Track[T any](normalized []T) []T {
	out := make([]T, 0, 2*len(normalized))
	out = append(out, normalized...)
	return append(out, normalized...)
}

// Wrap maps v into [min, max).
func Wrap(min, max, v float64) float64 {
	r := max - min
	if r <= 0 {
		return min
	}
	w := math.Mod(math.Mod(v-min, r)+r, r) + min
	if w >= max {
		w = min
	}
	return w
}

// round rounds half up.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

type transition struct {
	from, to float64
	elapsed  time.Duration
}

// Engine is the slider state machine. It is safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	n        int
	width    float64
	slide    float64
	step     float64
	period   float64
	duration time.Duration

	base    float64
	pending int
	active  *transition
	steps   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithViewport sets the initial viewport width in pixels.
func WithViewport(width float64) Option {
	return func(e *Engine) { e.resize(width) }
}

// WithStepDuration overrides StepDuration.
func WithStepDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.duration = d
		}
	}
}

// NewEngine builds an engine over n items, n being the normalised length.
func NewEngine(n int, opts ...Option) *Engine {
	if n < 0 {
		n = 0
	}
	e := &Engine{n: n, duration: StepDuration}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Len returns the number of items in one cycle.
func (e *Engine) Len() int { return e.n }

// Resize recomputes geometry for a new viewport width, keeping the current item
// in place. A step interrupted by the resize is queued again from its origin.
func (e *Engine) Resize(width float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := round(e.logicalIndex())
	if tr := e.active; tr != nil {
		idx = round(-Wrap(-e.period, 0, tr.from) / e.step)
		if tr.to < tr.from {
			e.pending++
		} else {
			e.pending--
		}
		e.active = nil
	}
	e.resize(width)
	e.base = -idx * e.step
	e.snapLocked()
	e.runQueueLocked()
}

func (e *Engine) resize(width float64) {
	e.width = width
	if width <= 0 || e.n == 0 {
		e.slide, e.step, e.period = 0, 0, 0
		return
	}
	e.slide = math.Max(0, (width-Gap*(Visible-1))/Visible)
	e.step = round(e.slide + Gap)
	e.period = float64(e.n) * e.step
}

// SlideWidth returns the width of one item in pixels.
func (e *Engine) SlideWidth() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slide
}

// Step returns the stride of one item including the gap.
func (e *Engine) Step() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.step
}

// Period returns the width of one full cycle.
func (e *Engine) Period() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.period
}

// Next queues one step forward.
func (e *Engine) Next() { e.enqueue(1) }

// Prev queues one step backward.
func (e *Engine) Prev() { e.enqueue(-1) }

// GoTo queues the shortest run of single steps that brings item idx to the centre.
func (e *Engine) GoTo(idx int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.n == 0 {
		return
	}
	delta := mod(idx, e.n) - e.centerIndex()
	half := float64(e.n) / 2
	if float64(delta) > half {
		delta -= e.n
	}
	if float64(delta) < -half {
		delta += e.n
	}
	e.pending += delta
	e.runQueueLocked()
}

func (e *Engine) enqueue(delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending += delta
	e.runQueueLocked()
}

// runQueueLocked starts the next queued step unless one is already running.
func (e *Engine) runQueueLocked() {
	if e.active != nil || e.pending == 0 || e.period <= 0 {
		return
	}
	direction := 1
	if e.pending < 0 {
		direction = -1
	}
	e.pending -= direction

	current := e.base
	targetRaw := current - float64(direction)*e.step

	curWrapped := Wrap(-e.period, 0, current)
	modTarget := math.Mod(math.Mod(targetRaw, e.period)+e.period, e.period)
	modCur := math.Mod(curWrapped+e.period, e.period)
	diff := modTarget - modCur
	if diff > e.period/2 {
		diff -= e.period
	}
	if diff < -e.period/2 {
		diff += e.period
	}
	e.active = &transition{from: current, to: round(current + diff)}
}

// Advance moves the active transition forward by dt. Completed steps snap to
// the pixel grid and immediately hand over to the next queued step.
func (e *Engine) Advance(dt time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for e.active != nil {
		tr := e.active
		remaining := e.duration - tr.elapsed
		if dt < remaining {
			tr.elapsed += dt
			frac := float64(tr.elapsed) / float64(e.duration)
			e.base = tr.from + (tr.to-tr.from)*frac
			return
		}
		dt -= remaining
		e.base = tr.to
		e.snapLocked()
		e.active = nil
		e.steps++
		e.runQueueLocked()
	}
}

// Settle runs every queued step to completion.
func (e *Engine) Settle() {
	e.mu.Lock()
	d := e.duration
	e.mu.Unlock()
	for e.Animating() {
		e.Advance(d)
	}
}

// Stop halts the active transition where it is and starts nothing new. It is
// meant for teardown: queued steps are kept but only resume on the next
// navigation call.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if e.active == nil {
		return
	}
	e.snapLocked()
	e.active = nil
}

func (e *Engine) snapLocked() {
	if e.period <= 0 {
		return
	}
	e.base = round(Wrap(-e.period, 0, e.base))
}

// SetIndex places item idx at the left edge without animating.
func (e *Engine) SetIndex(idx int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = nil
	if e.n == 0 {
		e.base = 0
		return
	}
	e.base = -float64(mod(idx, e.n)) * e.step
	e.snapLocked()
}

// Offset is the displayed translation in whole pixels, within [-period, 0).
func (e *Engine) Offset() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.period <= 0 {
		return 0
	}
	return round(Wrap(-e.period, 0, e.base))
}

// LogicalIndex is the fractional index of the left-most item.
func (e *Engine) LogicalIndex() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.logicalIndex()
}

func (e *Engine) logicalIndex() float64 {
	if e.period <= 0 || e.step <= 0 {
		return 0
	}
	return -Wrap(-e.period, 0, e.base) / e.step
}

// CenterIndex is the item in the middle slot, rounded so it stays stable mid-animation.
func (e *Engine) CenterIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.centerIndex()
}

func (e *Engine) centerIndex() int {
	if e.n == 0 {
		return 0
	}
	return mod(int(round(e.logicalIndex()+1+epsilon)), e.n)
}

// Window returns the visible item indices, left to right.
func (e *Engine) Window() [Visible]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.n == 0 {
		return [Visible]int{}
	}
	c := e.centerIndex()
	return [Visible]int{mod(c-1, e.n), c, mod(c+1, e.n)}
}

// Animating reports whether a step is in progress.
func (e *Engine) Animating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil
}

// Pending returns the signed number of queued steps not yet started.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Steps returns how many steps have completed.
func (e *Engine) Steps() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.steps
}
