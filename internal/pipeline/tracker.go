package pipeline

import "sync"

// Tracker converts step counts into [0,100] progress reports. Safe for
// concurrent updates from the worker pool.
type Tracker struct {
	mu        sync.Mutex
	total     int
	current   int
	callbacks []ProgressFunc
}

// NewTracker creates a tracker over the given number of steps.
func NewTracker(totalSteps int) *Tracker {
	if totalSteps < 1 {
		totalSteps = 1
	}
	return &Tracker{total: totalSteps}
}

// OnProgress registers a progress callback.
func (t *Tracker) OnProgress(fn ProgressFunc) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	t.callbacks = append(t.callbacks, fn)
	t.mu.Unlock()
}

// Set moves progress to an absolute step.
func (t *Tracker) Set(step int, stage string) {
	t.mu.Lock()
	t.current = step
	t.notifyLocked(stage)
	t.mu.Unlock()
}

// Increment advances progress by one step.
func (t *Tracker) Increment(stage string) {
	t.mu.Lock()
	t.current++
	t.notifyLocked(stage)
	t.mu.Unlock()
}

// Finish snaps progress to 100%.
func (t *Tracker) Finish(stage string) {
	t.mu.Lock()
	t.current = t.total
	t.notifyLocked(stage)
	t.mu.Unlock()
}

// Percent returns the current progress in [0,100].
func (t *Tracker) Percent() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.percentLocked()
}

func (t *Tracker) percentLocked() float64 {
	p := float64(t.current) / float64(t.total) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (t *Tracker) notifyLocked(stage string) {
	p := t.percentLocked()
	for _, fn := range t.callbacks {
		fn(p, stage)
	}
}
