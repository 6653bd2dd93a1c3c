// Package anim provides the deferred-execution and transition primitives
// that sequence gallery rendering and modal animations.
package anim

import (
	"sort"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

const (
	// UpdateDelay is the pause before a scheduled gallery update runs.
	UpdateDelay = 300 * time.Millisecond
	// FadeOutDuration is how long the gallery region fades out before its content is swapped.
	FadeOutDuration = 150 * time.Millisecond
	// FadeInDuration is how long the fade-in marker stays on after a swap.
	FadeInDuration = 300 * time.Millisecond
	// ModalFocusDelay lets the modal opening transition start before focus moves.
	ModalFocusDelay = 100 * time.Millisecond
	// ModalCloseDuration is the closing transition length; content is cleared after it.
	ModalCloseDuration = 300 * time.Millisecond
)

// Scheduler runs fn once after d has elapsed. Implementations must invoke
// every continuation on the host's UI goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// FyneScheduler schedules continuations with the runtime timer and hands
// them back to the Fyne event loop.
type FyneScheduler struct{}

// NewFyneScheduler creates the production scheduler.
func NewFyneScheduler() *FyneScheduler {
	return &FyneScheduler{}
}

// AfterFunc implements Scheduler.
func (FyneScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		fyne.Do(fn)
	})
}

type task struct {
	due time.Duration
	seq int
	fn  func()
}

// ManualScheduler is a Scheduler whose clock only moves when Advance is
// called. Tasks due at the same instant run in the order they were scheduled.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []task
}

// NewManualScheduler returns a scheduler starting at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler.
func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.tasks = append(m.tasks, task{due: m.now + d, seq: m.seq, fn: fn})
}

// Now returns the elapsed virtual time.
func (m *ManualScheduler) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of tasks not yet run.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves the clock forward by d, running each task that falls due.
// Tasks scheduled by a running task are picked up in the same call when
// they are due before the target time.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		next, ok := m.popDue(target)
		if !ok {
			break
		}
		next.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// RunAll advances until no tasks remain.
func (m *ManualScheduler) RunAll() {
	for {
		m.mu.Lock()
		if len(m.tasks) == 0 {
			m.mu.Unlock()
			return
		}
		last := m.tasks[0].due
		for _, t := range m.tasks {
			if t.due > last {
				last = t.due
			}
		}
		d := last - m.now
		m.mu.Unlock()
		m.Advance(d)
	}
}

func (m *ManualScheduler) popDue(target time.Duration) (task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tasks) == 0 {
		return task{}, false
	}
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due != m.tasks[j].due {
			return m.tasks[i].due < m.tasks[j].due
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})
	next := m.tasks[0]
	if next.due > target {
		return task{}, false
	}
	m.tasks = m.tasks[1:]
	m.now = next.due
	return next, true
}
