package anim

import "time"

// Phase is a step of a region's fade transition.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFadingOut
	PhaseSwapping
	PhaseFadingIn
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFadingOut:
		return "fading-out"
	case PhaseSwapping:
		return "swapping"
	case PhaseFadingIn:
		return "fading-in"
	default:
		return "unknown"
	}
}

// Fade is the visual marker a region carries while transitioning.
type Fade int

const (
	FadeNone Fade = iota
	FadeOut
	FadeIn
)

func (f Fade) String() string {
	switch f {
	case FadeOut:
		return "fade-out"
	case FadeIn:
		return "fade-in"
	default:
		return "none"
	}
}

// Transition drives one animated region through
// idle -> fading-out -> swapping -> fading-in -> idle.
//
// Only one run is in flight at a time. A Run issued mid-flight is parked
// and replaces any previously parked swap, so the region always ends up
// showing the most recent content.
type Transition struct {
	sched   Scheduler
	setFade func(Fade)
	phase   Phase
	pending func()

	// OnPhase, when set, observes every phase change.
	OnPhase func(Phase)
}

// NewTransition creates an idle transition applying fade markers through setFade.
func NewTransition(sched Scheduler, setFade func(Fade)) *Transition {
	if setFade == nil {
		setFade = func(Fade) {}
	}
	return &Transition{sched: sched, setFade: setFade}
}

// Phase returns the current phase.
func (t *Transition) Phase() Phase {
	return t.phase
}

// Busy reports whether a run is in flight.
func (t *Transition) Busy() bool {
	return t.phase != PhaseIdle
}

// Run starts a fade transition around swap, or parks swap until the
// current run finishes.
func (t *Transition) Run(swap func()) {
	if t.Busy() {
		t.pending = swap
		return
	}
	t.start(swap)
}

func (t *Transition) start(swap func()) {
	t.enter(PhaseFadingOut)
	t.setFade(FadeOut)
	t.sched.AfterFunc(FadeOutDuration, func() {
		t.enter(PhaseSwapping)
		if swap != nil {
			swap()
		}
		t.enter(PhaseFadingIn)
		t.setFade(FadeIn)
		t.sched.AfterFunc(FadeInDuration, t.finish)
	})
}

func (t *Transition) finish() {
	t.setFade(FadeNone)
	t.enter(PhaseIdle)
	if next := t.pending; next != nil {
		t.pending = nil
		t.start(next)
	}
}

func (t *Transition) enter(p Phase) {
	t.phase = p
	if t.OnPhase != nil {
		t.OnPhase(p)
	}
}

// Duration is the total length of one uninterrupted run.
func (t *Transition) Duration() time.Duration {
	return FadeOutDuration + FadeInDuration
}
