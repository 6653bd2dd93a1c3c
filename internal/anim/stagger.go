package anim

import "time"

// Stagger describes a per-card entrance: card i is concealed at i*Step,
// starts revealing Settle later and is fully visible Duration after that.
type Stagger struct {
	Step     time.Duration
	Settle   time.Duration
	Duration time.Duration
}

// DefaultStagger is the gallery card entrance.
var DefaultStagger = Stagger{
	Step:     100 * time.Millisecond,
	Settle:   50 * time.Millisecond,
	Duration: 600 * time.Millisecond,
}

// CardTiming is the schedule of one card, relative to the stagger start.
type CardTiming struct {
	Start     time.Duration
	RevealAt  time.Duration
	VisibleAt time.Duration
}

// Plan returns the timings for n cards.
func (s Stagger) Plan(n int) []CardTiming {
	plan := make([]CardTiming, 0, n)
	for i := 0; i < n; i++ {
		start := time.Duration(i) * s.Step
		plan = append(plan, CardTiming{
			Start:     start,
			RevealAt:  start + s.Settle,
			VisibleAt: start + s.Settle + s.Duration,
		})
	}
	return plan
}

// Schedule queues the entrance of n cards on sched. conceal puts card i in
// its hidden, offset state; reveal starts its transition to visible over d.
func (s Stagger) Schedule(sched Scheduler, n int, conceal func(i int), reveal func(i int, d time.Duration)) {
	for i, timing := range s.Plan(n) {
		i := i
		sched.AfterFunc(timing.Start, func() {
			if conceal != nil {
				conceal(i)
			}
			sched.AfterFunc(s.Settle, func() {
				if reveal != nil {
					reveal(i, s.Duration)
				}
			})
		})
	}
}
