package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced clock. Callbacks run synchronously inside
// Advance, in deadline order.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock *Fake
	at    time.Time
	seq   int
	fn    func()
	done  bool
}

// NewFake returns a fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc schedules fn to run once the clock passes now+d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{clock: f, at: f.now.Add(d), seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// Inline reports true: callbacks run inside Advance.
func (*Fake) Inline() bool {
	return true
}

// Pending returns the number of timers that have not fired or been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers along the way.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()
	for {
		t := f.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
	}
	f.mu.Lock()
	f.now = target
	f.mu.Unlock()
}

// nextDue pops the earliest timer due at or before target and moves the clock to it.
func (f *Fake) nextDue(target time.Time) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()
	live := f.timers[:0]
	for _, t := range f.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	f.timers = live
	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].at.Equal(f.timers[j].at) {
			return f.timers[i].seq < f.timers[j].seq
		}
		return f.timers[i].at.Before(f.timers[j].at)
	})
	if len(f.timers) == 0 || f.timers[0].at.After(target) {
		return nil
	}
	t := f.timers[0]
	t.done = true
	if t.at.After(f.now) {
		f.now = t.at
	}
	return t
}

// Stop cancels the timer; it reports whether the timer was still pending.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}
