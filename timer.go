package drift

import "time"

// minInterval is the smallest repeat interval a Scheduler accepts.
const minInterval = time.Millisecond

// Timer is a pending callback owned by a Scheduler. A one-shot timer fires
// at most once; a repeating timer fires until stopped.
type Timer struct {
	fireAt   time.Duration
	interval time.Duration // zero for one-shot
	seq      uint64
	fn       func()
	fired    bool
	stopped  bool
}

// FireAt returns the scheduler time at which the timer is next due.
func (t *Timer) FireAt() time.Duration { return t.fireAt }

// Fired reports whether the timer has fired at least once.
func (t *Timer) Fired() bool { return t.fired }

// Stopped reports whether Stop was called (or a one-shot timer completed).
func (t *Timer) Stopped() bool { return t.stopped }

// Stop cancels the timer. It reports whether the timer was still pending.
// Safe to call from inside the timer's own callback.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Scheduler is a virtual-time timer queue. Time only moves when Advance is
// called, normally once per frame from the owner's Update. Each component
// owns its own Scheduler; there is no global timer registry.
//
// Scheduler is not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers []*Timer
}

// Now returns the scheduler's current virtual time.
func (s *Scheduler) Now() time.Duration { return s.now }

// After schedules fn to run once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	return s.add(&Timer{fireAt: s.now + d, fn: fn})
}

// Every schedules fn to run every d, first at now+d. Intervals below one
// millisecond are clamped.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d < minInterval {
		d = minInterval
	}
	return s.add(&Timer{fireAt: s.now + d, interval: d, fn: fn})
}

func (s *Scheduler) add(t *Timer) *Timer {
	s.seq++
	t.seq = s.seq
	s.timers = append(s.timers, t)
	return t
}

// Pending returns the number of timers that have not been stopped.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// StopAll cancels every pending timer.
func (s *Scheduler) StopAll() {
	for _, t := range s.timers {
		t.stopped = true
	}
	s.timers = s.timers[:0]
}

// Advance moves virtual time forward by dt and fires every timer that comes
// due, in (fireAt, creation) order. A repeating timer fires once per elapsed
// interval. Timers created by callbacks during Advance fire in the same call
// if they fall due before the new time.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	end := s.now + dt
	for {
		t := s.next(end)
		if t == nil {
			break
		}
		if t.fireAt > s.now {
			s.now = t.fireAt
		}
		t.fired = true
		if t.interval > 0 {
			t.fireAt += t.interval
		} else {
			t.stopped = true
		}
		if t.fn != nil {
			t.fn()
		}
	}
	s.now = end
	s.compact()
}

// next returns the earliest live timer due at or before end, or nil.
func (s *Scheduler) next(end time.Duration) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.stopped || t.fireAt > end {
			continue
		}
		if best == nil || t.fireAt < best.fireAt ||
			(t.fireAt == best.fireAt && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// compact drops stopped timers, reusing the backing array.
func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

// frameDelta converts a tick rate into the fixed per-frame duration used by
// Stage.Update.
func frameDelta(tps int) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Second / time.Duration(tps)
}

// seconds converts a duration to float seconds for gween, which works in
// float32 seconds.
func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
