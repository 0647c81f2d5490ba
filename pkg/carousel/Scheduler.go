package carousel

import (
	"sort"
	"sync"
	"time"
)

type Timer interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

/*
ManualScheduler runs timers only when Advance moves its clock forward.
Timer callbacks run on the goroutine calling Advance.
*/
type ManualScheduler struct {
	mutex  sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	scheduler *ManualScheduler
	at        time.Duration
	seq       int
	f         func()
	done      bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.seq++

	t := &manualTimer{
		scheduler: s,
		at:        s.now + d,
		seq:       s.seq,
		f:         f,
	}

	s.timers = append(s.timers, t)
	return t
}

/*
Advance moves the clock forward by d, firing due timers in order.
Timers scheduled by callbacks fire too if they fall within d.
*/
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mutex.Lock()
	deadline := s.now + d
	s.mutex.Unlock()

	for {
		s.mutex.Lock()
		next := s.nextDue(deadline)

		if next == nil {
			s.now = deadline
			s.mutex.Unlock()
			return
		}

		s.now = next.at
		next.done = true
		s.mutex.Unlock()

		next.f()
	}
}

/*
Pending returns how many timers are armed and not yet fired.
*/
func (s *ManualScheduler) Pending() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	count := 0

	for _, t := range s.timers {
		if !t.done {
			count++
		}
	}

	return count
}

func (s *ManualScheduler) nextDue(deadline time.Duration) *manualTimer {
	pending := []*manualTimer{}

	for _, t := range s.timers {
		if !t.done && t.at <= deadline {
			pending = append(pending, t)
		}
	}

	if len(pending) == 0 {
		s.compact()
		return nil
	}

	sort.Slice(pending, func(i, j int) bool {
		if pending[i].at == pending[j].at {
			return pending[i].seq < pending[j].seq
		}

		return pending[i].at < pending[j].at
	})

	return pending[0]
}

func (s *ManualScheduler) compact() {
	live := s.timers[:0]

	for _, t := range s.timers {
		if !t.done {
			live = append(live, t)
		}
	}

	s.timers = live
}

func (t *manualTimer) Stop() bool {
	t.scheduler.mutex.Lock()
	defer t.scheduler.mutex.Unlock()

	if t.done {
		return false
	}

	t.done = true
	return true
}
