package carousel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventRecorder struct {
	mutex  sync.Mutex
	events []Event
}

func (r *eventRecorder) record(e Event) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.events = append(r.events, e)
}

func (r *eventRecorder) all() []Event {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]Event{}, r.events...)
}

func newTestCarousel(count int, autoPlay bool) (*Carousel, *ManualScheduler, *eventRecorder) {
	s := NewManualScheduler()
	r := &eventRecorder{}

	c := New(Config{
		Count:           count,
		Interval:        5 * time.Second,
		TransitionDelay: 300 * time.Millisecond,
		AutoPlay:        autoPlay,
		Scheduler:       s,
		OnChange:        r.record,
	})

	return c, s, r
}

func TestNextWrapsToFirst(t *testing.T) {
	c, s, _ := newTestCarousel(3, false)

	for _, want := range []int{1, 2, 0} {
		require.True(t, c.Next())
		assert.Equal(t, StateTransitioning, c.State())
		s.Advance(300 * time.Millisecond)
		assert.Equal(t, want, c.Index())
		assert.Equal(t, StateIdle, c.State())
	}
}

func TestPrevWrapsToLast(t *testing.T) {
	c, s, _ := newTestCarousel(4, false)

	require.True(t, c.Prev())
	s.Advance(300 * time.Millisecond)
	assert.Equal(t, 3, c.Index())

	require.True(t, c.Prev())
	s.Advance(300 * time.Millisecond)
	assert.Equal(t, 2, c.Index())
}

func TestIndexDoesNotChangeUntilTransitionCommits(t *testing.T) {
	c, s, _ := newTestCarousel(5, false)

	require.True(t, c.Next())
	s.Advance(299 * time.Millisecond)
	assert.Equal(t, 0, c.Index())

	s.Advance(time.Millisecond)
	assert.Equal(t, 1, c.Index())
}

func TestRequestsDuringTransitionAreIgnored(t *testing.T) {
	c, s, r := newTestCarousel(5, false)

	require.True(t, c.Next())
	assert.False(t, c.Next())
	assert.False(t, c.Next())
	assert.False(t, c.Prev())
	assert.False(t, c.GoTo(3))

	s.Advance(time.Second)
	assert.Equal(t, 1, c.Index(), "only the first request counts")

	assert.Equal(t, []Event{
		{Kind: EventTransitionStarted, Index: 0, Target: 1},
		{Kind: EventSlideChanged, Index: 1, Target: 1},
	}, r.all())
}

func TestGoTo(t *testing.T) {
	c, s, _ := newTestCarousel(4, false)

	assert.False(t, c.GoTo(0), "current slide")
	assert.False(t, c.GoTo(-1))
	assert.False(t, c.GoTo(4))

	require.True(t, c.GoTo(2))
	s.Advance(300 * time.Millisecond)
	assert.Equal(t, 2, c.Index())
}

func TestEmptyCarouselIgnoresEverything(t *testing.T) {
	c, s, r := newTestCarousel(0, true)
	c.Start()

	assert.False(t, c.Next())
	assert.False(t, c.Prev())
	assert.False(t, c.GoTo(0))
	assert.Equal(t, 0, s.Pending())
	assert.Empty(t, r.all())
}

func TestAutoPlayAdvancesOnInterval(t *testing.T) {
	c, s, _ := newTestCarousel(3, true)
	c.Start()

	s.Advance(5 * time.Second)
	assert.Equal(t, StateTransitioning, c.State())

	s.Advance(300 * time.Millisecond)
	assert.Equal(t, 1, c.Index())

	s.Advance(5*time.Second + 300*time.Millisecond)
	assert.Equal(t, 2, c.Index())

	s.Advance(5*time.Second + 300*time.Millisecond)
	assert.Equal(t, 0, c.Index())
}

func TestIntervalRestartsAfterManualNavigation(t *testing.T) {
	c, s, _ := newTestCarousel(3, true)
	c.Start()

	s.Advance(4 * time.Second)
	require.True(t, c.Next())
	s.Advance(300 * time.Millisecond)
	assert.Equal(t, 1, c.Index())

	// The old tick fires during/after the manual move but the interval restarted on commit.
	s.Advance(4 * time.Second)
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, StateIdle, c.State())

	s.Advance(time.Second + 300*time.Millisecond)
	assert.Equal(t, 2, c.Index())
}

func TestPauseAndResume(t *testing.T) {
	c, s, _ := newTestCarousel(3, true)
	c.Start()

	c.Pause()
	assert.True(t, c.Paused())

	s.Advance(time.Minute)
	assert.Equal(t, 0, c.Index())

	c.Resume()
	assert.False(t, c.Paused())

	s.Advance(5*time.Second + 300*time.Millisecond)
	assert.Equal(t, 1, c.Index())
}

func TestManualNavigationWhilePausedDoesNotRestartAutoPlay(t *testing.T) {
	c, s, _ := newTestCarousel(3, true)
	c.Start()
	c.Pause()

	require.True(t, c.Next())
	s.Advance(300 * time.Millisecond)
	assert.Equal(t, 1, c.Index())

	s.Advance(time.Minute)
	assert.Equal(t, 1, c.Index())
}

func TestStopCancelsTimers(t *testing.T) {
	c, s, r := newTestCarousel(3, true)
	c.Start()

	require.True(t, c.Next())
	c.Stop()

	assert.Equal(t, 0, s.Pending())

	s.Advance(time.Minute)
	assert.Equal(t, 0, c.Index())
	assert.False(t, c.Next())
	assert.Len(t, r.all(), 1)
}

func TestSetCountClampsIndex(t *testing.T) {
	c, s, _ := newTestCarousel(5, false)

	require.True(t, c.GoTo(4))
	s.Advance(300 * time.Millisecond)
	require.Equal(t, 4, c.Index())

	c.SetCount(2)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 2, c.Count())

	c.SetCount(0)
	assert.False(t, c.Next())
}

func TestSetCountDuringTransitionClampsTarget(t *testing.T) {
	c, s, _ := newTestCarousel(5, false)

	require.True(t, c.GoTo(4))
	c.SetCount(3)
	s.Advance(300 * time.Millisecond)

	assert.Equal(t, 0, c.Index())
	assert.Equal(t, StateIdle, c.State())
}

func TestRealSchedulerCommits(t *testing.T) {
	done := make(chan Event, 4)

	c := New(Config{
		Count:           2,
		TransitionDelay: 5 * time.Millisecond,
		OnChange: func(e Event) {
			done <- e
		},
	})
	defer c.Stop()

	require.True(t, c.Next())

	assert.Equal(t, EventTransitionStarted, (<-done).Kind)

	select {
	case e := <-done:
		assert.Equal(t, EventSlideChanged, e.Kind)
		assert.Equal(t, 1, e.Index)
	case <-time.After(2 * time.Second):
		t.Fatal("transition never committed")
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "transitioning", StateTransitioning.String())
}
