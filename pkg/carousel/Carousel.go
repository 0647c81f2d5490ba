/*
Package carousel implements the slide rotation used by the hero banner
and the featured photo carousel. A carousel is a small state machine:
it is idle, or it is transitioning to a new slide. A transition waits
out a fixed delay (the fade-out) before committing the new index.
Navigation requested while a transition is in flight is ignored, not
queued.
*/
package carousel

import (
	"sync"
	"time"
)

const (
	DefaultInterval        = 5 * time.Second
	DefaultTransitionDelay = 300 * time.Millisecond
)

type State int

const (
	StateIdle State = iota
	StateTransitioning
)

func (s State) String() string {
	if s == StateTransitioning {
		return "transitioning"
	}

	return "idle"
}

type EventKind int

const (
	// EventTransitionStarted fires when a slide starts fading out. Index
	// is the slide on screen, Target the one coming next.
	EventTransitionStarted EventKind = iota

	// EventSlideChanged fires when the new index is committed.
	EventSlideChanged
)

type Event struct {
	Kind   EventKind
	Index  int
	Target int
}

type Config struct {
	Count           int
	Interval        time.Duration
	TransitionDelay time.Duration
	AutoPlay        bool

	// Optional. Defaults to real timers.
	Scheduler Scheduler

	/*
	 * Called with the carousel lock held, so events arrive in order.
	 * It must not call back into the carousel.
	 */
	OnChange func(Event)
}

type Carousel struct {
	mutex sync.Mutex

	count  int
	index  int
	target int
	state  State

	autoPlay bool
	paused   bool
	stopped  bool

	interval        time.Duration
	transitionDelay time.Duration
	scheduler       Scheduler
	onChange        func(Event)

	tick       Timer
	tickGen    int
	transition Timer
}

func New(config Config) *Carousel {
	result := &Carousel{
		count:           max(config.Count, 0),
		state:           StateIdle,
		autoPlay:        config.AutoPlay,
		interval:        config.Interval,
		transitionDelay: config.TransitionDelay,
		scheduler:       config.Scheduler,
		onChange:        config.OnChange,
	}

	if result.interval <= 0 {
		result.interval = DefaultInterval
	}

	if result.transitionDelay <= 0 {
		result.transitionDelay = DefaultTransitionDelay
	}

	if result.scheduler == nil {
		result.scheduler = RealScheduler{}
	}

	if result.onChange == nil {
		result.onChange = func(Event) {}
	}

	return result
}

/*
Start arms the auto-advance timer. It does nothing when auto play is
off.
*/
func (c *Carousel) Start() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.restartTick()
}

func (c *Carousel) Next() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.canTransition() {
		return false
	}

	return c.begin((c.index + 1) % c.count)
}

func (c *Carousel) Prev() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.canTransition() {
		return false
	}

	return c.begin((c.index - 1 + c.count) % c.count)
}

/*
GoTo moves to a specific slide. Asking for the current slide, or one
out of range, is ignored.
*/
func (c *Carousel) GoTo(index int) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.canTransition() || index == c.index || index < 0 || index >= c.count {
		return false
	}

	return c.begin(index)
}

/*
Pause stops auto-advance, as when a pointer hovers the carousel.
*/
func (c *Carousel) Pause() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.paused = true
	c.stopTick()
}

func (c *Carousel) Resume() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.paused = false
	c.restartTick()
}

/*
SetCount changes the number of slides, for instance when the featured
photo list changes. An index that no longer exists goes back to 0.
*/
func (c *Carousel) SetCount(count int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.count = max(count, 0)

	if c.index >= c.count {
		c.index = 0
	}

	if c.target >= c.count {
		c.target = 0
	}

	c.restartTick()
}

/*
Stop cancels every outstanding timer. A stopped carousel ignores all
further requests.
*/
func (c *Carousel) Stop() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.stopped = true
	c.stopTick()

	if c.transition != nil {
		c.transition.Stop()
		c.transition = nil
	}
}

func (c *Carousel) Index() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.index
}

func (c *Carousel) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.state
}

func (c *Carousel) Count() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.count
}

func (c *Carousel) Paused() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.paused
}

func (c *Carousel) canTransition() bool {
	return !c.stopped && c.count > 0 && c.state == StateIdle
}

func (c *Carousel) begin(target int) bool {
	c.state = StateTransitioning
	c.target = target
	c.transition = c.scheduler.AfterFunc(c.transitionDelay, c.commit)

	c.onChange(Event{Kind: EventTransitionStarted, Index: c.index, Target: target})
	return true
}

func (c *Carousel) commit() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.transition = nil

	if c.stopped || c.state != StateTransitioning {
		return
	}

	c.index = c.target
	c.state = StateIdle

	c.onChange(Event{Kind: EventSlideChanged, Index: c.index, Target: c.index})
	c.restartTick()
}

/*
onTick ignores ticks from a timer that was replaced while it was
already firing.
*/
func (c *Carousel) onTick(gen int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if gen != c.tickGen {
		return
	}

	c.tick = nil

	if !c.canTransition() {
		return
	}

	c.begin((c.index + 1) % c.count)
}

/*
restartTick is called after every commit, so the interval always
counts from the slide the visitor is looking at.
*/
func (c *Carousel) restartTick() {
	c.stopTick()

	if !c.autoPlay || c.paused || c.stopped || c.count == 0 {
		return
	}

	c.tickGen++
	gen := c.tickGen

	c.tick = c.scheduler.AfterFunc(c.interval, func() {
		c.onTick(gen)
	})
}

func (c *Carousel) stopTick() {
	c.tickGen++

	if c.tick != nil {
		c.tick.Stop()
		c.tick = nil
	}
}
