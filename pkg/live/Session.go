package live

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/adampresley/clickygallery/pkg/carousel"
	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/goccy/go-json"
)

const (
	DefaultHeroCount                = 3
	HeroTransitionDelay             = 500 * time.Millisecond
	FeaturedCarouselTransitionDelay = 300 * time.Millisecond
)

var (
	ErrUnknownMessage = fmt.Errorf("unknown message type")
)

type FeaturedLister interface {
	Featured() ([]*models.Photo, error)
}

type SessionConfig struct {
	Photos    FeaturedLister
	Interval  time.Duration
	HeroCount int

	// Optional. Defaults to real timers.
	Scheduler carousel.Scheduler

	/*
	 * Called from carousel callbacks with the carousel lock held. It
	 * must not block.
	 */
	Send func(Message)
}

/*
Session is the homepage state of one visitor: the hero banner and the
featured photo carousel. Both rotate on the server and every change
is pushed to the browser.
*/
type Session struct {
	photos   FeaturedLister
	send     func(Message)
	hero     *carousel.Carousel
	featured *carousel.Carousel
}

func NewSession(config SessionConfig) *Session {
	result := &Session{
		photos: config.Photos,
		send:   config.Send,
	}

	if result.send == nil {
		result.send = func(Message) {}
	}

	heroCount := config.HeroCount

	if heroCount <= 0 {
		heroCount = DefaultHeroCount
	}

	result.hero = carousel.New(carousel.Config{
		Count:           heroCount,
		Interval:        config.Interval,
		TransitionDelay: HeroTransitionDelay,
		AutoPlay:        true,
		Scheduler:       config.Scheduler,
		OnChange:        result.forward(MSG_HERO_TRANSITION, MSG_HERO_SLIDE),
	})

	result.featured = carousel.New(carousel.Config{
		Interval:        config.Interval,
		TransitionDelay: FeaturedCarouselTransitionDelay,
		AutoPlay:        true,
		Scheduler:       config.Scheduler,
		OnChange:        result.forward(MSG_CAROUSEL_TRANSITION, MSG_CAROUSEL_SLIDE),
	})

	return result
}

/*
Start sends the featured photos and starts both carousels. The hero
rotates even when loading the photos fails.
*/
func (s *Session) Start() error {
	err := s.ReloadPhotos()

	s.hero.Start()
	s.featured.Start()

	return err
}

/*
ReloadPhotos refreshes the featured carousel after photos were added,
edited or deleted.
*/
func (s *Session) ReloadPhotos() error {
	var (
		err    error
		photos []*models.Photo
	)

	if photos, err = s.photos.Featured(); err != nil {
		return fmt.Errorf("error loading featured photos: %w", err)
	}

	s.featured.SetCount(len(photos))

	s.send(Message{
		Type:   MSG_CAROUSEL_PHOTOS,
		Index:  s.featured.Index(),
		Photos: photos,
	})

	return nil
}

/*
Handle applies one message from the browser. Navigation arriving
during a transition is ignored.
*/
func (s *Session) Handle(raw []byte) error {
	var (
		err error
		msg Message
	)

	if err = json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("invalid message format: %w", err)
	}

	switch msg.Type {
	case MSG_HERO_GOTO:
		s.hero.GoTo(msg.Index)

	case MSG_CAROUSEL_NEXT:
		s.featured.Next()

	case MSG_CAROUSEL_PREV:
		s.featured.Prev()

	case MSG_CAROUSEL_GOTO:
		s.featured.GoTo(msg.Index)

	case MSG_CAROUSEL_PAUSE:
		s.featured.Pause()

	case MSG_CAROUSEL_RESUME:
		s.featured.Resume()

	default:
		return fmt.Errorf("%w: %s", ErrUnknownMessage, msg.Type)
	}

	slog.Debug("handled live message", "type", msg.Type, "index", msg.Index)
	return nil
}

/*
Close stops both carousels. Nothing is sent afterwards.
*/
func (s *Session) Close() {
	s.hero.Stop()
	s.featured.Stop()
}

func (s *Session) forward(transitionType, slideType string) func(carousel.Event) {
	return func(e carousel.Event) {
		if e.Kind == carousel.EventTransitionStarted {
			s.send(Message{Type: transitionType, Index: e.Target})
			return
		}

		s.send(Message{Type: slideType, Index: e.Index})
	}
}
