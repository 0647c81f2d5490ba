package live

import (
	"github.com/adampresley/clickygallery/pkg/models"
)

/*
Message is one JSON frame on the live channel, in either direction.
*/
type Message struct {
	Type   string          `json:"type"`
	Index  int             `json:"index"`
	Photos []*models.Photo `json:"photos,omitempty"`
}

// Sent by the browser
const (
	MSG_HERO_GOTO       = "hero.goto"
	MSG_CAROUSEL_NEXT   = "carousel.next"
	MSG_CAROUSEL_PREV   = "carousel.prev"
	MSG_CAROUSEL_GOTO   = "carousel.goto"
	MSG_CAROUSEL_PAUSE  = "carousel.pause"
	MSG_CAROUSEL_RESUME = "carousel.resume"
)

// Sent by the server
const (
	MSG_HERO_TRANSITION     = "hero.transition"
	MSG_HERO_SLIDE          = "hero.slide"
	MSG_CAROUSEL_TRANSITION = "carousel.transition"
	MSG_CAROUSEL_SLIDE      = "carousel.slide"
	MSG_CAROUSEL_PHOTOS     = "carousel.photos"
)

// Broadcast inside the hub
const (
	MSG_PHOTOS_CHANGED = "photos.changed"
)
