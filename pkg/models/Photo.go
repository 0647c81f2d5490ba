package models

import (
	"time"
)

type Photo struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description,omitempty" yaml:"description"`
	ImageURL     string    `json:"imageUrl" yaml:"imageUrl"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" yaml:"thumbnailUrl"`
	Location     *Location `json:"location,omitempty" yaml:"location"`
	Tags         []string  `json:"tags,omitempty" yaml:"tags"`
	Featured     bool      `json:"featured" yaml:"featured"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`

	/*
	 * SourcePath is the file a photo was imported from. Empty for
	 * photos created in the back-office.
	 */
	SourcePath string `json:"-" yaml:"-"`
}

/*
NewPhoto holds everything needed to create a photo. The store
assigns the ID and creation time.
*/
type NewPhoto struct {
	Title        string
	Description  string
	ImageURL     string
	ThumbnailURL string
	Location     *Location
	Tags         []string
	Featured     bool
	SourcePath   string
}

/*
Clone returns a deep copy of the photo. Stores hand out clones so
callers can't change records behind their back.
*/
func (p *Photo) Clone() *Photo {
	if p == nil {
		return nil
	}

	result := *p

	if p.Location != nil {
		loc := *p.Location
		result.Location = &loc
	}

	if p.Tags != nil {
		result.Tags = append([]string{}, p.Tags...)
	}

	return &result
}

func (p *Photo) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

/*
DisplayThumbnail returns the thumbnail URL, falling back to the full
image when the photo has no thumbnail.
*/
func (p *Photo) DisplayThumbnail() string {
	if p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}

	return p.ImageURL
}

func (n NewPhoto) ToPhoto(id string, createdAt time.Time) *Photo {
	result := &Photo{
		ID:           id,
		Title:        n.Title,
		Description:  n.Description,
		ImageURL:     n.ImageURL,
		ThumbnailURL: n.ThumbnailURL,
		Featured:     n.Featured,
		CreatedAt:    createdAt,
		SourcePath:   n.SourcePath,
	}

	if n.Location != nil {
		loc := *n.Location
		result.Location = &loc
	}

	if len(n.Tags) > 0 {
		result.Tags = append([]string{}, n.Tags...)
	}

	return result
}
