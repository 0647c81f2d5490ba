package viewmodels

import (
	"fmt"
	"strings"

	"github.com/adampresley/clickygallery/pkg/models"
)

var (
	ErrTitleRequired = fmt.Errorf("title is required")
	ErrImageRequired = fmt.Errorf("image is required")
)

/*
PhotoForm is the back-office editing state. It travels with every
post, so tags and the uploaded preview survive each round trip.
*/
type PhotoForm struct {
	ID           string
	Title        string
	Description  string
	ImageURL     string
	ThumbnailURL string

	// UploadID is set while ImageURL points at a preview not yet saved
	UploadID string

	HasLocation  bool
	LocationName string
	Latitude     float64
	Longitude    float64

	Tags       []string
	CurrentTag string
	Featured   bool
}

func NewPhotoFormFromPhoto(photo *models.Photo) PhotoForm {
	result := PhotoForm{
		ID:           photo.ID,
		Title:        photo.Title,
		Description:  photo.Description,
		ImageURL:     photo.ImageURL,
		ThumbnailURL: photo.ThumbnailURL,
		Tags:         append([]string{}, photo.Tags...),
		Featured:     photo.Featured,
	}

	if photo.Location != nil {
		result.HasLocation = true
		result.LocationName = photo.Location.Name
		result.Latitude = photo.Location.Latitude
		result.Longitude = photo.Location.Longitude
	}

	return result
}

func (f PhotoForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}

	if f.ImageURL == "" {
		return ErrImageRequired
	}

	return nil
}

/*
AddTag moves the pending tag into the tag list, trimmed and lowercased.
A blank tag is ignored.
*/
func (f *PhotoForm) AddTag() {
	tag := strings.ToLower(strings.TrimSpace(f.CurrentTag))
	f.CurrentTag = ""

	if tag == "" {
		return
	}

	f.Tags = append(f.Tags, tag)
}

func (f *PhotoForm) RemoveTag(tag string) {
	kept := []string{}

	for _, t := range f.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}

	f.Tags = kept
}

func (f *PhotoForm) AddLocation() {
	f.HasLocation = true
}

func (f *PhotoForm) RemoveLocation() {
	f.HasLocation = false
	f.LocationName = ""
	f.Latitude = 0
	f.Longitude = 0
}

func (f *PhotoForm) RemoveImage() {
	f.ImageURL = ""
	f.ThumbnailURL = ""
	f.UploadID = ""
}

func (f *PhotoForm) Reset() {
	*f = PhotoForm{}
}

func (f PhotoForm) IsEditing() bool {
	return f.ID != ""
}

func (f PhotoForm) Location() *models.Location {
	if !f.HasLocation {
		return nil
	}

	return &models.Location{
		Name:      strings.TrimSpace(f.LocationName),
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
	}
}

/*
ToNewPhoto converts the form into creation input. Without a thumbnail
the full image is used for both.
*/
func (f PhotoForm) ToNewPhoto() models.NewPhoto {
	thumbnailURL := f.ThumbnailURL

	if thumbnailURL == "" {
		thumbnailURL = f.ImageURL
	}

	var tags []string

	if len(f.Tags) > 0 {
		tags = append([]string{}, f.Tags...)
	}

	return models.NewPhoto{
		Title:        strings.TrimSpace(f.Title),
		Description:  strings.TrimSpace(f.Description),
		ImageURL:     f.ImageURL,
		ThumbnailURL: thumbnailURL,
		Location:     f.Location(),
		Tags:         tags,
		Featured:     f.Featured,
	}
}
