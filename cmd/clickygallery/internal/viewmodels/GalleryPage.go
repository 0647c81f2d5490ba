package viewmodels

import "github.com/adampresley/clickygallery/pkg/models"

type GalleryPage struct {
	BaseViewModel
	Tags        []string
	SelectedTag string
	Photos      []GalleryPhoto
}

type GalleryPhoto struct {
	*models.Photo
	MapURL string
}

func NewGalleryPhotos(photos []*models.Photo, mapBaseURL string) []GalleryPhoto {
	result := make([]GalleryPhoto, 0, len(photos))

	for _, p := range photos {
		item := GalleryPhoto{Photo: p}

		if p.Location != nil {
			item.MapURL = p.Location.MapURL(mapBaseURL)
		}

		result = append(result, item)
	}

	return result
}
