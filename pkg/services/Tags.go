package services

import (
	"github.com/adampresley/clickygallery/pkg/models"
)

/*
UniqueTags returns every distinct tag used by photos, in order of
first appearance.
*/
func UniqueTags(photos []*models.Photo) []string {
	seen := map[string]struct{}{}
	result := []string{}

	for _, p := range photos {
		for _, tag := range p.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}

			seen[tag] = struct{}{}
			result = append(result, tag)
		}
	}

	return result
}

/*
FilterByTag returns the photos carrying tag. An empty tag means "all"
and returns photos unchanged.
*/
func FilterByTag(photos []*models.Photo, tag string) []*models.Photo {
	if tag == "" {
		return photos
	}

	result := []*models.Photo{}

	for _, p := range photos {
		if p.HasTag(tag) {
			result = append(result, p)
		}
	}

	return result
}
