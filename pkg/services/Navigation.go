package services

import "github.com/adampresley/clickygallery/pkg/models"

/*
Neighbors returns the IDs of the photos before and after id in photos.
There is no wraparound: the first photo has no previous and the last
has no next. Both are empty when id isn't in the list.
*/
func Neighbors(photos []*models.Photo, id string) (prev, next string) {
	index := -1

	for i, p := range photos {
		if p.ID == id {
			index = i
			break
		}
	}

	if index == -1 {
		return "", ""
	}

	if index > 0 {
		prev = photos[index-1].ID
	}

	if index < len(photos)-1 {
		next = photos[index+1].ID
	}

	return prev, next
}
