package services

import (
	"testing"

	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/stretchr/testify/assert"
)

func photoList(idList ...string) []*models.Photo {
	result := []*models.Photo{}

	for _, id := range idList {
		result = append(result, &models.Photo{ID: id})
	}

	return result
}

func TestNeighbors(t *testing.T) {
	photos := photoList("a", "b", "c", "d")

	tests := []struct {
		name     string
		id       string
		wantPrev string
		wantNext string
	}{
		{name: "first has no previous", id: "a", wantPrev: "", wantNext: "b"},
		{name: "middle has both", id: "b", wantPrev: "a", wantNext: "c"},
		{name: "middle has both again", id: "c", wantPrev: "b", wantNext: "d"},
		{name: "last has no next", id: "d", wantPrev: "c", wantNext: ""},
		{name: "unknown id has neither", id: "z", wantPrev: "", wantNext: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, next := Neighbors(photos, tt.id)
			assert.Equal(t, tt.wantPrev, prev)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

func TestNeighborsSinglePhoto(t *testing.T) {
	prev, next := Neighbors(photoList("only"), "only")
	assert.Empty(t, prev)
	assert.Empty(t, next)
}
