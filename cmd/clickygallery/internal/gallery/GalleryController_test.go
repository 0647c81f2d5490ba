package gallery

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/configuration"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/viewmodels"
	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/adampresley/clickygallery/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	name string
	data any
}

func (f *fakeRenderer) Render(name string, data any, w io.Writer) {
	f.name = name
	f.data = data
	fmt.Fprint(w, name)
}

type failingStore struct {
	services.PhotoServicer
}

func (failingStore) All() ([]*models.Photo, error) {
	return nil, fmt.Errorf("disk on fire")
}

func newStore(t *testing.T) *services.MemoryPhotoService {
	t.Helper()

	store := services.NewMemoryPhotoService(services.MemoryPhotoServiceConfig{})
	require.NoError(t, store.Restore([]*models.Photo{
		{ID: "1", Title: "Sunset", ImageURL: "/1.jpg", Tags: []string{"landscape", "sunset"}, CreatedAt: time.Now(), Location: &models.Location{Name: "Beach", Latitude: 1, Longitude: 2}},
		{ID: "2", Title: "City", ImageURL: "/2.jpg", Tags: []string{"urban"}, CreatedAt: time.Now()},
		{ID: "3", Title: "Hills", ImageURL: "/3.jpg", Tags: []string{"landscape"}, CreatedAt: time.Now()},
	}))

	return store
}

func TestGalleryShowsAllPhotosAndTags(t *testing.T) {
	renderer := &fakeRenderer{}
	controller := NewGalleryController(GalleryControllerConfig{
		Config:       &configuration.Config{},
		PhotoService: newStore(t),
		Renderer:     renderer,
	})

	controller.GalleryPage(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/gallery", nil))

	assert.Equal(t, "pages/gallery", renderer.name)
	page := renderer.data.(viewmodels.GalleryPage)
	assert.Equal(t, []string{"landscape", "sunset", "urban"}, page.Tags)
	assert.Empty(t, page.SelectedTag)
	require.Len(t, page.Photos, 3)
	assert.Equal(t, "https://www.google.com/maps?q=1,2", page.Photos[0].MapURL)
	assert.Empty(t, page.Photos[1].MapURL)
}

func TestGalleryFiltersByTag(t *testing.T) {
	renderer := &fakeRenderer{}
	controller := NewGalleryController(GalleryControllerConfig{
		Config:       &configuration.Config{},
		PhotoService: newStore(t),
		Renderer:     renderer,
	})

	controller.GalleryPage(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/gallery?tag=landscape", nil))

	page := renderer.data.(viewmodels.GalleryPage)
	assert.Equal(t, "landscape", page.SelectedTag)
	require.Len(t, page.Photos, 2)
	assert.Equal(t, "1", page.Photos[0].ID)
	assert.Equal(t, "3", page.Photos[1].ID)
	assert.Len(t, page.Tags, 3)

	controller.GalleryPage(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/gallery?tag=nothing", nil))

	page = renderer.data.(viewmodels.GalleryPage)
	assert.Empty(t, page.Photos)
}

func TestGalleryLoadFailureRendersEmptyState(t *testing.T) {
	renderer := &fakeRenderer{}
	controller := NewGalleryController(GalleryControllerConfig{
		Config:       &configuration.Config{},
		PhotoService: failingStore{},
		Renderer:     renderer,
	})

	controller.GalleryPage(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/gallery", nil))

	page := renderer.data.(viewmodels.GalleryPage)
	assert.True(t, page.IsError)
	assert.Equal(t, "Erreur lors du chargement des photos", page.Message)
	assert.Empty(t, page.Photos)
}
