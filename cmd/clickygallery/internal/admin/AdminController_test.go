package admin

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/configuration"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/viewmodels"
	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/adampresley/clickygallery/pkg/services"
	"github.com/adampresley/clickygallery/pkg/thumbnail"
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

type countingNotifier struct {
	count int
}

func (n *countingNotifier) PhotosChanged() {
	n.count++
}

type adminFixture struct {
	controller AdminController
	photos     *services.MemoryPhotoService
	uploadDir  string
	uploads    services.UploadStore
	renderer   *fakeRenderer
	notifier   *countingNotifier
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	fixture := &adminFixture{
		photos:    services.NewMemoryPhotoService(services.MemoryPhotoServiceConfig{}),
		uploadDir: t.TempDir(),
		renderer:  &fakeRenderer{},
		notifier:  &countingNotifier{},
	}

	require.NoError(t, fixture.photos.Restore([]*models.Photo{
		{ID: "1", Title: "Sunset", ImageURL: "https://example.com/1.jpg", Tags: []string{"sunset"}, Featured: true, CreatedAt: time.Now()},
		{ID: "2", Title: "Peaks", ImageURL: "https://example.com/2.jpg", CreatedAt: time.Now()},
	}))

	uploads, err := services.NewUploadStore(services.UploadStoreConfig{
		Directory:        fixture.uploadDir,
		ThumbnailCreator: thumbnail.NewJpegCreator(16),
	})
	require.NoError(t, err)

	fixture.uploads = uploads
	fixture.controller = NewAdminController(AdminControllerConfig{
		Config:       &configuration.Config{MaxUploadMB: 1},
		Notifier:     fixture.notifier,
		PhotoService: fixture.photos,
		Renderer:     fixture.renderer,
		UploadStore:  uploads,
	})

	return fixture
}

func (f *adminFixture) page(t *testing.T) viewmodels.AdminPage {
	t.Helper()

	assert.Equal(t, "pages/admin", f.renderer.name)
	page, ok := f.renderer.data.(viewmodels.AdminPage)
	require.True(t, ok)

	return page
}

func (f *adminFixture) post(values url.Values) {
	r := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	f.controller.AdminAction(w, r)
}

func (f *adminFixture) count(t *testing.T) int {
	all, err := f.photos.All()
	require.NoError(t, err)
	return len(all)
}

func TestAdminPageListsPhotos(t *testing.T) {
	fixture := newAdminFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	fixture.controller.AdminPage(httptest.NewRecorder(), r)

	page := fixture.page(t)
	assert.Len(t, page.Photos, 2)
	assert.False(t, page.Form.IsEditing())
	assert.Empty(t, page.Message)
}

func TestAdminPageLoadsPhotoToEdit(t *testing.T) {
	fixture := newAdminFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/admin?edit=1", nil)
	fixture.controller.AdminPage(httptest.NewRecorder(), r)

	page := fixture.page(t)
	assert.Equal(t, "1", page.Form.ID)
	assert.Equal(t, "Sunset", page.Form.Title)
	assert.Equal(t, []string{"sunset"}, page.Form.Tags)

	r = httptest.NewRequest(http.MethodGet, "/admin?edit=nope", nil)
	fixture.controller.AdminPage(httptest.NewRecorder(), r)

	page = fixture.page(t)
	assert.Equal(t, "Photo introuvable", page.Message)
	assert.True(t, page.IsError)
	assert.False(t, page.Form.IsEditing())
}

func TestSaveRequiresTitle(t *testing.T) {
	fixture := newAdminFixture(t)

	fixture.post(url.Values{
		"action":   {"save"},
		"title":    {"  "},
		"imageUrl": {"https://example.com/x.jpg"},
	})

	page := fixture.page(t)
	assert.Equal(t, "Le titre est requis", page.Message)
	assert.True(t, page.IsError)
	assert.Equal(t, 2, fixture.count(t))
	assert.Equal(t, 0, fixture.notifier.count)
}

func TestSaveRequiresImage(t *testing.T) {
	fixture := newAdminFixture(t)

	fixture.post(url.Values{
		"action": {"save"},
		"title":  {"Dunes"},
	})

	page := fixture.page(t)
	assert.Equal(t, "Une image est requise", page.Message)
	assert.Equal(t, "Dunes", page.Form.Title)
	assert.Equal(t, 2, fixture.count(t))
}

func TestSaveCreatesPhoto(t *testing.T) {
	fixture := newAdminFixture(t)

	fixture.post(url.Values{
		"action":       {"save"},
		"title":        {"Dunes"},
		"description":  {"Sand"},
		"imageUrl":     {"https://example.com/d.jpg"},
		"tags":         {"desert", "travel"},
		"featured":     {"on"},
		"hasLocation":  {"true"},
		"locationName": {"Sahara"},
		"latitude":     {"31.79"},
		"longitude":    {"-7.09"},
	})

	page := fixture.page(t)
	assert.Equal(t, "Photo ajoutée avec succès", page.Message)
	assert.False(t, page.IsError)
	assert.Equal(t, viewmodels.PhotoForm{}, page.Form)
	require.Len(t, page.Photos, 3)
	assert.Equal(t, 1, fixture.notifier.count)

	created := page.Photos[2]
	assert.Equal(t, "Dunes", created.Title)
	assert.Equal(t, "https://example.com/d.jpg", created.ThumbnailURL)
	assert.Equal(t, []string{"desert", "travel"}, created.Tags)
	assert.True(t, created.Featured)
	require.NotNil(t, created.Location)
	assert.Equal(t, -7.09, created.Location.Longitude)
}

func TestSaveUpdatesPhoto(t *testing.T) {
	fixture := newAdminFixture(t)

	fixture.post(url.Values{
		"action":   {"save"},
		"id":       {"2"},
		"title":    {"Peaks at dawn"},
		"imageUrl": {"https://example.com/2.jpg"},
	})

	page := fixture.page(t)
	assert.Equal(t, "Photo mise à jour avec succès", page.Message)

	updated, err := fixture.photos.GetPhotoByID("2")
	require.NoError(t, err)
	assert.Equal(t, "Peaks at dawn", updated.Title)
	assert.False(t, updated.Featured)
	assert.Equal(t, 1, fixture.notifier.count)

	fixture.post(url.Values{
		"action":   {"save"},
		"id":       {"gone"},
		"title":    {"x"},
		"imageUrl": {"https://example.com/x.jpg"},
	})

	page = fixture.page(t)
	assert.Equal(t, "Photo introuvable", page.Message)
	assert.Equal(t, 2, fixture.count(t))
}

func TestTagActions(t *testing.T) {
	fixture := newAdminFixture(t)

	fixture.post(url.Values{
		"action":     {"addTag"},
		"title":      {"Draft"},
		"tags":       {"one"},
		"currentTag": {"  Two "},
	})

	page := fixture.page(t)
	assert.Equal(t, []string{"one", "two"}, page.Form.Tags)
	assert.Equal(t, "Draft", page.Form.Title)
	assert.Empty(t, page.Form.CurrentTag)

	fixture.post(url.Values{
		"action":    {"removeTag"},
		"tags":      {"one", "two"},
		"removeTag": {"one"},
	})

	page = fixture.page(t)
	assert.Equal(t, []string{"two"}, page.Form.Tags)
	assert.Equal(t, 2, fixture.count(t))
}

func TestLocationActions(t *testing.T) {
	fixture := newAdminFixture(t)

	fixture.post(url.Values{"action": {"addLocation"}})
	assert.True(t, fixture.page(t).Form.HasLocation)

	fixture.post(url.Values{
		"action":       {"removeLocation"},
		"hasLocation":  {"true"},
		"locationName": {"Rome"},
	})

	page := fixture.page(t)
	assert.False(t, page.Form.HasLocation)
	assert.Empty(t, page.Form.LocationName)
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	require.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, 20, 10)), nil))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, fields map[string]string, fileName string, file []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	if fileName != "" {
		part, err := writer.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	r := httptest.NewRequest(http.MethodPost, "/admin", body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	return r
}

func TestUploadStoresPreview(t *testing.T) {
	fixture := newAdminFixture(t)

	r := multipartRequest(t, map[string]string{"title": "New"}, "photo.jpg", jpegBytes(t))
	fixture.controller.AdminAction(httptest.NewRecorder(), r)

	page := fixture.page(t)
	assert.Empty(t, page.Message)
	assert.NotEmpty(t, page.Form.UploadID)
	assert.Equal(t, "/uploads/"+page.Form.UploadID+".jpg", page.Form.ImageURL)
	assert.Equal(t, "/uploads/"+page.Form.UploadID+"-thumb.jpg", page.Form.ThumbnailURL)
	assert.FileExists(t, filepath.Join(fixture.uploadDir, page.Form.UploadID+".jpg"))
	assert.Equal(t, 2, fixture.count(t))
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	fixture := newAdminFixture(t)

	r := multipartRequest(t, map[string]string{"title": "New"}, "notes.txt", []byte("hello"))
	fixture.controller.AdminAction(httptest.NewRecorder(), r)

	page := fixture.page(t)
	assert.Equal(t, "Format d'image non supporté", page.Message)
	assert.True(t, page.IsError)
}

func TestCancelReleasesPreview(t *testing.T) {
	fixture := newAdminFixture(t)

	r := multipartRequest(t, map[string]string{"title": "New"}, "photo.jpg", jpegBytes(t))
	fixture.controller.AdminAction(httptest.NewRecorder(), r)
	form := fixture.page(t).Form

	fixture.post(url.Values{
		"action":   {"cancel"},
		"title":    {form.Title},
		"imageUrl": {form.ImageURL},
		"uploadId": {form.UploadID},
	})

	page := fixture.page(t)
	assert.Equal(t, viewmodels.PhotoForm{}, page.Form)

	_, err := os.Stat(filepath.Join(fixture.uploadDir, form.UploadID+".jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestStaleFormDoesNotReleaseSavedUpload(t *testing.T) {
	fixture := newAdminFixture(t)

	r := multipartRequest(t, map[string]string{"title": "New"}, "photo.jpg", jpegBytes(t))
	fixture.controller.AdminAction(httptest.NewRecorder(), r)
	form := fixture.page(t).Form

	stale := url.Values{
		"title":        {form.Title},
		"imageUrl":     {form.ImageURL},
		"thumbnailUrl": {form.ThumbnailURL},
		"uploadId":     {form.UploadID},
	}

	stale.Set("action", "save")
	fixture.post(stale)
	assert.Equal(t, "Photo ajoutée avec succès", fixture.page(t).Message)

	for _, action := range []string{"cancel", "removeImage"} {
		stale.Set("action", action)
		fixture.post(stale)

		assert.FileExists(t, filepath.Join(fixture.uploadDir, form.UploadID+".jpg"), action)
		assert.FileExists(t, filepath.Join(fixture.uploadDir, form.UploadID+"-thumb.jpg"), action)
	}

	page := fixture.page(t)
	require.Len(t, page.Photos, 3)
	assert.Equal(t, form.ImageURL, page.Photos[2].ImageURL)
}

func TestSaveWithPreviewKeepsUpload(t *testing.T) {
	fixture := newAdminFixture(t)

	r := multipartRequest(t, map[string]string{"title": "Uploaded", "action": "save"}, "photo.png", jpegBytes(t))
	fixture.controller.AdminAction(httptest.NewRecorder(), r)

	page := fixture.page(t)
	assert.Equal(t, "Photo ajoutée avec succès", page.Message)
	require.Len(t, page.Photos, 3)
	assert.True(t, strings.HasPrefix(page.Photos[2].ImageURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(page.Photos[2].ThumbnailURL, "-thumb.jpg"))
}

func TestDeletePhoto(t *testing.T) {
	fixture := newAdminFixture(t)

	r := httptest.NewRequest(http.MethodPost, "/admin/photos/1/delete", nil)
	r.SetPathValue("id", "1")
	fixture.controller.DeletePhoto(httptest.NewRecorder(), r)

	page := fixture.page(t)
	assert.Equal(t, "Photo supprimée avec succès", page.Message)
	assert.Len(t, page.Photos, 1)
	assert.Equal(t, 1, fixture.notifier.count)

	r = httptest.NewRequest(http.MethodPost, "/admin/photos/1/delete", nil)
	r.SetPathValue("id", "1")
	fixture.controller.DeletePhoto(httptest.NewRecorder(), r)

	page = fixture.page(t)
	assert.Equal(t, "Photo introuvable", page.Message)
	assert.True(t, page.IsError)
	assert.Len(t, page.Photos, 1)
	assert.Equal(t, 1, fixture.notifier.count)
}
