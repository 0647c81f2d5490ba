package photoview

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/configuration"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/viewmodels"
	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/adampresley/clickygallery/pkg/services"
)

const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEscape     = "Escape"

	defaultCloseURL = "/gallery"
)

type PhotoViewHandlers interface {
	PhotoPage(w http.ResponseWriter, r *http.Request)
	KeyNavigation(w http.ResponseWriter, r *http.Request)
}

type PhotoViewControllerConfig struct {
	Config       *configuration.Config
	PhotoService services.PhotoServicer
	Renderer     rendering.TemplateRenderer
}

type PhotoViewController struct {
	config       *configuration.Config
	photoService services.PhotoServicer
	renderer     rendering.TemplateRenderer
}

func NewPhotoViewController(config PhotoViewControllerConfig) PhotoViewController {
	return PhotoViewController{
		config:       config.Config,
		photoService: config.PhotoService,
		renderer:     config.Renderer,
	}
}

/*
GET /photo/{id}
*/
func (c PhotoViewController) PhotoPage(w http.ResponseWriter, r *http.Request) {
	var (
		err   error
		photo *models.Photo
	)

	pageName := "pages/photo"
	id := httphelpers.GetFromRequest[string](r, "id")
	from := closeURL(httphelpers.GetFromRequest[string](r, "from"))

	viewData := viewmodels.PhotoPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Src: "/static/js/pages/photo.js", Type: "module"},
			},
		},
		CloseURL: from,
	}

	if photo, err = c.photoService.GetPhotoByID(id); err != nil {
		slog.Error("error retrieving photo", "error", err, "id", id)
		viewData.Message = "Erreur lors du chargement des photos"
		viewData.IsError = true

		c.renderer.Render(pageName, viewData, w)
		return
	}

	if photo == nil {
		http.Redirect(w, r, defaultCloseURL, http.StatusFound)
		return
	}

	viewData.Photo = photo

	if photo.Location != nil {
		viewData.MapURL = photo.Location.MapURL(c.config.MapBaseURL)
	}

	prev, next, err := c.neighbors(id)

	if err != nil {
		slog.Error("error loading photos for navigation", "error", err, "id", id)
	}

	viewData.PrevURL = photoURL(prev, from)
	viewData.NextURL = photoURL(next, from)

	c.renderer.Render(pageName, viewData, w)
}

/*
GET /photo/{id}/key?key=
Arrow keys move to the neighbouring photo and do nothing at either end
of the collection. Escape closes the viewer.
*/
func (c PhotoViewController) KeyNavigation(w http.ResponseWriter, r *http.Request) {
	var (
		err   error
		photo *models.Photo
	)

	id := httphelpers.GetFromRequest[string](r, "id")
	key := httphelpers.GetFromRequest[string](r, "key")
	from := closeURL(httphelpers.GetFromRequest[string](r, "from"))

	if key == KeyEscape {
		http.Redirect(w, r, from, http.StatusFound)
		return
	}

	if key != KeyArrowLeft && key != KeyArrowRight {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if photo, err = c.photoService.GetPhotoByID(id); err != nil {
		slog.Error("error retrieving photo", "error", err, "id", id)
		http.Error(w, "Error retrieving photo", http.StatusInternalServerError)
		return
	}

	if photo == nil {
		http.Redirect(w, r, defaultCloseURL, http.StatusFound)
		return
	}

	prev, next, err := c.neighbors(id)

	if err != nil {
		slog.Error("error loading photos for navigation", "error", err, "id", id)
		http.Error(w, "Error retrieving photos", http.StatusInternalServerError)
		return
	}

	target := next

	if key == KeyArrowLeft {
		target = prev
	}

	if target == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Redirect(w, r, photoURL(target, from), http.StatusFound)
}

func (c PhotoViewController) neighbors(id string) (string, string, error) {
	photos, err := c.photoService.All()
	if err != nil {
		return "", "", err
	}

	prev, next := services.Neighbors(photos, id)
	return prev, next, nil
}

/*
closeURL only accepts local paths, so the viewer can never close onto
another site.
*/
func closeURL(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.HasPrefix(from, "/\\") {
		return defaultCloseURL
	}

	return from
}

func photoURL(id, from string) string {
	if id == "" {
		return ""
	}

	result := "/photo/" + url.PathEscape(id)

	if from != defaultCloseURL {
		result += "?from=" + url.QueryEscape(from)
	}

	return result
}
