package gallery

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/configuration"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/viewmodels"
	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/adampresley/clickygallery/pkg/services"
)

type GalleryHandlers interface {
	GalleryPage(w http.ResponseWriter, r *http.Request)
}

type GalleryControllerConfig struct {
	Config       *configuration.Config
	PhotoService services.PhotoServicer
	Renderer     rendering.TemplateRenderer
}

type GalleryController struct {
	config       *configuration.Config
	photoService services.PhotoServicer
	renderer     rendering.TemplateRenderer
}

func NewGalleryController(config GalleryControllerConfig) GalleryController {
	return GalleryController{
		config:       config.Config,
		photoService: config.PhotoService,
		renderer:     config.Renderer,
	}
}

/*
GET /gallery?tag=
*/
func (c GalleryController) GalleryPage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		photos []*models.Photo
	)

	pageName := "pages/gallery"

	viewData := viewmodels.GalleryPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx:             httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{},
		},
		Tags:        []string{},
		SelectedTag: strings.TrimSpace(httphelpers.GetFromRequest[string](r, "tag")),
		Photos:      []viewmodels.GalleryPhoto{},
	}

	if photos, err = c.photoService.All(); err != nil {
		slog.Error("error loading photos", "error", err)
		viewData.Message = "Erreur lors du chargement des photos"
		viewData.IsError = true

		c.renderer.Render(pageName, viewData, w)
		return
	}

	viewData.Tags = services.UniqueTags(photos)
	viewData.Photos = viewmodels.NewGalleryPhotos(services.FilterByTag(photos, viewData.SelectedTag), c.config.MapBaseURL)

	c.renderer.Render(pageName, viewData, w)
}
