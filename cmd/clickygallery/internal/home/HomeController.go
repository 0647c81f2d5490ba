package home

import (
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/configuration"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/viewmodels"
	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/adampresley/clickygallery/pkg/services"
)

type HomeHandlers interface {
	HomePage(w http.ResponseWriter, r *http.Request)
}

type HomeControllerConfig struct {
	Config       *configuration.Config
	PhotoService services.PhotoServicer
	Renderer     rendering.TemplateRenderer
}

type HomeController struct {
	config       *configuration.Config
	photoService services.PhotoServicer
	renderer     rendering.TemplateRenderer
}

func NewHomeController(config HomeControllerConfig) HomeController {
	return HomeController{
		config:       config.Config,
		photoService: config.PhotoService,
		renderer:     config.Renderer,
	}
}

/*
GET /
*/
func (c HomeController) HomePage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		photos []*models.Photo
	)

	/*
	 * "GET /" catches every unmatched path, including metadata
	 * queries like "/.well-known".
	 */
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	pageName := "pages/home"

	viewData := viewmodels.HomePage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Src: "/static/js/pages/home.js", Type: "module"},
			},
		},
		Hero:     viewmodels.DefaultHeroSlides,
		Featured: []*models.Photo{},
	}

	if photos, err = c.photoService.Featured(); err != nil {
		slog.Error("error loading featured photos", "error", err)
		viewData.Message = "Erreur lors du chargement des photos"
		viewData.IsError = true

		c.renderer.Render(pageName, viewData, w)
		return
	}

	viewData.Featured = photos
	c.renderer.Render(pageName, viewData, w)
}
