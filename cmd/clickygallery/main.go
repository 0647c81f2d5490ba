package main

import (
	"embed"
	"log/slog"
	"net/http"
	"os"

	"github.com/adampresley/adamgokit/cron"
	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/admin"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/configuration"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/gallery"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/home"
	livecontroller "github.com/adampresley/clickygallery/cmd/clickygallery/internal/live"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/media"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/photoview"
	"github.com/adampresley/clickygallery/pkg/importer"
	"github.com/adampresley/clickygallery/pkg/live"
	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/adampresley/clickygallery/pkg/seed"
	"github.com/adampresley/clickygallery/pkg/services"
	"github.com/adampresley/clickygallery/pkg/thumbnail"
	_ "github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/rfberaldo/sqlz"
	"github.com/rfberaldo/sqlz/binds"
)

var (
	Version string = "development"
	appName string = "clickygallery"

	//go:embed app
	appFS embed.FS

	config configuration.Config

	/* Services */
	db               *sqlz.DB
	hub              *live.Hub
	jpegImporter     importer.Importer
	photoService     photoStore
	renderer         rendering.TemplateRenderer
	thumbnailCreator thumbnail.Creator
	uploadStore      services.UploadStorer

	/* Controllers */
	adminController     admin.AdminHandlers
	galleryController   gallery.GalleryHandlers
	homeController      home.HomeHandlers
	liveController      livecontroller.LiveHandlers
	mediaController     media.MediaHandlers
	photoViewController photoview.PhotoViewHandlers
)

/*
photoStore is a photo repository that can be seeded.
*/
type photoStore interface {
	services.PhotoServicer
	seed.PhotoRestorer
}

func main() {
	var (
		err error
	)

	if err = godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("store", config.Store),
	)

	slog.Debug("setting up...")

	/*
	 * Setup services
	 */
	renderer = rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        appFS,
		LayoutsDir:        "layouts",
		ComponentsDir:     "components",
	})

	thumbnailCreator = thumbnail.NewJpegCreator(uint(config.ThumbnailSize))

	if uploadStore, err = services.NewUploadStore(services.UploadStoreConfig{
		Directory:        config.UploadDirectory,
		URLPrefix:        "/uploads/",
		ThumbnailCreator: thumbnailCreator,
	}); err != nil {
		slog.Error("error setting up the upload store. the upload directory is probably incorrect.", "error", err)
		os.Exit(1)
	}

	setupPhotoStore()

	hub = live.NewHub(live.HubConfig{
		Photos:    photoService,
		Interval:  config.CarouselIntervalDuration(),
		HeroCount: live.DefaultHeroCount,
	})

	go hub.Run()

	/*
	 * Setup controllers
	 */
	adminController = admin.NewAdminController(admin.AdminControllerConfig{
		Config:       &config,
		Notifier:     hub,
		PhotoService: photoService,
		Renderer:     renderer,
		UploadStore:  uploadStore,
	})

	galleryController = gallery.NewGalleryController(gallery.GalleryControllerConfig{
		Config:       &config,
		PhotoService: photoService,
		Renderer:     renderer,
	})

	homeController = home.NewHomeController(home.HomeControllerConfig{
		Config:       &config,
		PhotoService: photoService,
		Renderer:     renderer,
	})

	liveController = livecontroller.NewLiveController(livecontroller.LiveControllerConfig{
		Hub: hub,
	})

	mediaController = media.NewMediaController(media.MediaControllerConfig{
		UploadStore: uploadStore,
	})

	photoViewController = photoview.NewPhotoViewController(photoview.PhotoViewControllerConfig{
		Config:       &config,
		PhotoService: photoService,
		Renderer:     renderer,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /", HandlerFunc: homeController.HomePage},
		{Path: "GET /gallery", HandlerFunc: galleryController.GalleryPage},
		{Path: "GET /photo/{id}", HandlerFunc: photoViewController.PhotoPage},
		{Path: "GET /photo/{id}/key", HandlerFunc: photoViewController.KeyNavigation},
		{Path: "GET /admin", HandlerFunc: adminController.AdminPage},
		{Path: "POST /admin", HandlerFunc: adminController.AdminAction},
		{Path: "POST /admin/photos/{id}/delete", HandlerFunc: adminController.DeletePhoto},
		{Path: "GET /uploads/{name}", HandlerFunc: mediaController.ServeUpload},
		{Path: "GET /live", HandlerFunc: liveController.Connect},
	}

	routerConfig := mux.RouterConfig{
		Address:              config.Host,
		Debug:                Version == "development",
		ServeStaticContent:   true,
		StaticContentRootDir: "app",
		StaticContentPrefix:  "/static/",
		StaticFS:             appFS,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Setup the importer and start cron jobs
	 */
	setupImporter()
	cron.Start()

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit
	_ = cron.Stop()
	hub.Shutdown()
	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

/*
setupPhotoStore picks the photo repository and seeds it. A SQLite
store is only seeded while empty, so deleted photos stay deleted.
*/
func setupPhotoStore() {
	var (
		err      error
		existing []*models.Photo
		seeded   int
	)

	if !config.UsesSqlite() {
		photoService = services.NewMemoryPhotoService(services.MemoryPhotoServiceConfig{})
	} else {
		binds.Register("sqlite", binds.BindByDriver("sqlite3"))

		if db, err = sqlz.Connect("sqlite", config.DSN); err != nil {
			panic(err)
		}

		if err = services.MigrateDatabase(db, config.DataMigrationDir); err != nil {
			panic(err)
		}

		photoService = services.NewSqlitePhotoService(services.SqlitePhotoServiceConfig{
			DB: db,
		})
	}

	if existing, err = photoService.All(); err != nil {
		slog.Error("error reading photos before seeding", "error", err)
		os.Exit(1)
	}

	if len(existing) > 0 {
		slog.Info("photo store already populated, skipping seed", "count", len(existing))
		return
	}

	if seeded, err = seed.Seed(photoService, config.SeedFile); err != nil {
		slog.Error("error seeding photos", "error", err, "seedFile", config.SeedFile)
		os.Exit(1)
	}

	slog.Info("photo store seeded", "count", seeded)
}

func setupImporter() {
	if config.ImportDirectory == "" {
		slog.Info("import directory not set, importer disabled")
		return
	}

	jpegImporter = importer.NewJpegImporter(importer.JpegImporterConfig{
		ImportPath:      config.ImportDirectory,
		MaxWorkers:      config.MaxImportWorkers,
		PhotoService:    photoService,
		UploadStore:     uploadStore,
		UploadURLPrefix: "/uploads/",
		OnChange:        hub.PhotosChanged,
	})

	cron.Add(config.ImportSchedule, func() {
		errs, err := jpegImporter.Run()

		if err != nil {
			slog.Error("error running importer", "error", err)
			return
		}

		if len(errs) > 0 {
			slog.Error("errors captured during photo import", "errors", errs)
		}

		slog.Info("photo import completed")
	})
}
