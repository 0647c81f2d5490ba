package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/configuration"
	"github.com/adampresley/clickygallery/cmd/clickygallery/internal/viewmodels"
	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/adampresley/clickygallery/pkg/services"
)

const (
	actionAddTag         = "addTag"
	actionRemoveTag      = "removeTag"
	actionAddLocation    = "addLocation"
	actionRemoveLocation = "removeLocation"
	actionRemoveImage    = "removeImage"
	actionSave           = "save"
	actionCancel         = "cancel"
)

var validationMessages = map[error]string{
	viewmodels.ErrTitleRequired: "Le titre est requis",
	viewmodels.ErrImageRequired: "Une image est requise",
}

type AdminHandlers interface {
	AdminPage(w http.ResponseWriter, r *http.Request)
	AdminAction(w http.ResponseWriter, r *http.Request)
	DeletePhoto(w http.ResponseWriter, r *http.Request)
}

/*
PhotoChangeNotifier is told whenever the collection changes, so live
homepages can reload their featured carousel.
*/
type PhotoChangeNotifier interface {
	PhotosChanged()
}

type AdminControllerConfig struct {
	Config       *configuration.Config
	Notifier     PhotoChangeNotifier
	PhotoService services.PhotoServicer
	Renderer     rendering.TemplateRenderer
	UploadStore  services.UploadStorer
}

type AdminController struct {
	config       *configuration.Config
	notifier     PhotoChangeNotifier
	photoService services.PhotoServicer
	renderer     rendering.TemplateRenderer
	uploadStore  services.UploadStorer
}

func NewAdminController(config AdminControllerConfig) AdminController {
	return AdminController{
		config:       config.Config,
		notifier:     config.Notifier,
		photoService: config.PhotoService,
		renderer:     config.Renderer,
		uploadStore:  config.UploadStore,
	}
}

/*
GET /admin
GET /admin?edit={id}
*/
func (c AdminController) AdminPage(w http.ResponseWriter, r *http.Request) {
	var (
		err   error
		photo *models.Photo
	)

	viewData := c.newViewData(r)
	editID := httphelpers.GetFromRequest[string](r, "edit")

	if editID != "" {
		if photo, err = c.photoService.GetPhotoByID(editID); err != nil {
			slog.Error("error retrieving photo to edit", "error", err, "id", editID)
			viewData.Message = "Erreur lors du chargement des photos"
			viewData.IsError = true
		} else if photo == nil {
			viewData.Message = "Photo introuvable"
			viewData.IsError = true
		} else {
			viewData.Form = viewmodels.NewPhotoFormFromPhoto(photo)
		}
	}

	c.render(w, viewData)
}

/*
POST /admin
*/
func (c AdminController) AdminAction(w http.ResponseWriter, r *http.Request) {
	var (
		err error
	)

	viewData := c.newViewData(r)
	r.Body = http.MaxBytesReader(w, r.Body, c.config.MaxUploadBytes()+(1<<20))

	if err = r.ParseMultipartForm(c.config.MaxUploadBytes()); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		slog.Error("error parsing admin form", "error", err)
		viewData.Message = "Erreur lors du téléversement de l'image"
		viewData.IsError = true

		c.render(w, viewData)
		return
	}

	viewData.Form = photoFormFromRequest(r)

	if err = c.receiveUpload(r, &viewData.Form); err != nil {
		slog.Error("error storing uploaded image", "error", err)
		viewData.Message = "Erreur lors du téléversement de l'image"
		viewData.IsError = true

		if errors.Is(err, services.ErrUnsupportedImage) {
			viewData.Message = "Format d'image non supporté"
		}

		c.render(w, viewData)
		return
	}

	switch r.FormValue("action") {
	case actionAddTag:
		viewData.Form.AddTag()

	case actionRemoveTag:
		viewData.Form.RemoveTag(r.FormValue("removeTag"))

	case actionAddLocation:
		viewData.Form.AddLocation()

	case actionRemoveLocation:
		viewData.Form.RemoveLocation()

	case actionRemoveImage:
		c.releasePreview(viewData.Form)
		viewData.Form.RemoveImage()

	case actionCancel:
		c.releasePreview(viewData.Form)
		viewData.Form.Reset()

	case actionSave:
		c.save(&viewData)
	}

	c.render(w, viewData)
}

/*
POST /admin/photos/{id}/delete
*/
func (c AdminController) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	var (
		err     error
		photo   *models.Photo
		deleted bool
	)

	viewData := c.newViewData(r)
	id := httphelpers.GetFromRequest[string](r, "id")

	if photo, err = c.photoService.GetPhotoByID(id); err != nil {
		slog.Error("error retrieving photo to delete", "error", err, "id", id)
		viewData.Message = "Erreur lors de la suppression de la photo"
		viewData.IsError = true

		c.render(w, viewData)
		return
	}

	if deleted, err = c.photoService.Delete(id); err != nil {
		slog.Error("error deleting photo", "error", err, "id", id)
		viewData.Message = "Erreur lors de la suppression de la photo"
		viewData.IsError = true

		c.render(w, viewData)
		return
	}

	if !deleted {
		viewData.Message = "Photo introuvable"
		viewData.IsError = true

		c.render(w, viewData)
		return
	}

	if photo != nil {
		c.releaseImage(photo.ImageURL)
	}

	c.photosChanged()

	slog.Info("photo deleted", "id", id)
	viewData.Message = "Photo supprimée avec succès"
	c.render(w, viewData)
}

func (c AdminController) save(viewData *viewmodels.AdminPage) {
	var (
		err      error
		existing *models.Photo
		saved    *models.Photo
	)

	if err = viewData.Form.Validate(); err != nil {
		viewData.Message = validationMessages[err]
		viewData.IsError = true
		return
	}

	newPhoto := viewData.Form.ToNewPhoto()

	if !viewData.Form.IsEditing() {
		if saved, err = c.photoService.Create(newPhoto); err != nil {
			slog.Error("error creating photo", "error", err)
			viewData.Message = "Erreur lors de l'enregistrement de la photo"
			viewData.IsError = true
			return
		}

		slog.Info("photo created", "id", saved.ID)
		viewData.Message = "Photo ajoutée avec succès"
		viewData.Form.Reset()
		c.photosChanged()
		return
	}

	if existing, err = c.photoService.GetPhotoByID(viewData.Form.ID); err != nil {
		slog.Error("error retrieving photo to update", "error", err, "id", viewData.Form.ID)
		viewData.Message = "Erreur lors de l'enregistrement de la photo"
		viewData.IsError = true
		return
	}

	if existing == nil {
		viewData.Message = "Photo introuvable"
		viewData.IsError = true
		return
	}

	if saved, err = c.photoService.Update(viewData.Form.ID, models.FullUpdate(newPhoto)); err != nil {
		slog.Error("error updating photo", "error", err, "id", viewData.Form.ID)
		viewData.Message = "Erreur lors de l'enregistrement de la photo"
		viewData.IsError = true
		return
	}

	if saved == nil {
		viewData.Message = "Photo introuvable"
		viewData.IsError = true
		return
	}

	if existing.ImageURL != saved.ImageURL {
		c.releaseImage(existing.ImageURL)
	}

	slog.Info("photo updated", "id", saved.ID)
	viewData.Message = "Photo mise à jour avec succès"
	viewData.Form.Reset()
	c.photosChanged()
}

/*
receiveUpload stores a posted image as a preview and points the form
at it. A previous unsaved preview is released.
*/
func (c AdminController) receiveUpload(r *http.Request, form *viewmodels.PhotoForm) error {
	var (
		err    error
		file   multipart.File
		header *multipart.FileHeader
		upload *models.Upload
	)

	if file, header, err = r.FormFile("image"); err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil
		}

		return err
	}

	defer file.Close()

	if upload, err = c.uploadStore.Save(file, header.Filename); err != nil {
		return err
	}

	c.releasePreview(*form)

	form.ImageURL = upload.ImageURL
	form.ThumbnailURL = upload.ThumbnailURL
	form.UploadID = upload.ID

	return nil
}

/*
releasePreview removes an unsaved preview upload. A resubmitted stale
form can name an upload that a saved photo now uses, so those are kept.
*/
func (c AdminController) releasePreview(form viewmodels.PhotoForm) {
	if form.UploadID == "" {
		return
	}

	inUse, err := c.uploadInUse(form.UploadID)

	if err != nil {
		slog.Error("error checking whether upload is in use", "error", err, "id", form.UploadID)
		return
	}

	if inUse {
		slog.Debug("upload belongs to a saved photo, keeping it", "id", form.UploadID)
		return
	}

	if err := c.uploadStore.Release(form.UploadID); err != nil && !errors.Is(err, services.ErrUploadNotFound) {
		slog.Error("error releasing preview upload", "error", err, "id", form.UploadID)
	}
}

func (c AdminController) uploadInUse(uploadID string) (bool, error) {
	photos, err := c.photoService.All()
	if err != nil {
		return false, fmt.Errorf("error loading photos: %w", err)
	}

	found := slices.Find(photos, func(p *models.Photo) bool {
		id, ok := services.UploadIDFromURL("", p.ImageURL)
		return ok && id == uploadID
	})

	return found != nil, nil
}

func (c AdminController) releaseImage(imageURL string) {
	if uploadID, ok := services.UploadIDFromURL("", imageURL); ok {
		c.releasePreview(viewmodels.PhotoForm{UploadID: uploadID})
	}
}

func (c AdminController) photosChanged() {
	if c.notifier != nil {
		c.notifier.PhotosChanged()
	}
}

func (c AdminController) newViewData(r *http.Request) viewmodels.AdminPage {
	return viewmodels.AdminPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Src: "/static/js/pages/admin.js", Type: "module"},
			},
		},
		Photos: []*models.Photo{},
	}
}

func (c AdminController) render(w http.ResponseWriter, viewData viewmodels.AdminPage) {
	var (
		err    error
		photos []*models.Photo
	)

	if photos, err = c.photoService.All(); err != nil {
		slog.Error("error loading photos", "error", err)

		if !viewData.IsError {
			viewData.Message = "Erreur lors du chargement des photos"
			viewData.IsError = true
		}
	} else {
		viewData.Photos = photos
	}

	c.renderer.Render("pages/admin", viewData, w)
}

func photoFormFromRequest(r *http.Request) viewmodels.PhotoForm {
	result := viewmodels.PhotoForm{
		ID:           strings.TrimSpace(r.FormValue("id")),
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		ImageURL:     r.FormValue("imageUrl"),
		ThumbnailURL: r.FormValue("thumbnailUrl"),
		UploadID:     r.FormValue("uploadId"),
		HasLocation:  formBool(r.FormValue("hasLocation")),
		LocationName: r.FormValue("locationName"),
		Latitude:     formFloat(r.FormValue("latitude")),
		Longitude:    formFloat(r.FormValue("longitude")),
		Tags:         []string{},
		CurrentTag:   r.FormValue("currentTag"),
		Featured:     formBool(r.FormValue("featured")),
	}

	for _, tag := range r.Form["tags"] {
		if tag != "" {
			result.Tags = append(result.Tags, tag)
		}
	}

	return result
}

func formBool(value string) bool {
	return value == "on" || value == "true" || value == "1"
}

func formFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}

	return result
}
