package importer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/adampresley/clickygallery/pkg/services"
	"github.com/adampresley/imagemetadata"
	"github.com/adampresley/imagemetadata/imagemodel"
	"github.com/alitto/pond/v2"
)

type MetadataReader func(f *os.File) (*imagemodel.ImageData, error)

type JpegImporterConfig struct {
	ImportPath      string
	MaxWorkers      int
	PhotoService    services.PhotoServicer
	UploadStore     services.UploadStorer
	UploadURLPrefix string

	// Optional. Defaults to imagemetadata.NewFromJPEG.
	MetadataReader MetadataReader

	// Optional. Called after a run that created or removed photos.
	OnChange func()
}

/*
JpegImporter turns JPEG files dropped into the import directory into
photo records. Files are copied into the upload store so the photo
keeps working if the original is moved. Photos whose source file
disappears are removed again.
*/
type JpegImporter struct {
	importPath      string
	maxWorkers      int
	photoService    services.PhotoServicer
	uploadStore     services.UploadStorer
	uploadURLPrefix string
	metadataReader  MetadataReader
	onChange        func()

	running atomic.Bool
}

func NewJpegImporter(config JpegImporterConfig) *JpegImporter {
	result := &JpegImporter{
		importPath:      config.ImportPath,
		maxWorkers:      config.MaxWorkers,
		photoService:    config.PhotoService,
		uploadStore:     config.UploadStore,
		uploadURLPrefix: config.UploadURLPrefix,
		metadataReader:  config.MetadataReader,
		onChange:        config.OnChange,
	}

	if result.maxWorkers < 1 {
		result.maxWorkers = 1
	}

	if result.metadataReader == nil {
		result.metadataReader = func(f *os.File) (*imagemodel.ImageData, error) {
			return imagemetadata.NewFromJPEG(f)
		}
	}

	return result
}

func (im *JpegImporter) Run() ([]error, error) {
	var (
		err       error
		allPhotos []*models.Photo
		info      os.FileInfo
	)

	if !im.running.CompareAndSwap(false, true) {
		return []error{}, ErrImporterAlreadyRunning
	}

	defer im.running.Store(false)

	if info, err = os.Stat(im.importPath); err != nil || !info.IsDir() {
		return []error{}, ErrInvalidImportPath
	}

	slog.Info("starting JpegImporter", "maxWorkers", im.maxWorkers, "importPath", im.importPath)

	if allPhotos, err = im.photoService.All(); err != nil {
		return []error{}, fmt.Errorf("error retrieving all photos: %w", err)
	}

	removed, processErrors := im.cleanRemovedPhotos(allPhotos)
	created, syncErrors := im.syncPhotos(allPhotos)
	processErrors = append(processErrors, syncErrors...)

	slog.Info("JpegImporter finished", "created", created, "removed", removed, "errors", len(processErrors))

	if (created > 0 || removed > 0) && im.onChange != nil {
		im.onChange()
	}

	return processErrors, nil
}

func (im *JpegImporter) cleanRemovedPhotos(allPhotos []*models.Photo) (int, []error) {
	var (
		err     error
		errs    []error
		removed int
	)

	for _, photo := range allPhotos {
		if photo.SourcePath == "" {
			continue
		}

		if _, err = os.Stat(photo.SourcePath); !errors.Is(err, os.ErrNotExist) {
			continue
		}

		slog.Info("removing photo", "id", photo.ID, "sourcePath", photo.SourcePath)

		if _, err = im.photoService.Delete(photo.ID); err != nil {
			errs = append(errs, fmt.Errorf("could not delete photo '%s': %w", photo.ID, err))
			continue
		}

		removed++

		if uploadID, ok := services.UploadIDFromURL(im.uploadURLPrefix, photo.ImageURL); ok {
			if err = im.uploadStore.Release(uploadID); err != nil {
				errs = append(errs, fmt.Errorf("could not release upload for photo '%s': %w", photo.ID, err))
			}
		}
	}

	return removed, errs
}

func (im *JpegImporter) syncPhotos(allPhotos []*models.Photo) (int, []error) {
	var (
		errs    []error
		created atomic.Int32
	)

	pool := pond.NewResultPool[[]error](im.maxWorkers)
	group := pool.NewGroup()

	walkErr := filepath.WalkDir(im.importPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		lowerExt := strings.ToLower(filepath.Ext(path))

		if lowerExt != ".jpg" && lowerExt != ".jpeg" {
			return nil
		}

		existingPhoto := slices.Find(allPhotos, func(p *models.Photo) bool {
			return p.SourcePath == path
		})

		if existingPhoto != nil {
			return nil
		}

		group.Submit(func() []error {
			if err := im.importFile(path); err != nil {
				return []error{err}
			}

			created.Add(1)
			return []error{}
		})

		return nil
	})

	if walkErr != nil {
		errs = append(errs, fmt.Errorf("error walking import path: %w", walkErr))
	}

	result, _ := group.Wait()
	pool.StopAndWait()

	for _, groupErrors := range result {
		errs = append(errs, groupErrors...)
	}

	return int(created.Load()), errs
}

func (im *JpegImporter) importFile(path string) error {
	var (
		err       error
		f         *os.File
		imageData *imagemodel.ImageData
		upload    *models.Upload
	)

	if f, err = os.Open(path); err != nil {
		return fmt.Errorf("could not open file '%s': %w", path, err)
	}

	imageData, err = im.metadataReader(f)
	_ = f.Close()

	if err != nil {
		return fmt.Errorf("could not extract metadata from file '%s': %w", path, err)
	}

	if upload, err = im.uploadStore.SaveFile(path); err != nil {
		return fmt.Errorf("could not store file '%s': %w", path, err)
	}

	newPhoto := NewPhotoFromImageData(path, imageData)
	newPhoto.ImageURL = upload.ImageURL
	newPhoto.ThumbnailURL = upload.ThumbnailURL

	if _, err = im.photoService.Create(newPhoto); err != nil {
		_ = im.uploadStore.Release(upload.ID)
		slog.Error("error saving photo", "error", err, "path", path)
		return fmt.Errorf("could not save photo '%s': %w", path, err)
	}

	slog.Info("imported photo", "path", path, "upload", upload.ID)
	return nil
}

/*
NewPhotoFromImageData maps embedded metadata onto a new photo. The title
falls back to the file name, keywords become lowercase tags and GPS
coordinates become the location.
*/
func NewPhotoFromImageData(path string, imageData *imagemodel.ImageData) models.NewPhoto {
	ext := filepath.Ext(path)

	title := strings.TrimSpace(imageData.TitleXMP)
	caption := strings.TrimSpace(imageData.CaptionEXIF)

	if title == "" {
		title = strings.TrimSpace(imageData.TitleIPTC)
	}

	if caption == "" {
		caption = strings.TrimSpace(imageData.CaptionIPTC)
	}

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), ext)
	}

	tags := []string{}

	for _, keyword := range imageData.Keywords {
		tag := strings.ToLower(strings.TrimSpace(keyword))

		if tag == "" || slices.Find(tags, func(t string) bool { return t == tag }) != "" {
			continue
		}

		tags = append(tags, tag)
	}

	result := models.NewPhoto{
		Title:       title,
		Description: caption,
		Tags:        tags,
		SourcePath:  path,
	}

	if imageData.Latitude != 0 || imageData.Longitude != 0 {
		result.Location = &models.Location{
			Latitude:  imageData.Latitude,
			Longitude: imageData.Longitude,
		}

		result.Location.Name = result.Location.Coordinates()
	}

	return result
}
