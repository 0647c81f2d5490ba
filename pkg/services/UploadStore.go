package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/adampresley/clickygallery/pkg/thumbnail"
	"github.com/google/uuid"
)

var (
	ErrUploadNotFound    = fmt.Errorf("upload not found")
	ErrUnsupportedImage  = fmt.Errorf("unsupported image type")
	ErrInvalidUploadName = fmt.Errorf("invalid upload name")
	supportedUploadExts  = []string{".jpg", ".jpeg", ".png"}
	thumbnailSuffix      = "-thumb.jpg"
)

type UploadStorer interface {
	/*
	 * Stores an image and creates its thumbnail. The result is a
	 * preview reference until a photo record uses it.
	 */
	Save(r io.Reader, originalName string) (*models.Upload, error)

	/*
	 * Copies an image already on disk into the store.
	 */
	SaveFile(path string) (*models.Upload, error)

	/*
	 * Removes an upload and its thumbnail.
	 */
	Release(id string) error

	/*
	 * Returns the full path of a stored file, refusing names that
	 * would escape the upload directory.
	 */
	FullPath(name string) (string, error)
}

type UploadStoreConfig struct {
	Directory        string
	URLPrefix        string
	ThumbnailCreator thumbnail.Creator
}

type UploadStore struct {
	directory        string
	urlPrefix        string
	thumbnailCreator thumbnail.Creator
}

func NewUploadStore(config UploadStoreConfig) (UploadStore, error) {
	var (
		err error
	)

	if err = os.MkdirAll(config.Directory, 0755); err != nil {
		return UploadStore{}, fmt.Errorf("error creating upload directory: %w", err)
	}

	prefix := config.URLPrefix

	if prefix == "" {
		prefix = "/uploads/"
	}

	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return UploadStore{
		directory:        config.Directory,
		urlPrefix:        prefix,
		thumbnailCreator: config.ThumbnailCreator,
	}, nil
}

func (s UploadStore) Save(r io.Reader, originalName string) (*models.Upload, error) {
	var (
		err error
		out *os.File
	)

	ext := strings.ToLower(filepath.Ext(originalName))

	if !isSupportedUploadExt(ext) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, ext)
	}

	if ext == ".jpeg" {
		ext = ".jpg"
	}

	id := uuid.NewString()
	fileName := id + ext
	fullPath := filepath.Join(s.directory, fileName)

	if out, err = os.Create(fullPath); err != nil {
		return nil, fmt.Errorf("error creating upload file %s: %w", fullPath, err)
	}

	if _, err = io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(fullPath)
		return nil, fmt.Errorf("error writing upload file %s: %w", fullPath, err)
	}

	if err = out.Close(); err != nil {
		_ = os.Remove(fullPath)
		return nil, fmt.Errorf("error closing upload file %s: %w", fullPath, err)
	}

	thumbName := id + thumbnailSuffix

	if err = s.thumbnailCreator.Create(fullPath, filepath.Join(s.directory, thumbName)); err != nil {
		_ = os.Remove(fullPath)
		return nil, fmt.Errorf("error creating thumbnail for upload %s: %w", id, err)
	}

	result := &models.Upload{
		ID:           id,
		FileName:     fileName,
		ImageURL:     s.urlPrefix + fileName,
		ThumbnailURL: s.urlPrefix + thumbName,
	}

	slog.Debug("stored upload", "id", id, "originalName", originalName)
	return result, nil
}

func (s UploadStore) SaveFile(path string) (*models.Upload, error) {
	var (
		err error
		f   *os.File
	)

	if f, err = os.Open(path); err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}

	defer f.Close()

	return s.Save(f, filepath.Base(path))
}

func (s UploadStore) Release(id string) error {
	var (
		err     error
		removed = false
	)

	if _, err = uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUploadName, id)
	}

	candidates := []string{id + thumbnailSuffix}

	for _, ext := range supportedUploadExts {
		candidates = append(candidates, id+ext)
	}

	for _, name := range candidates {
		fullPath := filepath.Join(s.directory, name)

		if err = os.Remove(fullPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return fmt.Errorf("error removing upload file %s: %w", fullPath, err)
		}

		removed = true
	}

	if !removed {
		return fmt.Errorf("%w: %s", ErrUploadNotFound, id)
	}

	slog.Debug("released upload", "id", id)
	return nil
}

func (s UploadStore) FullPath(name string) (string, error) {
	var (
		err error
	)

	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %s", ErrInvalidUploadName, name)
	}

	fullPath := filepath.Join(s.directory, name)

	if strings.HasSuffix(name, thumbnailSuffix) && s.thumbnailCreator != nil && !s.thumbnailCreator.DoesExist(fullPath) {
		if err = s.rebuildThumbnail(strings.TrimSuffix(name, thumbnailSuffix), fullPath); err != nil {
			return "", err
		}
	}

	if _, err = os.Stat(fullPath); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrUploadNotFound, name)
	}

	return fullPath, nil
}

/*
rebuildThumbnail recreates a missing thumbnail from its source image.
*/
func (s UploadStore) rebuildThumbnail(id, thumbnailPath string) error {
	for _, ext := range supportedUploadExts {
		source := filepath.Join(s.directory, id+ext)

		if _, err := os.Stat(source); err != nil {
			continue
		}

		if err := s.thumbnailCreator.Create(source, thumbnailPath); err != nil {
			return fmt.Errorf("error rebuilding thumbnail for upload %s: %w", id, err)
		}

		slog.Info("rebuilt missing thumbnail", "id", id)
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUploadNotFound, id+thumbnailSuffix)
}

/*
UploadIDFromURL extracts the upload ID from an image URL produced by
the store. The second result is false for any other URL.
*/
func UploadIDFromURL(prefix, imageURL string) (string, bool) {
	if prefix == "" {
		prefix = "/uploads/"
	}

	if !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}

	name := strings.TrimPrefix(imageURL, prefix)
	id := strings.TrimSuffix(name, filepath.Ext(name))

	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}

	return id, true
}

func isSupportedUploadExt(ext string) bool {
	for _, e := range supportedUploadExts {
		if e == ext {
			return true
		}
	}

	return false
}
