package thumbnail

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

/*
JpegCreator writes JPEG thumbnails whose longest edge is at most
maxSize pixels. Sources may be JPEG or PNG.
*/
type JpegCreator struct {
	maxSize uint
	quality int
}

func NewJpegCreator(maxSize uint) JpegCreator {
	return JpegCreator{
		maxSize: maxSize,
		quality: 85,
	}
}

func (c JpegCreator) DoesExist(thumbnailFilePath string) bool {
	if _, err := os.Stat(thumbnailFilePath); err == nil {
		return true
	}

	return false
}

func (c JpegCreator) Create(originalFilePath string, thumbnailFilePath string) error {
	var (
		err error
		f   *os.File
		out *os.File
		img image.Image
	)

	if f, err = os.Open(originalFilePath); err != nil {
		return fmt.Errorf("error opening source image %s: %w", originalFilePath, err)
	}

	defer f.Close()

	if img, _, err = image.Decode(f); err != nil {
		return fmt.Errorf("error decoding image %s: %w", originalFilePath, err)
	}

	if err = os.MkdirAll(filepath.Dir(thumbnailFilePath), 0755); err != nil {
		return fmt.Errorf("error creating thumbnail directory %s: %w", filepath.Dir(thumbnailFilePath), err)
	}

	if out, err = os.Create(thumbnailFilePath); err != nil {
		return fmt.Errorf("error creating thumbnail file %s: %w", thumbnailFilePath, err)
	}

	defer out.Close()

	if err = jpeg.Encode(out, c.resize(img), &jpeg.Options{Quality: c.quality}); err != nil {
		return fmt.Errorf("error encoding thumbnail %s: %w", thumbnailFilePath, err)
	}

	return nil
}

func (c JpegCreator) resize(img image.Image) image.Image {
	var (
		newWidth, newHeight uint
	)

	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	// Never upscale.
	if width <= c.maxSize && height <= c.maxSize {
		return img
	}

	if width > height {
		newWidth = c.maxSize
		newHeight = uint(float64(height) * (float64(c.maxSize) / float64(width)))
	} else {
		newHeight = c.maxSize
		newWidth = uint(float64(width) * (float64(c.maxSize) / float64(height)))
	}

	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}
