/*
Package seed loads the starting photo collection from YAML. Without a
seed file the embedded default collection is used.
*/
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

var (
	ErrMissingTitle = fmt.Errorf("seed photo has no title")
	ErrMissingImage = fmt.Errorf("seed photo has no image URL")
	ErrDuplicateID  = fmt.Errorf("duplicate photo id in seed")
)

type PhotoRestorer interface {
	Restore(photos []*models.Photo) error
}

type seedFile struct {
	Photos []*models.Photo `yaml:"photos"`
}

/*
Load reads photos from YAML. Photos without an id get a new one, and
photos without createdAt get the current time.
*/
func Load(r io.Reader) ([]*models.Photo, error) {
	var (
		err  error
		file seedFile
	)

	decoder := yaml.NewDecoder(r)

	if err = decoder.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("error decoding seed file: %w", err)
	}

	seen := map[string]struct{}{}

	for i, p := range file.Photos {
		p.Title = strings.TrimSpace(p.Title)

		if p.Title == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrMissingTitle, i)
		}

		if p.ImageURL == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrMissingImage, i)
		}

		if p.ID == "" {
			p.ID = uuid.NewString()
		}

		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}

		seen[p.ID] = struct{}{}

		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}

		p.CreatedAt = p.CreatedAt.UTC()
	}

	if file.Photos == nil {
		return []*models.Photo{}, nil
	}

	return file.Photos, nil
}

/*
LoadFile loads photos from path, or the embedded default collection
when path is empty.
*/
func LoadFile(path string) ([]*models.Photo, error) {
	if path == "" {
		return Load(bytes.NewReader(defaultSeed))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening seed file %s: %w", path, err)
	}

	defer f.Close()

	return Load(f)
}

/*
Seed loads photos from path and restores them into the store.
*/
func Seed(store PhotoRestorer, path string) (int, error) {
	photos, err := LoadFile(path)
	if err != nil {
		return 0, err
	}

	if err = store.Restore(photos); err != nil {
		return 0, fmt.Errorf("error restoring seed photos: %w", err)
	}

	return len(photos), nil
}
