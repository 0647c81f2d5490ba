package services

import (
	"sync"
	"time"

	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/clickygallery/pkg/models"
)

type MemoryPhotoServiceConfig struct {
	// Optional. Defaults to NewPhotoID.
	IDGenerator func() string

	// Optional. Defaults to the current UTC time.
	Clock func() time.Time
}

/*
MemoryPhotoService keeps photos in process memory. Everything is lost
when the process exits.
*/
type MemoryPhotoService struct {
	mutex       sync.RWMutex
	photos      []*models.Photo
	idGenerator func() string
	clock       func() time.Time
}

func NewMemoryPhotoService(config MemoryPhotoServiceConfig) *MemoryPhotoService {
	result := &MemoryPhotoService{
		photos:      []*models.Photo{},
		idGenerator: config.IDGenerator,
		clock:       config.Clock,
	}

	if result.idGenerator == nil {
		result.idGenerator = NewPhotoID
	}

	if result.clock == nil {
		result.clock = now
	}

	return result
}

func (s *MemoryPhotoService) All() ([]*models.Photo, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return clonePhotos(s.photos), nil
}

func (s *MemoryPhotoService) Featured() ([]*models.Photo, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := []*models.Photo{}

	for _, p := range s.photos {
		if p.Featured {
			result = append(result, p.Clone())
		}
	}

	return result, nil
}

func (s *MemoryPhotoService) GetPhotoByID(id string) (*models.Photo, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	found := slices.Find(s.photos, func(p *models.Photo) bool {
		return p.ID == id
	})

	return found.Clone(), nil
}

func (s *MemoryPhotoService) Create(photo models.NewPhoto) (*models.Photo, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	newPhoto := photo.ToPhoto(s.idGenerator(), s.clock())
	s.photos = append(s.photos, newPhoto)

	return newPhoto.Clone(), nil
}

func (s *MemoryPhotoService) Update(id string, update models.PhotoUpdate) (*models.Photo, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	index := s.indexOf(id)

	if index == -1 {
		return nil, nil
	}

	s.photos[index] = update.Apply(s.photos[index])
	return s.photos[index].Clone(), nil
}

func (s *MemoryPhotoService) Delete(id string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	index := s.indexOf(id)

	if index == -1 {
		return false, nil
	}

	s.photos = append(s.photos[:index], s.photos[index+1:]...)
	return true, nil
}

/*
Restore appends photos exactly as given, keeping their IDs and
creation times. Used to seed the store.
*/
func (s *MemoryPhotoService) Restore(photos []*models.Photo) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.photos = append(s.photos, clonePhotos(photos)...)
	return nil
}

func (s *MemoryPhotoService) indexOf(id string) int {
	for i, p := range s.photos {
		if p.ID == id {
			return i
		}
	}

	return -1
}

func clonePhotos(photos []*models.Photo) []*models.Photo {
	return slices.Map(photos, func(p *models.Photo, index int) *models.Photo {
		return p.Clone()
	})
}
