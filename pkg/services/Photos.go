package services

import (
	"time"

	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/google/uuid"
)

type PhotoServicer interface {
	/*
	 * Retrieves all photos in insertion order. Insertion order is
	 * what previous/next navigation follows.
	 */
	All() ([]*models.Photo, error)

	/*
	 * Retrieves photos flagged as featured, in insertion order.
	 */
	Featured() ([]*models.Photo, error)

	/*
	 * Retrieves a single photo by ID. A missing photo is not an
	 * error: the result is nil.
	 */
	GetPhotoByID(id string) (*models.Photo, error)

	/*
	 * Creates a photo, assigning its ID and creation time.
	 */
	Create(photo models.NewPhoto) (*models.Photo, error)

	/*
	 * Merges the set fields of update into an existing photo. Updating
	 * a missing photo does nothing and returns nil.
	 */
	Update(id string, update models.PhotoUpdate) (*models.Photo, error)

	/*
	 * Deletes a photo. Returns false when there was nothing to delete.
	 */
	Delete(id string) (bool, error)
}

/*
NewPhotoID returns a new random photo identifier.
*/
func NewPhotoID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}
