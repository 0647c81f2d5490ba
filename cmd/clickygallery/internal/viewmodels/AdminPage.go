package viewmodels

import "github.com/adampresley/clickygallery/pkg/models"

type AdminPage struct {
	BaseViewModel
	Photos []*models.Photo
	Form   PhotoForm
}
