package viewmodels

import "github.com/adampresley/clickygallery/pkg/models"

type PhotoPage struct {
	BaseViewModel
	Photo    *models.Photo
	PrevURL  string
	NextURL  string
	CloseURL string
	MapURL   string
}
