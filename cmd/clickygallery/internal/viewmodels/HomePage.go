package viewmodels

import "github.com/adampresley/clickygallery/pkg/models"

type HomePage struct {
	BaseViewModel
	Hero     []HeroSlide
	Featured []*models.Photo
}

type HeroSlide struct {
	Index    int
	ImageURL string
}

/*
DefaultHeroSlides are the banner images rotating on the homepage.
*/
var DefaultHeroSlides = []HeroSlide{
	{Index: 0, ImageURL: "https://images.unsplash.com/photo-1501785888041-af3ef285b470?ixlib=rb-4.0.3&auto=format&fit=crop&w=1740&q=80"},
	{Index: 1, ImageURL: "https://images.unsplash.com/photo-1454496522488-7a8e488e8606?ixlib=rb-4.0.3&auto=format&fit=crop&w=1748&q=80"},
	{Index: 2, ImageURL: "https://images.unsplash.com/photo-1514565131-fce0801e5785?ixlib=rb-4.0.3&auto=format&fit=crop&w=1756&q=80"},
}
