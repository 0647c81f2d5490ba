package models

/*
Upload is an image held by the upload store. Until a photo record
points at it, it is only a preview and may be released.
*/
type Upload struct {
	ID           string
	FileName     string
	ImageURL     string
	ThumbnailURL string
}
