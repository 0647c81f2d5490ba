package thumbnail

type Creator interface {
	DoesExist(thumbnailFilePath string) bool
	Create(originalFilePath string, thumbnailFilePath string) error
}
