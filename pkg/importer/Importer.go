package importer

import (
	"fmt"
)

var (
	ErrImporterAlreadyRunning = fmt.Errorf("importer is already running")
	ErrInvalidImportPath      = fmt.Errorf("invalid import path")
)

type Importer interface {
	Run() ([]error, error)
}
