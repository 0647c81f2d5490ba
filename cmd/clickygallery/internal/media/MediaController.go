package media

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/clickygallery/pkg/services"
)

type MediaHandlers interface {
	ServeUpload(w http.ResponseWriter, r *http.Request)
}

type MediaControllerConfig struct {
	UploadStore services.UploadStorer
}

type MediaController struct {
	uploadStore services.UploadStorer
}

func NewMediaController(config MediaControllerConfig) MediaController {
	return MediaController{
		uploadStore: config.UploadStore,
	}
}

/*
GET /uploads/{name}
*/
func (c MediaController) ServeUpload(w http.ResponseWriter, r *http.Request) {
	var (
		err      error
		fullPath string
		f        *os.File
		info     fs.FileInfo
	)

	name := httphelpers.GetFromRequest[string](r, "name")

	if fullPath, err = c.uploadStore.FullPath(name); err != nil {
		if !errors.Is(err, services.ErrUploadNotFound) && !errors.Is(err, services.ErrInvalidUploadName) {
			slog.Error("error locating upload", "error", err, "name", name)
		}

		http.NotFound(w, r)
		return
	}

	if f, err = os.Open(fullPath); err != nil {
		slog.Error("error opening upload", "error", err, "path", fullPath)
		http.Error(w, "Error retrieving image", http.StatusInternalServerError)
		return
	}

	defer f.Close()

	modTime := time.Now()

	if info, err = f.Stat(); err == nil {
		modTime = info.ModTime()
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, name, modTime, f)
}
