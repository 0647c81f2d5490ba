package live

import (
	"log/slog"
	"net/http"

	livehub "github.com/adampresley/clickygallery/pkg/live"
)

type LiveHandlers interface {
	Connect(w http.ResponseWriter, r *http.Request)
}

type LiveControllerConfig struct {
	Hub *livehub.Hub
}

type LiveController struct {
	hub *livehub.Hub
}

func NewLiveController(config LiveControllerConfig) LiveController {
	return LiveController{
		hub: config.Hub,
	}
}

/*
GET /live
*/
func (c LiveController) Connect(w http.ResponseWriter, r *http.Request) {
	if err := c.hub.Serve(w, r); err != nil {
		slog.Error("error opening live connection", "error", err)
	}
}
