package httpapi

import (
	"net/http"

	"github.com/rs/cors"

	"airquality-server/internal/config"
)

func NewServer(cfg config.Config, mux *http.ServeMux) *http.Server {
	// Cross-origin requests are permitted from any origin.
	handler := cors.AllowAll().Handler(mux)
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: requestLogger(handler),
	}
}
