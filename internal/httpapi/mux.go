package httpapi

import (
	"database/sql"
	"net/http"

	"airquality-server/internal/utils"
)

const banner = "Air Quality API"

func NewMux(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteText(w, http.StatusOK, banner)
	})
	registerHealthcheck(mux, db)
	return mux
}
