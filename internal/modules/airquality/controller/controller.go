package controller

import (
	"net/http"

	"airquality-server/internal/modules/airquality/repository"
)

type AirQualityController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type airQualityControllerImpl struct {
	repository repository.ReadingRepository
}

func NewAirQualityController(repository repository.ReadingRepository) AirQualityController {
	return &airQualityControllerImpl{repository: repository}
}

func (c *airQualityControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /airquality", c.handleList)
	mux.HandleFunc("POST /airquality", c.handleIngest)
	mux.HandleFunc("GET /airquality/history", c.handleList)
	mux.HandleFunc("GET /airquality/history/{device_id}", c.handleListByDevice)
}
