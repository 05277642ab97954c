package airquality

import (
	"database/sql"
	"net/http"

	"airquality-server/internal/modules/airquality/controller"
	"airquality-server/internal/modules/airquality/repository"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB, subscriber MQTTSubscriber) {
	readingRepository := repository.NewRepository(db)
	airQualityController := controller.NewAirQualityController(readingRepository)
	airQualityController.RegisterRoutes(mux)
	if subscriber != nil {
		registerMQTTHandler(subscriber, readingRepository)
	}
}
