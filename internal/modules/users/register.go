package users

import (
	"database/sql"
	"net/http"

	"airquality-server/internal/modules/users/controller"
	"airquality-server/internal/modules/users/repository"
	"airquality-server/internal/modules/users/service"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB) {
	userRepository := repository.NewRepository(db)
	userService := service.NewUserService(userRepository)
	usersController := controller.NewUsersController(userService)
	usersController.RegisterRoutes(mux)
}
