package controller

import (
	"net/http"

	"airquality-server/internal/modules/users/types"
)

// userService is the slice of the users service this controller needs.
type userService interface {
	Signup(fname, lname, email, password, avatar string) (int64, error)
	Login(email, password string) (types.Profile, error)
	UpdateProfile(id int64, fname, lname, email, password string) error
	ChangePassword(id int64, oldPassword, newPassword string) error
	ResetPassword(email, newPassword string) (bool, error)
	Profile(id int64) (types.Profile, error)
	ListProfiles() ([]types.Profile, error)
	Delete(id int64) error
}

type UsersController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type usersControllerImpl struct {
	service userService
}

func NewUsersController(service userService) UsersController {
	return &usersControllerImpl{service: service}
}

func (c *usersControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /users", c.handleSignup)
	mux.HandleFunc("POST /users/login", c.handleLogin)
	mux.HandleFunc("PUT /users/update", c.handleUpdate)
	mux.HandleFunc("PUT /users/change-password/{id}", c.handleChangePassword)
	mux.HandleFunc("PUT /users/reset-password", c.handleResetPassword)
	mux.HandleFunc("GET /users", c.handleList)
	mux.HandleFunc("GET /users/{id}", c.handleGet)
	mux.HandleFunc("DELETE /users/{id}", c.handleDelete)
}
