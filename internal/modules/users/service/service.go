package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"airquality-server/internal/modules/users/repository"
	"airquality-server/internal/modules/users/types"
)

// ErrInvalidCredentials is returned when a supplied password does not match
// the stored hash. Distinct from repository.ErrNotFound so callers can tell
// "unknown account" from "wrong password".
var ErrInvalidCredentials = errors.New("invalid credentials")

// bcrypt cost factor for stored password hashes.
const hashCost = 10

type UserService struct {
	repository repository.UserRepository
}

func NewUserService(repository repository.UserRepository) *UserService {
	return &UserService{repository: repository}
}

// Signup hashes the password and stores the new user, returning the assigned id.
func (s *UserService) Signup(fname, lname, email, password, avatar string) (int64, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}
	return s.repository.Insert(types.User{
		Fname:    fname,
		Lname:    lname,
		Email:    email,
		Password: hash,
		Avatar:   avatar,
	})
}

// Login verifies the credentials and returns the user's projection.
// Returns repository.ErrNotFound for an unknown email and
// ErrInvalidCredentials for a password mismatch.
func (s *UserService) Login(email, password string) (types.Profile, error) {
	u, err := s.repository.FindByEmail(email)
	if err != nil {
		return types.Profile{}, err
	}
	if !checkPassword(password, u.Password) {
		return types.Profile{}, ErrInvalidCredentials
	}
	return types.Profile{
		ID:     u.ID,
		Fname:  u.Fname,
		Lname:  u.Lname,
		Email:  u.Email,
		Avatar: u.Avatar,
	}, nil
}

// UpdateProfile overwrites all mutable fields unconditionally; the password
// is re-hashed. No old-password check here, that is ChangePassword's job.
func (s *UserService) UpdateProfile(id int64, fname, lname, email, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return s.repository.UpdateProfile(id, fname, lname, email, hash)
}

// ChangePassword verifies the current password before storing the new one.
// The check and the update are two independent statements; there is no
// compensating rollback if the update fails after a successful check.
func (s *UserService) ChangePassword(id int64, oldPassword, newPassword string) error {
	stored, err := s.repository.PasswordByID(id)
	if err != nil {
		return err
	}
	if !checkPassword(oldPassword, stored) {
		return ErrInvalidCredentials
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repository.UpdatePasswordByID(id, hash)
}

// ResetPassword overwrites the password for the given email with no
// prior-knowledge check. There is no out-of-band confirmation step; this is
// the observed "forgot password" contract, kept as-is. The returned bool
// reports whether any row matched.
func (s *UserService) ResetPassword(email, newPassword string) (bool, error) {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return false, err
	}
	n, err := s.repository.UpdatePasswordByEmail(email, hash)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *UserService) Profile(id int64) (types.Profile, error) {
	return s.repository.FindProfileByID(id)
}

func (s *UserService) ListProfiles() ([]types.Profile, error) {
	return s.repository.ListProfiles()
}

func (s *UserService) Delete(id int64) error {
	return s.repository.Delete(id)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
