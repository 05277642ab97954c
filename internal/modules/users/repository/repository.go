package repository

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"airquality-server/internal/modules/users/types"
)

// ErrNotFound is returned when an id- or email-keyed operation matches no row.
var ErrNotFound = errors.New("user not found")

//go:embed sql/insert-user.sql
var insertUserSQL string

//go:embed sql/get-user-by-email.sql
var getUserByEmailSQL string

//go:embed sql/get-profile-by-id.sql
var getProfileByIDSQL string

//go:embed sql/list-profiles.sql
var listProfilesSQL string

//go:embed sql/update-profile.sql
var updateProfileSQL string

//go:embed sql/get-password-by-id.sql
var getPasswordByIDSQL string

//go:embed sql/update-password-by-id.sql
var updatePasswordByIDSQL string

//go:embed sql/update-password-by-email.sql
var updatePasswordByEmailSQL string

//go:embed sql/delete-user.sql
var deleteUserSQL string

type UserRepository interface {
	Insert(u types.User) (int64, error)
	FindByEmail(email string) (types.User, error)
	FindProfileByID(id int64) (types.Profile, error)
	ListProfiles() ([]types.Profile, error)
	UpdateProfile(id int64, fname, lname, email, passwordHash string) error
	PasswordByID(id int64) (string, error)
	UpdatePasswordByID(id int64, passwordHash string) error
	UpdatePasswordByEmail(email, passwordHash string) (int64, error)
	Delete(id int64) error
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) UserRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Insert(u types.User) (int64, error) {
	res, err := r.db.Exec(insertUserSQL, u.Fname, u.Lname, u.Email, u.Password, u.Avatar)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert user id: %w", err)
	}
	return id, nil
}

func (r *repositoryImpl) FindByEmail(email string) (types.User, error) {
	var u types.User
	err := r.db.QueryRow(getUserByEmailSQL, email).Scan(&u.ID, &u.Fname, &u.Lname, &u.Email, &u.Password, &u.Avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return types.User{}, ErrNotFound
	}
	if err != nil {
		return types.User{}, err
	}
	return u, nil
}

func (r *repositoryImpl) FindProfileByID(id int64) (types.Profile, error) {
	var p types.Profile
	err := r.db.QueryRow(getProfileByIDSQL, id).Scan(&p.ID, &p.Fname, &p.Lname, &p.Email, &p.Avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Profile{}, ErrNotFound
	}
	if err != nil {
		return types.Profile{}, err
	}
	return p, nil
}

func (r *repositoryImpl) ListProfiles() ([]types.Profile, error) {
	rows, err := r.db.Query(listProfilesSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close profiles rows", "error", err)
		}
	}()
	var out []types.Profile
	for rows.Next() {
		var p types.Profile
		if err := rows.Scan(&p.ID, &p.Fname, &p.Lname, &p.Email, &p.Avatar); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) UpdateProfile(id int64, fname, lname, email, passwordHash string) error {
	res, err := r.db.Exec(updateProfileSQL, fname, lname, email, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res)
}

func (r *repositoryImpl) PasswordByID(id int64) (string, error) {
	var hash string
	err := r.db.QueryRow(getPasswordByIDSQL, id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (r *repositoryImpl) UpdatePasswordByID(id int64, passwordHash string) error {
	res, err := r.db.Exec(updatePasswordByIDSQL, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return requireAffected(res)
}

// UpdatePasswordByEmail returns the number of rows matched so callers can
// give an unmatched email a defined (documented) outcome rather than an error.
func (r *repositoryImpl) UpdatePasswordByEmail(email, passwordHash string) (int64, error) {
	res, err := r.db.Exec(updatePasswordByEmailSQL, passwordHash, email)
	if err != nil {
		return 0, fmt.Errorf("reset password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset password affected: %w", err)
	}
	return n, nil
}

func (r *repositoryImpl) Delete(id int64) error {
	res, err := r.db.Exec(deleteUserSQL, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
