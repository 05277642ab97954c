package types

// User is the full stored row. Password holds the bcrypt hash and must never
// leave the service boundary.
type User struct {
	ID       int64
	Fname    string
	Lname    string
	Email    string
	Password string
	Avatar   string
}

// Profile is the boundary projection of a user row; it has no password field.
type Profile struct {
	ID     int64  `json:"id"`
	Fname  string `json:"fname"`
	Lname  string `json:"lname"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}
