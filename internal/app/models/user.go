package models

// User defines the admin user model based on the 'users' table.
// The dashboard only distinguishes admins (upload/delete rights) from
// everyone else; there is no self-service registration.
type User struct {
	ID       int64  `json:"id" db:"id" example:"1"`
	Username string `json:"username" db:"username" example:"admin"`
	Password string `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	IsAdmin  bool   `json:"isAdmin" db:"is_admin" example:"true"`
}
