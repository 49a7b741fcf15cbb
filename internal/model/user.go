package model

// User represents an account in the identity store. PasswordHash is a bcrypt
// hash and is never serialized; the login response carries only the public
// fields.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}
