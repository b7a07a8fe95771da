package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is the record a UserDirectory returns for an email. The login pipeline
// only reads ID and PasswordHash; the rest belongs to the directory.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
