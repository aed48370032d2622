package model

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account as stored in the `users` table.
// PasswordHash holds a bcrypt hash and is never serialised; handlers
// project users onto PublicUser before responding.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique email address (stored lower-cased).
//  PasswordHash – bcrypt hash of the password.
//  Role         – admin or user.
type User struct {
	ID           uint64 `json:"user_id"` // users.user_id
	Name         string `json:"name"`    // users.name
	Email        string `json:"email"`   // users.email
	PasswordHash string `json:"-"`       // users.password
	Role         string `json:"role"`    // users.role
}

// PublicUser is a user without credentials.
type PublicUser struct {
	ID    uint64 `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
