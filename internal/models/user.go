package models

// UserRole represents the available roles for access control.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStudent UserRole = "student"
)

// User is a provisioned credential. The set is seeded at bootstrap and is
// immutable at runtime; Password is matched with plain equality.
type User struct {
	ID       string   `json:"id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
}

// AuthUser is the authenticated identity: a User with the password
// stripped. It is persisted for the lifetime of the session.
type AuthUser struct {
	ID    string   `json:"id"`
	Role  UserRole `json:"role"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
}

// Identity builds the session identity for a matched credential.
func (u User) Identity() AuthUser {
	return AuthUser{ID: u.ID, Role: u.Role, Email: u.Email, Name: u.Name}
}
