package store

import (
	"github.com/uptrace/bun"
)

// Role is the user's role.
type Role = string

const (
	// RoleUser is the default role for registered accounts.
	RoleUser Role = "user"
	// RoleAdmin grants access to the admin routes.
	RoleAdmin Role = "admin"
)

// ValidRole reports whether the role belongs to the enumerated set.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is the user model. PasswordHash never leaves the process: it is
// excluded from JSON and must not be logged.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Username      string `bun:"username,notnull,unique" json:"username"`
	Email         string `bun:"email,notnull,unique" json:"email"`
	FirstName     string `bun:"first_name,notnull" json:"first_name"`
	Surname       string `bun:"surname,notnull" json:"surname"`
	Phone         string `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash  string `bun:"hashed_password,notnull" json:"-"`
	Role          Role   `bun:"role,notnull" json:"role"`
	IsActive      bool   `bun:"is_active,notnull" json:"is_active"`
}

// Todo is the todo model. OwnerID scopes every non-admin query.
type Todo struct {
	bun.BaseModel `bun:"table:todos,alias:todo"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Title         string `bun:"title,notnull" json:"title"`
	Description   string `bun:"description,notnull" json:"description"`
	Priority      int    `bun:"priority,notnull" json:"priority"`
	Complete      bool   `bun:"complete,notnull" json:"complete"`
	OwnerID       int64  `bun:"owner_id,notnull" json:"owner_id"`
}
