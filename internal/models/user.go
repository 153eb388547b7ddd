package models

// User is the row stored in the users table. Roles live in user_roles.
type User struct {
	UserID  string `db:"user_id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	IsStaff bool   `db:"is_staff"`
	AuditFields
}
