package domain

// User represents a person who can request trips or act on them.
type User struct {
	UserID  string `json:"userID"` // Primary Key (e.g., UUID)
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsStaff bool   `json:"isStaff"`
	Roles   []Role `json:"roles"`
	AuditFields
}

// HasRole reports whether role is directly assigned to u.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdministrator reports whether u may manage parameters, holidays and roles.
func (u User) IsAdministrator() bool {
	return u.IsStaff || u.HasRole(RoleAdmin)
}

// Actor is whoever is performing a workflow action.
type Actor struct {
	UserID  string
	IsStaff bool
	Roles   []Role
}

// ActorFromUser builds the Actor view of u.
func ActorFromUser(u User) Actor {
	return Actor{UserID: u.UserID, IsStaff: u.IsStaff, Roles: u.Roles}
}
