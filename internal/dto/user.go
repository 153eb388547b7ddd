package dto

import "github.com/SscSPs/travel_allowance_app/internal/core/domain"

// CreateUserRequest defines data for registering a user.
type CreateUserRequest struct {
	UserID  string `json:"userID" binding:"omitempty,uuid"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	IsStaff bool   `json:"isStaff"`
}

// UpdateUserRolesRequest replaces a user's roles.
type UpdateUserRolesRequest struct {
	Roles []string `json:"roles" binding:"required,dive,role"`
}

// ToDomainRoles converts validated role names.
func (r UpdateUserRolesRequest) ToDomainRoles() []domain.Role {
	roles := make([]domain.Role, 0, len(r.Roles))
	for _, name := range r.Roles {
		roles = append(roles, domain.Role(name))
	}
	return roles
}

// UserResponse defines data returned for a user.
type UserResponse struct {
	UserID  string        `json:"userID"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	IsStaff bool          `json:"isStaff"`
	Roles   []domain.Role `json:"roles"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []domain.Role{}
	}
	return UserResponse{
		UserID:  u.UserID,
		Name:    u.Name,
		Email:   u.Email,
		IsStaff: u.IsStaff,
		Roles:   roles,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Role   *string `form:"role" binding:"omitempty,role"`
	Limit  int     `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int     `form:"offset" binding:"omitempty,min=0"`
}

// ListUsersResponse wraps a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts domain users.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	list := make([]UserResponse, len(users))
	for i := range users {
		list[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: list}
}
