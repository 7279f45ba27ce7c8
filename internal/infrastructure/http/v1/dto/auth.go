// Package dto provides data transfer objects for HTTP API.
package dto

import (
	"time"

	"stockyard/internal/domain/auth"
)

// --- Request DTOs ---

// LoginRequest for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Email:    r.Email,
		Password: r.Password,
	}
}

// CreateUserRequest for creating a user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin staff"`
}

// UpdateUserRequest for updating a user.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin staff"`
	IsActive bool   `json:"isActive"`
}

// UserListQuery narrows user listings.
type UserListQuery struct {
	Search   string  `form:"search"`
	IsActive *bool   `form:"isActive"`
	Role     *string `form:"role"`
	Limit    int     `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset   int     `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to a domain filter.
func (q *UserListQuery) ToFilter() auth.UserFilter {
	f := auth.UserFilter{
		Search:   q.Search,
		IsActive: q.IsActive,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if q.Role != nil {
		role := auth.Role(*q.Role)
		f.Role = &role
	}
	return f
}

// --- Response DTOs ---

// UserResponse represents user in API response.
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        auth.Role  `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromUser creates response from domain user.
func FromUser(u *auth.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// FromUsers converts a slice of users.
func FromUsers(users []auth.User) []*UserResponse {
	res := make([]*UserResponse, 0, len(users))
	for i := range users {
		res = append(res, FromUser(&users[i]))
	}
	return res
}

// SessionResponse includes the access token and user info.
type SessionResponse struct {
	AccessToken string        `json:"accessToken"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	TokenType   string        `json:"tokenType"`
	User        *UserResponse `json:"user"`
}

// FromSession creates response from a domain session.
func FromSession(s *auth.Session) *SessionResponse {
	return &SessionResponse{
		AccessToken: s.AccessToken,
		ExpiresAt:   s.ExpiresAt,
		TokenType:   s.TokenType,
		User:        FromUser(s.User),
	}
}
