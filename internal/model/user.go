package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Role is a named authorization tier referenced by users
type Role struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents a registered principal in the system
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	RoleID       int       `json:"role_id"`
	RoleName     string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,e164"`
	FirstName       string `json:"first_name" binding:"required,min=3,max=50"`
	LastName        string `json:"last_name" binding:"required,min=3,max=50"`
	Password        string `json:"password" binding:"required,min=5,max=50"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AddRoleRequest is the payload for creating a new role
type AddRoleRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}

// UserInfo is the public view of a user returned by the API
type UserInfo struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Info converts a User into its public representation
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.RoleName,
	}
}

// UserFilters contains filter parameters for listing users
type UserFilters struct {
	RoleName *string
}
