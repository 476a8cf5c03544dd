package models

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// User is a registered platform user. Users are keyed by their lowercased email address.
type User struct {
	ID          string    `json:"id" mapstructure:"id"`
	Email       string    `json:"email" mapstructure:"email"`
	DisplayName string    `json:"displayName" mapstructure:"displayName"`
	PhotoURL    string    `json:"photoURL,omitempty" mapstructure:"photoURL"`
	Role        Role      `json:"role" mapstructure:"role"`
	CreatedAt   time.Time `json:"created_at" mapstructure:"created_at"`
}

// CreateUserRequest is the parameter struct for the UpsertUser function.
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// UserSearchRequest is the parameter struct for the SearchUsers function.
type UserSearchRequest struct {
	Search string
	Page   int
	Limit  int
}

// UserPage is one page of a user search.
type UserPage struct {
	Users []*User `json:"users"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

type RoleResponse struct {
	Role Role `json:"role"`
}
