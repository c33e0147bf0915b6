package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrInvalidRole        = errors.New("invalid user role")
)

// Roles matching the profiles role enum.
const (
	RoleClient     = "client"
	RoleHouseOwner = "house_owner"
	RoleAdmin      = "admin"
)

// User represents a marketplace profile: a guest, a host, or an admin.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	FullName     *string
	Phone        *string
	Role         string
	// IsApproved gates hosts: a house_owner cannot publish listings until an
	// admin approves the profile. Clients and admins are approved on creation.
	IsApproved  bool
	IsActive    bool
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email      string
	Role       string
	IsApproved *bool // pointer to distinguish false from not-set

	Page     int
	PageSize int
}
