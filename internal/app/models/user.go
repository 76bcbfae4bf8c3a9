package models

import (
	"time"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN"
	RoleStaff RoleType = "STAFF"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"admin@studentbook.local"`                      // User's email address
	Password    string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"ADMIN"`                                 // User's role (ADMIN or STAFF)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
}

// Session defines a server-side login session based on the 'sessions' table.
// One row exists per active login; deleting the row signs the user out.
type Session struct {
	ID        string    `json:"id" db:"id"`                // Session identifier (UUID), carried inside the JWT
	UserID    int64     `json:"userId" db:"user_id"`       // Owning user
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // When the session was opened
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"` // When the session stops being honored
}
