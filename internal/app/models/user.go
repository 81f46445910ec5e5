package models

import (
	"time"
)

// User defines the account model based on the 'users' table
type User struct {
	ID        int64      `json:"id" db:"id" example:"1"`
	Username  string     `json:"username" db:"username" example:"john.doe"`
	Email     string     `json:"email" db:"email" example:"john.doe@edutech.edu"`
	Password  string     `json:"-" db:"password"` // bcrypt hash, never serialized
	Role      Role       `json:"role" db:"role" example:"STUDENT"`
	IsActive  bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}
