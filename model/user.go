package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Password         string    `json:"-"`
	FullName         *string   `json:"full_name,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	SecureURLProfile *string   `json:"secure_url_profile,omitempty"`
	PublicURLProfile *string   `json:"public_url_profile,omitempty"`
	Role             string    `json:"role"`
	Status           string    `json:"status"`
	OTP              *string   `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DetailUser carries the extended profile attached to a user account.
type DetailUser struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FullName  string    `json:"full_name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Gender    string    `json:"gender"`
	DOB       time.Time `json:"dob"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
