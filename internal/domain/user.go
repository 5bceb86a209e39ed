package domain

import "time"

// Role separates the single admin capability from everyone else.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an identity record. Two login variants share it: username+password
// (PassHash set) and wallet identity (WalletAddress set, lowercase).
type User struct {
	Id            string     `json:"id"`
	Username      string     `json:"username,omitempty"`
	PassHash      string     `json:"-"`
	Email         string     `json:"email,omitempty"`
	WalletAddress string     `json:"walletAddress,omitempty"`
	Role          Role       `json:"role"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
}

// UserPatch is the closed set of updatable user fields.
type UserPatch struct {
	Email         *string `json:"email,omitempty"`
	WalletAddress *string `json:"walletAddress,omitempty"`
	Role          *Role   `json:"role,omitempty"`
}
