package model

import "time"

// SessionData is what a session cookie resolves to.
type SessionData struct {
	UserID    string    `json:"user_id"`
	UserRole  int       `json:"user_role"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}

// OTPChallenge is the stored form of a pending one-time code. Only the
// bcrypt hash of the code is kept.
type OTPChallenge struct {
	Email     string    `json:"email"`
	CodeHash  string    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}
