package models

import (
	"time"
)

type Account struct {
	ID                int       `json:"id" db:"id"`
	Username          string    `json:"username" db:"username"`
	Email             string    `json:"email" db:"email"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	Verified          bool      `json:"verified" db:"is_verified"`
	VerifyCode        string    `json:"-" db:"verify_code"`
	VerifyCodeExpiry  time.Time `json:"-" db:"verify_code_expiry"`
	AcceptingMessages bool      `json:"accepting_messages" db:"is_accepting_messages"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}
