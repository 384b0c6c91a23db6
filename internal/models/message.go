package models

import (
	"time"
)

type Message struct {
	ID        string    `json:"id" db:"id"`
	AccountID int       `json:"-" db:"account_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
